package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/latch"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/services/auth"
	"github.com/mcoot/sportfinder/internal/web/middleware"
	"github.com/mcoot/sportfinder/internal/web/templates/pages"
)

// Messages shown by the sign-in flows
const (
	loginFailed     = "Login failed. Please check your email."
	registerFailed  = "Registration failed. Please try again."
	unsupportedRole = "Account has an unsupported role"
	sessionFailed   = "Could not save your session. Please try again."
)

// AuthHandler handles sign in, registration and sign out
type AuthHandler struct {
	authService *auth.Service
	api         *backend.Client
	latch       *latch.Latch
	cookie      middleware.CookieConfig
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, api *backend.Client, l *latch.Latch, cookie middleware.CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		api:         api,
		latch:       l,
		cookie:      cookie,
		logger:      logger,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r.Context()); user != nil {
		redirect(w, r, user.Role.HomePath())
		return
	}

	role, err := model.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		role = model.RolePlayer
	}
	h.renderLogin(w, r, http.StatusOK, role, "", "")
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, model.RolePlayer, "", "Invalid form data")
		return
	}

	// The selector only styles the form; the account's role comes from the API
	role, err := model.ParseRole(r.FormValue("role"))
	if err != nil {
		role = model.RolePlayer
	}
	email := strings.TrimSpace(r.FormValue("email"))

	if email == "" {
		h.renderLogin(w, r, http.StatusOK, role, email, "Email is required")
		return
	}

	release, ok := middleware.AcquireForm(h.latch, r, "login")
	if !ok {
		h.renderLogin(w, r, http.StatusConflict, role, email, middleware.DuplicateSubmission)
		return
	}
	defer release()

	user, err := h.api.Login(r.Context(), email)
	if err != nil {
		h.logger.Info("login rejected", slog.String("error", err.Error()))
		h.renderLogin(w, r, http.StatusOK, role, email, backend.Message(err, loginFailed))
		return
	}

	if msg := h.startSession(w, r, user); msg != "" {
		h.renderLogin(w, r, http.StatusOK, role, email, msg)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Welcome back, "+user.FirstName()+"!")
	redirect(w, r, user.Role.HomePath())
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r.Context()); user != nil {
		redirect(w, r, user.Role.HomePath())
		return
	}

	form := pages.RegisterForm{Role: model.RolePlayer}
	h.renderRegister(w, r, http.StatusOK, form, "", nil)
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegister(w, r, http.StatusBadRequest, pages.RegisterForm{}, "Invalid form data", nil)
		return
	}

	form := pages.RegisterForm{
		Name:       strings.TrimSpace(r.FormValue("name")),
		Email:      strings.TrimSpace(r.FormValue("email")),
		Phone:      strings.TrimSpace(r.FormValue("phone")),
		Role:       model.Role(r.FormValue("role")),
		Bio:        strings.TrimSpace(r.FormValue("bio")),
		SkillLevel: r.FormValue("skill_level"),
		Avatar:     strings.TrimSpace(r.FormValue("avatar")),
	}

	fieldErrors := make(map[string]string)
	if form.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if form.Email == "" {
		fieldErrors["email"] = "Email is required"
	} else if !strings.Contains(form.Email, "@") {
		fieldErrors["email"] = "Enter a valid email address"
	}
	if form.Phone == "" {
		fieldErrors["phone"] = "Phone is required"
	}
	if !form.Role.Valid() {
		fieldErrors["role"] = "Choose how you will use SportFinder"
	}

	if len(fieldErrors) > 0 {
		h.renderRegister(w, r, http.StatusOK, form, "", fieldErrors)
		return
	}

	release, ok := middleware.AcquireForm(h.latch, r, "register")
	if !ok {
		h.renderRegister(w, r, http.StatusConflict, form, middleware.DuplicateSubmission, nil)
		return
	}
	defer release()

	user, err := h.api.Register(r.Context(), backend.RegisterRequest{
		Name:       form.Name,
		Email:      form.Email,
		Phone:      form.Phone,
		Role:       form.Role,
		Avatar:     form.Avatar,
		Bio:        form.Bio,
		SkillLevel: form.SkillLevel,
	})
	if err != nil {
		h.renderRegister(w, r, http.StatusOK, form, backend.Message(err, registerFailed), nil)
		return
	}

	if msg := h.startSession(w, r, user); msg != "" {
		h.renderRegister(w, r, http.StatusOK, form, msg, nil)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Account created! Welcome, "+user.FirstName()+"!")
	redirect(w, r, user.Role.HomePath())
}

// Logout clears this browser's Session Record. The API is not contacted.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.SignOut(r.Context(), middleware.GetSessionKey(r.Context())); err != nil {
		h.logger.Error("failed to clear session", slog.String("error", err.Error()))
	}
	middleware.ClearSessionCookie(w, h.cookie)
	middleware.SetFlash(w, middleware.FlashInfo, "You have been logged out")
	redirect(w, r, "/")
}

// startSession moves this browser onto a fresh slot holding user and reissues
// its cookie. It returns a message for the form on failure.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *model.User) string {
	_, token, err := h.authService.StartSession(r.Context(), middleware.GetSessionKey(r.Context()), user)
	switch {
	case err == nil:
		middleware.SetSessionCookie(w, h.cookie, token)
		return ""
	case errors.Is(err, model.ErrInvalidRole):
		h.logger.Warn("account has unsupported role", slog.String("user_id", user.ID))
		return unsupportedRole
	default:
		h.logger.Error("failed to save session", slog.String("error", err.Error()))
		return sessionFailed
	}
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, role model.Role, email, errorMsg string) {
	data := pages.LoginData{
		PageData:     pageData(r, "Sign In"),
		Roles:        pages.RoleOptions(),
		SelectedRole: role,
		Email:        email,
		Error:        errorMsg,
	}
	render(w, r, status, pages.Login(data))
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, status int, form pages.RegisterForm, errorMsg string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}
	data := pages.RegisterData{
		PageData:    pageData(r, "Create Account"),
		Roles:       pages.RoleOptions(),
		SkillLevels: model.SkillLevels,
		Form:        form,
		Error:       errorMsg,
		FieldErrors: fieldErrors,
	}
	render(w, r, status, pages.Register(data))
}
