package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/sportfinder/internal/factory"
	"github.com/mcoot/sportfinder/internal/geo"
	"github.com/mcoot/sportfinder/internal/guard"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/testutil"
	"github.com/mcoot/sportfinder/internal/web"
	"github.com/mcoot/sportfinder/internal/web/middleware"
)

const sessionCookieName = "sportfinder_session"

// Accounts known to every fake backend
var (
	playerAna = model.User{
		ID:    "u1",
		Name:  "Ana Lopez",
		Email: "ana@example.com",
		Role:  model.RolePlayer,
		Stats: &model.UserStats{GamesPlayed: 12, GamesOrganized: 3},
	}
	ownerOmar = model.User{ID: "u2", Name: "Omar", Email: "omar@example.com", Role: model.RoleTurfOwner, Phone: "555-0102"}
	adminAda  = model.User{ID: "u3", Name: "Ada", Email: "ada@example.com", Role: model.RoleAdmin}
	coachBob  = model.User{ID: "u4", Name: "Bob", Email: "bob@example.com", Role: model.Role("coach")}
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	api     *fakeBackend
	cookies *cookieJar
}

type webOption func(*factory.TestOptions)

func withLocator(l geo.Locator) webOption {
	return func(o *factory.TestOptions) { o.Locator = l }
}

func withPolicy(mode guard.Mode) webOption {
	return func(o *factory.TestOptions) { o.Policy = guard.Policy{Mode: mode} }
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T, opts ...webOption) *webTestServer {
	t.Helper()

	api := newFakeBackend(t)
	for _, u := range []model.User{playerAna, ownerOmar, adminAda, coachBob} {
		api.addUser(u)
	}

	testOpts := factory.TestOptions{BackendURL: api.URL()}
	for _, opt := range opts {
		opt(&testOpts)
	}
	app := factory.NewTestApp(testOpts)

	router := web.NewRouter(web.RouterConfig{
		Logger:      testutil.NopLogger(),
		AuthService: app.AuthService,
		Backend:     app.Backend,
		Locator:     app.Locator,
		Policy:      app.Policy,
		Latch:       app.Latch,
		Cookie:      middleware.DefaultCookieConfig(),
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		api:     api,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return ts.request(http.MethodPost, path, form)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	mu      sync.Mutex
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session slot cookie is set
func (j *cookieJar) hasSession() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, ok := j.cookies[sessionCookieName]
	return ok
}

// sessionKey returns the slot the jar's cookie points at
func (ts *webTestServer) sessionKey() model.SessionKey {
	ts.t.Helper()
	ts.cookies.mu.Lock()
	c, ok := ts.cookies.cookies[sessionCookieName]
	ts.cookies.mu.Unlock()
	require.True(ts.t, ok, "Expected a session cookie")

	key, err := ts.app.AuthService.ParseToken(c.Value)
	require.NoError(ts.t, err)
	return key
}

// Helper functions for common test operations

// login signs in through the login form and checks the redirect
func (ts *webTestServer) login(u model.User) {
	ts.t.Helper()
	rr := ts.post("/login", url.Values{"email": {u.Email}, "role": {string(u.Role)}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after login")
	require.Equal(ts.t, u.Role.HomePath(), rr.Header().Get("Location"))
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}

// inputValue returns the value attribute of the first matching input
func inputValue(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).Attr("value")
	return v
}
