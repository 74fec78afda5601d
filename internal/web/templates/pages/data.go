package pages

import (
	"github.com/a-h/templ"

	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/web/templates/layout"
)

// LocationNotice is shown when geolocation fails; the form stays usable
const LocationNotice = "Could not get your location. Please enter manually."

// HomeData is the landing page
type HomeData struct {
	layout.PageData
	Sports []string
}

// Home renders the landing page
func Home(data HomeData) templ.Component { return page("home", data) }

// LoginData is the sign-in form
type LoginData struct {
	layout.PageData
	Roles        []RoleOption
	SelectedRole model.Role
	Email        string
	Error        string
}

// Login renders the sign-in form
func Login(data LoginData) templ.Component { return page("login", data) }

// RegisterForm holds the values entered on the registration form
type RegisterForm struct {
	Name       string
	Email      string
	Phone      string
	Role       model.Role
	Bio        string
	SkillLevel string
	Avatar     string
}

// RegisterData is the registration form
type RegisterData struct {
	layout.PageData
	Roles       []RoleOption
	SkillLevels []string
	Form        RegisterForm
	Error       string
	FieldErrors map[string]string
}

// Register renders the registration form
func Register(data RegisterData) templ.Component { return page("register", data) }

// UnauthorizedData is the wrong-role page
type UnauthorizedData struct {
	layout.PageData
}

// Unauthorized renders the wrong-role page
func Unauthorized(data UnauthorizedData) templ.Component { return page("unauthorized", data) }

// MessageData is a standalone notice, used for missing resources and rejected actions
type MessageData struct {
	layout.PageData
	Heading string
	Message string
	Back    string
}

// Message renders a standalone notice
func Message(data MessageData) templ.Component { return page("message", data) }

// StatsView is the display form of a user's stats with defaults applied
type StatsView struct {
	GamesPlayed    int
	GamesOrganized int
	Attendance     string
	Rating         string
}

// QuickAction is a dashboard shortcut
type QuickAction struct {
	Title       string
	Description string
	Href        string
}

// PlayerDashboardData is the player home
type PlayerDashboardData struct {
	layout.PageData
	Stats       StatsView
	Actions     []QuickAction
	UnreadCount int
}

// PlayerDashboard renders the player home
func PlayerDashboard(data PlayerDashboardData) templ.Component {
	return page("player_dashboard", data)
}

// SearchForm holds nearby search parameters as entered
type SearchForm struct {
	Lat    string
	Lng    string
	Radius string
	Sport  string
}

// DiscoverData is the nearby game search
type DiscoverData struct {
	layout.PageData
	Query          SearchForm
	Sports         []string
	Games          []model.Game
	Searched       bool
	LocationNotice string
	Error          string
}

// Discover renders the nearby game search
func Discover(data DiscoverData) templ.Component { return page("discover", data) }

// GameForm holds the values entered on the create game form
type GameForm struct {
	Sport         string
	PlayersNeeded string
	Address       string
	Lat           string
	Lng           string
	Description   string
	Date          string
	Time          string
}

// CreateGameData is the create game form
type CreateGameData struct {
	layout.PageData
	Form           GameForm
	Sports         []string
	Error          string
	FieldErrors    map[string]string
	LocationNotice string
}

// CreateGame renders the create game form
func CreateGame(data CreateGameData) templ.Component { return page("create_game", data) }

// MyGamesData lists the groups of games the player belongs to
type MyGamesData struct {
	layout.PageData
	Groups []model.Group
	Error  string
}

// MyGames renders the player's games
func MyGames(data MyGamesData) templ.Component { return page("my_games", data) }

// GameDetailData is a single game with its actions
type GameDetailData struct {
	layout.PageData
	Game        *model.Game
	IsOrganizer bool
	HasJoined   bool
}

// GameDetail renders a single game
func GameDetail(data GameDetailData) templ.Component { return page("game_detail", data) }

// GroupChatData is a group's message history and composer
type GroupChatData struct {
	layout.PageData
	GroupID  string
	Messages []model.Message
	Draft    string
	Error    string
}

// GroupChat renders a group chat
func GroupChat(data GroupChatData) templ.Component { return page("group_chat", data) }

// TurfsData is the nearby turf search
type TurfsData struct {
	layout.PageData
	Query          SearchForm
	Sports         []string
	Turfs          []model.Turf
	Searched       bool
	LocationNotice string
	Error          string
}

// Turfs renders the nearby turf search
func Turfs(data TurfsData) templ.Component { return page("turfs", data) }

// BookingForm holds the values entered on the booking form
type BookingForm struct {
	Date     string
	TimeSlot string
	GroupID  string
}

// TurfDetailData is a single turf with its booking form
type TurfDetailData struct {
	layout.PageData
	Turf        *model.Turf
	Form        BookingForm
	Error       string
	FieldErrors map[string]string
}

// TurfDetail renders a single turf
func TurfDetail(data TurfDetailData) templ.Component { return page("turf_detail", data) }

// AdminDashboardData is the admin home
type AdminDashboardData struct {
	layout.PageData
	UnreadCount int
}

// AdminDashboard renders the admin home
func AdminDashboard(data AdminDashboardData) templ.Component { return page("admin_dashboard", data) }

// OwnerDashboardData is the turf owner home
type OwnerDashboardData struct {
	layout.PageData
	Onboarded   bool
	UnreadCount int
}

// OwnerDashboard renders the turf owner home
func OwnerDashboard(data OwnerDashboardData) templ.Component { return page("owner_dashboard", data) }

// TurfForm holds the values entered on the turf onboarding form
type TurfForm struct {
	BusinessName string
	Phone        string
	TurfName     string
	Address      string
	Lat          string
	Lng          string
	Sports       []string
	PricePerHour string
}

// CreateTurfData is the turf owner onboarding form
type CreateTurfData struct {
	layout.PageData
	Form           TurfForm
	Sports         []string
	Error          string
	FieldErrors    map[string]string
	LocationNotice string
}

// CreateTurf renders the onboarding form
func CreateTurf(data CreateTurfData) templ.Component { return page("create_turf", data) }

// NotificationsData is the notification list
type NotificationsData struct {
	layout.PageData
	Notifications []model.Notification
	UnreadCount   int
	UnreadOnly    bool
	Error         string
}

// Notifications renders the notification list
func Notifications(data NotificationsData) templ.Component { return page("notifications", data) }

// ProfileForm holds the editable profile fields
type ProfileForm struct {
	Name       string
	Bio        string
	Avatar     string
	SkillLevel string
}

// ProfileData is the profile editor
type ProfileData struct {
	layout.PageData
	Form        ProfileForm
	SkillLevels []string
	Error       string
}

// Profile renders the profile editor
func Profile(data ProfileData) templ.Component { return page("profile", data) }
