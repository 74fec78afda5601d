package model

// Sports lists the sports offered in pickers, in display order
var Sports = []string{"Football", "Cricket", "Basketball", "Badminton", "Tennis", "Volleyball"}

// Location is a point with a free-text address
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Game status values reported by the backend
const (
	GameStatusOpen = "open"
	GameStatusFull = "full"
)

// Game is a pickup game post
type Game struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	UserName        string   `json:"user_name,omitempty"`
	Sport           string   `json:"sport"`
	PlayersNeeded   int      `json:"players_needed"`
	AcceptedPlayers []string `json:"accepted_players"`
	Location        Location `json:"location"`
	Description     string   `json:"description"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Status          string   `json:"status"`
	GroupID         string   `json:"group_id,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
}

// IsOrganizer reports whether userID created the game
func (g *Game) IsOrganizer(userID string) bool {
	return g.UserID != "" && g.UserID == userID
}

// HasPlayer reports whether userID has been accepted into the game
func (g *Game) HasPlayer(userID string) bool {
	for _, id := range g.AcceptedPlayers {
		if id == userID {
			return true
		}
	}
	return false
}

// PlayerCount is the number of accepted players
func (g *Game) PlayerCount() int {
	return len(g.AcceptedPlayers)
}
