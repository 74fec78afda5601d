package model

import "strings"

// SessionKey identifies one persisted session slot (a browser, or a CLI profile)
type SessionKey string

// UserStats holds the activity counters the backend attaches to a user
type UserStats struct {
	GamesPlayed    int     `json:"games_played"`
	GamesOrganized int     `json:"games_organized"`
	AttendanceRate float64 `json:"attendance_rate"`
	AverageRating  float64 `json:"average_rating"`
}

// User is the identity record returned by the backend and persisted as the Session Record
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	Phone        string     `json:"phone,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	SkillLevel   string     `json:"skill_level,omitempty"`
	BusinessName string     `json:"business_name,omitempty"`
	Stats        *UserStats `json:"stats,omitempty"`
}

// FirstName returns the first word of the user's name, for greetings
func (u *User) FirstName() string {
	fields := strings.Fields(u.Name)
	if len(fields) == 0 {
		return u.Name
	}
	return fields[0]
}

// Initial returns the upper-cased first letter of the user's name
func (u *User) Initial() string {
	for _, r := range u.Name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Validate checks the invariants a Session Record must satisfy before it is persisted
func (u *User) Validate() error {
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// SkillLevels are the self-assessed levels offered on profile forms
var SkillLevels = []string{"Beginner", "Intermediate", "Advanced"}
