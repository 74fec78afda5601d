package response

import (
	"github.com/mcoot/sportfinder/internal/model"
)

// Health is the body of the health check
type Health struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// Session describes the Session Record held by the caller's slot
type Session struct {
	User     User   `json:"user"`
	HomePath string `json:"home_path"`
}

// User represents a Session Record in API responses
type User struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Role         model.Role       `json:"role"`
	Phone        string           `json:"phone,omitempty"`
	Avatar       string           `json:"avatar,omitempty"`
	Bio          string           `json:"bio,omitempty"`
	SkillLevel   string           `json:"skill_level,omitempty"`
	BusinessName string           `json:"business_name,omitempty"`
	Stats        *model.UserStats `json:"stats,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Phone:        u.Phone,
		Avatar:       u.Avatar,
		Bio:          u.Bio,
		SkillLevel:   u.SkillLevel,
		BusinessName: u.BusinessName,
		Stats:        u.Stats,
	}
}

// SessionFromModel builds the session body for a signed-in user
func SessionFromModel(u *model.User) Session {
	return Session{
		User:     UserFromModel(u),
		HomePath: u.Role.HomePath(),
	}
}
