package backend

import "github.com/mcoot/sportfinder/internal/model"

// RegisterRequest is the body of POST /users/register
type RegisterRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Role       model.Role `json:"role"`
	Avatar     string     `json:"avatar,omitempty"`
	Bio        string     `json:"bio,omitempty"`
	SkillLevel string     `json:"skill_level,omitempty"`
}

// TurfListing describes the venue a turf owner offers during onboarding
type TurfListing struct {
	Name         string         `json:"name"`
	Location     model.Location `json:"location"`
	Sports       []string       `json:"sports"`
	PricePerHour float64        `json:"price_per_hour"`
}

// ProfileUpdate is a partial profile; empty fields are not sent
type ProfileUpdate struct {
	Name         string       `json:"name,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Avatar       string       `json:"avatar,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	SkillLevel   string       `json:"skill_level,omitempty"`
	BusinessName string       `json:"business_name,omitempty"`
	Turf         *TurfListing `json:"turf,omitempty"`
}

// MergeInto returns a copy of current with the non-empty fields of p applied
func (p ProfileUpdate) MergeInto(current *model.User) *model.User {
	u := *current
	if p.Name != "" {
		u.Name = p.Name
	}
	if p.Phone != "" {
		u.Phone = p.Phone
	}
	if p.Avatar != "" {
		u.Avatar = p.Avatar
	}
	if p.Bio != "" {
		u.Bio = p.Bio
	}
	if p.SkillLevel != "" {
		u.SkillLevel = p.SkillLevel
	}
	if p.BusinessName != "" {
		u.BusinessName = p.BusinessName
	}
	return &u
}

// CreateGameRequest is the body of POST /posts/create
type CreateGameRequest struct {
	UserID        string         `json:"user_id"`
	Sport         string         `json:"sport"`
	PlayersNeeded int            `json:"players_needed"`
	Location      model.Location `json:"location"`
	Description   string         `json:"description"`
	Date          string         `json:"date"`
	Time          string         `json:"time"`
}

// NearbyQuery searches around a coordinate
type NearbyQuery struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius_km"`
	Sport    string  `json:"sport,omitempty"`
}

// BookingRequest is the body of POST /turfs/{id}/book
type BookingRequest struct {
	UserID   string `json:"user_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	GroupID  string `json:"group_id,omitempty"`
}

// GameList is the nearby game search result
type GameList struct {
	Count int          `json:"count"`
	Posts []model.Game `json:"posts"`
}

// GroupList is the set of chat groups a user belongs to
type GroupList struct {
	Count  int           `json:"count"`
	Groups []model.Group `json:"groups"`
}

// MessageList is the message history of a group
type MessageList struct {
	Count    int             `json:"count"`
	Messages []model.Message `json:"messages"`
}

// TurfList is the nearby turf search result
type TurfList struct {
	Count int          `json:"count"`
	Turfs []model.Turf `json:"turfs"`
}

// NotificationList is a user's notifications
type NotificationList struct {
	Count         int                  `json:"count"`
	UnreadCount   int                  `json:"unread_count"`
	Notifications []model.Notification `json:"notifications"`
}

// MembershipResult is returned by join and leave
type MembershipResult struct {
	Message string      `json:"message"`
	Post    *model.Game `json:"post,omitempty"`
	GroupID string      `json:"group_id,omitempty"`
}

// Confirmation is a bare acknowledgement
type Confirmation struct {
	Message string `json:"message"`
}

// BookingResult confirms a turf booking
type BookingResult struct {
	Message string         `json:"message"`
	Booking *model.Booking `json:"booking,omitempty"`
}
