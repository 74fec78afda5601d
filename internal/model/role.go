package model

import "fmt"

// Role determines which screen subtree is intended for a user
type Role string

const (
	RolePlayer    Role = "player"
	RoleTurfOwner Role = "turf_owner"
	RoleAdmin     Role = "admin"
)

// Roles returns every valid role, in selector order
func Roles() []Role {
	return []Role{RolePlayer, RoleTurfOwner, RoleAdmin}
}

// ParseRole converts a raw string into a Role, rejecting anything outside the closed set
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleTurfOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// HomePath is the dashboard a user of this role lands on after signing in
func (r Role) HomePath() string {
	switch r {
	case RolePlayer:
		return "/player/dashboard"
	case RoleTurfOwner:
		return "/turf-owner/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/"
	}
}

// Title returns a human-readable label for the role
func (r Role) Title() string {
	switch r {
	case RolePlayer:
		return "Player"
	case RoleTurfOwner:
		return "Turf Owner"
	case RoleAdmin:
		return "Admin"
	default:
		return string(r)
	}
}

func (r Role) String() string {
	return string(r)
}
