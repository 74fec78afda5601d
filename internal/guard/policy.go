package guard

import (
	"fmt"

	"github.com/mcoot/sportfinder/internal/model"
)

// Mode selects how a role mismatch is handled
type Mode string

const (
	// ModeStrict redirects a signed-in user away from another role's screens
	ModeStrict Mode = "strict"
	// ModePermissive lets any signed-in user open any role's screens
	ModePermissive Mode = "permissive"
)

// ParseMode converts a config string into a Mode; empty means strict
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeStrict:
		return ModeStrict, nil
	case ModePermissive:
		return ModePermissive, nil
	default:
		return "", fmt.Errorf("invalid role policy %q: must be %q or %q", s, ModeStrict, ModePermissive)
	}
}

// Outcome is the result of checking an identity against a screen
type Outcome int

const (
	// OutcomeUnauthenticated means there is no Session Record; redirect to login
	OutcomeUnauthenticated Outcome = iota
	// OutcomeUnauthorized means the record's role does not own the screen
	OutcomeUnauthorized
	// OutcomeReady means the screen may render with the record as identity
	OutcomeReady
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnauthenticated:
		return "unauthenticated"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeReady:
		return "ready"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Policy is the single authorization check used by every guarded screen
type Policy struct {
	Mode Mode
}

// DefaultPolicy enforces roles
func DefaultPolicy() Policy {
	return Policy{Mode: ModeStrict}
}

// Check decides whether user may see a screen that requires the given role.
// An empty required role accepts any signed-in user.
func (p Policy) Check(user *model.User, required model.Role) Outcome {
	if user == nil || !user.Role.Valid() {
		return OutcomeUnauthenticated
	}
	if required == "" || p.Mode == ModePermissive {
		return OutcomeReady
	}
	if user.Role != required {
		return OutcomeUnauthorized
	}
	return OutcomeReady
}
