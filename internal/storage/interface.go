package storage

import (
	"context"

	"github.com/mcoot/sportfinder/internal/model"
)

// SessionStore persists the Session Record for a session slot.
//
// Save writes the record and its role marker together, Load returns
// model.ErrNoSession for anything absent or structurally invalid, and
// Clear removes both entries (clearing an empty slot is not an error).
type SessionStore interface {
	Save(ctx context.Context, key model.SessionKey, user *model.User) error
	Load(ctx context.Context, key model.SessionKey) (*model.User, error)
	Clear(ctx context.Context, key model.SessionKey) error
}
