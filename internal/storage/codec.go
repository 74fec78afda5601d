package storage

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/sportfinder/internal/model"
)

// Encode serializes a record and returns it with its role marker.
// Records with a role outside the closed set are rejected.
func Encode(user *model.User) (record []byte, role string, err error) {
	if user == nil {
		return nil, "", fmt.Errorf("encode session: %w", model.ErrInvalidRole)
	}
	if err := user.Validate(); err != nil {
		return nil, "", fmt.Errorf("encode session: %w", err)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return nil, "", fmt.Errorf("encode session: %w", err)
	}
	return data, string(user.Role), nil
}

// Decode parses a persisted record and checks it against its role marker.
// Every malformed combination is reported as model.ErrNoSession.
func Decode(record []byte, role string) (*model.User, error) {
	if len(record) == 0 || role == "" {
		return nil, model.ErrNoSession
	}

	var user model.User
	if err := json.Unmarshal(record, &user); err != nil {
		return nil, model.ErrNoSession
	}
	if !user.Role.Valid() || string(user.Role) != role {
		return nil, model.ErrNoSession
	}
	return &user, nil
}
