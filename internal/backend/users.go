package backend

import (
	"context"
	"encoding/json"

	"github.com/mcoot/sportfinder/internal/model"
)

// Register creates a user account
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/users/register", req, &raw); err != nil {
		return nil, err
	}
	return decodeEnveloped[model.User](raw, "user")
}

// Login signs in by email. The API performs no credential challenge.
func (c *Client) Login(ctx context.Context, email string) (*model.User, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/users/login", map[string]string{"email": email}, &raw); err != nil {
		return nil, err
	}
	return decodeEnveloped[model.User](raw, "user")
}

// GetUser fetches a user record
func (c *Client) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var raw json.RawMessage
	if err := c.get(ctx, pathf("/users/%s", userID), nil, &raw); err != nil {
		return nil, err
	}
	return decodeEnveloped[model.User](raw, "user")
}

// UpdateProfile applies a partial profile update and returns the full updated record
func (c *Client) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*model.User, error) {
	var raw json.RawMessage
	if err := c.put(ctx, pathf("/users/%s/profile", userID), update, &raw); err != nil {
		return nil, err
	}
	return decodeEnveloped[model.User](raw, "user")
}
