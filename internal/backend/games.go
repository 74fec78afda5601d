package backend

import (
	"context"
	"encoding/json"

	"github.com/mcoot/sportfinder/internal/model"
)

// CreateGame posts a new pickup game
func (c *Client) CreateGame(ctx context.Context, req CreateGameRequest) (*model.Game, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/posts/create", req, &raw); err != nil {
		return nil, err
	}
	return decodeEnveloped[model.Game](raw, "post")
}

// SearchGames lists games near a coordinate, as filtered and sorted by the API
func (c *Client) SearchGames(ctx context.Context, q NearbyQuery) (*GameList, error) {
	var result GameList
	if err := c.post(ctx, "/posts/nearby", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetGame fetches one game
func (c *Client) GetGame(ctx context.Context, postID string) (*model.Game, error) {
	var raw json.RawMessage
	if err := c.get(ctx, pathf("/posts/%s", postID), nil, &raw); err != nil {
		return nil, err
	}
	return decodeEnveloped[model.Game](raw, "post")
}

// JoinGame adds the user to a game
func (c *Client) JoinGame(ctx context.Context, postID, userID string) (*MembershipResult, error) {
	var result MembershipResult
	if err := c.post(ctx, pathf("/posts/%s/join", postID), userRef{UserID: userID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LeaveGame removes the user from a game
func (c *Client) LeaveGame(ctx context.Context, postID, userID string) (*MembershipResult, error) {
	var result MembershipResult
	if err := c.post(ctx, pathf("/posts/%s/leave", postID), userRef{UserID: userID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteGame deletes a game; the API only honours the organiser
func (c *Client) DeleteGame(ctx context.Context, postID, userID string) (*Confirmation, error) {
	var result Confirmation
	if err := c.delete(ctx, pathf("/posts/%s/delete", postID), userRef{UserID: userID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type userRef struct {
	UserID string `json:"user_id"`
}
