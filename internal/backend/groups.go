package backend

import (
	"context"
	"encoding/json"

	"github.com/mcoot/sportfinder/internal/model"
)

// ListGroups returns the chat groups a user belongs to
func (c *Client) ListGroups(ctx context.Context, userID string) (*GroupList, error) {
	var result GroupList
	if err := c.get(ctx, pathf("/groups/%s", userID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListMessages returns a group's messages
func (c *Client) ListMessages(ctx context.Context, groupID string) (*MessageList, error) {
	var result MessageList
	if err := c.get(ctx, pathf("/groups/%s/messages", groupID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendMessage posts a message to a group
func (c *Client) SendMessage(ctx context.Context, groupID, userID, text string) (*model.Message, error) {
	body := struct {
		UserID  string `json:"user_id"`
		Message string `json:"message"`
	}{UserID: userID, Message: text}

	var raw json.RawMessage
	if err := c.post(ctx, pathf("/groups/%s/messages", groupID), body, &raw); err != nil {
		return nil, err
	}
	return decodeEnveloped[model.Message](raw, "message")
}
