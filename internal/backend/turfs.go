package backend

import (
	"context"
	"encoding/json"

	"github.com/mcoot/sportfinder/internal/model"
)

// SearchTurfs lists turfs near a coordinate
func (c *Client) SearchTurfs(ctx context.Context, q NearbyQuery) (*TurfList, error) {
	var result TurfList
	if err := c.post(ctx, "/turfs/search/nearby", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTurf fetches one turf
func (c *Client) GetTurf(ctx context.Context, turfID string) (*model.Turf, error) {
	var raw json.RawMessage
	if err := c.get(ctx, pathf("/turfs/%s", turfID), nil, &raw); err != nil {
		return nil, err
	}
	return decodeEnveloped[model.Turf](raw, "turf")
}

// BookTurf reserves a time slot
func (c *Client) BookTurf(ctx context.Context, turfID string, req BookingRequest) (*BookingResult, error) {
	var result BookingResult
	if err := c.post(ctx, pathf("/turfs/%s/book", turfID), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
