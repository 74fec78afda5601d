package backend

import (
	"context"
	"net/url"
	"strconv"
)

// ListNotifications returns a user's notifications, optionally unread only
func (c *Client) ListNotifications(ctx context.Context, userID string, unreadOnly bool) (*NotificationList, error) {
	query := url.Values{"unread_only": {strconv.FormatBool(unreadOnly)}}

	var result NotificationList
	if err := c.get(ctx, pathf("/notifications/%s", userID), query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkNotificationRead marks one notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) (*Confirmation, error) {
	var result Confirmation
	if err := c.post(ctx, pathf("/notifications/%s/read", notificationID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkAllNotificationsRead marks every notification of a user as read
func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID string) (*Confirmation, error) {
	var result Confirmation
	if err := c.post(ctx, pathf("/notifications/%s/read-all", userID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
