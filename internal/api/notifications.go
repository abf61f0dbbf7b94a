package api

import (
	"context"
	"fmt"

	"sisexpo/pkg/models"
)

// NotificationService covers the notification feed endpoints.
type NotificationService struct {
	t *Transport
}

// ListNotificationsOptions filters the feed. Nil fields are omitted from the
// query entirely, so "no filter" and "filter on empty value" stay distinct.
type ListNotificationsOptions struct {
	Read *bool   // backend query param "lue"
	Type *string // notification type
	Page
}

// List returns one page of the feed plus the unread aggregate.
func (s *NotificationService) List(ctx context.Context, opts ListNotificationsOptions) Result[models.NotificationList] {
	q := NewQuery()
	q.Bool("lue", opts.Read)
	q.String("type", opts.Type)
	opts.apply(q)
	return Decode[models.NotificationList](s.t.Get(ctx, "/notifications", q))
}

// UnreadCount returns the server-side unread aggregate.
func (s *NotificationService) UnreadCount(ctx context.Context) Result[models.UnreadCount] {
	return Decode[models.UnreadCount](s.t.Get(ctx, "/notifications/non-lues", nil))
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) Result[models.Notification] {
	return Decode[models.Notification](s.t.Patch(ctx, fmt.Sprintf("/notifications/%s/lue", id), nil))
}

// MarkAllRead flags every notification as read. Idempotent: a second call
// is a no-op with the same final state.
func (s *NotificationService) MarkAllRead(ctx context.Context) Result[models.UnreadCount] {
	return Decode[models.UnreadCount](s.t.Patch(ctx, "/notifications/tout-lues", nil))
}

// Delete removes one notification.
func (s *NotificationService) Delete(ctx context.Context, id string) Result[struct{}] {
	return Decode[struct{}](s.t.Delete(ctx, fmt.Sprintf("/notifications/%s", id)))
}

// CreateNotificationRequest is the admin broadcast body.
type CreateNotificationRequest struct {
	UserID  string `json:"userId,omitempty"` // empty broadcasts to all users
	Type    string `json:"type"`
	Title   string `json:"titre"`
	Message string `json:"message"`
}

// Create sends a notification (admin only).
func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) Result[models.Notification] {
	return Decode[models.Notification](s.t.Post(ctx, "/notifications", req))
}
