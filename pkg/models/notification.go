package models

import "time"

// Notification types emitted by the backend.
const (
	NotificationRegistration = "INSCRIPTION"
	NotificationProgram      = "PROGRAMME"
	NotificationMedia        = "MEDIA"
	NotificationSystem       = "SYSTEME"
)

// Notification is one entry of a user's notification feed.
// The backend field for the read flag is French ("lue").
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"titre"`
	Message   string    `json:"message"`
	Read      bool      `json:"lue"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationList is the paginated feed plus its unread aggregate.
type NotificationList struct {
	Items       []Notification `json:"notifications"`
	Meta        Pagination     `json:"pagination"`
	UnreadCount int            `json:"nonLues"`
}

// UnreadCount is the standalone unread aggregate payload.
type UnreadCount struct {
	Count int `json:"count"`
}

// NotificationEvent is a live event pushed over the notification stream.
type NotificationEvent struct {
	Type         string        `json:"type"` // "notification:new", "notification:read", "ping"
	Notification *Notification `json:"notification,omitempty"`
}
