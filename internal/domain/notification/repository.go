package notification

import (
	"context"

	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// Repository defines storage operations for notifications.
type Repository interface {
	// Create persists the notification.
	Create(ctx context.Context, n *Notification) error

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID user.UserID) ([]*Notification, error)

	// MarkRead sets the read flag on the user's notification.
	// Returns shared.ErrNotFound when the notification does not exist or
	// belongs to someone else. Ownership and existence are not
	// distinguished.
	MarkRead(ctx context.Context, userID user.UserID, id NotificationID) error
}

// Pusher delivers real-time events to connected clients. The transport
// (websocket gateway, socket server) lives outside this service; failures
// here are logged and dropped, never surfaced to the caller.
type Pusher interface {
	// Push sends the named event with payload to one recipient.
	Push(ctx context.Context, recipient user.UserID, event string, payload any) error
}
