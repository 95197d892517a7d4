package command

import (
	"context"

	"github.com/mentorhub/mentorship-backend/internal/domain/notification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// MarkNotificationReadCommand flips the read flag on one notification.
type MarkNotificationReadCommand struct {
	UserID         string
	NotificationID string
}

// Validate validates the command without touching the store.
func (c MarkNotificationReadCommand) Validate() error {
	if c.UserID == "" {
		return shared.NewDomainError("notification", "MarkRead", shared.ErrInvalidInput, "user id is required")
	}
	if c.NotificationID == "" {
		return shared.NewDomainError("notification", "MarkRead", shared.ErrInvalidInput, "notification id is required")
	}
	return nil
}

// MarkNotificationReadHandler handles MarkNotificationReadCommand.
type MarkNotificationReadHandler struct {
	notificationRepo notification.Repository
}

// NewMarkNotificationReadHandler creates a new MarkNotificationReadHandler.
func NewMarkNotificationReadHandler(notificationRepo notification.Repository) *MarkNotificationReadHandler {
	return &MarkNotificationReadHandler{notificationRepo: notificationRepo}
}

// Handle executes the command. Ownership and existence collapse into the
// same not-found outcome inside the repository.
func (h *MarkNotificationReadHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.notificationRepo.MarkRead(ctx,
		user.UserID(cmd.UserID), notification.NotificationID(cmd.NotificationID))
}
