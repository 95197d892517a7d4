package query

import (
	"context"
	"fmt"

	"github.com/mentorhub/mentorship-backend/internal/domain/notification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// ListNotificationsQuery lists the caller's notifications.
type ListNotificationsQuery struct {
	UserID string
}

// ListNotificationsResult carries notifications newest first.
type ListNotificationsResult struct {
	Notifications []*notification.Notification
}

// ListNotificationsHandler handles ListNotificationsQuery.
type ListNotificationsHandler struct {
	notificationRepo notification.Repository
}

// NewListNotificationsHandler creates a new ListNotificationsHandler.
func NewListNotificationsHandler(notificationRepo notification.Repository) *ListNotificationsHandler {
	return &ListNotificationsHandler{notificationRepo: notificationRepo}
}

// Handle executes the query.
func (h *ListNotificationsHandler) Handle(ctx context.Context, q ListNotificationsQuery) (*ListNotificationsResult, error) {
	if q.UserID == "" {
		return nil, shared.NewDomainError("notification", "List", shared.ErrInvalidInput, "user id is required")
	}

	notifications, err := h.notificationRepo.ListByUser(ctx, user.UserID(q.UserID))
	if err != nil {
		return nil, fmt.Errorf("list_notifications: %w", err)
	}
	return &ListNotificationsResult{Notifications: notifications}, nil
}
