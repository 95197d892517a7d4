// Package notification contains the in-app notification records the backend
// emits on mentorship lifecycle changes, and the push contract for real-time
// delivery. Reading and dismissing notifications is the client's business;
// the backend persists them and serves the list.
package notification

import (
	"time"

	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// NotificationID represents a notification identifier.
type NotificationID string

// IsValid checks that the NotificationID is non-empty.
func (id NotificationID) IsValid() bool {
	return len(id) > 0
}

// String returns the string representation.
func (id NotificationID) String() string {
	return string(id)
}

// Type classifies the notification for client routing.
type Type string

const (
	TypeNewMentorshipRequest      Type = "NEW_MENTORSHIP_REQUEST"
	TypeMentorshipRequestAccepted Type = "MENTORSHIP_REQUEST_ACCEPTED"
	TypeMentorshipRequestRejected Type = "MENTORSHIP_REQUEST_REJECTED"
)

// IsValid checks the type is one of the known values.
func (t Type) IsValid() bool {
	switch t {
	case TypeNewMentorshipRequest, TypeMentorshipRequestAccepted, TypeMentorshipRequestRejected:
		return true
	default:
		return false
	}
}

// Notification is a persisted in-app notification for one user.
type Notification struct {
	ID        NotificationID `json:"id"`
	UserID    user.UserID    `json:"userId"`
	Type      Type           `json:"type"`
	Message   string         `json:"message"`
	Link      string         `json:"link"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"createdAt"`
}

// New creates a notification addressed to userID.
func New(id NotificationID, userID user.UserID, typ Type, message, link string) (*Notification, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("notification", "Create", shared.ErrInvalidID, "invalid notification id")
	}
	if !userID.IsValid() {
		return nil, shared.ErrInvalidUserID
	}
	if !typ.IsValid() {
		return nil, shared.NewDomainError("notification", "Create", shared.ErrInvalidInput, "unknown notification type")
	}
	return &Notification{
		ID:        id,
		UserID:    userID,
		Type:      typ,
		Message:   message,
		Link:      link,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewRequestReceived notifies a mentor about an incoming request.
// menteeName may be empty when the mentee has no profile name.
func NewRequestReceived(id NotificationID, mentorID user.UserID, menteeName string) (*Notification, error) {
	from := menteeName
	if from == "" {
		from = "a new mentee"
	}
	return New(id, mentorID, TypeNewMentorshipRequest,
		"You have a new mentorship request from "+from+".", "/requests")
}

// NewRequestAccepted notifies a mentee that the mentor accepted.
func NewRequestAccepted(id NotificationID, menteeID user.UserID, mentorName string) (*Notification, error) {
	return New(id, menteeID, TypeMentorshipRequestAccepted,
		"Your request with "+mentorName+" has been accepted!", "/my-mentors")
}

// NewRequestRejected notifies a mentee that the mentor declined.
func NewRequestRejected(id NotificationID, menteeID user.UserID, mentorName string) (*Notification, error) {
	return New(id, menteeID, TypeMentorshipRequestRejected,
		"Your request with "+mentorName+" was declined.", "/my-requests")
}

// MarkRead flips the read flag. Idempotent.
func (n *Notification) MarkRead() {
	n.Read = true
}
