// Package mentorship contains the mentorship request aggregate: a mentee's
// offer to a mentor that moves through a small, strictly one-way state
// machine. A (mentee, mentor) pair gets exactly one request, ever.
package mentorship

import (
	"time"

	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// RequestID represents a mentorship request identifier.
type RequestID string

// IsValid checks that the RequestID is non-empty.
func (id RequestID) IsValid() bool {
	return len(id) > 0
}

// String returns the string representation.
func (id RequestID) String() string {
	return string(id)
}

// RequestStatus is the lifecycle state of a mentorship request.
type RequestStatus string

const (
	// StatusPending - awaiting the mentor's decision. The only state that
	// admits a transition.
	StatusPending RequestStatus = "PENDING"

	// StatusAccepted - terminal. Acceptance pairs the two users in a
	// conversation.
	StatusAccepted RequestStatus = "ACCEPTED"

	// StatusRejected - terminal. No conversation, no points.
	StatusRejected RequestStatus = "REJECTED"
)

// IsValid checks the status is one of the known values.
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal returns true when no further transition is allowed.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// IsResponse checks the status is a valid mentor response. PENDING is never
// a response target.
func (s RequestStatus) IsResponse() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Request is a mentee's mentorship request to a mentor.
type Request struct {
	ID          RequestID     `json:"id"`
	MenteeID    user.UserID   `json:"menteeId"`
	MentorID    user.UserID   `json:"mentorId"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	RespondedAt *time.Time    `json:"respondedAt,omitempty"`

	// Counterpart profiles, attached by queries. Nil on bare loads.
	Mentee *user.User `json:"mentee,omitempty"`
	Mentor *user.User `json:"mentor,omitempty"`
}

// NewRequest creates a PENDING request from mentee to mentor.
func NewRequest(id RequestID, menteeID, mentorID user.UserID) (*Request, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("mentorship", "Create", shared.ErrInvalidID, "invalid request id")
	}
	if !menteeID.IsValid() || !mentorID.IsValid() {
		return nil, shared.ErrInvalidUserID
	}
	if menteeID == mentorID {
		return nil, shared.ErrSelfRequest
	}
	return &Request{
		ID:        id,
		MenteeID:  menteeID,
		MentorID:  mentorID,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Respond applies the mentor's decision. Only PENDING requests transition;
// terminal states reject any further change.
func (r *Request) Respond(status RequestStatus) error {
	if !status.IsResponse() {
		return shared.ErrInvalidStatus
	}
	if r.Status != StatusPending {
		return shared.ErrRequestNotPending
	}
	now := time.Now().UTC()
	r.Status = status
	r.RespondedAt = &now
	return nil
}

// IsMentor reports whether the given user is the addressed mentor.
func (r *Request) IsMentor(id user.UserID) bool {
	return r.MentorID == id
}

// IsMentee reports whether the given user is the requesting mentee.
func (r *Request) IsMentee(id user.UserID) bool {
	return r.MenteeID == id
}
