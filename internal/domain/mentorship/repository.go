package mentorship

import (
	"context"

	"github.com/mentorhub/mentorship-backend/internal/domain/conversation"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// Repository defines storage operations for mentorship requests.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// Create persists a new PENDING request.
	// Returns shared.ErrAlreadyExists when a request for the same
	// (mentee, mentor) pair exists in any status. The pair is unique for
	// the lifetime of the store, not per status.
	Create(ctx context.Context, r *Request) error

	// GetByID returns the request.
	// Returns shared.ErrNotFound if no such request exists.
	GetByID(ctx context.Context, id RequestID) (*Request, error)

	// GetByPair returns the request between mentee and mentor, regardless
	// of status. Returns shared.ErrNotFound when the pair never connected.
	GetByPair(ctx context.Context, menteeID, mentorID user.UserID) (*Request, error)

	// ListByMentee returns requests sent by the mentee, newest first.
	ListByMentee(ctx context.Context, menteeID user.UserID) ([]*Request, error)

	// ListByMentor returns requests addressed to the mentor, newest first.
	ListByMentor(ctx context.Context, mentorID user.UserID) ([]*Request, error)
}

// Responder applies mentor decisions atomically against the store. Both
// transitions are guarded by status='PENDING' at the row level, so two
// concurrent responses to the same request cannot both succeed.
type Responder interface {
	// Accept marks the request ACCEPTED and creates the conversation with
	// its participants in the same transaction. Either everything commits
	// or nothing does.
	// Returns shared.ErrStateTransition when the request is no longer
	// PENDING, shared.ErrNotFound when it does not exist.
	Accept(ctx context.Context, id RequestID, conv *conversation.Conversation) error

	// Reject marks the request REJECTED under the same PENDING guard.
	Reject(ctx context.Context, id RequestID) error
}
