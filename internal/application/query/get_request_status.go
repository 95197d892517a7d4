// Package query contains read operations (CQRS - Queries). Queries never
// mutate state; they load rows and annotate them with profiles through
// batched user lookups.
package query

import (
	"context"
	"fmt"

	"github.com/mentorhub/mentorship-backend/internal/domain/mentorship"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// GetRequestStatusQuery asks what the request between a mentee and a mentor
// currently looks like.
type GetRequestStatusQuery struct {
	MenteeID string
	MentorID string
}

// Validate validates the query.
func (q GetRequestStatusQuery) Validate() error {
	if q.MenteeID == "" || q.MentorID == "" {
		return shared.NewDomainError("mentorship", "GetStatus", shared.ErrInvalidInput, "mentee and mentor ids are required")
	}
	return nil
}

// GetRequestStatusResult carries the status, or nil when the pair has no
// request. Absence is a successful answer, not an error.
type GetRequestStatusResult struct {
	Status *mentorship.RequestStatus
}

// GetRequestStatusHandler handles GetRequestStatusQuery.
type GetRequestStatusHandler struct {
	mentorshipRepo mentorship.Repository
}

// NewGetRequestStatusHandler creates a new GetRequestStatusHandler.
func NewGetRequestStatusHandler(mentorshipRepo mentorship.Repository) *GetRequestStatusHandler {
	return &GetRequestStatusHandler{mentorshipRepo: mentorshipRepo}
}

// Handle executes the query.
func (h *GetRequestStatusHandler) Handle(ctx context.Context, q GetRequestStatusQuery) (*GetRequestStatusResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	req, err := h.mentorshipRepo.GetByPair(ctx, user.UserID(q.MenteeID), user.UserID(q.MentorID))
	if err != nil {
		if shared.IsNotFound(err) {
			return &GetRequestStatusResult{Status: nil}, nil
		}
		return nil, fmt.Errorf("get_request_status: %w", err)
	}

	status := req.Status
	return &GetRequestStatusResult{Status: &status}, nil
}
