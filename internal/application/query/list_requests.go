package query

import (
	"context"
	"fmt"

	"github.com/mentorhub/mentorship-backend/internal/domain/mentorship"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// ListSentRequestsQuery lists requests the caller sent as a mentee.
type ListSentRequestsQuery struct {
	MenteeID string
}

// ListReceivedRequestsQuery lists requests addressed to the caller as a mentor.
type ListReceivedRequestsQuery struct {
	MentorID string
}

// ListRequestsResult carries requests newest first, each with the
// counterpart's profile attached.
type ListRequestsResult struct {
	Requests []*mentorship.Request
}

// ListRequestsHandler handles both request list queries.
type ListRequestsHandler struct {
	mentorshipRepo mentorship.Repository
	userRepo       user.Repository
}

// NewListRequestsHandler creates a new ListRequestsHandler.
func NewListRequestsHandler(mentorshipRepo mentorship.Repository, userRepo user.Repository) *ListRequestsHandler {
	return &ListRequestsHandler{mentorshipRepo: mentorshipRepo, userRepo: userRepo}
}

// HandleSent returns the mentee's outgoing requests with mentor profiles.
func (h *ListRequestsHandler) HandleSent(ctx context.Context, q ListSentRequestsQuery) (*ListRequestsResult, error) {
	if q.MenteeID == "" {
		return nil, shared.NewDomainError("mentorship", "ListSent", shared.ErrInvalidInput, "mentee id is required")
	}

	requests, err := h.mentorshipRepo.ListByMentee(ctx, user.UserID(q.MenteeID))
	if err != nil {
		return nil, fmt.Errorf("list_sent_requests: %w", err)
	}

	if err := h.attachCounterparts(ctx, requests, false); err != nil {
		return nil, err
	}
	return &ListRequestsResult{Requests: requests}, nil
}

// HandleReceived returns the mentor's incoming requests with mentee profiles.
func (h *ListRequestsHandler) HandleReceived(ctx context.Context, q ListReceivedRequestsQuery) (*ListRequestsResult, error) {
	if q.MentorID == "" {
		return nil, shared.NewDomainError("mentorship", "ListReceived", shared.ErrInvalidInput, "mentor id is required")
	}

	requests, err := h.mentorshipRepo.ListByMentor(ctx, user.UserID(q.MentorID))
	if err != nil {
		return nil, fmt.Errorf("list_received_requests: %w", err)
	}

	if err := h.attachCounterparts(ctx, requests, true); err != nil {
		return nil, err
	}
	return &ListRequestsResult{Requests: requests}, nil
}

// attachCounterparts batch-loads the users on the other side of each
// request. mentees=true attaches mentee profiles, otherwise mentor profiles.
func (h *ListRequestsHandler) attachCounterparts(ctx context.Context, requests []*mentorship.Request, mentees bool) error {
	if len(requests) == 0 {
		return nil
	}

	idSet := make(map[user.UserID]struct{}, len(requests))
	for _, req := range requests {
		if mentees {
			idSet[req.MenteeID] = struct{}{}
		} else {
			idSet[req.MentorID] = struct{}{}
		}
	}
	ids := make([]user.UserID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := h.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("list_requests: failed to load counterpart profiles: %w", err)
	}

	byID := make(map[user.UserID]*user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, req := range requests {
		if mentees {
			req.Mentee = byID[req.MenteeID]
		} else {
			req.Mentor = byID[req.MentorID]
		}
	}
	return nil
}
