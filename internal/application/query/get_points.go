package query

import (
	"context"
	"fmt"

	"github.com/mentorhub/mentorship-backend/internal/domain/gamification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// GetPointsQuery asks for a user's points balance and award history.
type GetPointsQuery struct {
	UserID string
}

// GetPointsResult carries the running balance and the ledger behind it.
type GetPointsResult struct {
	Points int
	Awards []*gamification.Award
}

// GetPointsHandler handles GetPointsQuery.
type GetPointsHandler struct {
	userRepo         user.Repository
	gamificationRepo gamification.Repository
}

// NewGetPointsHandler creates a new GetPointsHandler.
func NewGetPointsHandler(userRepo user.Repository, gamificationRepo gamification.Repository) *GetPointsHandler {
	return &GetPointsHandler{userRepo: userRepo, gamificationRepo: gamificationRepo}
}

// Handle executes the query.
func (h *GetPointsHandler) Handle(ctx context.Context, q GetPointsQuery) (*GetPointsResult, error) {
	if q.UserID == "" {
		return nil, shared.NewDomainError("gamification", "GetPoints", shared.ErrInvalidInput, "user id is required")
	}

	uid := user.UserID(q.UserID)
	points, err := h.userRepo.GetPoints(ctx, uid)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get_points: %w", err)
	}

	awards, err := h.gamificationRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("get_points: failed to load ledger: %w", err)
	}

	return &GetPointsResult{Points: points, Awards: awards}, nil
}
