package gamification

import (
	"context"

	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// Repository persists ledger entries and keeps the user counter in step.
type Repository interface {
	// RecordAward inserts the ledger entry and increments the user's
	// points counter in one transaction. The two never diverge.
	RecordAward(ctx context.Context, a *Award) (newTotal int, err error)

	// ListByUser returns the user's ledger entries, newest first.
	ListByUser(ctx context.Context, userID user.UserID) ([]*Award, error)
}

// Service awards points for domain milestones. The command layer calls it
// after commits; failures are logged by callers, never propagated to the
// user-facing operation.
type Service interface {
	// AwardPoints credits amount to userID with the given reason.
	AwardPoints(ctx context.Context, userID user.UserID, amount int, reason string) (newTotal int, err error)
}
