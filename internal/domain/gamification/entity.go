// Package gamification contains the points model: fixed awards for
// mentorship milestones, recorded in an additive ledger next to the user's
// running counter.
package gamification

import (
	"time"

	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// Award amounts for mentorship milestones.
const (
	PointsMentorAccept = 25 // mentor accepts a request
	PointsMenteeAccept = 10 // mentee whose request was accepted
)

// Award reasons, stored with each ledger entry.
const (
	ReasonMentorshipAccepted = "mentorship_accepted"
)

// AwardID represents a ledger entry identifier.
type AwardID string

// IsValid checks that the AwardID is non-empty.
func (id AwardID) IsValid() bool {
	return len(id) > 0
}

// String returns the string representation.
func (id AwardID) String() string {
	return string(id)
}

// Award is one ledger entry. Entries are append-only; the users.points
// counter is the materialized sum.
type Award struct {
	ID        AwardID     `json:"id"`
	UserID    user.UserID `json:"userId"`
	Amount    int         `json:"amount"`
	Reason    string      `json:"reason"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewAward creates a ledger entry. Amounts are strictly positive; points
// are never taken away.
func NewAward(id AwardID, userID user.UserID, amount int, reason string) (*Award, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("gamification", "Award", shared.ErrInvalidID, "invalid award id")
	}
	if !userID.IsValid() {
		return nil, shared.ErrInvalidUserID
	}
	if amount <= 0 {
		return nil, shared.ErrInvalidAwardAmount
	}
	return &Award{
		ID:        id,
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}, nil
}
