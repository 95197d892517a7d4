// Package user contains the identity anchor of the platform: the User entity
// and its lifecycle-bound Profile. Authentication and session issuance live
// outside this service; here a user is the thing requests, conversations,
// notifications, and point awards reference.
package user

import (
	"strings"
	"time"

	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
)

// UserID represents a user identifier (UUID in string form).
type UserID string

// IsValid checks that the UserID is non-empty.
func (id UserID) IsValid() bool {
	return len(id) > 0
}

// String returns the string representation.
func (id UserID) String() string {
	return string(id)
}

// Profile holds the user-facing display data. A profile never outlives its
// user: the two are created together and the store cascades deletion.
type Profile struct {
	UserID    UserID `json:"userId"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// DisplayName returns the profile name, or the given fallback when the
// profile carries no name.
func (p *Profile) DisplayName(fallback string) string {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return fallback
	}
	return p.Name
}

// User is the aggregate root for identity within this service.
type User struct {
	ID        UserID    `json:"id"`
	Email     string    `json:"email"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"createdAt"`

	// Profile is loaded alongside the user. May be nil for reads that
	// do not need display data.
	Profile *Profile `json:"profile,omitempty"`
}

// NewUser creates a user with its profile. Points start at zero.
func NewUser(id UserID, email, name, avatarURL string) (*User, error) {
	if !id.IsValid() {
		return nil, shared.ErrInvalidUserID
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, shared.NewDomainError("user", "Create", shared.ErrEmptyValue, "email cannot be empty")
	}
	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     email,
		Points:    0,
		CreatedAt: now,
		Profile: &Profile{
			UserID:    id,
			Name:      strings.TrimSpace(name),
			AvatarURL: strings.TrimSpace(avatarURL),
		},
	}, nil
}

// AddPoints credits points to the in-memory entity. Persistence happens
// through the gamification service, which keeps the counter and the ledger
// in one transaction.
func (u *User) AddPoints(amount int) error {
	if amount <= 0 {
		return shared.ErrInvalidAwardAmount
	}
	u.Points += amount
	return nil
}
