package user

import "context"

// Repository defines storage operations for users and their profiles.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// Create persists a user together with its profile.
	// Returns shared.ErrAlreadyExists if the email is taken.
	Create(ctx context.Context, u *User) error

	// GetByID returns the user with its profile.
	// Returns shared.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id UserID) (*User, error)

	// GetByIDs returns users (with profiles) for the given ids. Missing ids
	// are skipped, not errors; callers batch-annotate lists with this.
	GetByIDs(ctx context.Context, ids []UserID) ([]*User, error)

	// Exists reports whether a user with the given id exists.
	Exists(ctx context.Context, id UserID) (bool, error)

	// GetPoints returns the current points balance.
	// Returns shared.ErrNotFound if no such user exists.
	GetPoints(ctx context.Context, id UserID) (int, error)
}
