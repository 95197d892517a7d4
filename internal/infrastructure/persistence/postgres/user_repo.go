package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// UserRepository implements user.Repository for PostgreSQL.
type UserRepository struct {
	conn *Connection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{conn: conn}
}

const userSelectColumns = `
	u.id, u.email, u.points, u.created_at,
	p.name, p.avatar_url
`

// Create persists a user with its profile in one transaction.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	err := r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (id, email, points, created_at) VALUES ($1, $2, $3, $4)`,
			u.ID.String(), u.Email, u.Points, u.CreatedAt,
		)
		if err != nil {
			return err
		}

		name, avatarURL := "", ""
		if u.Profile != nil {
			name, avatarURL = u.Profile.Name, u.Profile.AvatarURL
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO profiles (user_id, name, avatar_url) VALUES ($1, $2, $3)`,
			u.ID.String(), name, avatarURL,
		)
		return err
	})
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID returns the user with its profile.
func (r *UserRepository) GetByID(ctx context.Context, id user.UserID) (*user.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`

	row := r.conn.QueryRow(ctx, query, id.String())
	u, err := scanUser(row)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetByIDs returns users with profiles for the given ids. Missing ids are
// skipped.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []user.UserID) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = ANY($1)
	`

	rows, err := r.conn.Query(ctx, query, strIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Exists reports whether the user exists.
func (r *UserRepository) Exists(ctx context.Context, id user.UserID) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// GetPoints returns the user's points balance.
func (r *UserRepository) GetPoints(ctx context.Context, id user.UserID) (int, error) {
	var points int
	err := r.conn.QueryRow(ctx,
		`SELECT points FROM users WHERE id = $1`, id.String(),
	).Scan(&points)
	if err != nil {
		if IsNoRows(err) {
			return 0, shared.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get points: %w", err)
	}
	return points, nil
}

// scanUser scans a user row with its left-joined profile columns.
func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var id string
	var name, avatarURL *string

	if err := row.Scan(&id, &u.Email, &u.Points, &u.CreatedAt, &name, &avatarURL); err != nil {
		return nil, err
	}

	u.ID = user.UserID(id)
	if name != nil || avatarURL != nil {
		p := &user.Profile{UserID: u.ID}
		if name != nil {
			p.Name = *name
		}
		if avatarURL != nil {
			p.AvatarURL = *avatarURL
		}
		u.Profile = p
	}
	return &u, nil
}
