package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mentorhub/mentorship-backend/internal/domain/gamification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// GamificationRepository implements gamification.Repository for PostgreSQL.
type GamificationRepository struct {
	conn *Connection
}

// NewGamificationRepository creates a new GamificationRepository.
func NewGamificationRepository(conn *Connection) *GamificationRepository {
	return &GamificationRepository{conn: conn}
}

// RecordAward inserts the ledger entry and increments the user counter in
// one transaction. The RETURNING clause hands back the new total without a
// second round trip.
func (r *GamificationRepository) RecordAward(ctx context.Context, a *gamification.Award) (int, error) {
	var newTotal int
	err := r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO point_awards (id, user_id, amount, reason, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			a.ID.String(), a.UserID.String(), a.Amount, a.Reason, a.CreatedAt,
		)
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx,
			`UPDATE users SET points = points + $1 WHERE id = $2 RETURNING points`,
			a.Amount, a.UserID.String(),
		).Scan(&newTotal)
		if IsNoRows(err) {
			return shared.ErrUserNotFound
		}
		return err
	})
	if err != nil {
		if IsForeignKeyViolation(err) {
			return 0, shared.ErrUserNotFound
		}
		if shared.IsNotFound(err) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to record award: %w", err)
	}
	return newTotal, nil
}

// ListByUser returns the user's ledger entries, newest first.
func (r *GamificationRepository) ListByUser(ctx context.Context, userID user.UserID) ([]*gamification.Award, error) {
	query := `
		SELECT id, user_id, amount, reason, created_at
		FROM point_awards
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.conn.Query(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list awards: %w", err)
	}
	defer rows.Close()

	awards := []*gamification.Award{}
	for rows.Next() {
		var a gamification.Award
		var id, uid string
		if err := rows.Scan(&id, &uid, &a.Amount, &a.Reason, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan award: %w", err)
		}
		a.ID = gamification.AwardID(id)
		a.UserID = user.UserID(uid)
		awards = append(awards, &a)
	}
	return awards, rows.Err()
}
