package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mentorhub/mentorship-backend/internal/domain/conversation"
	"github.com/mentorhub/mentorship-backend/internal/domain/mentorship"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// MentorshipRepository implements mentorship.Repository and
// mentorship.Responder for PostgreSQL.
type MentorshipRepository struct {
	conn *Connection
}

// NewMentorshipRepository creates a new MentorshipRepository.
func NewMentorshipRepository(conn *Connection) *MentorshipRepository {
	return &MentorshipRepository{conn: conn}
}

const requestSelectColumns = `id, mentee_id, mentor_id, status, created_at, responded_at`

// Create persists a new PENDING request. The UNIQUE(mentee_id, mentor_id)
// constraint enforces lifetime pair uniqueness at the store level, so a race
// between two identical creates resolves to one row and one conflict.
func (r *MentorshipRepository) Create(ctx context.Context, req *mentorship.Request) error {
	query := `
		INSERT INTO mentorship_requests (id, mentee_id, mentor_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.conn.Exec(ctx, query,
		req.ID.String(),
		req.MenteeID.String(),
		req.MentorID.String(),
		string(req.Status),
		req.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrDuplicateRequest
		}
		if IsForeignKeyViolation(err) {
			return shared.ErrUserNotFound
		}
		return fmt.Errorf("failed to create mentorship request: %w", err)
	}
	return nil
}

// GetByID returns the request.
func (r *MentorshipRepository) GetByID(ctx context.Context, id mentorship.RequestID) (*mentorship.Request, error) {
	query := `SELECT ` + requestSelectColumns + ` FROM mentorship_requests WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id.String())
	req, err := scanRequest(row)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get mentorship request: %w", err)
	}
	return req, nil
}

// GetByPair returns the request between mentee and mentor, any status.
func (r *MentorshipRepository) GetByPair(ctx context.Context, menteeID, mentorID user.UserID) (*mentorship.Request, error) {
	query := `
		SELECT ` + requestSelectColumns + `
		FROM mentorship_requests
		WHERE mentee_id = $1 AND mentor_id = $2
	`

	row := r.conn.QueryRow(ctx, query, menteeID.String(), mentorID.String())
	req, err := scanRequest(row)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get mentorship request by pair: %w", err)
	}
	return req, nil
}

// ListByMentee returns requests sent by the mentee, newest first.
func (r *MentorshipRepository) ListByMentee(ctx context.Context, menteeID user.UserID) ([]*mentorship.Request, error) {
	query := `
		SELECT ` + requestSelectColumns + `
		FROM mentorship_requests
		WHERE mentee_id = $1
		ORDER BY created_at DESC
	`
	return r.listRequests(ctx, query, menteeID.String())
}

// ListByMentor returns requests addressed to the mentor, newest first.
func (r *MentorshipRepository) ListByMentor(ctx context.Context, mentorID user.UserID) ([]*mentorship.Request, error) {
	query := `
		SELECT ` + requestSelectColumns + `
		FROM mentorship_requests
		WHERE mentor_id = $1
		ORDER BY created_at DESC
	`
	return r.listRequests(ctx, query, mentorID.String())
}

// Accept marks the request ACCEPTED and creates the paired conversation in
// one transaction. The status='PENDING' guard makes concurrent responses
// mutually exclusive: the second one sees zero rows affected.
func (r *MentorshipRepository) Accept(ctx context.Context, id mentorship.RequestID, conv *conversation.Conversation) error {
	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		if err := r.respondInTx(ctx, tx, id, mentorship.StatusAccepted); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO conversations (id, created_at, updated_at) VALUES ($1, $2, $3)`,
			conv.ID.String(), conv.CreatedAt, conv.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create conversation: %w", err)
		}

		for _, pid := range conv.ParticipantIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO conversation_participants (conversation_id, user_id) VALUES ($1, $2)`,
				conv.ID.String(), pid.String(),
			)
			if err != nil {
				return fmt.Errorf("failed to add participant: %w", err)
			}
		}
		return nil
	})
}

// Reject marks the request REJECTED under the same PENDING guard.
func (r *MentorshipRepository) Reject(ctx context.Context, id mentorship.RequestID) error {
	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		return r.respondInTx(ctx, tx, id, mentorship.StatusRejected)
	})
}

// respondInTx flips status inside tx. Zero rows affected means the request
// is missing or no longer PENDING; the two cases are told apart with a
// follow-up existence check so callers get the right error.
func (r *MentorshipRepository) respondInTx(ctx context.Context, tx pgx.Tx, id mentorship.RequestID, status mentorship.RequestStatus) error {
	tag, err := tx.Exec(ctx,
		`UPDATE mentorship_requests
		 SET status = $1, responded_at = $2
		 WHERE id = $3 AND status = 'PENDING'`,
		string(status), time.Now().UTC(), id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM mentorship_requests WHERE id = $1)`, id.String(),
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check request existence: %w", err)
		}
		if !exists {
			return shared.ErrRequestNotFound
		}
		return shared.ErrRequestNotPending
	}
	return nil
}

func (r *MentorshipRepository) listRequests(ctx context.Context, query string, arg any) ([]*mentorship.Request, error) {
	rows, err := r.conn.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentorship requests: %w", err)
	}
	defer rows.Close()

	requests := []*mentorship.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mentorship request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func scanRequest(row pgx.Row) (*mentorship.Request, error) {
	var req mentorship.Request
	var id, menteeID, mentorID, status string

	if err := row.Scan(&id, &menteeID, &mentorID, &status, &req.CreatedAt, &req.RespondedAt); err != nil {
		return nil, err
	}

	req.ID = mentorship.RequestID(id)
	req.MenteeID = user.UserID(menteeID)
	req.MentorID = user.UserID(mentorID)
	req.Status = mentorship.RequestStatus(status)
	return &req, nil
}
