package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mentorhub/mentorship-backend/internal/domain/conversation"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// ConversationRepository implements conversation.Repository for PostgreSQL.
type ConversationRepository struct {
	conn *Connection
}

// NewConversationRepository creates a new ConversationRepository.
func NewConversationRepository(conn *Connection) *ConversationRepository {
	return &ConversationRepository{conn: conn}
}

// GetByID returns the conversation with its participant ids.
func (r *ConversationRepository) GetByID(ctx context.Context, id conversation.ConversationID) (*conversation.Conversation, error) {
	query := `SELECT id, created_at, updated_at FROM conversations WHERE id = $1`

	var conv conversation.Conversation
	var convID string
	err := r.conn.QueryRow(ctx, query, id.String()).Scan(&convID, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	conv.ID = conversation.ConversationID(convID)

	participants, err := r.participantIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	conv.ParticipantIDs = participants
	return &conv, nil
}

// ListByParticipant returns the user's conversations, most recently updated
// first, each with participant ids and its most recent message.
func (r *ConversationRepository) ListByParticipant(ctx context.Context, userID user.UserID) ([]*conversation.Conversation, error) {
	query := `
		SELECT c.id, c.created_at, c.updated_at
		FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id
		WHERE cp.user_id = $1
		ORDER BY c.updated_at DESC
	`

	rows, err := r.conn.Query(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	conversations := []*conversation.Conversation{}
	for rows.Next() {
		var conv conversation.Conversation
		var convID string
		if err := rows.Scan(&convID, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conv.ID = conversation.ConversationID(convID)
		conversations = append(conversations, &conv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Two follow-up queries per conversation keeps the SQL simple; lists
	// here are small (one conversation per accepted mentorship).
	for _, conv := range conversations {
		participants, err := r.participantIDs(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		conv.ParticipantIDs = participants

		last, err := r.lastMessage(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		conv.LastMessage = last
	}
	return conversations, nil
}

// IsParticipant reports membership. A missing conversation is false.
func (r *ConversationRepository) IsParticipant(ctx context.Context, id conversation.ConversationID, userID user.UserID) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM conversation_participants
			WHERE conversation_id = $1 AND user_id = $2
		)`,
		id.String(), userID.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check participation: %w", err)
	}
	return exists, nil
}

// ListMessages returns all messages of the conversation, oldest first.
func (r *ConversationRepository) ListMessages(ctx context.Context, id conversation.ConversationID) ([]*conversation.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.conn.Query(ctx, query, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []*conversation.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// AddMessage inserts the message and advances the conversation's updated_at
// to the message's created_at in one transaction.
func (r *ConversationRepository) AddMessage(ctx context.Context, m *conversation.Message) error {
	err := r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO messages (id, conversation_id, sender_id, content, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			m.ID.String(), m.ConversationID.String(), m.SenderID.String(), m.Content, m.CreatedAt,
		)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`UPDATE conversations SET updated_at = $1 WHERE id = $2`,
			m.CreatedAt, m.ConversationID.String(),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrConversationNotFound
		}
		return nil
	})
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrConversationNotFound
		}
		if shared.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("failed to add message: %w", err)
	}
	return nil
}

func (r *ConversationRepository) participantIDs(ctx context.Context, id conversation.ConversationID) ([]user.UserID, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT user_id FROM conversation_participants WHERE conversation_id = $1`,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	ids := []user.UserID{}
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		ids = append(ids, user.UserID(uid))
	}
	return ids, rows.Err()
}

func (r *ConversationRepository) lastMessage(ctx context.Context, id conversation.ConversationID) (*conversation.Message, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, conversation_id, sender_id, content, created_at
		 FROM messages
		 WHERE conversation_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		id.String(),
	)
	m, err := scanMessage(row)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last message: %w", err)
	}
	return m, nil
}

func scanMessage(row pgx.Row) (*conversation.Message, error) {
	var m conversation.Message
	var id, convID, senderID string

	if err := row.Scan(&id, &convID, &senderID, &m.Content, &m.CreatedAt); err != nil {
		return nil, err
	}

	m.ID = conversation.MessageID(id)
	m.ConversationID = conversation.ConversationID(convID)
	m.SenderID = user.UserID(senderID)
	return &m, nil
}
