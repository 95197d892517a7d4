package conversation

import (
	"context"

	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// Repository defines storage operations for conversations and messages.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// GetByID returns the conversation with its participant ids.
	// Returns shared.ErrNotFound if no such conversation exists.
	GetByID(ctx context.Context, id ConversationID) (*Conversation, error)

	// ListByParticipant returns the conversations the user belongs to,
	// most recently updated first. Each carries its participant ids and
	// its most recent message (nil when empty). Never returns nil for an
	// empty result, always an empty slice.
	ListByParticipant(ctx context.Context, userID user.UserID) ([]*Conversation, error)

	// IsParticipant reports whether the user belongs to the conversation.
	// A missing conversation is simply false, not an error; callers
	// collapse both cases into the same not-found signal.
	IsParticipant(ctx context.Context, id ConversationID, userID user.UserID) (bool, error)

	// ListMessages returns all messages of the conversation, oldest first.
	ListMessages(ctx context.Context, id ConversationID) ([]*Message, error)

	// AddMessage persists the message and advances the conversation's
	// UpdatedAt to the message's CreatedAt in one transaction. Under
	// concurrent sends the timestamp ends at whichever write landed last.
	AddMessage(ctx context.Context, m *Message) error
}
