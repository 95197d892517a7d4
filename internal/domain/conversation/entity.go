// Package conversation contains the messaging model: conversations between
// accepted mentorship pairs and the messages inside them. Real-time delivery
// is an external collaborator; this package owns durable state only.
package conversation

import (
	"strings"
	"time"

	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// ConversationID represents a conversation identifier.
type ConversationID string

// IsValid checks that the ConversationID is non-empty.
func (id ConversationID) IsValid() bool {
	return len(id) > 0
}

// String returns the string representation.
func (id ConversationID) String() string {
	return string(id)
}

// MessageID represents a message identifier.
type MessageID string

// IsValid checks that the MessageID is non-empty.
func (id MessageID) IsValid() bool {
	return len(id) > 0
}

// String returns the string representation.
func (id MessageID) String() string {
	return string(id)
}

// Conversation is a message container shared by a fixed set of participants.
// UpdatedAt tracks the creation time of the most recent message, which keeps
// conversation lists sorted by recency without a join.
type Conversation struct {
	ID             ConversationID `json:"id"`
	ParticipantIDs []user.UserID  `json:"participantIds"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`

	// Participants with profiles and the most recent message, attached by
	// list queries. Nil/empty on bare loads.
	Participants []*user.User `json:"participants,omitempty"`
	LastMessage  *Message     `json:"lastMessage,omitempty"`
}

// NewConversation creates a conversation between the given participants.
// Mentorship acceptance is the only producer today, so two participants is
// the norm, but nothing below this layer assumes exactly two.
func NewConversation(id ConversationID, participantIDs ...user.UserID) (*Conversation, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("conversation", "Create", shared.ErrInvalidID, "invalid conversation id")
	}
	if len(participantIDs) < 2 {
		return nil, shared.NewDomainError("conversation", "Create", shared.ErrInvalidInput, "conversation needs at least two participants")
	}
	seen := make(map[user.UserID]struct{}, len(participantIDs))
	for _, pid := range participantIDs {
		if !pid.IsValid() {
			return nil, shared.ErrInvalidUserID
		}
		if _, dup := seen[pid]; dup {
			return nil, shared.NewDomainError("conversation", "Create", shared.ErrInvalidInput, "duplicate participant")
		}
		seen[pid] = struct{}{}
	}
	now := time.Now().UTC()
	return &Conversation{
		ID:             id,
		ParticipantIDs: participantIDs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *Conversation) HasParticipant(id user.UserID) bool {
	for _, pid := range c.ParticipantIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// Message is a single utterance inside a conversation.
type Message struct {
	ID             MessageID      `json:"id"`
	ConversationID ConversationID `json:"conversationId"`
	SenderID       user.UserID    `json:"senderId"`
	Content        string         `json:"content"`
	CreatedAt      time.Time      `json:"createdAt"`

	// Sender with profile, attached by queries.
	Sender *user.User `json:"sender,omitempty"`
}

// NewMessage creates a message. Content is trimmed; an empty result is
// rejected before it can reach the store.
func NewMessage(id MessageID, conversationID ConversationID, senderID user.UserID, content string) (*Message, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("conversation", "SendMessage", shared.ErrInvalidID, "invalid message id")
	}
	if !conversationID.IsValid() {
		return nil, shared.NewDomainError("conversation", "SendMessage", shared.ErrInvalidID, "invalid conversation id")
	}
	if !senderID.IsValid() {
		return nil, shared.ErrInvalidUserID
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.ErrEmptyMessage
	}
	return &Message{
		ID:             id,
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
