package query

import (
	"context"
	"fmt"

	"github.com/mentorhub/mentorship-backend/internal/domain/conversation"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// ListMessagesQuery lists a conversation's messages for a participant.
type ListMessagesQuery struct {
	UserID         string
	ConversationID string
}

// Validate validates the query.
func (q ListMessagesQuery) Validate() error {
	if q.UserID == "" {
		return shared.NewDomainError("conversation", "ListMessages", shared.ErrInvalidInput, "user id is required")
	}
	if q.ConversationID == "" {
		return shared.NewDomainError("conversation", "ListMessages", shared.ErrInvalidInput, "conversation id is required")
	}
	return nil
}

// ListMessagesResult carries messages oldest first, each with the sender's
// id and profile.
type ListMessagesResult struct {
	Messages []*conversation.Message
}

// ListMessagesHandler handles ListMessagesQuery.
type ListMessagesHandler struct {
	conversationRepo conversation.Repository
	userRepo         user.Repository
}

// NewListMessagesHandler creates a new ListMessagesHandler.
func NewListMessagesHandler(conversationRepo conversation.Repository, userRepo user.Repository) *ListMessagesHandler {
	return &ListMessagesHandler{conversationRepo: conversationRepo, userRepo: userRepo}
}

// Handle executes the query. Membership is verified first; a conversation
// that does not exist and one the caller is outside of produce the same
// not-found outcome.
func (h *ListMessagesHandler) Handle(ctx context.Context, q ListMessagesQuery) (*ListMessagesResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	convID := conversation.ConversationID(q.ConversationID)
	isMember, err := h.conversationRepo.IsParticipant(ctx, convID, user.UserID(q.UserID))
	if err != nil {
		return nil, fmt.Errorf("list_messages: membership check failed: %w", err)
	}
	if !isMember {
		return nil, shared.ErrConversationNotFound
	}

	messages, err := h.conversationRepo.ListMessages(ctx, convID)
	if err != nil {
		return nil, fmt.Errorf("list_messages: %w", err)
	}

	if err := h.attachSenders(ctx, messages); err != nil {
		return nil, err
	}
	return &ListMessagesResult{Messages: messages}, nil
}

func (h *ListMessagesHandler) attachSenders(ctx context.Context, messages []*conversation.Message) error {
	if len(messages) == 0 {
		return nil
	}

	idSet := make(map[user.UserID]struct{})
	for _, m := range messages {
		idSet[m.SenderID] = struct{}{}
	}
	ids := make([]user.UserID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := h.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("list_messages: failed to load sender profiles: %w", err)
	}
	byID := make(map[user.UserID]*user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, m := range messages {
		m.Sender = byID[m.SenderID]
	}
	return nil
}
