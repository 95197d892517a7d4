package query

import (
	"context"
	"fmt"

	"github.com/mentorhub/mentorship-backend/internal/domain/conversation"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

// ListConversationsQuery lists the caller's conversations.
type ListConversationsQuery struct {
	UserID string
}

// ListConversationsResult carries conversations ordered by recency, each
// with all participants (id + profile) and the most recent message.
type ListConversationsResult struct {
	Conversations []*conversation.Conversation
}

// ListConversationsHandler handles ListConversationsQuery.
type ListConversationsHandler struct {
	conversationRepo conversation.Repository
	userRepo         user.Repository
}

// NewListConversationsHandler creates a new ListConversationsHandler.
func NewListConversationsHandler(conversationRepo conversation.Repository, userRepo user.Repository) *ListConversationsHandler {
	return &ListConversationsHandler{conversationRepo: conversationRepo, userRepo: userRepo}
}

// Handle executes the query. No conversations is an empty list, not an
// error.
func (h *ListConversationsHandler) Handle(ctx context.Context, q ListConversationsQuery) (*ListConversationsResult, error) {
	if q.UserID == "" {
		return nil, shared.NewDomainError("conversation", "List", shared.ErrInvalidInput, "user id is required")
	}

	conversations, err := h.conversationRepo.ListByParticipant(ctx, user.UserID(q.UserID))
	if err != nil {
		return nil, fmt.Errorf("list_conversations: %w", err)
	}
	if len(conversations) == 0 {
		return &ListConversationsResult{Conversations: []*conversation.Conversation{}}, nil
	}

	// One batched lookup covers every participant and message sender in
	// the page.
	idSet := make(map[user.UserID]struct{})
	for _, conv := range conversations {
		for _, pid := range conv.ParticipantIDs {
			idSet[pid] = struct{}{}
		}
		if conv.LastMessage != nil {
			idSet[conv.LastMessage.SenderID] = struct{}{}
		}
	}
	ids := make([]user.UserID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := h.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list_conversations: failed to load participant profiles: %w", err)
	}
	byID := make(map[user.UserID]*user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, conv := range conversations {
		conv.Participants = make([]*user.User, 0, len(conv.ParticipantIDs))
		for _, pid := range conv.ParticipantIDs {
			if u, ok := byID[pid]; ok {
				conv.Participants = append(conv.Participants, u)
			}
		}
		if conv.LastMessage != nil {
			conv.LastMessage.Sender = byID[conv.LastMessage.SenderID]
		}
	}

	return &ListConversationsResult{Conversations: conversations}, nil
}
