package command

import (
	"context"
	"fmt"

	"github.com/mentorhub/mentorship-backend/internal/domain/conversation"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
	"github.com/mentorhub/mentorship-backend/internal/infrastructure/service"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
)

// SendMessageCommand contains the data to post a message.
type SendMessageCommand struct {
	// SenderID is the authenticated caller.
	SenderID string

	// ConversationID is the target conversation.
	ConversationID string

	// Content is the message body. Trimmed; must not end up empty.
	Content string
}

// Validate validates the command without touching the store.
func (c SendMessageCommand) Validate() error {
	if c.SenderID == "" {
		return shared.NewDomainError("conversation", "SendMessage", shared.ErrInvalidInput, "sender id is required")
	}
	if c.ConversationID == "" {
		return shared.NewDomainError("conversation", "SendMessage", shared.ErrInvalidInput, "conversation id is required")
	}
	return nil
}

// SendMessageResult contains the stored message.
type SendMessageResult struct {
	Message *conversation.Message
}

// SendMessageHandler handles SendMessageCommand.
type SendMessageHandler struct {
	conversationRepo conversation.Repository
	ids              service.IDGenerator
	bus              shared.EventPublisher
	log              *logger.Logger
}

// NewSendMessageHandler creates a new SendMessageHandler.
func NewSendMessageHandler(
	conversationRepo conversation.Repository,
	ids service.IDGenerator,
	bus shared.EventPublisher,
	log *logger.Logger,
) *SendMessageHandler {
	return &SendMessageHandler{
		conversationRepo: conversationRepo,
		ids:              ids,
		bus:              bus,
		log:              log.With(logger.Component("send_message")),
	}
}

// Handle executes the send message command. The insert and the conversation
// timestamp bump share one transaction; the push fan-out happens after the
// commit through the event bus and cannot fail the request.
func (h *SendMessageHandler) Handle(ctx context.Context, cmd SendMessageCommand) (*SendMessageResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	senderID := user.UserID(cmd.SenderID)
	convID := conversation.ConversationID(cmd.ConversationID)

	// Membership gate. Missing conversation and non-membership are the
	// same signal to the caller.
	conv, err := h.conversationRepo.GetByID(ctx, convID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrConversationNotFound
		}
		return nil, fmt.Errorf("send_message: failed to load conversation: %w", err)
	}
	if !conv.HasParticipant(senderID) {
		return nil, shared.ErrConversationNotFound
	}

	msg, err := conversation.NewMessage(
		conversation.MessageID(h.ids.GenerateID()), convID, senderID, cmd.Content)
	if err != nil {
		return nil, err
	}

	if err := h.conversationRepo.AddMessage(ctx, msg); err != nil {
		return nil, err
	}

	participantIDs := make([]string, 0, len(conv.ParticipantIDs))
	for _, pid := range conv.ParticipantIDs {
		participantIDs = append(participantIDs, pid.String())
	}

	event := shared.NewMessageSentEvent(
		msg.ID.String(), convID.String(), senderID.String(),
		msg.Content, msg.CreatedAt, participantIDs)
	if err := h.bus.Publish(event); err != nil {
		h.log.Warn("failed to publish message sent event",
			logger.MessageID(msg.ID.String()),
			logger.ConversationID(convID.String()),
			logger.Err(err),
		)
	}

	return &SendMessageResult{Message: msg}, nil
}
