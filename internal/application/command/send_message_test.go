package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorship-backend/internal/domain/conversation"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
)

func newSendMessageFixture(t *testing.T) (*SendMessageHandler, *fakeConversationRepo, *fakeBus) {
	t.Helper()
	conv, err := conversation.NewConversation("conv-1", "mentor-1", "mentee-1")
	require.NoError(t, err)

	convRepo := newFakeConversationRepo(conv)
	bus := &fakeBus{}
	h := NewSendMessageHandler(convRepo, &seqIDs{}, bus, testLogger())
	return h, convRepo, bus
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("stores message and bumps conversation recency", func(t *testing.T) {
		h, convRepo, bus := newSendMessageFixture(t)

		result, err := h.Handle(ctx, SendMessageCommand{
			SenderID: "mentee-1", ConversationID: "conv-1", Content: "  hello there  ",
		})
		require.NoError(t, err)

		assert.Equal(t, "hello there", result.Message.Content, "content is trimmed")
		assert.Equal(t, conversation.ConversationID("conv-1"), result.Message.ConversationID)

		conv, err := convRepo.GetByID(ctx, "conv-1")
		require.NoError(t, err)
		assert.Equal(t, result.Message.CreatedAt, conv.UpdatedAt,
			"updated_at tracks the message creation time")

		events := bus.published(shared.EventMessageSent)
		require.Len(t, events, 1)
		sent, ok := events[0].(shared.MessageSentEvent)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"mentor-1", "mentee-1"}, sent.ParticipantIDs)
	})

	t.Run("empty content is invalid", func(t *testing.T) {
		h, convRepo, _ := newSendMessageFixture(t)

		for _, content := range []string{"", "   ", "\n\t"} {
			_, err := h.Handle(ctx, SendMessageCommand{
				SenderID: "mentee-1", ConversationID: "conv-1", Content: content,
			})
			assert.True(t, shared.IsValidation(err), "content %q: expected validation error, got %v", content, err)
		}
		assert.Empty(t, convRepo.messages)
	})

	t.Run("non-participant sees not found", func(t *testing.T) {
		h, convRepo, _ := newSendMessageFixture(t)

		_, err := h.Handle(ctx, SendMessageCommand{
			SenderID: "stranger", ConversationID: "conv-1", Content: "hi",
		})
		assert.True(t, shared.IsNotFound(err), "expected not found, got %v", err)
		assert.Empty(t, convRepo.messages)
	})

	t.Run("unknown conversation is not found", func(t *testing.T) {
		h, _, _ := newSendMessageFixture(t)

		_, err := h.Handle(ctx, SendMessageCommand{
			SenderID: "mentee-1", ConversationID: "ghost", Content: "hi",
		})
		assert.True(t, shared.IsNotFound(err))
	})
}
