package eventhandler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
)

type recordedPush struct {
	recipient user.UserID
	event     string
	payload   any
}

type fakePusher struct {
	pushes  []recordedPush
	failFor map[user.UserID]bool
}

func (p *fakePusher) Push(_ context.Context, recipient user.UserID, event string, payload any) error {
	if p.failFor[recipient] {
		return errors.New("gateway unavailable")
	}
	p.pushes = append(p.pushes, recordedPush{recipient: recipient, event: event, payload: payload})
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard})
}

func TestPushFanoutDeliversToAllParticipants(t *testing.T) {
	pusher := &fakePusher{}
	fanout := NewPushFanout(pusher, testLogger())

	sentAt := time.Now().UTC()
	event := shared.NewMessageSentEvent(
		"msg-1", "conv-1", "mentee-1", "hello", sentAt,
		[]string{"mentor-1", "mentee-1"},
	)
	require.NoError(t, fanout.onMessageSent(event))

	require.Len(t, pusher.pushes, 2, "sender gets their own echo too")
	for _, p := range pusher.pushes {
		assert.Equal(t, EventReceiveMessage, p.event)

		payload, ok := p.payload.(messagePayload)
		require.True(t, ok)
		assert.Equal(t, "msg-1", payload.ID)
		assert.Equal(t, "conv-1", payload.ConversationID)
		assert.Equal(t, "mentee-1", payload.SenderID)
		assert.Equal(t, "hello", payload.Content)
		assert.Equal(t, sentAt, payload.CreatedAt)
	}
	assert.Equal(t, user.UserID("mentor-1"), pusher.pushes[0].recipient)
	assert.Equal(t, user.UserID("mentee-1"), pusher.pushes[1].recipient)
}

func TestPushFanoutFailureIsPerRecipient(t *testing.T) {
	pusher := &fakePusher{failFor: map[user.UserID]bool{"mentor-1": true}}
	fanout := NewPushFanout(pusher, testLogger())

	event := shared.NewMessageSentEvent(
		"msg-1", "conv-1", "mentee-1", "hello", time.Now(),
		[]string{"mentor-1", "mentee-1"},
	)
	require.NoError(t, fanout.onMessageSent(event), "delivery failures are logged, not returned")

	require.Len(t, pusher.pushes, 1, "the other recipient still gets the push")
	assert.Equal(t, user.UserID("mentee-1"), pusher.pushes[0].recipient)
}

func TestPushFanoutRejectsWrongEventType(t *testing.T) {
	fanout := NewPushFanout(&fakePusher{}, testLogger())

	err := fanout.onMessageSent(shared.NewRequestCreatedEvent("req-1", "mentee-1", "mentor-1"))
	assert.Error(t, err)
}
