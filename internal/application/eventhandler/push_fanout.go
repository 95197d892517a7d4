// Package eventhandler contains event bus subscribers: side effects that
// run after a command's primary transaction committed.
package eventhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/mentorhub/mentorship-backend/internal/domain/notification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
)

// pushTimeout bounds one delivery attempt. Pushes are fire-and-forget;
// anything slower than this is as good as lost.
const pushTimeout = 5 * time.Second

// EventReceiveMessage is the event name the client listens on for new
// messages.
const EventReceiveMessage = "receiveMessage"

// messagePayload is what the client receives for a new message.
type messagePayload struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PushFanout delivers committed messages to every conversation participant
// through the push channel. Failures are logged per recipient and dropped.
type PushFanout struct {
	pusher notification.Pusher
	log    *logger.Logger
}

// NewPushFanout creates a PushFanout.
func NewPushFanout(pusher notification.Pusher, log *logger.Logger) *PushFanout {
	return &PushFanout{
		pusher: pusher,
		log:    log.With(logger.Component("push_fanout")),
	}
}

// Register subscribes the fan-out to the bus.
func (f *PushFanout) Register(bus shared.EventSubscriber) error {
	return bus.Subscribe(shared.EventMessageSent, f.onMessageSent)
}

// onMessageSent pushes the message to all participants, sender included:
// the client uses its own echo to confirm delivery across devices.
func (f *PushFanout) onMessageSent(event shared.Event) error {
	msg, ok := event.(shared.MessageSentEvent)
	if !ok {
		return fmt.Errorf("push_fanout: unexpected event type %T", event)
	}

	payload := messagePayload{
		ID:             msg.MessageID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
		CreatedAt:      msg.SentAt,
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	for _, pid := range msg.ParticipantIDs {
		if err := f.pusher.Push(ctx, user.UserID(pid), EventReceiveMessage, payload); err != nil {
			f.log.Error("failed to push message",
				logger.Operation("message_sent"),
				logger.ActorID(msg.SenderID),
				logger.TargetID(pid),
				logger.MessageID(msg.MessageID),
				logger.Err(err),
			)
		}
	}
	return nil
}
