package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mentorhub/mentorship-backend/internal/domain/user"
	"github.com/mentorhub/mentorship-backend/pkg/circuitbreaker"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
)

// ChannelPrefix namespaces the per-recipient pub/sub channels.
const ChannelPrefix = "mentorhub:user:"

// pushEnvelope is the wire format consumed by the socket gateway.
type pushEnvelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// PubSubPusher implements notification.Pusher over Redis pub/sub. Each user
// gets their own channel; the gateway subscribes to the channels of its
// connected clients. A circuit breaker keeps a dead Redis from stalling the
// request path.
type PubSubPusher struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
	log     *logger.Logger
}

// NewPubSubPusher creates a PubSubPusher.
func NewPubSubPusher(client *redis.Client, log *logger.Logger) *PubSubPusher {
	p := &PubSubPusher{
		client: client,
		log:    log.With(logger.Component("push")),
	}
	p.breaker = circuitbreaker.PushBreaker(func(name string, from, to circuitbreaker.State) {
		p.log.Warn("push circuit state changed",
			logger.String("breaker", name),
			logger.String("from", from.String()),
			logger.String("to", to.String()),
		)
	})
	return p
}

// Push publishes the event to the recipient's channel. Delivery is
// best-effort: nobody subscribed means the message evaporates, which is the
// intended semantics for real-time hints.
func (p *PubSubPusher) Push(ctx context.Context, recipient user.UserID, event string, payload any) error {
	data, err := json.Marshal(pushEnvelope{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("push: failed to marshal payload: %w", err)
	}

	channel := ChannelPrefix + recipient.String()
	return p.breaker.Execute(ctx, func(ctx context.Context) error {
		if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
			return fmt.Errorf("push: failed to publish to %s: %w", channel, err)
		}
		return nil
	})
}
