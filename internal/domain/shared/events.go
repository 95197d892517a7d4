package shared

import (
	"encoding/json"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened in the domain and may fan out to side effects (push delivery,
// points, notifications).
const (
	// Mentorship events
	EventRequestCreated  EventType = "mentorship.request_created"
	EventRequestAccepted EventType = "mentorship.request_accepted"
	EventRequestRejected EventType = "mentorship.request_rejected"

	// Conversation events
	EventConversationCreated EventType = "conversation.created"
	EventMessageSent         EventType = "conversation.message_sent"

	// Gamification events
	EventPointsAwarded EventType = "gamification.points_awarded"

	// Notification events
	EventNotificationCreated EventType = "notification.created"

	// User events
	EventUserRegistered EventType = "user.registered"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	Version       int       `json:"version"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// WithCorrelationID sets the correlation ID for tracing.
func (e BaseEvent) WithCorrelationID(id string) BaseEvent {
	e.CorrelationID = id
	return e
}

// RequestCreatedEvent is emitted when a mentee sends a mentorship request.
type RequestCreatedEvent struct {
	BaseEvent
	RequestID string `json:"request_id"`
	MenteeID  string `json:"mentee_id"`
	MentorID  string `json:"mentor_id"`
}

// Payload implements Event interface.
func (e RequestCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"request_id": e.RequestID,
		"mentee_id":  e.MenteeID,
		"mentor_id":  e.MentorID,
	}
}

// NewRequestCreatedEvent creates a new RequestCreatedEvent.
func NewRequestCreatedEvent(requestID, menteeID, mentorID string) RequestCreatedEvent {
	return RequestCreatedEvent{
		BaseEvent: NewBaseEvent(EventRequestCreated, requestID),
		RequestID: requestID,
		MenteeID:  menteeID,
		MentorID:  mentorID,
	}
}

// RequestAcceptedEvent is emitted after a mentor accepts a request and the
// paired conversation has been committed.
type RequestAcceptedEvent struct {
	BaseEvent
	RequestID      string `json:"request_id"`
	MenteeID       string `json:"mentee_id"`
	MentorID       string `json:"mentor_id"`
	ConversationID string `json:"conversation_id"`
}

// Payload implements Event interface.
func (e RequestAcceptedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"request_id":      e.RequestID,
		"mentee_id":       e.MenteeID,
		"mentor_id":       e.MentorID,
		"conversation_id": e.ConversationID,
	}
}

// NewRequestAcceptedEvent creates a new RequestAcceptedEvent.
func NewRequestAcceptedEvent(requestID, menteeID, mentorID, conversationID string) RequestAcceptedEvent {
	return RequestAcceptedEvent{
		BaseEvent:      NewBaseEvent(EventRequestAccepted, requestID),
		RequestID:      requestID,
		MenteeID:       menteeID,
		MentorID:       mentorID,
		ConversationID: conversationID,
	}
}

// RequestRejectedEvent is emitted after a mentor declines a request.
type RequestRejectedEvent struct {
	BaseEvent
	RequestID string `json:"request_id"`
	MenteeID  string `json:"mentee_id"`
	MentorID  string `json:"mentor_id"`
}

// Payload implements Event interface.
func (e RequestRejectedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"request_id": e.RequestID,
		"mentee_id":  e.MenteeID,
		"mentor_id":  e.MentorID,
	}
}

// NewRequestRejectedEvent creates a new RequestRejectedEvent.
func NewRequestRejectedEvent(requestID, menteeID, mentorID string) RequestRejectedEvent {
	return RequestRejectedEvent{
		BaseEvent: NewBaseEvent(EventRequestRejected, requestID),
		RequestID: requestID,
		MenteeID:  menteeID,
		MentorID:  mentorID,
	}
}

// MessageSentEvent is emitted after a message has been committed to its
// conversation. Subscribers fan the payload out to every participant.
type MessageSentEvent struct {
	BaseEvent
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sent_at"`
	ParticipantIDs []string  `json:"participant_ids"`
}

// Payload implements Event interface.
func (e MessageSentEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"message_id":      e.MessageID,
		"conversation_id": e.ConversationID,
		"sender_id":       e.SenderID,
		"content":         e.Content,
		"sent_at":         e.SentAt.Format(time.RFC3339Nano),
		"participant_ids": e.ParticipantIDs,
	}
}

// NewMessageSentEvent creates a new MessageSentEvent.
func NewMessageSentEvent(messageID, conversationID, senderID, content string, sentAt time.Time, participantIDs []string) MessageSentEvent {
	return MessageSentEvent{
		BaseEvent:      NewBaseEvent(EventMessageSent, conversationID),
		MessageID:      messageID,
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		SentAt:         sentAt,
		ParticipantIDs: participantIDs,
	}
}

// PointsAwardedEvent is emitted after points have been credited to a user.
type PointsAwardedEvent struct {
	BaseEvent
	UserID   string `json:"user_id"`
	Amount   int    `json:"amount"`
	NewTotal int    `json:"new_total"`
	Reason   string `json:"reason"`
}

// Payload implements Event interface.
func (e PointsAwardedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":   e.UserID,
		"amount":    e.Amount,
		"new_total": e.NewTotal,
		"reason":    e.Reason,
	}
}

// NewPointsAwardedEvent creates a new PointsAwardedEvent.
func NewPointsAwardedEvent(userID string, amount, newTotal int, reason string) PointsAwardedEvent {
	return PointsAwardedEvent{
		BaseEvent: NewBaseEvent(EventPointsAwarded, userID),
		UserID:    userID,
		Amount:    amount,
		NewTotal:  newTotal,
		Reason:    reason,
	}
}

// EventEnvelope wraps an event for transport/storage.
type EventEnvelope struct {
	ID            string          `json:"id"`
	Type          EventType       `json:"type"`
	AggregateID   string          `json:"aggregate_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
