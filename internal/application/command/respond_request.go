package command

import (
	"context"
	"fmt"
	"time"

	"github.com/mentorhub/mentorship-backend/internal/domain/conversation"
	"github.com/mentorhub/mentorship-backend/internal/domain/gamification"
	"github.com/mentorhub/mentorship-backend/internal/domain/mentorship"
	"github.com/mentorhub/mentorship-backend/internal/domain/notification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
	"github.com/mentorhub/mentorship-backend/internal/infrastructure/service"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
)

// RespondToRequestCommand contains a mentor's decision on a request.
type RespondToRequestCommand struct {
	// RequestID identifies the request being answered.
	RequestID string

	// MentorID is the authenticated caller. Must match the request's mentor.
	MentorID string

	// Status is the decision: ACCEPTED or REJECTED.
	Status string
}

// Validate validates the command without touching the store.
func (c RespondToRequestCommand) Validate() error {
	if c.RequestID == "" {
		return shared.NewDomainError("mentorship", "Respond", shared.ErrInvalidInput, "request id is required")
	}
	if c.MentorID == "" {
		return shared.NewDomainError("mentorship", "Respond", shared.ErrInvalidInput, "mentor id is required")
	}
	if !mentorship.RequestStatus(c.Status).IsResponse() {
		return shared.ErrInvalidStatus
	}
	return nil
}

// RespondToRequestResult contains the outcome of the decision.
type RespondToRequestResult struct {
	Request *mentorship.Request

	// ConversationID is set when the request was accepted.
	ConversationID string
}

// RespondToRequestHandler handles RespondToRequestCommand.
type RespondToRequestHandler struct {
	userRepo         user.Repository
	mentorshipRepo   mentorship.Repository
	responder        mentorship.Responder
	notificationRepo notification.Repository
	gamification     gamification.Service
	ids              service.IDGenerator
	bus              shared.EventPublisher
	log              *logger.Logger
}

// NewRespondToRequestHandler creates a new RespondToRequestHandler.
func NewRespondToRequestHandler(
	userRepo user.Repository,
	mentorshipRepo mentorship.Repository,
	responder mentorship.Responder,
	notificationRepo notification.Repository,
	gamificationSvc gamification.Service,
	ids service.IDGenerator,
	bus shared.EventPublisher,
	log *logger.Logger,
) *RespondToRequestHandler {
	return &RespondToRequestHandler{
		userRepo:         userRepo,
		mentorshipRepo:   mentorshipRepo,
		responder:        responder,
		notificationRepo: notificationRepo,
		gamification:     gamificationSvc,
		ids:              ids,
		bus:              bus,
		log:              log.With(logger.Component("respond_request")),
	}
}

// Handle executes the respond command. Acceptance commits the status flip
// and the conversation in one transaction; points, notification, and push
// run after the commit and never unwind it.
func (h *RespondToRequestHandler) Handle(ctx context.Context, cmd RespondToRequestCommand) (*RespondToRequestResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	req, err := h.mentorshipRepo.GetByID(ctx, mentorship.RequestID(cmd.RequestID))
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrRequestNotFound
		}
		return nil, fmt.Errorf("respond_request: failed to load request: %w", err)
	}

	// A caller who is not the addressed mentor gets the same signal as a
	// missing request. Existence never leaks to outsiders.
	if !req.IsMentor(user.UserID(cmd.MentorID)) {
		return nil, shared.ErrRequestNotFound
	}

	status := mentorship.RequestStatus(cmd.Status)

	switch status {
	case mentorship.StatusAccepted:
		return h.accept(ctx, req)
	case mentorship.StatusRejected:
		return h.reject(ctx, req)
	default:
		return nil, shared.ErrInvalidStatus
	}
}

func (h *RespondToRequestHandler) accept(ctx context.Context, req *mentorship.Request) (*RespondToRequestResult, error) {
	conv, err := conversation.NewConversation(
		conversation.ConversationID(h.ids.GenerateID()),
		req.MentorID, req.MenteeID,
	)
	if err != nil {
		return nil, err
	}

	if err := h.responder.Accept(ctx, req.ID, conv); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req.Status = mentorship.StatusAccepted
	req.RespondedAt = &now

	// Committed. Everything below is best-effort.
	h.awardPoints(ctx, req)
	h.notifyMentee(ctx, req, notification.TypeMentorshipRequestAccepted)

	event := shared.NewRequestAcceptedEvent(
		req.ID.String(), req.MenteeID.String(), req.MentorID.String(), conv.ID.String())
	if err := h.bus.Publish(event); err != nil {
		h.log.Warn("failed to publish request accepted event",
			logger.MentorshipRequest(req.ID.String()),
			logger.Err(err),
		)
	}

	return &RespondToRequestResult{Request: req, ConversationID: conv.ID.String()}, nil
}

func (h *RespondToRequestHandler) reject(ctx context.Context, req *mentorship.Request) (*RespondToRequestResult, error) {
	if err := h.responder.Reject(ctx, req.ID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req.Status = mentorship.StatusRejected
	req.RespondedAt = &now

	h.notifyMentee(ctx, req, notification.TypeMentorshipRequestRejected)

	event := shared.NewRequestRejectedEvent(req.ID.String(), req.MenteeID.String(), req.MentorID.String())
	if err := h.bus.Publish(event); err != nil {
		h.log.Warn("failed to publish request rejected event",
			logger.MentorshipRequest(req.ID.String()),
			logger.Err(err),
		)
	}

	return &RespondToRequestResult{Request: req}, nil
}

func (h *RespondToRequestHandler) awardPoints(ctx context.Context, req *mentorship.Request) {
	if _, err := h.gamification.AwardPoints(ctx, req.MentorID, gamification.PointsMentorAccept, gamification.ReasonMentorshipAccepted); err != nil {
		h.log.Error("failed to award mentor points",
			logger.Operation("respond_request"),
			logger.ActorID(req.MentorID.String()),
			logger.TargetID(req.MentorID.String()),
			logger.Points(gamification.PointsMentorAccept),
			logger.Err(err),
		)
	}
	if _, err := h.gamification.AwardPoints(ctx, req.MenteeID, gamification.PointsMenteeAccept, gamification.ReasonMentorshipAccepted); err != nil {
		h.log.Error("failed to award mentee points",
			logger.Operation("respond_request"),
			logger.ActorID(req.MentorID.String()),
			logger.TargetID(req.MenteeID.String()),
			logger.Points(gamification.PointsMenteeAccept),
			logger.Err(err),
		)
	}
}

func (h *RespondToRequestHandler) notifyMentee(ctx context.Context, req *mentorship.Request, typ notification.Type) {
	mentorName := "your mentor"
	if mentor, err := h.userRepo.GetByID(ctx, req.MentorID); err == nil && mentor.Profile != nil && mentor.Profile.Name != "" {
		mentorName = mentor.Profile.Name
	}

	var notif *notification.Notification
	var err error
	id := notification.NotificationID(h.ids.GenerateID())
	switch typ {
	case notification.TypeMentorshipRequestAccepted:
		notif, err = notification.NewRequestAccepted(id, req.MenteeID, mentorName)
	default:
		notif, err = notification.NewRequestRejected(id, req.MenteeID, mentorName)
	}
	if err == nil {
		err = h.notificationRepo.Create(ctx, notif)
	}
	if err != nil {
		h.log.Error("failed to create mentee notification",
			logger.Operation("respond_request"),
			logger.ActorID(req.MentorID.String()),
			logger.TargetID(req.MenteeID.String()),
			logger.NotificationType(string(typ)),
			logger.Err(err),
		)
	}
}
