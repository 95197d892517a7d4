// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"

	"github.com/mentorhub/mentorship-backend/internal/domain/mentorship"
	"github.com/mentorhub/mentorship-backend/internal/domain/notification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
	"github.com/mentorhub/mentorship-backend/internal/infrastructure/service"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
)

// CreateRequestCommand contains the data to create a mentorship request.
type CreateRequestCommand struct {
	// MenteeID is the authenticated caller.
	MenteeID string

	// MentorID is the user being asked to mentor.
	MentorID string
}

// Validate validates the command without touching the store.
func (c CreateRequestCommand) Validate() error {
	if c.MenteeID == "" {
		return shared.NewDomainError("mentorship", "Create", shared.ErrInvalidInput, "mentee id is required")
	}
	if c.MentorID == "" {
		return shared.NewDomainError("mentorship", "Create", shared.ErrInvalidInput, "mentor id is required")
	}
	if c.MenteeID == c.MentorID {
		return shared.ErrSelfRequest
	}
	return nil
}

// CreateRequestResult contains the created request with the mentee's profile
// attached, mirroring what the mentor-facing list shows.
type CreateRequestResult struct {
	Request *mentorship.Request
}

// CreateRequestHandler handles CreateRequestCommand.
type CreateRequestHandler struct {
	userRepo         user.Repository
	mentorshipRepo   mentorship.Repository
	notificationRepo notification.Repository
	ids              service.IDGenerator
	bus              shared.EventPublisher
	log              *logger.Logger
}

// NewCreateRequestHandler creates a new CreateRequestHandler.
func NewCreateRequestHandler(
	userRepo user.Repository,
	mentorshipRepo mentorship.Repository,
	notificationRepo notification.Repository,
	ids service.IDGenerator,
	bus shared.EventPublisher,
	log *logger.Logger,
) *CreateRequestHandler {
	return &CreateRequestHandler{
		userRepo:         userRepo,
		mentorshipRepo:   mentorshipRepo,
		notificationRepo: notificationRepo,
		ids:              ids,
		bus:              bus,
		log:              log.With(logger.Component("create_request")),
	}
}

// Handle executes the create request command.
func (h *CreateRequestHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (*CreateRequestResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	menteeID := user.UserID(cmd.MenteeID)
	mentorID := user.UserID(cmd.MentorID)

	// The mentor must resolve to a real user before anything is written.
	if _, err := h.userRepo.GetByID(ctx, mentorID); err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.WrapError("mentorship", "Create", shared.ErrNotFound, "mentor not found", err)
		}
		return nil, fmt.Errorf("create_request: failed to load mentor: %w", err)
	}

	mentee, err := h.userRepo.GetByID(ctx, menteeID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.WrapError("mentorship", "Create", shared.ErrNotFound, "mentee not found", err)
		}
		return nil, fmt.Errorf("create_request: failed to load mentee: %w", err)
	}

	req, err := mentorship.NewRequest(mentorship.RequestID(h.ids.GenerateID()), menteeID, mentorID)
	if err != nil {
		return nil, err
	}

	// The unique pair constraint turns a concurrent duplicate into the
	// same Conflict a sequential one gets.
	if err := h.mentorshipRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	// Side effects after the write: logged on failure, never propagated.
	h.notifyMentor(ctx, req, mentee)

	event := shared.NewRequestCreatedEvent(req.ID.String(), cmd.MenteeID, cmd.MentorID)
	if err := h.bus.Publish(event); err != nil {
		h.log.Warn("failed to publish request created event",
			logger.MentorshipRequest(req.ID.String()),
			logger.Err(err),
		)
	}

	req.Mentee = mentee
	return &CreateRequestResult{Request: req}, nil
}

func (h *CreateRequestHandler) notifyMentor(ctx context.Context, req *mentorship.Request, mentee *user.User) {
	menteeName := ""
	if mentee.Profile != nil {
		menteeName = mentee.Profile.Name
	}

	notif, err := notification.NewRequestReceived(
		notification.NotificationID(h.ids.GenerateID()), req.MentorID, menteeName)
	if err == nil {
		err = h.notificationRepo.Create(ctx, notif)
	}
	if err != nil {
		h.log.Error("failed to create mentor notification",
			logger.Operation("create_request"),
			logger.ActorID(req.MenteeID.String()),
			logger.TargetID(req.MentorID.String()),
			logger.Err(err),
		)
	}
}
