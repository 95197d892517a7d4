package command

import (
	"context"
	"strings"

	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
	"github.com/mentorhub/mentorship-backend/internal/infrastructure/service"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
)

// RegisterUserCommand creates the user+profile pair every other aggregate
// references. Credentials and sessions live in the identity provider; this
// backend only anchors the identity.
type RegisterUserCommand struct {
	Email     string
	Name      string
	AvatarURL string
}

// Validate validates the command without touching the store.
func (c RegisterUserCommand) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return shared.NewDomainError("user", "Create", shared.ErrInvalidInput, "email is required")
	}
	return nil
}

// RegisterUserResult contains the created user.
type RegisterUserResult struct {
	User *user.User
}

// RegisterUserHandler handles RegisterUserCommand.
type RegisterUserHandler struct {
	userRepo user.Repository
	ids      service.IDGenerator
	log      *logger.Logger
}

// NewRegisterUserHandler creates a new RegisterUserHandler.
func NewRegisterUserHandler(userRepo user.Repository, ids service.IDGenerator, log *logger.Logger) *RegisterUserHandler {
	return &RegisterUserHandler{
		userRepo: userRepo,
		ids:      ids,
		log:      log.With(logger.Component("register_user")),
	}
}

// Handle executes the register user command.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	u, err := user.NewUser(user.UserID(h.ids.GenerateID()), cmd.Email, cmd.Name, cmd.AvatarURL)
	if err != nil {
		return nil, err
	}

	if err := h.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	h.log.Info("user registered", logger.UserID(u.ID.String()))
	return &RegisterUserResult{User: u}, nil
}
