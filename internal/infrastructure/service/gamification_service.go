package service

import (
	"context"

	"github.com/mentorhub/mentorship-backend/internal/domain/gamification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
	"github.com/mentorhub/mentorship-backend/pkg/retry"
)

// GamificationService implements gamification.Service. Awards run after the
// primary transaction committed, so transient store errors get a short retry
// before the caller falls back to logging the loss.
type GamificationService struct {
	repo    gamification.Repository
	ids     IDGenerator
	bus     shared.EventPublisher
	retrier *retry.Retrier
	log     *logger.Logger
}

// NewGamificationService creates a GamificationService.
func NewGamificationService(repo gamification.Repository, ids IDGenerator, bus shared.EventPublisher, log *logger.Logger) *GamificationService {
	return &GamificationService{
		repo:    repo,
		ids:     ids,
		bus:     bus,
		retrier: retry.AwardRetrier(),
		log:     log.With(logger.Component("gamification")),
	}
}

// AwardPoints credits amount to userID with the given reason. The ledger
// entry and the counter move in one transaction inside the repository.
func (s *GamificationService) AwardPoints(ctx context.Context, userID user.UserID, amount int, reason string) (int, error) {
	award, err := gamification.NewAward(gamification.AwardID(s.ids.GenerateID()), userID, amount, reason)
	if err != nil {
		return 0, err
	}

	var newTotal int
	err = s.retrier.Do(ctx, func(ctx context.Context) error {
		total, err := s.repo.RecordAward(ctx, award)
		if err != nil {
			if shared.IsNotFound(err) || shared.IsValidation(err) {
				return retry.Permanent(err)
			}
			return retry.Retryable(err)
		}
		newTotal = total
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.bus != nil {
		event := shared.NewPointsAwardedEvent(userID.String(), amount, newTotal, reason)
		if pubErr := s.bus.Publish(event); pubErr != nil {
			s.log.Warn("failed to publish points awarded event",
				logger.UserID(userID.String()),
				logger.Points(amount),
				logger.Err(pubErr),
			)
		}
	}

	s.log.Info("points awarded",
		logger.UserID(userID.String()),
		logger.Points(amount),
		logger.String("reason", reason),
		logger.Int("new_total", newTotal),
	)
	return newTotal, nil
}
