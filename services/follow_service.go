package services

import (
	"context"
	"fmt"
	"time"

	"eduone-core/clients"
	"eduone-core/models"
	"eduone-core/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FollowService maintains the follow graph. Follow is a toggle: the same
// call follows an author you do not follow yet and unfollows one you do.
type FollowService interface {
	Toggle(caller Caller, authorID uuid.UUID) (bool, error)
	Followers(userID uuid.UUID) (int64, error)
}

type followService struct {
	followRepo repositories.FollowRepository
	userRepo   repositories.UserRepository
	outboxRepo repositories.OutboxRepository
	counters   CounterStore
	evaluator  *AchievementEvaluator
	logger     *zap.Logger
}

// NewFollowService ...
func NewFollowService(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	outboxRepo repositories.OutboxRepository,
	counters CounterStore,
	evaluator *AchievementEvaluator,
	logger *zap.Logger,
) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		counters:   counters,
		evaluator:  evaluator,
		logger:     logger,
	}
}

// Toggle returns true when the caller now follows the author.
func (s *followService) Toggle(caller Caller, authorID uuid.UUID) (bool, error) {
	if caller.ID == authorID {
		return false, models.InvalidOperation("you cannot follow yourself")
	}
	exists, err := s.userRepo.ExistsByID(authorID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, models.NotFound("author not found")
	}

	followed, err := s.followRepo.Follow(caller.ID, authorID)
	if err != nil {
		return false, err
	}
	if !followed {
		// Already following: the toggle removes the edge.
		if _, err := s.followRepo.Unfollow(caller.ID, authorID); err != nil {
			return false, err
		}
		s.refreshCounts(caller.ID, authorID)
		return false, nil
	}

	s.refreshCounts(caller.ID, authorID)

	notification := clients.Notification{
		NotificationType: clients.NotifyTypeFollow,
		Title:            "Подписка",
		Text:             fmt.Sprintf("%s подписался на Вас", usernameOf(s.userRepo, caller.ID)),
		UserID:           caller.ID.String(),
		Receivers:        []string{authorID.String()},
	}
	if err := s.outboxRepo.Enqueue(models.NotifyEntry(notification)); err != nil {
		s.logger.Warn("enqueue follow notification failed", zap.Error(err))
	}

	count, err := s.followRepo.CountFollowers(authorID)
	if err != nil {
		s.logger.Warn("follower count failed", zap.Error(err))
	} else {
		s.evaluator.EvaluateFollowers(authorID, count)
	}
	return true, nil
}

func (s *followService) Followers(userID uuid.UUID) (int64, error) {
	return s.followRepo.CountFollowers(userID)
}

// refreshCounts rewrites the cached follower/following counters for both
// sides of the edge. Cache failures only log.
func (s *followService) refreshCounts(ids ...uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for _, id := range ids {
		followers, err := s.followRepo.CountFollowers(id)
		if err != nil {
			s.logger.Warn("follower recount failed", zap.Error(err))
			continue
		}
		following, err := s.followRepo.CountFollowing(id)
		if err != nil {
			s.logger.Warn("following recount failed", zap.Error(err))
			continue
		}
		if err := s.counters.SetFollowCounts(ctx, id, followers, following); err != nil {
			s.logger.Warn("counter cache write failed", zap.String("user_id", id.String()), zap.Error(err))
		}
	}
}
