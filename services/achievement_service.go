package services

import (
	"fmt"

	"eduone-core/models"
	"eduone-core/repositories"
	"eduone-core/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AchievementService manages the achievement catalog and manual grants.
// Catalog changes are superuser-only; automatic grants go through the
// evaluator instead.
type AchievementService interface {
	Create(caller Caller, req models.CreateAchievementRequest) (*models.Achievement, error)
	Get(id uint) (*models.Achievement, error)
	List(params models.ListParams) ([]models.Achievement, int64, error)
	Update(caller Caller, id uint, req models.UpdateAchievementRequest) (*models.Achievement, error)
	Delete(caller Caller, id uint) error
	Toggle(caller Caller, userID uuid.UUID, achievementID uint) (bool, error)
}

type achievementService struct {
	tx         TxRunner
	achRepo    repositories.AchievementRepository
	userRepo   repositories.UserRepository
	outboxRepo repositories.OutboxRepository
	logger     *zap.Logger
}

// NewAchievementService ...
func NewAchievementService(
	tx TxRunner,
	achRepo repositories.AchievementRepository,
	userRepo repositories.UserRepository,
	outboxRepo repositories.OutboxRepository,
	logger *zap.Logger,
) AchievementService {
	return &achievementService{
		tx:         tx,
		achRepo:    achRepo,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

func achievementDocID(id uint) string { return fmt.Sprintf("%d", id) }

func (s *achievementService) Create(caller Caller, req models.CreateAchievementRequest) (*models.Achievement, error) {
	if !caller.IsSuperuser {
		return nil, models.Forbidden("superuser access required")
	}

	achievement := &models.Achievement{
		Title:       req.Title,
		Description: req.Description,
	}
	err := s.tx(func(tx *gorm.DB) error {
		if err := s.achRepo.WithTx(tx).Create(achievement); err != nil {
			return err
		}
		doc := map[string]any{
			"title":       achievement.Title,
			"description": achievement.Description,
		}
		return s.outboxRepo.WithTx(tx).Enqueue(models.SearchIndexEntry(
			search.IndexAchievements, achievementDocID(achievement.ID), doc))
	})
	if err != nil {
		return nil, err
	}
	return achievement, nil
}

func (s *achievementService) Get(id uint) (*models.Achievement, error) {
	achievement, err := s.achRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "achievement", id)
	}
	return achievement, nil
}

func (s *achievementService) List(params models.ListParams) ([]models.Achievement, int64, error) {
	params.Normalize()
	return s.achRepo.List(params)
}

func (s *achievementService) Update(caller Caller, id uint, req models.UpdateAchievementRequest) (*models.Achievement, error) {
	if !caller.IsSuperuser {
		return nil, models.Forbidden("superuser access required")
	}
	if _, err := s.achRepo.FindByID(id); err != nil {
		return nil, notFoundIfMissing(err, "achievement", id)
	}

	fields := map[string]interface{}{}
	mirror := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
		mirror["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		mirror["description"] = *req.Description
	}
	if len(fields) == 0 {
		return s.achRepo.FindByID(id)
	}

	err := s.tx(func(tx *gorm.DB) error {
		if err := s.achRepo.WithTx(tx).Updates(id, fields); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Enqueue(models.SearchUpdateEntry(
			search.IndexAchievements, achievementDocID(id), mirror))
	})
	if err != nil {
		return nil, err
	}
	return s.achRepo.FindByID(id)
}

func (s *achievementService) Delete(caller Caller, id uint) error {
	if !caller.IsSuperuser {
		return models.Forbidden("superuser access required")
	}
	if _, err := s.achRepo.FindByID(id); err != nil {
		return notFoundIfMissing(err, "achievement", id)
	}

	return s.tx(func(tx *gorm.DB) error {
		if err := s.achRepo.WithTx(tx).Delete(id); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Enqueue(
			models.SearchDeleteEntry(search.IndexAchievements, achievementDocID(id)))
	})
}

// Toggle grants the achievement when the user lacks it and revokes it
// otherwise. Returns true when the result is a grant.
func (s *achievementService) Toggle(caller Caller, userID uuid.UUID, achievementID uint) (bool, error) {
	if !caller.IsSuperuser {
		return false, models.Forbidden("superuser access required")
	}
	achievement, err := s.achRepo.FindByID(achievementID)
	if err != nil {
		return false, notFoundIfMissing(err, "achievement", achievementID)
	}
	exists, err := s.userRepo.ExistsByID(userID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, models.NotFound(fmt.Sprintf("user %s not found", userID))
	}

	granted, err := s.achRepo.Grant(userID, achievementID)
	if err != nil {
		return false, err
	}
	if granted {
		s.mirrorGrant(userID, achievement.Title, true)
		return true, nil
	}

	if _, err := s.achRepo.Revoke(userID, achievementID); err != nil {
		return false, err
	}
	s.mirrorGrant(userID, achievement.Title, false)
	return false, nil
}

func (s *achievementService) mirrorGrant(userID uuid.UUID, title string, granted bool) {
	source := "if (!ctx._source.achievements.contains(params.title)) { ctx._source.achievements.add(params.title) }"
	if !granted {
		source = "ctx._source.achievements.removeIf(t -> t == params.title)"
	}
	script := map[string]any{
		"source": source,
		"lang":   "painless",
		"params": map[string]any{"title": title},
	}
	if err := s.outboxRepo.Enqueue(models.SearchScriptEntry(search.IndexUsers, userID.String(), script)); err != nil {
		s.logger.Warn("enqueue achievement mirror failed", zap.Error(err))
	}
}
