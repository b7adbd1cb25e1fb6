package services

import (
	"errors"
	"fmt"

	"eduone-core/clients"
	"eduone-core/models"
	"eduone-core/repositories"
	"eduone-core/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// statRule pairs a counter threshold with the exact catalog title of the
// achievement it unlocks. Titles are the lookup key: if the catalog has no
// achievement under the title, the rule is skipped without error.
type statRule struct {
	threshold int64
	title     string
}

var (
	followerRules = []statRule{
		{1000, "1000 подписчиков"},
		{10000, "10000 подписчиков"},
		{100000, "100000 подписчиков"},
	}
	graduateRules = []statRule{
		{100, "100 студентов прошли курсы"},
		{1000, "1000 студентов прошли курсы"},
		{10000, "10000 студентов прошли курсы"},
	}
	subscriberRules = []statRule{
		{100, "100 студентов на курсах"},
		{1000, "1000 студентов на курсах"},
		{10000, "10000 студентов на курсах"},
	}
	videoRules = []statRule{
		{1, "1 обучающий ролик"},
		{10, "10 обучающих роликов"},
		{100, "100 обучающих роликов"},
	}
	commentRules = []statRule{
		{1000, "1000 комментариев"},
		{10000, "10000 комментариев"},
		{100000, "100000 комментариев"},
	}
)

// AchievementEvaluator awards threshold achievements after activity
// counters change. Grants are idempotent, so re-evaluating the same
// counter is always safe.
type AchievementEvaluator struct {
	achievementRepo repositories.AchievementRepository
	outboxRepo      repositories.OutboxRepository
	logger          *zap.Logger
}

// NewAchievementEvaluator ...
func NewAchievementEvaluator(
	achievementRepo repositories.AchievementRepository,
	outboxRepo repositories.OutboxRepository,
	logger *zap.Logger,
) *AchievementEvaluator {
	return &AchievementEvaluator{
		achievementRepo: achievementRepo,
		outboxRepo:      outboxRepo,
		logger:          logger,
	}
}

// apply checks every rule independently. Each crossed threshold gets its
// own grant attempt so a user arriving late still collects earlier tiers.
func (e *AchievementEvaluator) apply(userID uuid.UUID, count int64, rules []statRule) {
	for _, rule := range rules {
		if count < rule.threshold {
			continue
		}

		achievement, err := e.achievementRepo.FindByTitle(rule.title)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				e.logger.Warn("achievement lookup failed",
					zap.String("title", rule.title), zap.Error(err))
			}
			continue
		}

		granted, err := e.achievementRepo.Grant(userID, achievement.ID)
		if err != nil {
			e.logger.Warn("achievement grant failed",
				zap.String("title", rule.title), zap.Error(err))
			continue
		}
		if !granted {
			continue
		}

		e.afterGrant(userID, achievement)
	}
}

// afterGrant mirrors the new grant to the users search document and
// notifies the user. Both go through the outbox.
func (e *AchievementEvaluator) afterGrant(userID uuid.UUID, achievement *models.Achievement) {
	script := map[string]any{
		"source": "if (!ctx._source.achievements.contains(params.title)) { ctx._source.achievements.add(params.title) }",
		"lang":   "painless",
		"params": map[string]any{"title": achievement.Title},
	}
	if err := e.outboxRepo.Enqueue(models.SearchScriptEntry(search.IndexUsers, userID.String(), script)); err != nil {
		e.logger.Warn("enqueue search update for grant failed", zap.Error(err))
	}

	notification := clients.Notification{
		NotificationType: clients.NotifyTypeAchievement,
		Title:            achievement.Title,
		Text:             fmt.Sprintf("Вы получили достижение «%s»", achievement.Title),
		UserID:           userID.String(),
		Receivers:        []string{userID.String()},
	}
	if err := e.outboxRepo.Enqueue(models.NotifyEntry(notification)); err != nil {
		e.logger.Warn("enqueue notification for grant failed", zap.Error(err))
	}
}

// EvaluateFollowers ...
func (e *AchievementEvaluator) EvaluateFollowers(userID uuid.UUID, count int64) {
	e.apply(userID, count, followerRules)
}

// EvaluateGraduates ...
func (e *AchievementEvaluator) EvaluateGraduates(userID uuid.UUID, count int64) {
	e.apply(userID, count, graduateRules)
}

// EvaluateSubscribers ...
func (e *AchievementEvaluator) EvaluateSubscribers(userID uuid.UUID, count int64) {
	e.apply(userID, count, subscriberRules)
}

// EvaluateVideos ...
func (e *AchievementEvaluator) EvaluateVideos(userID uuid.UUID, count int64) {
	e.apply(userID, count, videoRules)
}

// EvaluateComments takes the comment total reported by the discussion
// service; this service keeps no comment store of its own.
func (e *AchievementEvaluator) EvaluateComments(userID uuid.UUID, count int64) {
	e.apply(userID, count, commentRules)
}
