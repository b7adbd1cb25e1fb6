package services

import (
	"testing"

	"eduone-core/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestEvaluator(achievementRepo *fakeAchievementRepo, outboxRepo *fakeOutboxRepo) *AchievementEvaluator {
	return NewAchievementEvaluator(achievementRepo, outboxRepo, zap.NewNop())
}

func TestEvaluateFollowersGrantsEveryCrossedTier(t *testing.T) {
	achievementRepo := newFakeAchievementRepo()
	achievementRepo.seed("1000 подписчиков", "10000 подписчиков", "100000 подписчиков")
	outboxRepo := newFakeOutboxRepo()
	evaluator := newTestEvaluator(achievementRepo, outboxRepo)
	userID := uuid.New()

	evaluator.EvaluateFollowers(userID, 12000)

	titles, err := achievementRepo.ListGrantedTitles(userID)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"1000 подписчиков", "10000 подписчиков"}, titles)
}

func TestEvaluateBelowThresholdGrantsNothing(t *testing.T) {
	achievementRepo := newFakeAchievementRepo()
	achievementRepo.seed("1000 подписчиков")
	outboxRepo := newFakeOutboxRepo()
	evaluator := newTestEvaluator(achievementRepo, outboxRepo)
	userID := uuid.New()

	evaluator.EvaluateFollowers(userID, 999)

	assert.Empty(t, achievementRepo.grants)
	assert.Empty(t, outboxRepo.entries)
}

func TestEvaluateSkipsMissingCatalogTitles(t *testing.T) {
	achievementRepo := newFakeAchievementRepo()
	achievementRepo.seed("10000 подписчиков")
	outboxRepo := newFakeOutboxRepo()
	evaluator := newTestEvaluator(achievementRepo, outboxRepo)
	userID := uuid.New()

	evaluator.EvaluateFollowers(userID, 150000)

	titles, err := achievementRepo.ListGrantedTitles(userID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"10000 подписчиков"}, titles)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	achievementRepo := newFakeAchievementRepo()
	achievementRepo.seed("1 обучающий ролик", "10 обучающих роликов")
	outboxRepo := newFakeOutboxRepo()
	evaluator := newTestEvaluator(achievementRepo, outboxRepo)
	userID := uuid.New()

	evaluator.EvaluateVideos(userID, 15)
	firstEntries := len(outboxRepo.entries)
	evaluator.EvaluateVideos(userID, 16)

	titles, err := achievementRepo.ListGrantedTitles(userID)
	assert.NoError(t, err)
	assert.Len(t, titles, 2)
	assert.Equal(t, firstEntries, len(outboxRepo.entries), "repeat evaluation must not re-announce grants")
}

func TestGrantEnqueuesSearchAndNotification(t *testing.T) {
	achievementRepo := newFakeAchievementRepo()
	achievementRepo.seed("100 студентов на курсах")
	outboxRepo := newFakeOutboxRepo()
	evaluator := newTestEvaluator(achievementRepo, outboxRepo)
	userID := uuid.New()

	evaluator.EvaluateSubscribers(userID, 100)

	scripts := outboxRepo.byIntent(models.IntentSearchScript)
	notifications := outboxRepo.byIntent(models.IntentNotify)
	assert.Len(t, scripts, 1)
	assert.Len(t, notifications, 1)
	assert.Equal(t, userID.String(), scripts[0].DocID)
}

func TestEvaluateCommentsUsesReportedTotal(t *testing.T) {
	achievementRepo := newFakeAchievementRepo()
	achievementRepo.seed("1000 комментариев", "10000 комментариев", "100000 комментариев")
	outboxRepo := newFakeOutboxRepo()
	evaluator := newTestEvaluator(achievementRepo, outboxRepo)
	userID := uuid.New()

	evaluator.EvaluateComments(userID, 10500)

	titles, err := achievementRepo.ListGrantedTitles(userID)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"1000 комментариев", "10000 комментариев"}, titles)
}
