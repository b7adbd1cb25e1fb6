package services

import (
	"testing"

	"eduone-core/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestReportCommentsEvaluatesKnownUsersOnly(t *testing.T) {
	userRepo := newFakeUserRepo()
	achievementRepo := newFakeAchievementRepo()
	achievementRepo.seed("1000 комментариев")
	evaluator := NewAchievementEvaluator(achievementRepo, newFakeOutboxRepo(), zap.NewNop())
	service := NewInternalService(
		userRepo, newFakeCourseRepo(), newFakeLessonRepo(), newFakeHomeworkRepo(),
		achievementRepo, newFakeFollowRepo(), evaluator)

	userID := uuid.New()
	userRepo.users[userID] = &models.User{ID: userID, IsActive: true}

	assert.NoError(t, service.ReportComments(userID, 1500))
	titles, _ := achievementRepo.ListGrantedTitles(userID)
	assert.Equal(t, []string{"1000 комментариев"}, titles)

	// Unknown commenters are accepted without effect.
	stranger := uuid.New()
	assert.NoError(t, service.ReportComments(stranger, 1500))
	titles, _ = achievementRepo.ListGrantedTitles(stranger)
	assert.Empty(t, titles)
}

func TestExistenceChecks(t *testing.T) {
	userRepo := newFakeUserRepo()
	courseRepo := newFakeCourseRepo()
	lessonRepo := newFakeLessonRepo()
	evaluator := NewAchievementEvaluator(newFakeAchievementRepo(), newFakeOutboxRepo(), zap.NewNop())
	followRepo := newFakeFollowRepo()
	service := NewInternalService(
		userRepo, courseRepo, lessonRepo, newFakeHomeworkRepo(),
		newFakeAchievementRepo(), followRepo, evaluator)

	userID := uuid.New()
	userRepo.users[userID] = &models.User{ID: userID}
	course := &models.Course{IsVisible: true}
	_ = courseRepo.Create(course)
	lesson := &models.Lesson{CourseID: course.ID}
	_ = lessonRepo.Create(lesson)

	exists, err := service.UserExists(userID)
	assert.NoError(t, err)
	assert.True(t, exists)
	exists, _ = service.UserExists(uuid.New())
	assert.False(t, exists)

	exists, _ = service.CourseExists(course.ID)
	assert.True(t, exists)
	exists, _ = service.LessonExists(lesson.ID)
	assert.True(t, exists)
	exists, _ = service.LessonExists(999)
	assert.False(t, exists)
}
