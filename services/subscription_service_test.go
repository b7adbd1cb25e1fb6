package services

import (
	"encoding/json"
	"testing"

	"eduone-core/clients"
	"eduone-core/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type subscriptionFixture struct {
	service    SubscriptionService
	subRepo    *fakeSubscriptionRepo
	courseRepo *fakeCourseRepo
	userRepo   *fakeUserRepo
	outboxRepo *fakeOutboxRepo
}

func newSubscriptionFixture() *subscriptionFixture {
	courseRepo := newFakeCourseRepo()
	subRepo := newFakeSubscriptionRepo(courseRepo)
	userRepo := newFakeUserRepo()
	outboxRepo := newFakeOutboxRepo()
	evaluator := NewAchievementEvaluator(newFakeAchievementRepo(), outboxRepo, zap.NewNop())

	return &subscriptionFixture{
		service: NewSubscriptionService(
			testTxRunner(), subRepo, courseRepo, userRepo, outboxRepo, evaluator, zap.NewNop()),
		subRepo:    subRepo,
		courseRepo: courseRepo,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
	}
}

func (f *subscriptionFixture) addUser() uuid.UUID {
	id := uuid.New()
	f.userRepo.users[id] = &models.User{ID: id, IsActive: true}
	return id
}

func (f *subscriptionFixture) addCourse(authorID uuid.UUID) uint {
	course := &models.Course{UserID: authorID, Title: "Практикум по Go", IsVisible: true}
	_ = f.courseRepo.Create(course)
	return course.ID
}

func TestSubscribeEnrollsAndCountsTheSale(t *testing.T) {
	fixture := newSubscriptionFixture()
	author := fixture.addUser()
	student := fixture.addUser()
	courseID := fixture.addCourse(author)

	err := fixture.service.Subscribe(student, courseID)
	assert.NoError(t, err)

	subscribed, _ := fixture.subRepo.IsSubscribed(student, courseID)
	assert.True(t, subscribed)
	assert.Equal(t, 1, fixture.userRepo.sold[author])

	entries := fixture.outboxRepo.byIntent(models.IntentNotify)
	if assert.Len(t, entries, 1) {
		var notification clients.Notification
		assert.NoError(t, json.Unmarshal(entries[0].Payload, &notification))
		assert.Equal(t, clients.NotifyTypeSubscription, notification.NotificationType)
		assert.Equal(t, "Подписка", notification.Title)
		assert.Equal(t, student.String(), notification.UserID)
		assert.Equal(t, []string{author.String()}, notification.Receivers)
	}
}

func TestSubscribeTwiceIsConflictAndSellsOnce(t *testing.T) {
	fixture := newSubscriptionFixture()
	author := fixture.addUser()
	student := fixture.addUser()
	courseID := fixture.addCourse(author)

	assert.NoError(t, fixture.service.Subscribe(student, courseID))
	err := fixture.service.Subscribe(student, courseID)
	assert.IsType(t, models.ErrorConflict{}, err)
	assert.Equal(t, 1, fixture.userRepo.sold[author])
}

func TestSubscribeToOwnCourseIsRejected(t *testing.T) {
	fixture := newSubscriptionFixture()
	author := fixture.addUser()
	courseID := fixture.addCourse(author)

	err := fixture.service.Subscribe(author, courseID)
	assert.IsType(t, models.ErrorInvalidOperation{}, err)
}

func TestSubscribeToHiddenOrDeletedCourseIsNotFound(t *testing.T) {
	fixture := newSubscriptionFixture()
	author := fixture.addUser()
	student := fixture.addUser()

	hiddenID := fixture.addCourse(author)
	fixture.courseRepo.courses[hiddenID].IsVisible = false
	err := fixture.service.Subscribe(student, hiddenID)
	assert.IsType(t, models.ErrorNotFound{}, err)

	deletedID := fixture.addCourse(author)
	fixture.courseRepo.courses[deletedID].IsDeleted = true
	err = fixture.service.Subscribe(student, deletedID)
	assert.IsType(t, models.ErrorNotFound{}, err)
}

func TestUnsubscribeKeepsLifetimeSales(t *testing.T) {
	fixture := newSubscriptionFixture()
	author := fixture.addUser()
	student := fixture.addUser()
	courseID := fixture.addCourse(author)

	assert.NoError(t, fixture.service.Subscribe(student, courseID))
	assert.NoError(t, fixture.service.Unsubscribe(student, courseID))
	assert.Equal(t, 1, fixture.userRepo.sold[author])

	subscribed, _ := fixture.subRepo.IsSubscribed(student, courseID)
	assert.False(t, subscribed)
}

func TestUnsubscribeWithoutSubscriptionIsConflict(t *testing.T) {
	fixture := newSubscriptionFixture()
	author := fixture.addUser()
	student := fixture.addUser()
	courseID := fixture.addCourse(author)

	err := fixture.service.Unsubscribe(student, courseID)
	assert.IsType(t, models.ErrorConflict{}, err)
}

func TestGraduateRequiresSubscription(t *testing.T) {
	fixture := newSubscriptionFixture()
	author := fixture.addUser()
	student := fixture.addUser()
	courseID := fixture.addCourse(author)

	err := fixture.service.Graduate(student, courseID)
	assert.IsType(t, models.ErrorInvalidOperation{}, err)
}

func TestGraduateOnceThenConflict(t *testing.T) {
	fixture := newSubscriptionFixture()
	author := fixture.addUser()
	student := fixture.addUser()
	courseID := fixture.addCourse(author)

	assert.NoError(t, fixture.service.Subscribe(student, courseID))
	notifyBefore := len(fixture.outboxRepo.byIntent(models.IntentNotify))

	assert.NoError(t, fixture.service.Graduate(student, courseID))
	assert.Len(t, fixture.outboxRepo.byIntent(models.IntentNotify), notifyBefore+1)

	err := fixture.service.Graduate(student, courseID)
	assert.IsType(t, models.ErrorConflict{}, err)
}
