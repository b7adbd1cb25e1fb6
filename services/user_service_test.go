package services

import (
	"testing"

	"eduone-core/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type userFixture struct {
	service    UserService
	userRepo   *fakeUserRepo
	followRepo *fakeFollowRepo
	outboxRepo *fakeOutboxRepo
	counters   *fakeCounterStore
}

func newUserFixture() *userFixture {
	userRepo := newFakeUserRepo()
	followRepo := newFakeFollowRepo()
	outboxRepo := newFakeOutboxRepo()
	counters := newFakeCounterStore()

	return &userFixture{
		service:    NewUserService(testTxRunner(), userRepo, followRepo, outboxRepo, counters, zap.NewNop()),
		userRepo:   userRepo,
		followRepo: followRepo,
		outboxRepo: outboxRepo,
		counters:   counters,
	}
}

func (f *userFixture) addUser() uuid.UUID {
	id := uuid.New()
	f.userRepo.users[id] = &models.User{ID: id, Username: "ivan", IsActive: true}
	return id
}

func TestGetAttachesCachedCounters(t *testing.T) {
	fixture := newUserFixture()
	userID := fixture.addUser()
	assert.NoError(t, fixture.counters.SetFollowCounts(nil, userID, 7, 3))
	assert.NoError(t, fixture.counters.SetPostsCount(nil, userID, 12))

	user, err := fixture.service.Get(Caller{}, userID)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), user.FollowersCount)
	assert.Equal(t, int64(3), user.FollowingCount)
	assert.Equal(t, int64(12), user.PostsCount)
}

func TestGetReportsFollowStateForOtherCallers(t *testing.T) {
	fixture := newUserFixture()
	viewer := fixture.addUser()
	target := fixture.addUser()
	_, err := fixture.followRepo.Follow(viewer, target)
	assert.NoError(t, err)

	user, err := fixture.service.Get(Caller{ID: viewer}, target)
	assert.NoError(t, err)
	assert.True(t, user.IsFollowed)

	user, err = fixture.service.Get(Caller{ID: target}, target)
	assert.NoError(t, err)
	assert.False(t, user.IsFollowed)
}

func TestUpdateByStrangerIsForbidden(t *testing.T) {
	fixture := newUserFixture()
	target := fixture.addUser()

	name := "hacker"
	_, err := fixture.service.Update(Caller{ID: uuid.New()}, target, models.UpdateUserRequest{Username: &name})
	assert.IsType(t, models.ErrorForbidden{}, err)
}

func TestUpdateUsernamePropagatesToCourseDocuments(t *testing.T) {
	fixture := newUserFixture()
	userID := fixture.addUser()

	name := "ivan_petrov"
	updated, err := fixture.service.Update(Caller{ID: userID}, userID, models.UpdateUserRequest{Username: &name})
	assert.NoError(t, err)
	assert.Equal(t, name, updated.Username)

	assert.Len(t, fixture.outboxRepo.byIntent(models.IntentSearchUpdate), 1)
	assert.Len(t, fixture.outboxRepo.byIntent(models.IntentSearchUpdateByQuery), 1)
}

func TestUpdateWithoutMirroredFieldsSkipsSearch(t *testing.T) {
	fixture := newUserFixture()
	userID := fixture.addUser()

	phone := "+79990000000"
	_, err := fixture.service.Update(Caller{ID: userID}, userID, models.UpdateUserRequest{Phone: &phone})
	assert.NoError(t, err)
	assert.Empty(t, fixture.outboxRepo.entries)
}

func TestDeactivateDropsSearchDocument(t *testing.T) {
	fixture := newUserFixture()
	userID := fixture.addUser()

	assert.NoError(t, fixture.service.Deactivate(Caller{ID: userID}, userID))
	assert.False(t, fixture.userRepo.users[userID].IsActive)
	assert.Len(t, fixture.outboxRepo.byIntent(models.IntentSearchDelete), 1)

	err := fixture.service.Deactivate(Caller{ID: uuid.New()}, userID)
	assert.IsType(t, models.ErrorForbidden{}, err)
}

func TestPromoteAuthorRequiresSuperuser(t *testing.T) {
	fixture := newUserFixture()
	userID := fixture.addUser()

	err := fixture.service.PromoteAuthor(Caller{ID: userID}, userID)
	assert.IsType(t, models.ErrorForbidden{}, err)

	assert.NoError(t, fixture.service.PromoteAuthor(Caller{IsSuperuser: true}, userID))
	assert.True(t, fixture.userRepo.users[userID].IsAuthor)
}
