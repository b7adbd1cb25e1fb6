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

type courseFixture struct {
	service    CourseService
	courseRepo *fakeCourseRepo
	tagRepo    *fakeTagRepo
	userRepo   *fakeUserRepo
	followRepo *fakeFollowRepo
	outboxRepo *fakeOutboxRepo
}

func newCourseFixture() *courseFixture {
	courseRepo := newFakeCourseRepo()
	lessonRepo := newFakeLessonRepo()
	categoryRepo := newFakeCategoryRepo(courseRepo)
	tagRepo := newFakeTagRepo()
	userRepo := newFakeUserRepo()
	followRepo := newFakeFollowRepo()
	outboxRepo := newFakeOutboxRepo()
	guard := NewOwnershipGuard(courseRepo, lessonRepo, newFakeHomeworkRepo(), newFakeContentRepo())

	return &courseFixture{
		service: NewCourseService(
			testTxRunner(), courseRepo, categoryRepo, tagRepo, userRepo, followRepo, outboxRepo, guard, zap.NewNop()),
		courseRepo: courseRepo,
		tagRepo:    tagRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		outboxRepo: outboxRepo,
	}
}

func (f *courseFixture) addAuthor() Caller {
	id := uuid.New()
	f.userRepo.users[id] = &models.User{ID: id, Username: "author", IsActive: true, IsAuthor: true}
	return Caller{ID: id, IsAuthor: true}
}

func TestCreateCourseRequiresAuthorRole(t *testing.T) {
	fixture := newCourseFixture()
	student := uuid.New()
	fixture.userRepo.users[student] = &models.User{ID: student, IsActive: true}

	_, err := fixture.service.Create(Caller{ID: student}, models.CreateCourseRequest{Title: "Алгоритмы"})
	assert.IsType(t, models.ErrorForbidden{}, err)
}

func TestCreateCourseIndexesMirrorDocument(t *testing.T) {
	fixture := newCourseFixture()
	author := fixture.addAuthor()

	course, err := fixture.service.Create(author, models.CreateCourseRequest{
		Title: "Алгоритмы", Description: "Базовый курс", Price: 990,
	})
	assert.NoError(t, err)
	assert.True(t, course.IsVisible)
	assert.Equal(t, author.ID, course.UserID)
	assert.Len(t, fixture.outboxRepo.byIntent(models.IntentSearchIndex), 1)
}

func TestCreateCourseNotifiesFollowers(t *testing.T) {
	fixture := newCourseFixture()
	author := fixture.addAuthor()
	follower := uuid.New()
	_, _ = fixture.followRepo.Follow(follower, author.ID)

	_, err := fixture.service.Create(author, models.CreateCourseRequest{Title: "Алгоритмы"})
	assert.NoError(t, err)

	entries := fixture.outboxRepo.byIntent(models.IntentNotify)
	if assert.Len(t, entries, 1) {
		var notification clients.Notification
		assert.NoError(t, json.Unmarshal(entries[0].Payload, &notification))
		assert.Equal(t, clients.NotifyTypeCourse, notification.NotificationType)
		assert.Equal(t, "Новый курс", notification.Title)
		assert.Equal(t, "Новый курс у author", notification.Text)
		assert.Equal(t, author.ID.String(), notification.UserID)
		assert.Equal(t, []string{follower.String()}, notification.Receivers)
	}
}

func TestCreateCourseWithoutFollowersIsSilent(t *testing.T) {
	fixture := newCourseFixture()
	author := fixture.addAuthor()

	_, err := fixture.service.Create(author, models.CreateCourseRequest{Title: "Алгоритмы"})
	assert.NoError(t, err)
	assert.Empty(t, fixture.outboxRepo.byIntent(models.IntentNotify))
}

func TestGetHidesDeletedCourseFromStrangers(t *testing.T) {
	fixture := newCourseFixture()
	author := fixture.addAuthor()
	course, _ := fixture.service.Create(author, models.CreateCourseRequest{Title: "Алгоритмы"})
	assert.NoError(t, fixture.service.Delete(author, course.ID))

	_, err := fixture.service.Get(Caller{ID: uuid.New()}, course.ID)
	assert.IsType(t, models.ErrorNotFound{}, err)

	got, err := fixture.service.Get(author, course.ID)
	assert.NoError(t, err)
	assert.True(t, got.IsDeleted)

	got, err = fixture.service.Get(Caller{ID: uuid.New(), IsSuperuser: true}, course.ID)
	assert.NoError(t, err)
	assert.True(t, got.IsDeleted)
}

func TestUpdateCoursePatchesOnlyProvidedFields(t *testing.T) {
	fixture := newCourseFixture()
	author := fixture.addAuthor()
	course, _ := fixture.service.Create(author, models.CreateCourseRequest{
		Title: "Алгоритмы", Description: "Базовый курс", Price: 990,
	})

	newTitle := "Алгоритмы и структуры данных"
	updated, err := fixture.service.Update(author, course.ID, models.UpdateCourseRequest{Title: &newTitle})
	assert.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "Базовый курс", updated.Description)
	assert.Equal(t, 990, updated.Price)
	assert.Len(t, fixture.outboxRepo.byIntent(models.IntentSearchUpdate), 1)
}

func TestUpdateCourseByStrangerIsForbidden(t *testing.T) {
	fixture := newCourseFixture()
	author := fixture.addAuthor()
	course, _ := fixture.service.Create(author, models.CreateCourseRequest{Title: "Алгоритмы"})

	newTitle := "x"
	_, err := fixture.service.Update(Caller{ID: uuid.New()}, course.ID, models.UpdateCourseRequest{Title: &newTitle})
	assert.IsType(t, models.ErrorForbidden{}, err)
}

func TestDeleteTwiceIsConflictAndRestoreReverses(t *testing.T) {
	fixture := newCourseFixture()
	author := fixture.addAuthor()
	course, _ := fixture.service.Create(author, models.CreateCourseRequest{Title: "Алгоритмы"})

	assert.NoError(t, fixture.service.Delete(author, course.ID))
	err := fixture.service.Delete(author, course.ID)
	assert.IsType(t, models.ErrorConflict{}, err)

	assert.NoError(t, fixture.service.Restore(author, course.ID))
	err = fixture.service.Restore(author, course.ID)
	assert.IsType(t, models.ErrorConflict{}, err)

	got, err := fixture.service.Get(Caller{ID: uuid.New()}, course.ID)
	assert.NoError(t, err)
	assert.False(t, got.IsDeleted)
}

func TestSetVisibilityRejectsNoop(t *testing.T) {
	fixture := newCourseFixture()
	author := fixture.addAuthor()
	course, _ := fixture.service.Create(author, models.CreateCourseRequest{Title: "Алгоритмы"})

	err := fixture.service.SetVisibility(author, course.ID, true)
	assert.IsType(t, models.ErrorConflict{}, err)

	assert.NoError(t, fixture.service.SetVisibility(author, course.ID, false))
	assert.False(t, fixture.courseRepo.courses[course.ID].IsVisible)
}

func TestBindTagDuplicateIsConflict(t *testing.T) {
	fixture := newCourseFixture()
	author := fixture.addAuthor()
	course, _ := fixture.service.Create(author, models.CreateCourseRequest{Title: "Алгоритмы"})
	tag := &models.Tag{Title: "go"}
	created, err := fixture.tagRepo.Create(tag)
	assert.True(t, created)
	assert.NoError(t, err)

	assert.NoError(t, fixture.service.BindTag(author, course.ID, tag.ID))
	err = fixture.service.BindTag(author, course.ID, tag.ID)
	assert.IsType(t, models.ErrorConflict{}, err)

	assert.NoError(t, fixture.service.UnbindTag(author, course.ID, tag.ID))
	err = fixture.service.UnbindTag(author, course.ID, tag.ID)
	assert.IsType(t, models.ErrorConflict{}, err)
}

func TestUnbindTagNotBoundIsConflict(t *testing.T) {
	fixture := newCourseFixture()
	author := fixture.addAuthor()
	course, _ := fixture.service.Create(author, models.CreateCourseRequest{Title: "Алгоритмы"})
	tag := &models.Tag{Title: "go"}
	_, err := fixture.tagRepo.Create(tag)
	assert.NoError(t, err)

	err = fixture.service.UnbindTag(author, course.ID, tag.ID)
	assert.IsType(t, models.ErrorConflict{}, err)
}
