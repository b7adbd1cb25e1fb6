package services

import (
	"fmt"

	"eduone-core/clients"
	"eduone-core/models"
	"eduone-core/repositories"
	"eduone-core/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LessonService ...
type LessonService interface {
	Create(caller Caller, req models.CreateLessonRequest) (*models.Lesson, error)
	Get(caller Caller, id uint) (*models.Lesson, error)
	Course(caller Caller, id uint) (*models.Course, error)
	ListByCourse(caller Caller, courseID uint, params models.ListParams) ([]models.Lesson, int64, error)
	Update(caller Caller, id uint, req models.UpdateLessonRequest) (*models.Lesson, error)
	Delete(caller Caller, id uint) error
	BindTag(caller Caller, lessonID, tagID uint) error
	UnbindTag(caller Caller, lessonID, tagID uint) error
}

type lessonService struct {
	tx         TxRunner
	lessonRepo repositories.LessonRepository
	courseRepo repositories.CourseRepository
	tagRepo    repositories.TagRepository
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	outboxRepo repositories.OutboxRepository
	guard      *OwnershipGuard
	logger     *zap.Logger
}

// NewLessonService ...
func NewLessonService(
	tx TxRunner,
	lessonRepo repositories.LessonRepository,
	courseRepo repositories.CourseRepository,
	tagRepo repositories.TagRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	outboxRepo repositories.OutboxRepository,
	guard *OwnershipGuard,
	logger *zap.Logger,
) LessonService {
	return &lessonService{
		tx:         tx,
		lessonRepo: lessonRepo,
		courseRepo: courseRepo,
		tagRepo:    tagRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		outboxRepo: outboxRepo,
		guard:      guard,
		logger:     logger,
	}
}

func lessonDocID(id uint) string { return fmt.Sprintf("%d", id) }

func lessonDoc(lesson *models.Lesson, tags []string) map[string]any {
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"title":          lesson.Title,
		"description":    lesson.Description,
		"estimated_time": lesson.EstimatedTime,
		"course_id":      lesson.CourseID,
		"tags":           tags,
	}
}

func (s *lessonService) Create(caller Caller, req models.CreateLessonRequest) (*models.Lesson, error) {
	course, err := s.guard.course(caller, req.CourseID)
	if err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		Title:         req.Title,
		Description:   req.Description,
		EstimatedTime: req.EstimatedTime,
		CourseID:      req.CourseID,
	}

	err = s.tx(func(tx *gorm.DB) error {
		if err := s.lessonRepo.WithTx(tx).Create(lesson); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Enqueue(models.SearchIndexEntry(
			search.IndexLessons, lessonDocID(lesson.ID), lessonDoc(lesson, nil)))
	})
	if err != nil {
		return nil, err
	}

	s.notifyFollowers(course.UserID, clients.Notification{
		NotificationType: clients.NotifyTypeLesson,
		Title:            "Новый урок",
		Text: fmt.Sprintf("%s добавил новый урок в %s",
			usernameOf(s.userRepo, course.UserID), course.Title),
		UserID: course.UserID.String(),
	})
	return lesson, nil
}

func (s *lessonService) notifyFollowers(authorID uuid.UUID, notification clients.Notification) {
	followers, err := s.followRepo.ListFollowers(authorID)
	if err != nil {
		s.logger.Warn("follower list failed", zap.Error(err))
		return
	}
	if len(followers) == 0 {
		return
	}
	notification.Receivers = receiverIDs(followers)
	if err := s.outboxRepo.Enqueue(models.NotifyEntry(notification)); err != nil {
		s.logger.Warn("enqueue follower notification failed", zap.Error(err))
	}
}

// Get is open to any subscriber-facing read; lessons of hidden or deleted
// courses are reachable only by their author.
func (s *lessonService) Get(caller Caller, id uint) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "lesson", id)
	}
	course, err := s.courseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, notFoundIfMissing(err, "course", lesson.CourseID)
	}
	if course.IsDeleted || !course.IsVisible {
		if course.UserID != caller.ID && !caller.IsSuperuser {
			return nil, models.NotFound(fmt.Sprintf("lesson %d not found", id))
		}
	}
	return lesson, nil
}

// Course resolves the parent course with the same visibility rules as Get.
func (s *lessonService) Course(caller Caller, id uint) (*models.Course, error) {
	lesson, err := s.lessonRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "lesson", id)
	}
	course, err := s.courseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, notFoundIfMissing(err, "course", lesson.CourseID)
	}
	if course.IsDeleted || !course.IsVisible {
		if course.UserID != caller.ID && !caller.IsSuperuser {
			return nil, models.NotFound(fmt.Sprintf("lesson %d not found", id))
		}
	}
	return course, nil
}

func (s *lessonService) ListByCourse(caller Caller, courseID uint, params models.ListParams) ([]models.Lesson, int64, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, 0, notFoundIfMissing(err, "course", courseID)
	}
	if course.IsDeleted || !course.IsVisible {
		if course.UserID != caller.ID && !caller.IsSuperuser {
			return nil, 0, models.NotFound(fmt.Sprintf("course %d not found", courseID))
		}
	}
	params.Normalize()
	return s.lessonRepo.ListByCourse(courseID, params)
}

func (s *lessonService) Update(caller Caller, id uint, req models.UpdateLessonRequest) (*models.Lesson, error) {
	if _, err := s.guard.lesson(caller, id); err != nil {
		return nil, err
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
	if req.EstimatedTime != nil {
		fields["estimated_time"] = *req.EstimatedTime
		mirror["estimated_time"] = *req.EstimatedTime
	}
	if len(fields) == 0 {
		return s.lessonRepo.FindByID(id)
	}

	err := s.tx(func(tx *gorm.DB) error {
		if err := s.lessonRepo.WithTx(tx).Updates(id, fields); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Enqueue(
			models.SearchUpdateEntry(search.IndexLessons, lessonDocID(id), mirror))
	})
	if err != nil {
		return nil, err
	}
	return s.lessonRepo.FindByID(id)
}

// Delete removes the lesson and its mirror document for good. Unlike
// courses, lessons have no soft-delete tier.
func (s *lessonService) Delete(caller Caller, id uint) error {
	if _, err := s.guard.lesson(caller, id); err != nil {
		return err
	}

	return s.tx(func(tx *gorm.DB) error {
		if err := s.lessonRepo.WithTx(tx).Delete(id); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Enqueue(
			models.SearchDeleteEntry(search.IndexLessons, lessonDocID(id)))
	})
}

func (s *lessonService) BindTag(caller Caller, lessonID, tagID uint) error {
	if _, err := s.guard.lesson(caller, lessonID); err != nil {
		return err
	}
	if _, err := s.tagRepo.FindByID(tagID); err != nil {
		return notFoundIfMissing(err, "tag", tagID)
	}

	bound, err := s.tagRepo.BindToLesson(tagID, lessonID)
	if err != nil {
		return err
	}
	if !bound {
		return models.Conflict("tag is already bound to this lesson")
	}
	return s.refreshTagMirror(lessonID)
}

func (s *lessonService) UnbindTag(caller Caller, lessonID, tagID uint) error {
	if _, err := s.guard.lesson(caller, lessonID); err != nil {
		return err
	}

	unbound, err := s.tagRepo.UnbindFromLesson(tagID, lessonID)
	if err != nil {
		return err
	}
	if !unbound {
		return models.Conflict("tag is not bound to this lesson")
	}
	return s.refreshTagMirror(lessonID)
}

func (s *lessonService) refreshTagMirror(lessonID uint) error {
	titles, err := s.tagRepo.TitlesByLesson(lessonID)
	if err != nil {
		return err
	}
	if titles == nil {
		titles = []string{}
	}
	return s.outboxRepo.Enqueue(models.SearchUpdateEntry(
		search.IndexLessons, lessonDocID(lessonID), map[string]interface{}{"tags": titles}))
}
