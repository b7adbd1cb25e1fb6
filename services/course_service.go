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

// CourseService ...
type CourseService interface {
	Create(caller Caller, req models.CreateCourseRequest) (*models.Course, error)
	Get(caller Caller, id uint) (*models.Course, error)
	List(params models.ListParams) ([]models.Course, int64, error)
	ListByAuthor(authorID uuid.UUID, params models.ListParams) ([]models.Course, int64, error)
	ListDeleted(caller Caller, params models.ListParams) ([]models.Course, int64, error)
	ListSubscribed(caller Caller, params models.ListParams) ([]models.Course, int64, error)
	ListByCategory(categoryID uint, params models.ListParams) ([]models.Course, int64, error)
	Update(caller Caller, id uint, req models.UpdateCourseRequest) (*models.Course, error)
	Delete(caller Caller, id uint) error
	Restore(caller Caller, id uint) error
	SetVisibility(caller Caller, id uint, visible bool) error
	AssignCategory(caller Caller, courseID, categoryID uint) error
	BindTag(caller Caller, courseID, tagID uint) error
	UnbindTag(caller Caller, courseID, tagID uint) error
}

type courseService struct {
	tx           TxRunner
	courseRepo   repositories.CourseRepository
	categoryRepo repositories.CategoryRepository
	tagRepo      repositories.TagRepository
	userRepo     repositories.UserRepository
	followRepo   repositories.FollowRepository
	outboxRepo   repositories.OutboxRepository
	guard        *OwnershipGuard
	logger       *zap.Logger
}

// NewCourseService ...
func NewCourseService(
	tx TxRunner,
	courseRepo repositories.CourseRepository,
	categoryRepo repositories.CategoryRepository,
	tagRepo repositories.TagRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	outboxRepo repositories.OutboxRepository,
	guard *OwnershipGuard,
	logger *zap.Logger,
) CourseService {
	return &courseService{
		tx:           tx,
		courseRepo:   courseRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		userRepo:     userRepo,
		followRepo:   followRepo,
		outboxRepo:   outboxRepo,
		guard:        guard,
		logger:       logger,
	}
}

func courseDocID(id uint) string { return fmt.Sprintf("%d", id) }

// courseDoc builds the search mirror document.
func courseDoc(course *models.Course, author string) map[string]any {
	categories := []string{}
	if course.Category != nil {
		categories = append(categories, course.Category.Title)
	}
	return map[string]any{
		"title":       course.Title,
		"description": course.Description,
		"author":      author,
		"author_id":   course.UserID.String(),
		"category":    categories,
		"is_deleted":  course.IsDeleted,
	}
}

func (s *courseService) Create(caller Caller, req models.CreateCourseRequest) (*models.Course, error) {
	if !caller.IsAuthor && !caller.IsSuperuser {
		return nil, models.Forbidden("only authors can create courses")
	}
	author, err := s.userRepo.FindByID(caller.ID)
	if err != nil {
		return nil, notFoundIfMissing(err, "user", caller.ID)
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsVisible:   true,
		UserID:      caller.ID,
	}

	err = s.tx(func(tx *gorm.DB) error {
		if err := s.courseRepo.WithTx(tx).Create(course); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Enqueue(models.SearchIndexEntry(
			search.IndexCourses, courseDocID(course.ID), courseDoc(course, author.Username)))
	})
	if err != nil {
		return nil, err
	}

	s.notifyFollowers(caller.ID, clients.Notification{
		NotificationType: clients.NotifyTypeCourse,
		Title:            "Новый курс",
		Text:             fmt.Sprintf("Новый курс у %s", author.Username),
		UserID:           caller.ID.String(),
	})
	return course, nil
}

// notifyFollowers announces an author event to everyone following the
// author. Dropped when the author has no followers.
func (s *courseService) notifyFollowers(authorID uuid.UUID, notification clients.Notification) {
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

// Get hides deleted and invisible courses from everyone but the author
// and superusers.
func (s *courseService) Get(caller Caller, id uint) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "course", id)
	}
	if course.IsDeleted || !course.IsVisible {
		if course.UserID != caller.ID && !caller.IsSuperuser {
			return nil, models.NotFound(fmt.Sprintf("course %d not found", id))
		}
	}
	return course, nil
}

func (s *courseService) List(params models.ListParams) ([]models.Course, int64, error) {
	params.Normalize()
	return s.courseRepo.List(params)
}

func (s *courseService) ListByAuthor(authorID uuid.UUID, params models.ListParams) ([]models.Course, int64, error) {
	params.Normalize()
	return s.courseRepo.ListByAuthor(authorID, params)
}

// ListDeleted shows the caller their own soft-deleted courses so they can
// restore them.
func (s *courseService) ListDeleted(caller Caller, params models.ListParams) ([]models.Course, int64, error) {
	params.Normalize()
	return s.courseRepo.ListDeletedByAuthor(caller.ID, params)
}

func (s *courseService) ListSubscribed(caller Caller, params models.ListParams) ([]models.Course, int64, error) {
	params.Normalize()
	return s.courseRepo.ListSubscribed(caller.ID, params)
}

func (s *courseService) ListByCategory(categoryID uint, params models.ListParams) ([]models.Course, int64, error) {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		return nil, 0, notFoundIfMissing(err, "category", categoryID)
	}
	params.Normalize()
	return s.courseRepo.ListByCategory(categoryID, params)
}

func (s *courseService) Update(caller Caller, id uint, req models.UpdateCourseRequest) (*models.Course, error) {
	if _, err := s.guard.course(caller, id); err != nil {
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
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.StartDate != nil {
		fields["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		fields["end_date"] = *req.EndDate
	}
	if len(fields) == 0 {
		return s.courseRepo.FindByID(id)
	}

	err := s.tx(func(tx *gorm.DB) error {
		if err := s.courseRepo.WithTx(tx).Updates(id, fields); err != nil {
			return err
		}
		if len(mirror) == 0 {
			return nil
		}
		return s.outboxRepo.WithTx(tx).Enqueue(
			models.SearchUpdateEntry(search.IndexCourses, courseDocID(id), mirror))
	})
	if err != nil {
		return nil, err
	}
	return s.courseRepo.FindByID(id)
}

// Delete soft-deletes: the row survives and the mirror document is
// flagged instead of removed, so the course can be restored.
func (s *courseService) Delete(caller Caller, id uint) error {
	course, err := s.guard.course(caller, id)
	if err != nil {
		return err
	}
	if course.IsDeleted {
		return models.Conflict("course is already deleted")
	}

	return s.tx(func(tx *gorm.DB) error {
		if err := s.courseRepo.WithTx(tx).SoftDelete(id); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Enqueue(models.SearchUpdateEntry(
			search.IndexCourses, courseDocID(id), map[string]interface{}{"is_deleted": true}))
	})
}

func (s *courseService) Restore(caller Caller, id uint) error {
	course, err := s.guard.course(caller, id)
	if err != nil {
		return err
	}
	if !course.IsDeleted {
		return models.Conflict("course is not deleted")
	}

	return s.tx(func(tx *gorm.DB) error {
		if err := s.courseRepo.WithTx(tx).Restore(id); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Enqueue(models.SearchUpdateEntry(
			search.IndexCourses, courseDocID(id), map[string]interface{}{"is_deleted": false}))
	})
}

// SetVisibility hides or shows the course without touching the deleted
// flag. Hidden courses stay in the mirror; list queries filter them out
// on the primary side.
func (s *courseService) SetVisibility(caller Caller, id uint, visible bool) error {
	course, err := s.guard.course(caller, id)
	if err != nil {
		return err
	}
	if course.IsVisible == visible {
		return models.Conflict("course visibility is already in the requested state")
	}
	return s.courseRepo.SetVisibility(id, visible)
}

func (s *courseService) AssignCategory(caller Caller, courseID, categoryID uint) error {
	if _, err := s.guard.course(caller, courseID); err != nil {
		return err
	}
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		return notFoundIfMissing(err, "category", categoryID)
	}

	return s.tx(func(tx *gorm.DB) error {
		if err := s.categoryRepo.WithTx(tx).AssignToCourse(categoryID, courseID); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Enqueue(models.SearchUpdateEntry(
			search.IndexCourses, courseDocID(courseID),
			map[string]interface{}{"category": []string{category.Title}}))
	})
}

func (s *courseService) BindTag(caller Caller, courseID, tagID uint) error {
	if _, err := s.guard.course(caller, courseID); err != nil {
		return err
	}
	if _, err := s.tagRepo.FindByID(tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NotFound(fmt.Sprintf("tag %d not found", tagID))
		}
		return err
	}

	bound, err := s.tagRepo.BindToCourse(tagID, courseID)
	if err != nil {
		return err
	}
	if !bound {
		return models.Conflict("tag is already bound to this course")
	}
	return nil
}

func (s *courseService) UnbindTag(caller Caller, courseID, tagID uint) error {
	if _, err := s.guard.course(caller, courseID); err != nil {
		return err
	}

	unbound, err := s.tagRepo.UnbindFromCourse(tagID, courseID)
	if err != nil {
		return err
	}
	if !unbound {
		return models.Conflict("tag is not bound to this course")
	}
	return nil
}
