package services

import (
	"eduone-core/models"
	"eduone-core/repositories"
)

// HomeworkService ...
type HomeworkService interface {
	Create(caller Caller, req models.CreateHomeworkRequest) (*models.Homework, error)
	Get(caller Caller, id uint) (*models.Homework, error)
	Lesson(caller Caller, id uint) (*models.Lesson, error)
	ListByLesson(caller Caller, lessonID uint) ([]models.Homework, error)
	Update(caller Caller, id uint, req models.UpdateHomeworkRequest) (*models.Homework, error)
	Delete(caller Caller, id uint) error
}

type homeworkService struct {
	homeworkRepo repositories.HomeworkRepository
	lessonRepo   repositories.LessonRepository
	guard        *OwnershipGuard
}

// NewHomeworkService ...
func NewHomeworkService(
	homeworkRepo repositories.HomeworkRepository,
	lessonRepo repositories.LessonRepository,
	guard *OwnershipGuard,
) HomeworkService {
	return &homeworkService{
		homeworkRepo: homeworkRepo,
		lessonRepo:   lessonRepo,
		guard:        guard,
	}
}

func (s *homeworkService) Create(caller Caller, req models.CreateHomeworkRequest) (*models.Homework, error) {
	if _, err := s.guard.lesson(caller, req.LessonID); err != nil {
		return nil, err
	}

	homework := &models.Homework{
		Title:       req.Title,
		Description: req.Description,
		LessonID:    req.LessonID,
	}
	if err := s.homeworkRepo.Create(homework); err != nil {
		return nil, err
	}
	return homework, nil
}

func (s *homeworkService) Get(caller Caller, id uint) (*models.Homework, error) {
	homework, err := s.homeworkRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "homework", id)
	}
	return homework, nil
}

func (s *homeworkService) Lesson(caller Caller, id uint) (*models.Lesson, error) {
	homework, err := s.homeworkRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "homework", id)
	}
	lesson, err := s.lessonRepo.FindByID(homework.LessonID)
	if err != nil {
		return nil, notFoundIfMissing(err, "lesson", homework.LessonID)
	}
	return lesson, nil
}

func (s *homeworkService) ListByLesson(caller Caller, lessonID uint) ([]models.Homework, error) {
	if _, err := s.lessonRepo.FindByID(lessonID); err != nil {
		return nil, notFoundIfMissing(err, "lesson", lessonID)
	}
	return s.homeworkRepo.ListByLesson(lessonID)
}

func (s *homeworkService) Update(caller Caller, id uint, req models.UpdateHomeworkRequest) (*models.Homework, error) {
	if _, err := s.guard.homework(caller, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		return s.homeworkRepo.FindByID(id)
	}

	if err := s.homeworkRepo.Updates(id, fields); err != nil {
		return nil, err
	}
	return s.homeworkRepo.FindByID(id)
}

func (s *homeworkService) Delete(caller Caller, id uint) error {
	if _, err := s.guard.homework(caller, id); err != nil {
		return err
	}
	return s.homeworkRepo.Delete(id)
}
