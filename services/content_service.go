package services

import (
	"eduone-core/models"
	"eduone-core/repositories"
)

// ContentService ...
type ContentService interface {
	Create(caller Caller, req models.CreateContentRequest) (*models.Content, error)
	Get(caller Caller, id uint) (*models.Content, error)
	ListByLesson(caller Caller, lessonID uint) ([]models.Content, error)
	Delete(caller Caller, id uint) error
}

type contentService struct {
	contentRepo repositories.ContentRepository
	lessonRepo  repositories.LessonRepository
	guard       *OwnershipGuard
}

// NewContentService ...
func NewContentService(
	contentRepo repositories.ContentRepository,
	lessonRepo repositories.LessonRepository,
	guard *OwnershipGuard,
) ContentService {
	return &contentService{
		contentRepo: contentRepo,
		lessonRepo:  lessonRepo,
		guard:       guard,
	}
}

func (s *contentService) Create(caller Caller, req models.CreateContentRequest) (*models.Content, error) {
	if _, err := s.guard.lesson(caller, req.LessonID); err != nil {
		return nil, err
	}

	content := &models.Content{
		Text:     req.Text,
		LessonID: req.LessonID,
	}
	if err := s.contentRepo.Create(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *contentService) Get(caller Caller, id uint) (*models.Content, error) {
	content, err := s.contentRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "content", id)
	}
	return content, nil
}

func (s *contentService) ListByLesson(caller Caller, lessonID uint) ([]models.Content, error) {
	if _, err := s.lessonRepo.FindByID(lessonID); err != nil {
		return nil, notFoundIfMissing(err, "lesson", lessonID)
	}
	return s.contentRepo.ListByLesson(lessonID)
}

func (s *contentService) Delete(caller Caller, id uint) error {
	if _, err := s.guard.content(caller, id); err != nil {
		return err
	}
	return s.contentRepo.Delete(id)
}
