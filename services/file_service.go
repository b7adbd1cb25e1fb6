package services

import (
	"fmt"
	"strconv"

	"eduone-core/models"
	"eduone-core/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileService registers uploaded file metadata. The binary itself lives in
// object storage; this service only tracks the URL and its owning entity.
type FileService interface {
	Create(caller Caller, req models.CreateFileRequest) (*models.File, error)
	Get(caller Caller, id uint) (*models.File, error)
	ListByOwner(owner models.FileOwner) ([]models.File, error)
	Delete(caller Caller, id uint) error
}

type fileService struct {
	fileRepo     repositories.FileRepository
	userRepo     repositories.UserRepository
	courseRepo   repositories.CourseRepository
	lessonRepo   repositories.LessonRepository
	homeworkRepo repositories.HomeworkRepository
	contentRepo  repositories.ContentRepository
	achRepo      repositories.AchievementRepository
	evaluator    *AchievementEvaluator
	logger       *zap.Logger
}

// NewFileService ...
func NewFileService(
	fileRepo repositories.FileRepository,
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	lessonRepo repositories.LessonRepository,
	homeworkRepo repositories.HomeworkRepository,
	contentRepo repositories.ContentRepository,
	achRepo repositories.AchievementRepository,
	evaluator *AchievementEvaluator,
	logger *zap.Logger,
) FileService {
	return &fileService{
		fileRepo:     fileRepo,
		userRepo:     userRepo,
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		homeworkRepo: homeworkRepo,
		contentRepo:  contentRepo,
		achRepo:      achRepo,
		evaluator:    evaluator,
		logger:       logger,
	}
}

// ownerExists resolves the tagged owner against its table.
func (s *fileService) ownerExists(owner models.FileOwner) error {
	switch owner.Kind {
	case models.OwnerUserAvatar:
		id, err := uuid.Parse(owner.ID)
		if err != nil {
			return models.InvalidOperation("avatar owner is not a user id")
		}
		exists, err := s.userRepo.ExistsByID(id)
		if err != nil {
			return err
		}
		if !exists {
			return models.NotFound(fmt.Sprintf("user %s not found", owner.ID))
		}
		return nil
	}

	numericID, err := strconv.ParseUint(owner.ID, 10, 64)
	if err != nil {
		return models.InvalidOperation(fmt.Sprintf("owner id %q is not numeric", owner.ID))
	}
	id := uint(numericID)

	switch owner.Kind {
	case models.OwnerCourse, models.OwnerCourseCover:
		exists, err := s.courseRepo.ExistsByID(id)
		if err != nil {
			return err
		}
		if !exists {
			return models.NotFound(fmt.Sprintf("course %d not found", id))
		}
	case models.OwnerLesson:
		exists, err := s.lessonRepo.ExistsByID(id)
		if err != nil {
			return err
		}
		if !exists {
			return models.NotFound(fmt.Sprintf("lesson %d not found", id))
		}
	case models.OwnerHomework:
		if _, err := s.homeworkRepo.FindByID(id); err != nil {
			return notFoundIfMissing(err, "homework", id)
		}
	case models.OwnerContent:
		if _, err := s.contentRepo.FindByID(id); err != nil {
			return notFoundIfMissing(err, "content", id)
		}
	case models.OwnerAchievementCover:
		if _, err := s.achRepo.FindByID(id); err != nil {
			return notFoundIfMissing(err, "achievement", id)
		}
	default:
		return models.InvalidOperation(fmt.Sprintf("unknown file owner kind %q", owner.Kind))
	}
	return nil
}

func (s *fileService) Create(caller Caller, req models.CreateFileRequest) (*models.File, error) {
	if err := req.Owner.Validate(); err != nil {
		return nil, err
	}
	if err := s.ownerExists(req.Owner); err != nil {
		return nil, err
	}

	file := &models.File{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Key:         req.Key,
		Type:        req.Type,
		Duration:    req.Duration,
		Owner:       req.Owner,
		UploadedBy:  caller.ID,
	}
	created, err := s.fileRepo.Create(file)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, models.Conflict("a file with this url is already registered")
	}

	if file.Type == models.FileTypeVideo {
		count, err := s.fileRepo.CountVideosByUploader(caller.ID)
		if err != nil {
			s.logger.Warn("video count failed", zap.Error(err))
		} else {
			s.evaluator.EvaluateVideos(caller.ID, count)
		}
	}
	return file, nil
}

func (s *fileService) Get(caller Caller, id uint) (*models.File, error) {
	file, err := s.fileRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "file", id)
	}
	return file, nil
}

func (s *fileService) ListByOwner(owner models.FileOwner) ([]models.File, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	return s.fileRepo.FindByOwner(owner)
}

func (s *fileService) Delete(caller Caller, id uint) error {
	file, err := s.fileRepo.FindByID(id)
	if err != nil {
		return notFoundIfMissing(err, "file", id)
	}
	if file.UploadedBy != caller.ID && !caller.IsSuperuser {
		return models.Forbidden("you can only delete files you uploaded")
	}
	return s.fileRepo.Delete(id)
}
