package services

import (
	"errors"

	"eduone-core/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InternalService backs the private surface used by sibling services
// (discussion, notification, email) to validate references and report
// activity this service does not track itself.
type InternalService interface {
	UserExists(id uuid.UUID) (bool, error)
	IsSuperuser(id uuid.UUID) (bool, error)
	CourseExists(id uint) (bool, error)
	LessonExists(id uint) (bool, error)
	HomeworkExists(id uint) (bool, error)
	AchievementExists(id uint) (bool, error)
	Followers(id uuid.UUID) ([]uuid.UUID, error)
	Following(id uuid.UUID) ([]uuid.UUID, error)
	ReportComments(userID uuid.UUID, count int64) error
}

type internalService struct {
	userRepo        repositories.UserRepository
	courseRepo      repositories.CourseRepository
	lessonRepo      repositories.LessonRepository
	homeworkRepo    repositories.HomeworkRepository
	achievementRepo repositories.AchievementRepository
	followRepo      repositories.FollowRepository
	evaluator       *AchievementEvaluator
}

// NewInternalService ...
func NewInternalService(
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	lessonRepo repositories.LessonRepository,
	homeworkRepo repositories.HomeworkRepository,
	achievementRepo repositories.AchievementRepository,
	followRepo repositories.FollowRepository,
	evaluator *AchievementEvaluator,
) InternalService {
	return &internalService{
		userRepo:        userRepo,
		courseRepo:      courseRepo,
		lessonRepo:      lessonRepo,
		homeworkRepo:    homeworkRepo,
		achievementRepo: achievementRepo,
		followRepo:      followRepo,
		evaluator:       evaluator,
	}
}

func (s *internalService) UserExists(id uuid.UUID) (bool, error) {
	return s.userRepo.ExistsByID(id)
}

func (s *internalService) IsSuperuser(id uuid.UUID) (bool, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsSuperuser, nil
}

func (s *internalService) CourseExists(id uint) (bool, error) {
	return s.courseRepo.ExistsByID(id)
}

func (s *internalService) LessonExists(id uint) (bool, error) {
	return s.lessonRepo.ExistsByID(id)
}

func (s *internalService) HomeworkExists(id uint) (bool, error) {
	if _, err := s.homeworkRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *internalService) AchievementExists(id uint) (bool, error) {
	if _, err := s.achievementRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *internalService) Followers(id uuid.UUID) ([]uuid.UUID, error) {
	return s.followRepo.ListFollowers(id)
}

func (s *internalService) Following(id uuid.UUID) ([]uuid.UUID, error) {
	return s.followRepo.ListFollowing(id)
}

// ReportComments takes the comment total from the discussion service and
// re-evaluates the commenter's threshold achievements.
func (s *internalService) ReportComments(userID uuid.UUID, count int64) error {
	exists, err := s.userRepo.ExistsByID(userID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	s.evaluator.EvaluateComments(userID, count)
	return nil
}
