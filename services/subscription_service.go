package services

import (
	"fmt"

	"eduone-core/clients"
	"eduone-core/models"
	"eduone-core/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubscriptionService handles course enrollment. Unlike follow, subscribe
// is not a toggle: subscribing twice or unsubscribing while not enrolled
// is a conflict the caller must handle.
type SubscriptionService interface {
	Subscribe(userID uuid.UUID, courseID uint) error
	Unsubscribe(userID uuid.UUID, courseID uint) error
	Graduate(userID uuid.UUID, courseID uint) error
	IsSubscribed(userID uuid.UUID, courseID uint) (bool, error)
}

type subscriptionService struct {
	tx         TxRunner
	subRepo    repositories.SubscriptionRepository
	courseRepo repositories.CourseRepository
	userRepo   repositories.UserRepository
	outboxRepo repositories.OutboxRepository
	evaluator  *AchievementEvaluator
	logger     *zap.Logger
}

// NewSubscriptionService ...
func NewSubscriptionService(
	tx TxRunner,
	subRepo repositories.SubscriptionRepository,
	courseRepo repositories.CourseRepository,
	userRepo repositories.UserRepository,
	outboxRepo repositories.OutboxRepository,
	evaluator *AchievementEvaluator,
	logger *zap.Logger,
) SubscriptionService {
	return &subscriptionService{
		tx:         tx,
		subRepo:    subRepo,
		courseRepo: courseRepo,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		evaluator:  evaluator,
		logger:     logger,
	}
}

func (s *subscriptionService) loadOpenCourse(courseID uint) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, notFoundIfMissing(err, "course", courseID)
	}
	if course.IsDeleted || !course.IsVisible {
		return nil, models.NotFound(fmt.Sprintf("course %d not found", courseID))
	}
	return course, nil
}

func (s *subscriptionService) Subscribe(userID uuid.UUID, courseID uint) error {
	course, err := s.loadOpenCourse(courseID)
	if err != nil {
		return err
	}
	if course.UserID == userID {
		return models.InvalidOperation("authors cannot subscribe to their own course")
	}
	exists, err := s.userRepo.ExistsByID(userID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NotFound(fmt.Sprintf("user %s not found", userID))
	}

	var subscribed bool
	err = s.tx(func(tx *gorm.DB) error {
		subscribed, err = s.subRepo.WithTx(tx).Subscribe(userID, courseID)
		if err != nil {
			return err
		}
		if !subscribed {
			return nil
		}
		// Only the first enrollment of this pair counts as a sale.
		return s.userRepo.WithTx(tx).IncrementSoldCourses(course.UserID, 1)
	})
	if err != nil {
		return err
	}
	if !subscribed {
		return models.Conflict("already subscribed to this course")
	}

	notification := clients.Notification{
		NotificationType: clients.NotifyTypeSubscription,
		Title:            "Подписка",
		Text:             fmt.Sprintf("%s подписался на ваш курс %s", usernameOf(s.userRepo, userID), course.Title),
		UserID:           userID.String(),
		Receivers:        []string{course.UserID.String()},
	}
	if err := s.outboxRepo.Enqueue(models.NotifyEntry(notification)); err != nil {
		s.logger.Warn("enqueue subscribe notification failed", zap.Error(err))
	}

	count, err := s.subRepo.CountSubscribersOfAuthor(course.UserID)
	if err != nil {
		s.logger.Warn("subscriber count failed", zap.Error(err))
	} else {
		s.evaluator.EvaluateSubscribers(course.UserID, count)
	}
	return nil
}

// Unsubscribe removes the enrollment. The author's sold_courses counter
// is a lifetime sales total and is not decremented here.
func (s *subscriptionService) Unsubscribe(userID uuid.UUID, courseID uint) error {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		return notFoundIfMissing(err, "course", courseID)
	}

	removed, err := s.subRepo.Unsubscribe(userID, courseID)
	if err != nil {
		return err
	}
	if !removed {
		return models.Conflict("not subscribed to this course")
	}
	return nil
}

func (s *subscriptionService) Graduate(userID uuid.UUID, courseID uint) error {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return notFoundIfMissing(err, "course", courseID)
	}

	subscribed, err := s.subRepo.IsSubscribed(userID, courseID)
	if err != nil {
		return err
	}
	if !subscribed {
		return models.InvalidOperation("user is not subscribed to this course")
	}

	graduated, err := s.subRepo.Graduate(userID, courseID)
	if err != nil {
		return err
	}
	if !graduated {
		return models.Conflict("user already graduated from this course")
	}

	notification := clients.Notification{
		NotificationType: clients.NotifyTypeGraduation,
		Title:            course.Title,
		Text:             fmt.Sprintf("Вы прошли курс «%s»", course.Title),
		UserID:           userID.String(),
		Receivers:        []string{userID.String()},
	}
	if err := s.outboxRepo.Enqueue(models.NotifyEntry(notification)); err != nil {
		s.logger.Warn("enqueue graduation notification failed", zap.Error(err))
	}

	count, err := s.subRepo.CountGraduatesOfAuthor(course.UserID)
	if err != nil {
		s.logger.Warn("graduate count failed", zap.Error(err))
	} else {
		s.evaluator.EvaluateGraduates(course.UserID, count)
	}
	return nil
}

func (s *subscriptionService) IsSubscribed(userID uuid.UUID, courseID uint) (bool, error) {
	return s.subRepo.IsSubscribed(userID, courseID)
}
