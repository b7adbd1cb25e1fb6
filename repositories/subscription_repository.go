package repositories

import (
	"eduone-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository tracks course enrollment and graduation ledgers.
type SubscriptionRepository interface {
	WithTx(tx *gorm.DB) SubscriptionRepository
	Subscribe(userID uuid.UUID, courseID uint) (bool, error)
	Unsubscribe(userID uuid.UUID, courseID uint) (bool, error)
	IsSubscribed(userID uuid.UUID, courseID uint) (bool, error)
	CountByCourse(courseID uint) (int64, error)
	CountSubscribersOfAuthor(authorID uuid.UUID) (int64, error)
	Graduate(userID uuid.UUID, courseID uint) (bool, error)
	CountGraduatesOfAuthor(authorID uuid.UUID) (int64, error)
}

type subscriptionRepository struct {
	Conn *gorm.DB
}

// NewSubscriptionRepository ...
func NewSubscriptionRepository(conn *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{Conn: conn}
}

func (r *subscriptionRepository) WithTx(tx *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{Conn: tx}
}

func (r *subscriptionRepository) Subscribe(userID uuid.UUID, courseID uint) (bool, error) {
	sub := models.Subscription{UserID: userID, CourseID: courseID}
	res := r.Conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepository) Unsubscribe(userID uuid.UUID, courseID uint) (bool, error) {
	res := r.Conn.Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepository) IsSubscribed(userID uuid.UUID, courseID uint) (bool, error) {
	var count int64
	err := r.Conn.Model(&models.Subscription{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.Conn.Model(&models.Subscription{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountSubscribersOfAuthor(authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.Conn.Model(&models.Subscription{}).
		Joins("JOIN courses ON courses.id = user_courses.course_id").
		Where("courses.user_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) Graduate(userID uuid.UUID, courseID uint) (bool, error) {
	grad := models.Graduation{UserID: userID, CourseID: courseID}
	res := r.Conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&grad)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepository) CountGraduatesOfAuthor(authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.Conn.Model(&models.Graduation{}).
		Joins("JOIN courses ON courses.id = user_graduated_courses.course_id").
		Where("courses.user_id = ?", authorID).
		Count(&count).Error
	return count, err
}
