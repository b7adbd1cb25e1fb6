package repositories

import (
	"eduone-core/models"

	"gorm.io/gorm"
)

// HomeworkRepository ...
type HomeworkRepository interface {
	WithTx(tx *gorm.DB) HomeworkRepository
	Create(homework *models.Homework) error
	FindByID(id uint) (*models.Homework, error)
	ListByLesson(lessonID uint) ([]models.Homework, error)
	Updates(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}

type homeworkRepository struct {
	Conn *gorm.DB
}

// NewHomeworkRepository ...
func NewHomeworkRepository(conn *gorm.DB) HomeworkRepository {
	return &homeworkRepository{Conn: conn}
}

func (r *homeworkRepository) WithTx(tx *gorm.DB) HomeworkRepository {
	return &homeworkRepository{Conn: tx}
}

func (r *homeworkRepository) Create(homework *models.Homework) error {
	return r.Conn.Create(homework).Error
}

func (r *homeworkRepository) FindByID(id uint) (*models.Homework, error) {
	var homework models.Homework
	err := r.Conn.Where("id = ?", id).First(&homework).Error
	if err != nil {
		return nil, err
	}
	return &homework, nil
}

func (r *homeworkRepository) ListByLesson(lessonID uint) ([]models.Homework, error) {
	var homeworks []models.Homework
	err := r.Conn.Where("lesson_id = ?", lessonID).Order("id asc").Find(&homeworks).Error
	if err != nil {
		return nil, err
	}
	return homeworks, nil
}

func (r *homeworkRepository) Updates(id uint, fields map[string]interface{}) error {
	return r.Conn.Model(&models.Homework{}).Where("id = ?", id).Updates(fields).Error
}

func (r *homeworkRepository) Delete(id uint) error {
	return r.Conn.Where("id = ?", id).Delete(&models.Homework{}).Error
}
