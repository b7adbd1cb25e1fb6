package repositories

import (
	"eduone-core/models"

	"gorm.io/gorm"
)

// LessonRepository ...
type LessonRepository interface {
	WithTx(tx *gorm.DB) LessonRepository
	Create(lesson *models.Lesson) error
	FindByID(id uint) (*models.Lesson, error)
	ListByCourse(courseID uint, params models.ListParams) ([]models.Lesson, int64, error)
	Updates(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	ExistsByID(id uint) (bool, error)
}

type lessonRepository struct {
	Conn *gorm.DB
}

// NewLessonRepository ...
func NewLessonRepository(conn *gorm.DB) LessonRepository {
	return &lessonRepository{Conn: conn}
}

func (r *lessonRepository) WithTx(tx *gorm.DB) LessonRepository {
	return &lessonRepository{Conn: tx}
}

func (r *lessonRepository) Create(lesson *models.Lesson) error {
	return r.Conn.Create(lesson).Error
}

func (r *lessonRepository) FindByID(id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.Conn.Preload("Contents").Preload("Homework").Preload("Tags").
		Where("id = ?", id).First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) ListByCourse(courseID uint, params models.ListParams) ([]models.Lesson, int64, error) {
	var (
		lessons []models.Lesson
		total   int64
	)
	query := r.Conn.Model(&models.Lesson{}).Where("course_id = ?", courseID)
	if params.Title != "" {
		query = query.Where("title LIKE ?", params.Title+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Tags").Offset(params.Offset()).Limit(params.Limit).
		Order("id asc").Find(&lessons).Error
	if err != nil {
		return nil, 0, err
	}
	return lessons, total, nil
}

func (r *lessonRepository) Updates(id uint, fields map[string]interface{}) error {
	return r.Conn.Model(&models.Lesson{}).Where("id = ?", id).Updates(fields).Error
}

func (r *lessonRepository) Delete(id uint) error {
	return r.Conn.Where("id = ?", id).Delete(&models.Lesson{}).Error
}

func (r *lessonRepository) ExistsByID(id uint) (bool, error) {
	var count int64
	err := r.Conn.Model(&models.Lesson{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
