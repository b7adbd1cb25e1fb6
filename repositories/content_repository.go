package repositories

import (
	"eduone-core/models"

	"gorm.io/gorm"
)

// ContentRepository ...
type ContentRepository interface {
	WithTx(tx *gorm.DB) ContentRepository
	Create(content *models.Content) error
	FindByID(id uint) (*models.Content, error)
	ListByLesson(lessonID uint) ([]models.Content, error)
	Updates(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}

type contentRepository struct {
	Conn *gorm.DB
}

// NewContentRepository ...
func NewContentRepository(conn *gorm.DB) ContentRepository {
	return &contentRepository{Conn: conn}
}

func (r *contentRepository) WithTx(tx *gorm.DB) ContentRepository {
	return &contentRepository{Conn: tx}
}

func (r *contentRepository) Create(content *models.Content) error {
	return r.Conn.Create(content).Error
}

func (r *contentRepository) FindByID(id uint) (*models.Content, error) {
	var content models.Content
	err := r.Conn.Where("id = ?", id).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) ListByLesson(lessonID uint) ([]models.Content, error) {
	var contents []models.Content
	err := r.Conn.Where("lesson_id = ?", lessonID).Order("id asc").Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *contentRepository) Updates(id uint, fields map[string]interface{}) error {
	return r.Conn.Model(&models.Content{}).Where("id = ?", id).Updates(fields).Error
}

func (r *contentRepository) Delete(id uint) error {
	return r.Conn.Where("id = ?", id).Delete(&models.Content{}).Error
}
