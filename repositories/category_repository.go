package repositories

import (
	"eduone-core/models"

	"gorm.io/gorm"
)

// CategoryRepository ...
type CategoryRepository interface {
	WithTx(tx *gorm.DB) CategoryRepository
	Create(category *models.Category) error
	FindByID(id uint) (*models.Category, error)
	List(params models.ListParams) ([]models.Category, int64, error)
	ListPopular(limit int) ([]models.Category, error)
	Updates(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	AssignToCourse(categoryID, courseID uint) error
	RemoveFromCourse(courseID uint) error
}

type categoryRepository struct {
	Conn *gorm.DB
}

// NewCategoryRepository ...
func NewCategoryRepository(conn *gorm.DB) CategoryRepository {
	return &categoryRepository{Conn: conn}
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	return &categoryRepository{Conn: tx}
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.Conn.Create(category).Error
}

func (r *categoryRepository) FindByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.Conn.Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(params models.ListParams) ([]models.Category, int64, error) {
	var (
		categories []models.Category
		total      int64
	)
	query := r.Conn.Model(&models.Category{})
	if params.Title != "" {
		query = query.Where("title LIKE ?", params.Title+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Offset(params.Offset()).Limit(params.Limit).Order("title asc").Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// ListPopular ranks categories by how many live courses carry them.
func (r *categoryRepository) ListPopular(limit int) ([]models.Category, error) {
	var categories []models.Category
	err := r.Conn.Model(&models.Category{}).
		Joins("LEFT JOIN courses ON courses.category_id = categories.id AND courses.is_deleted = false AND courses.is_visible = true").
		Group("categories.id").
		Order("COUNT(courses.id) DESC").
		Limit(limit).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Updates(id uint, fields map[string]interface{}) error {
	return r.Conn.Model(&models.Category{}).Where("id = ?", id).Updates(fields).Error
}

func (r *categoryRepository) Delete(id uint) error {
	return r.Conn.Where("id = ?", id).Delete(&models.Category{}).Error
}

func (r *categoryRepository) AssignToCourse(categoryID, courseID uint) error {
	return r.Conn.Model(&models.Course{}).Where("id = ?", courseID).
		Update("category_id", categoryID).Error
}

func (r *categoryRepository) RemoveFromCourse(courseID uint) error {
	return r.Conn.Model(&models.Course{}).Where("id = ?", courseID).
		Update("category_id", nil).Error
}
