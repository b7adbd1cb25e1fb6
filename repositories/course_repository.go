package repositories

import (
	"eduone-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseRepository ...
type CourseRepository interface {
	WithTx(tx *gorm.DB) CourseRepository
	Create(course *models.Course) error
	FindByID(id uint) (*models.Course, error)
	FindVisibleByID(id uint) (*models.Course, error)
	List(params models.ListParams) ([]models.Course, int64, error)
	ListByAuthor(authorID uuid.UUID, params models.ListParams) ([]models.Course, int64, error)
	ListDeletedByAuthor(authorID uuid.UUID, params models.ListParams) ([]models.Course, int64, error)
	ListSubscribed(userID uuid.UUID, params models.ListParams) ([]models.Course, int64, error)
	ListByCategory(categoryID uint, params models.ListParams) ([]models.Course, int64, error)
	Updates(id uint, fields map[string]interface{}) error
	SoftDelete(id uint) error
	Restore(id uint) error
	SetVisibility(id uint, visible bool) error
	ExistsByID(id uint) (bool, error)
}

type courseRepository struct {
	Conn *gorm.DB
}

// NewCourseRepository ...
func NewCourseRepository(conn *gorm.DB) CourseRepository {
	return &courseRepository{Conn: conn}
}

func (r *courseRepository) WithTx(tx *gorm.DB) CourseRepository {
	return &courseRepository{Conn: tx}
}

func (r *courseRepository) Create(course *models.Course) error {
	return r.Conn.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*models.Course, error) {
	var course models.Course
	err := r.Conn.Preload("Lessons").Preload("Tags").Preload("Category").
		Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindVisibleByID only returns courses a non-owner is allowed to see.
func (r *courseRepository) FindVisibleByID(id uint) (*models.Course, error) {
	var course models.Course
	err := r.Conn.Preload("Lessons").Preload("Tags").Preload("Category").
		Where("id = ? AND is_deleted = ? AND is_visible = ?", id, false, true).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List(params models.ListParams) ([]models.Course, int64, error) {
	var (
		courses []models.Course
		total   int64
	)
	query := r.Conn.Model(&models.Course{}).
		Where("is_deleted = ? AND is_visible = ?", false, true)
	if params.Title != "" {
		query = query.Where("title LIKE ?", params.Title+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Tags").Preload("Category").
		Offset(params.Offset()).Limit(params.Limit).Order("id desc").Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *courseRepository) ListByAuthor(authorID uuid.UUID, params models.ListParams) ([]models.Course, int64, error) {
	var (
		courses []models.Course
		total   int64
	)
	query := r.Conn.Model(&models.Course{}).Where("user_id = ?", authorID)
	if params.Title != "" {
		query = query.Where("title LIKE ?", params.Title+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Tags").Offset(params.Offset()).Limit(params.Limit).
		Order("id desc").Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// ListDeletedByAuthor backs the "my deleted courses" view.
func (r *courseRepository) ListDeletedByAuthor(authorID uuid.UUID, params models.ListParams) ([]models.Course, int64, error) {
	var (
		courses []models.Course
		total   int64
	)
	query := r.Conn.Model(&models.Course{}).
		Where("user_id = ? AND is_deleted = ?", authorID, true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Offset(params.Offset()).Limit(params.Limit).
		Order("id desc").Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *courseRepository) ListSubscribed(userID uuid.UUID, params models.ListParams) ([]models.Course, int64, error) {
	var (
		courses []models.Course
		total   int64
	)
	query := r.Conn.Model(&models.Course{}).
		Joins("JOIN user_courses ON user_courses.course_id = courses.id").
		Where("user_courses.user_id = ? AND courses.is_deleted = ?", userID, false)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Tags").Preload("Category").
		Offset(params.Offset()).Limit(params.Limit).Order("courses.id desc").Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *courseRepository) ListByCategory(categoryID uint, params models.ListParams) ([]models.Course, int64, error) {
	var (
		courses []models.Course
		total   int64
	)
	query := r.Conn.Model(&models.Course{}).
		Where("category_id = ? AND is_deleted = ? AND is_visible = ?", categoryID, false, true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Tags").Preload("Category").
		Offset(params.Offset()).Limit(params.Limit).Order("id desc").Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *courseRepository) Updates(id uint, fields map[string]interface{}) error {
	return r.Conn.Model(&models.Course{}).Where("id = ?", id).Updates(fields).Error
}

func (r *courseRepository) SoftDelete(id uint) error {
	return r.Conn.Model(&models.Course{}).Where("id = ?", id).Update("is_deleted", true).Error
}

func (r *courseRepository) Restore(id uint) error {
	return r.Conn.Model(&models.Course{}).Where("id = ?", id).Update("is_deleted", false).Error
}

func (r *courseRepository) SetVisibility(id uint, visible bool) error {
	return r.Conn.Model(&models.Course{}).Where("id = ?", id).Update("is_visible", visible).Error
}

func (r *courseRepository) ExistsByID(id uint) (bool, error) {
	var count int64
	err := r.Conn.Model(&models.Course{}).Where("id = ? AND is_deleted = ?", id, false).Count(&count).Error
	return count > 0, err
}
