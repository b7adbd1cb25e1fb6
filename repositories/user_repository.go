package repositories

import (
	"eduone-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository ...
type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(user *models.User) error
	FindByID(id uuid.UUID) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	List(params models.ListParams) ([]models.User, int64, error)
	ListPopularAuthors(limit int) ([]models.User, error)
	Updates(id uuid.UUID, fields map[string]interface{}) error
	IncrementSoldCourses(id uuid.UUID, delta int) error
	ExistsByID(id uuid.UUID) (bool, error)
	Delete(id uuid.UUID) error
}

type userRepository struct {
	Conn *gorm.DB
}

// NewUserRepository ...
func NewUserRepository(conn *gorm.DB) UserRepository {
	return &userRepository{Conn: conn}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{Conn: tx}
}

func (r *userRepository) Create(user *models.User) error {
	return r.Conn.Create(user).Error
}

func (r *userRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.Conn.Preload("Achievements").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.Conn.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.Conn.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(params models.ListParams) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)
	query := r.Conn.Model(&models.User{}).Where("is_active = ?", true)
	if params.Title != "" {
		query = query.Where("username LIKE ?", params.Title+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Offset(params.Offset()).Limit(params.Limit).Order("username asc").Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListPopularAuthors ranks active authors by lifetime course sales.
func (r *userRepository) ListPopularAuthors(limit int) ([]models.User, error) {
	var users []models.User
	err := r.Conn.Where("is_active = ? AND is_author = ?", true, true).
		Order("sold_courses desc").Limit(limit).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Updates(id uuid.UUID, fields map[string]interface{}) error {
	return r.Conn.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *userRepository) IncrementSoldCourses(id uuid.UUID, delta int) error {
	return r.Conn.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("sold_courses", gorm.Expr("sold_courses + ?", delta)).Error
}

func (r *userRepository) ExistsByID(id uuid.UUID) (bool, error) {
	var count int64
	err := r.Conn.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Delete(id uuid.UUID) error {
	return r.Conn.Model(&models.User{}).Where("id = ?", id).Update("is_active", false).Error
}
