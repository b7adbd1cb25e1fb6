package repositories

import (
	"eduone-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementRepository ...
type AchievementRepository interface {
	WithTx(tx *gorm.DB) AchievementRepository
	Create(achievement *models.Achievement) error
	FindByID(id uint) (*models.Achievement, error)
	FindByTitle(title string) (*models.Achievement, error)
	List(params models.ListParams) ([]models.Achievement, int64, error)
	Updates(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	Grant(userID uuid.UUID, achievementID uint) (bool, error)
	Revoke(userID uuid.UUID, achievementID uint) (bool, error)
	ListGrantedTitles(userID uuid.UUID) ([]string, error)
}

type achievementRepository struct {
	Conn *gorm.DB
}

// NewAchievementRepository ...
func NewAchievementRepository(conn *gorm.DB) AchievementRepository {
	return &achievementRepository{Conn: conn}
}

func (r *achievementRepository) WithTx(tx *gorm.DB) AchievementRepository {
	return &achievementRepository{Conn: tx}
}

func (r *achievementRepository) Create(achievement *models.Achievement) error {
	return r.Conn.Create(achievement).Error
}

func (r *achievementRepository) FindByID(id uint) (*models.Achievement, error) {
	var achievement models.Achievement
	err := r.Conn.Where("id = ?", id).First(&achievement).Error
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *achievementRepository) FindByTitle(title string) (*models.Achievement, error) {
	var achievement models.Achievement
	err := r.Conn.Where("title = ?", title).First(&achievement).Error
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *achievementRepository) List(params models.ListParams) ([]models.Achievement, int64, error) {
	var (
		achievements []models.Achievement
		total        int64
	)
	query := r.Conn.Model(&models.Achievement{})
	if params.Title != "" {
		query = query.Where("title LIKE ?", params.Title+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Offset(params.Offset()).Limit(params.Limit).Order("id asc").Find(&achievements).Error
	if err != nil {
		return nil, 0, err
	}
	return achievements, total, nil
}

func (r *achievementRepository) Updates(id uint, fields map[string]interface{}) error {
	return r.Conn.Model(&models.Achievement{}).Where("id = ?", id).Updates(fields).Error
}

func (r *achievementRepository) Delete(id uint) error {
	return r.Conn.Where("id = ?", id).Delete(&models.Achievement{}).Error
}

// Grant awards the achievement once. A repeated grant is a no-op
// and reports false instead of failing on the duplicate key.
func (r *achievementRepository) Grant(userID uuid.UUID, achievementID uint) (bool, error) {
	grant := models.AchievementGrant{UserID: userID, AchievementID: achievementID}
	res := r.Conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *achievementRepository) Revoke(userID uuid.UUID, achievementID uint) (bool, error) {
	res := r.Conn.Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Delete(&models.AchievementGrant{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *achievementRepository) ListGrantedTitles(userID uuid.UUID) ([]string, error) {
	var titles []string
	err := r.Conn.Model(&models.Achievement{}).
		Joins("JOIN user_achievements ON user_achievements.achievement_id = achievements.id").
		Where("user_achievements.user_id = ?", userID).
		Pluck("achievements.title", &titles).Error
	if err != nil {
		return nil, err
	}
	return titles, nil
}
