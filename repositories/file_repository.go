package repositories

import (
	"eduone-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FileRepository ...
type FileRepository interface {
	WithTx(tx *gorm.DB) FileRepository
	Create(file *models.File) (bool, error)
	FindByID(id uint) (*models.File, error)
	FindByOwner(owner models.FileOwner) ([]models.File, error)
	Delete(id uint) error
	DeleteByOwner(owner models.FileOwner) error
	CountVideosByUploader(userID uuid.UUID) (int64, error)
}

type fileRepository struct {
	Conn *gorm.DB
}

// NewFileRepository ...
func NewFileRepository(conn *gorm.DB) FileRepository {
	return &fileRepository{Conn: conn}
}

func (r *fileRepository) WithTx(tx *gorm.DB) FileRepository {
	return &fileRepository{Conn: tx}
}

// Create inserts the file unless its URL is already registered.
// Returns false when the URL collided with an existing row.
func (r *fileRepository) Create(file *models.File) (bool, error) {
	res := r.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoNothing: true,
	}).Create(file)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *fileRepository) FindByID(id uint) (*models.File, error) {
	var file models.File
	err := r.Conn.Where("id = ?", id).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) FindByOwner(owner models.FileOwner) ([]models.File, error) {
	var files []models.File
	err := r.Conn.Where("owner_kind = ? AND owner_id = ?", owner.Kind, owner.ID).
		Order("id asc").Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepository) Delete(id uint) error {
	return r.Conn.Where("id = ?", id).Delete(&models.File{}).Error
}

func (r *fileRepository) DeleteByOwner(owner models.FileOwner) error {
	return r.Conn.Where("owner_kind = ? AND owner_id = ?", owner.Kind, owner.ID).
		Delete(&models.File{}).Error
}

func (r *fileRepository) CountVideosByUploader(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.Conn.Model(&models.File{}).
		Where("uploaded_by = ? AND type = ?", userID, models.FileTypeVideo).
		Count(&count).Error
	return count, err
}
