package repositories

import (
	"eduone-core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreRegistrationRepository stores launch-notification email signups.
type PreRegistrationRepository interface {
	WithTx(tx *gorm.DB) PreRegistrationRepository
	Create(email string) (bool, error)
	List() ([]models.PreRegistration, error)
}

type preRegistrationRepository struct {
	Conn *gorm.DB
}

// NewPreRegistrationRepository ...
func NewPreRegistrationRepository(conn *gorm.DB) PreRegistrationRepository {
	return &preRegistrationRepository{Conn: conn}
}

func (r *preRegistrationRepository) WithTx(tx *gorm.DB) PreRegistrationRepository {
	return &preRegistrationRepository{Conn: tx}
}

// Create records the email once; a repeat signup reports false.
func (r *preRegistrationRepository) Create(email string) (bool, error) {
	row := models.PreRegistration{Email: email}
	res := r.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *preRegistrationRepository) List() ([]models.PreRegistration, error) {
	var rows []models.PreRegistration
	err := r.Conn.Order("id asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
