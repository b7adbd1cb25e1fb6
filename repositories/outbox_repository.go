package repositories

import (
	"time"

	"eduone-core/models"

	"gorm.io/gorm"
)

// OutboxRepository persists side-effect intents so secondary systems
// can be updated after the primary transaction commits.
type OutboxRepository interface {
	WithTx(tx *gorm.DB) OutboxRepository
	Enqueue(entry *models.OutboxEntry) error
	FetchDue(limit int) ([]models.OutboxEntry, error)
	MarkDone(id uint) error
	MarkRetry(id uint, attempts int, nextAttempt time.Time, lastError string) error
	MarkFailed(id uint, attempts int, lastError string) error
}

type outboxRepository struct {
	Conn *gorm.DB
}

// NewOutboxRepository ...
func NewOutboxRepository(conn *gorm.DB) OutboxRepository {
	return &outboxRepository{Conn: conn}
}

func (r *outboxRepository) WithTx(tx *gorm.DB) OutboxRepository {
	return &outboxRepository{Conn: tx}
}

func (r *outboxRepository) Enqueue(entry *models.OutboxEntry) error {
	return r.Conn.Create(entry).Error
}

func (r *outboxRepository) FetchDue(limit int) ([]models.OutboxEntry, error) {
	var entries []models.OutboxEntry
	err := r.Conn.Where("status = ? AND next_attempt_at <= ?", models.OutboxPending, time.Now()).
		Order("id asc").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *outboxRepository) MarkDone(id uint) error {
	return r.Conn.Model(&models.OutboxEntry{}).Where("id = ?", id).
		Update("status", models.OutboxDone).Error
}

func (r *outboxRepository) MarkRetry(id uint, attempts int, nextAttempt time.Time, lastError string) error {
	return r.Conn.Model(&models.OutboxEntry{}).Where("id = ?", id).Updates(map[string]interface{}{
		"attempts":        attempts,
		"next_attempt_at": nextAttempt,
		"last_error":      lastError,
	}).Error
}

func (r *outboxRepository) MarkFailed(id uint, attempts int, lastError string) error {
	return r.Conn.Model(&models.OutboxEntry{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     models.OutboxFailed,
		"attempts":   attempts,
		"last_error": lastError,
	}).Error
}
