package models

import (
	"time"

	"github.com/google/uuid"
)

type Achievement struct {
	ID          uint   `json:"id" gorm:"primarykey"`
	Title       string `json:"title" gorm:"size:50;uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AchievementGrant is a row of the user_achievements ledger.
type AchievementGrant struct {
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	AchievementID uint      `json:"achievement_id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
}

func (AchievementGrant) TableName() string { return "user_achievements" }
