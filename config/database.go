package config

import (
	"eduone-core/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Course{},
		&models.Lesson{},
		&models.Content{},
		&models.Homework{},
		&models.File{},
		&models.Achievement{},
		&models.Tag{},
		&models.FollowEdge{},
		&models.Subscription{},
		&models.Graduation{},
		&models.AchievementGrant{},
		&models.CourseTag{},
		&models.LessonTag{},
		&models.OutboxEntry{},
		&models.PreRegistration{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
