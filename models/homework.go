package models

import "time"

type Homework struct {
	ID          uint    `json:"id" gorm:"primarykey"`
	Title       string  `json:"title" gorm:"size:50;not null"`
	Description string  `json:"description" gorm:"type:text"`
	LessonID    uint    `json:"lesson_id" gorm:"index;not null"`
	Lesson      *Lesson `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Content struct {
	ID       uint    `json:"id" gorm:"primarykey"`
	Text     string  `json:"text" gorm:"size:500"`
	LessonID uint    `json:"lesson_id" gorm:"index;not null"`
	Lesson   *Lesson `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
