package models

import "time"

type Lesson struct {
	ID            uint    `json:"id" gorm:"primarykey"`
	Title         string  `json:"title" gorm:"size:50;not null"`
	Description   string  `json:"description" gorm:"type:text"`
	EstimatedTime string  `json:"estimated_time" gorm:"size:50;not null"`
	Rating        *int    `json:"rating"`
	CourseID      uint    `json:"course_id" gorm:"index;not null"`
	Course        *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`

	Contents []Content  `json:"contents,omitempty" gorm:"foreignKey:LessonID"`
	Homework []Homework `json:"homework,omitempty" gorm:"foreignKey:LessonID"`
	Tags     []Tag      `json:"tags,omitempty" gorm:"many2many:lesson_tags;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LessonTag struct {
	LessonID  uint      `json:"lesson_id" gorm:"primaryKey"`
	TagID     uint      `json:"tag_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

func (LessonTag) TableName() string { return "lesson_tags" }
