package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	Title       string     `json:"title" gorm:"size:50;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Price       int        `json:"price" gorm:"not null;default:0"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsDeleted   bool       `json:"is_deleted" gorm:"default:false"`
	IsVisible   bool       `json:"is_visible" gorm:"default:true"`

	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
	Tags    []Tag    `json:"tags,omitempty" gorm:"many2many:course_tags;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscription is a row of the user_courses ledger. First insert for a
// (user, course) pair is what bumps the owner's sold_courses counter.
type Subscription struct {
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subscription) TableName() string { return "user_courses" }

// Graduation marks a user having completed a course.
type Graduation struct {
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

func (Graduation) TableName() string { return "user_graduated_courses" }

type CourseTag struct {
	CourseID  uint      `json:"course_id" gorm:"primaryKey"`
	TagID     uint      `json:"tag_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

func (CourseTag) TableName() string { return "course_tags" }
