package models

import "time"

type Tag struct {
	ID    uint   `json:"id" gorm:"primarykey"`
	Title string `json:"title" gorm:"size:50;uniqueIndex;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint   `json:"id" gorm:"primarykey"`
	Title       string `json:"title" gorm:"size:50;uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image" gorm:"size:255;default:'image_default.png'"`

	Courses []Course `json:"courses,omitempty" gorm:"foreignKey:CategoryID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
