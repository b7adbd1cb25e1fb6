package models

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateUserRequest is a patch: only non-nil fields are applied.
type UpdateUserRequest struct {
	Username    *string    `json:"username" validate:"omitempty,min=3,max=50"`
	FirstName   *string    `json:"first_name" validate:"omitempty,max=50"`
	LastName    *string    `json:"last_name" validate:"omitempty,max=50"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	Description *string    `json:"description"`
	Website     *string    `json:"website"`
	Phone       *string    `json:"phone"`
	Gender      *string    `json:"gender"`
	BirthDate   *time.Time `json:"birth_date"`
}

type CreateCourseRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=50"`
	Description string     `json:"description"`
	Price       int        `json:"price" validate:"min=0"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateCourseRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=50"`
	Description *string    `json:"description"`
	Price       *int       `json:"price" validate:"omitempty,min=0"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type CreateLessonRequest struct {
	Title         string `json:"title" validate:"required,min=1,max=50"`
	Description   string `json:"description"`
	EstimatedTime string `json:"estimated_time" validate:"required,max=50"`
	CourseID      uint   `json:"course_id" validate:"required"`
}

type UpdateLessonRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=50"`
	Description   *string `json:"description"`
	EstimatedTime *string `json:"estimated_time" validate:"omitempty,max=50"`
}

type CreateHomeworkRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=50"`
	Description string `json:"description"`
	LessonID    uint   `json:"lesson_id" validate:"required"`
}

type UpdateHomeworkRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description"`
}

type CreateContentRequest struct {
	Text     string `json:"text" validate:"required,max=500"`
	LessonID uint   `json:"lesson_id" validate:"required"`
}

type CreateFileRequest struct {
	Title       string    `json:"title" validate:"required,max=50"`
	Description string    `json:"description"`
	URL         string    `json:"url" validate:"required,max=500"`
	Key         string    `json:"key"`
	Type        string    `json:"type"`
	Duration    *int      `json:"duration"`
	Owner       FileOwner `json:"owner" validate:"required"`
}

type CreateAchievementRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=50"`
	Description string `json:"description"`
}

type UpdateAchievementRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description"`
}

type CreateTagRequest struct {
	Title string `json:"title" validate:"required,min=1,max=50"`
}

type CreateCategoryRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=50"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type UpdateCategoryRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

type FollowRequest struct {
	AuthorID uuid.UUID `json:"author_id" validate:"required"`
}

type SubscriptionRequest struct {
	UserID   uuid.UUID `json:"user_id" validate:"required"`
	CourseID uint      `json:"course_id" validate:"required"`
}

type EmailSubscriptionRequest struct {
	UserID   uuid.UUID `json:"user_id" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	CourseID uint      `json:"course_id" validate:"required"`
}

type BindTagRequest struct {
	TagID uint `json:"tag_id" validate:"required"`
}

type BindCategoryRequest struct {
	CourseID   uint `json:"course_id" validate:"required"`
	CategoryID uint `json:"category_id" validate:"required"`
}

type PreRegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ListParams struct {
	Title string `form:"title"`
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=10"`
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 10
	}
}

func (p ListParams) Offset() int { return (p.Page - 1) * p.Limit }
