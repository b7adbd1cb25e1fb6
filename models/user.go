package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Username    string     `json:"username" gorm:"size:50;uniqueIndex;not null"`
	FirstName   string     `json:"first_name" gorm:"size:50;not null"`
	LastName    string     `json:"last_name" gorm:"size:50;not null"`
	Email       string     `json:"email" gorm:"size:50;uniqueIndex;not null"`
	Password    string     `json:"-" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	Website     *string    `json:"website" gorm:"size:50"`
	Phone       *string    `json:"phone" gorm:"size:15"`
	Gender      *string    `json:"gender" gorm:"size:10"`
	BirthDate   *time.Time `json:"birth_date"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	IsAuthor    bool       `json:"is_author" gorm:"default:false"`
	IsVerified  bool       `json:"is_verified" gorm:"default:false"`
	IsSuperuser bool       `json:"is_superuser" gorm:"default:false"`
	SoldCourses int        `json:"sold_courses" gorm:"default:0"`

	Courses           []Course      `json:"courses,omitempty" gorm:"foreignKey:UserID"`
	Achievements      []Achievement `json:"achievements,omitempty" gorm:"many2many:user_achievements;"`
	SubscribedCourses []Course      `json:"subscribed_courses,omitempty" gorm:"many2many:user_courses;"`
	GraduatedCourses  []Course      `json:"graduated_courses,omitempty" gorm:"many2many:user_graduated_courses;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled at read time, not persisted.
	IsFollowed     bool  `json:"is_followed" gorm:"-"`
	PostsCount     int64 `json:"posts_count" gorm:"-"`
	FollowersCount int64 `json:"followers_count" gorm:"-"`
	FollowingCount int64 `json:"following_count" gorm:"-"`
}

// FollowEdge is a row of the user_follows ledger. The composite primary key
// makes a do-nothing-on-conflict insert the "already following" branch.
type FollowEdge struct {
	FollowerID uuid.UUID `json:"follower_id" gorm:"type:uuid;primaryKey"`
	FolloweeID uuid.UUID `json:"followee_id" gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
}

func (FollowEdge) TableName() string { return "user_follows" }
