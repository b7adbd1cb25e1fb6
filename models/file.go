package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OwnerKind names the single parent a File row belongs to. The polymorphic
// nullable-foreign-key layout of earlier revisions is replaced by this tagged
// variant: exactly one (kind, id) pair per file.
type OwnerKind string

const (
	OwnerCourse           OwnerKind = "course"
	OwnerLesson           OwnerKind = "lesson"
	OwnerHomework         OwnerKind = "homework"
	OwnerContent          OwnerKind = "content"
	OwnerCourseCover      OwnerKind = "course_cover"
	OwnerAchievementCover OwnerKind = "achievement_cover"
	OwnerUserAvatar       OwnerKind = "user_avatar"
)

// FileOwner is the tagged variant itself. ID is a string so it can carry
// either a numeric entity id or a user UUID.
type FileOwner struct {
	Kind OwnerKind `json:"kind" gorm:"column:owner_kind;size:30;not null"`
	ID   string    `json:"id" gorm:"column:owner_id;size:64;not null"`
}

func (o FileOwner) Validate() error {
	if o.ID == "" {
		return InvalidOperation("file owner id is required")
	}
	switch o.Kind {
	case OwnerCourse, OwnerLesson, OwnerHomework, OwnerContent,
		OwnerCourseCover, OwnerAchievementCover:
		return nil
	case OwnerUserAvatar:
		if _, err := uuid.Parse(o.ID); err != nil {
			return InvalidOperation(fmt.Sprintf("avatar owner %q is not a user id", o.ID))
		}
		return nil
	default:
		return InvalidOperation(fmt.Sprintf("unknown file owner kind %q", o.Kind))
	}
}

const FileTypeVideo = "video"

type File struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"title" gorm:"size:50;not null"`
	Description string    `json:"description" gorm:"type:text"`
	URL         string    `json:"url" gorm:"size:500;uniqueIndex;not null"`
	Key         string    `json:"key" gorm:"size:255"`
	Type        string    `json:"type" gorm:"size:50"`
	Duration    *int      `json:"duration"`
	Owner       FileOwner `json:"owner" gorm:"embedded"`
	UploadedBy  uuid.UUID `json:"uploaded_by" gorm:"type:uuid;index"`

	CreatedAt time.Time `json:"created_at"`
}
