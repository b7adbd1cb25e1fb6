package services

import (
	"errors"
	"fmt"

	"eduone-core/models"
	"eduone-core/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Caller identifies the authenticated user performing an operation.
type Caller struct {
	ID          uuid.UUID
	IsSuperuser bool
	IsAuthor    bool
}

// OwnershipGuard resolves the owning author of nested course material.
// Lessons belong to courses, homework and contents belong to lessons,
// so mutation rights always trace back to the course author.
type OwnershipGuard struct {
	courseRepo   repositories.CourseRepository
	lessonRepo   repositories.LessonRepository
	homeworkRepo repositories.HomeworkRepository
	contentRepo  repositories.ContentRepository
}

// NewOwnershipGuard ...
func NewOwnershipGuard(
	courseRepo repositories.CourseRepository,
	lessonRepo repositories.LessonRepository,
	homeworkRepo repositories.HomeworkRepository,
	contentRepo repositories.ContentRepository,
) *OwnershipGuard {
	return &OwnershipGuard{
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		homeworkRepo: homeworkRepo,
		contentRepo:  contentRepo,
	}
}

func notFoundIfMissing(err error, what string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NotFound(fmt.Sprintf("%s %v not found", what, id))
	}
	return err
}

// usernameOf resolves the display name for notification texts. Falls
// back to the id when the row cannot be read.
func usernameOf(userRepo repositories.UserRepository, id uuid.UUID) string {
	user, err := userRepo.FindByID(id)
	if err != nil {
		return id.String()
	}
	return user.Username
}

func receiverIDs(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// course returns the course when the caller may mutate it. Course
// material is mutable by its author only, superusers included.
func (g *OwnershipGuard) course(caller Caller, courseID uint) (*models.Course, error) {
	course, err := g.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, notFoundIfMissing(err, "course", courseID)
	}
	if course.UserID != caller.ID {
		return nil, models.Forbidden("you are not the author of this course")
	}
	return course, nil
}

// lesson resolves the lesson and checks course ownership.
func (g *OwnershipGuard) lesson(caller Caller, lessonID uint) (*models.Lesson, error) {
	lesson, err := g.lessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, notFoundIfMissing(err, "lesson", lessonID)
	}
	if _, err := g.course(caller, lesson.CourseID); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (g *OwnershipGuard) homework(caller Caller, homeworkID uint) (*models.Homework, error) {
	homework, err := g.homeworkRepo.FindByID(homeworkID)
	if err != nil {
		return nil, notFoundIfMissing(err, "homework", homeworkID)
	}
	if _, err := g.lesson(caller, homework.LessonID); err != nil {
		return nil, err
	}
	return homework, nil
}

func (g *OwnershipGuard) content(caller Caller, contentID uint) (*models.Content, error) {
	content, err := g.contentRepo.FindByID(contentID)
	if err != nil {
		return nil, notFoundIfMissing(err, "content", contentID)
	}
	if _, err := g.lesson(caller, content.LessonID); err != nil {
		return nil, err
	}
	return content, nil
}
