package repositories

import (
	"eduone-core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository ...
type TagRepository interface {
	WithTx(tx *gorm.DB) TagRepository
	Create(tag *models.Tag) (bool, error)
	FindByID(id uint) (*models.Tag, error)
	FindByTitle(title string) (*models.Tag, error)
	List(params models.ListParams) ([]models.Tag, int64, error)
	Rename(id uint, title string) error
	Delete(id uint) error
	BindToCourse(tagID, courseID uint) (bool, error)
	UnbindFromCourse(tagID, courseID uint) (bool, error)
	BindToLesson(tagID, lessonID uint) (bool, error)
	UnbindFromLesson(tagID, lessonID uint) (bool, error)
	TitlesByLesson(lessonID uint) ([]string, error)
}

type tagRepository struct {
	Conn *gorm.DB
}

// NewTagRepository ...
func NewTagRepository(conn *gorm.DB) TagRepository {
	return &tagRepository{Conn: conn}
}

func (r *tagRepository) WithTx(tx *gorm.DB) TagRepository {
	return &tagRepository{Conn: tx}
}

// Create inserts the tag unless the title already exists.
func (r *tagRepository) Create(tag *models.Tag) (bool, error) {
	res := r.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "title"}},
		DoNothing: true,
	}).Create(tag)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *tagRepository) FindByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.Conn.Where("id = ?", id).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByTitle(title string) (*models.Tag, error) {
	var tag models.Tag
	err := r.Conn.Where("title = ?", title).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) Rename(id uint, title string) error {
	return r.Conn.Model(&models.Tag{}).Where("id = ?", id).Update("title", title).Error
}

func (r *tagRepository) List(params models.ListParams) ([]models.Tag, int64, error) {
	var (
		tags  []models.Tag
		total int64
	)
	query := r.Conn.Model(&models.Tag{})
	if params.Title != "" {
		query = query.Where("title LIKE ?", params.Title+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Offset(params.Offset()).Limit(params.Limit).Order("title asc").Find(&tags).Error
	if err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

func (r *tagRepository) Delete(id uint) error {
	return r.Conn.Where("id = ?", id).Delete(&models.Tag{}).Error
}

func (r *tagRepository) BindToCourse(tagID, courseID uint) (bool, error) {
	bind := models.CourseTag{CourseID: courseID, TagID: tagID}
	res := r.Conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&bind)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *tagRepository) UnbindFromCourse(tagID, courseID uint) (bool, error) {
	res := r.Conn.Where("course_id = ? AND tag_id = ?", courseID, tagID).
		Delete(&models.CourseTag{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *tagRepository) BindToLesson(tagID, lessonID uint) (bool, error) {
	bind := models.LessonTag{LessonID: lessonID, TagID: tagID}
	res := r.Conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&bind)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *tagRepository) UnbindFromLesson(tagID, lessonID uint) (bool, error) {
	res := r.Conn.Where("lesson_id = ? AND tag_id = ?", lessonID, tagID).
		Delete(&models.LessonTag{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *tagRepository) TitlesByLesson(lessonID uint) ([]string, error) {
	var titles []string
	err := r.Conn.Model(&models.Tag{}).
		Joins("JOIN lesson_tags ON lesson_tags.tag_id = tags.id").
		Where("lesson_tags.lesson_id = ?", lessonID).
		Pluck("tags.title", &titles).Error
	if err != nil {
		return nil, err
	}
	return titles, nil
}
