package services

import (
	"errors"

	"eduone-core/models"
	"eduone-core/repositories"
	"eduone-core/search"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TagService ...
type TagService interface {
	Create(req models.CreateTagRequest) (*models.Tag, error)
	Get(id uint) (*models.Tag, error)
	List(params models.ListParams) ([]models.Tag, int64, error)
	Update(caller Caller, id uint, req models.CreateTagRequest) (*models.Tag, error)
	Delete(caller Caller, id uint) error
}

type tagService struct {
	tagRepo    repositories.TagRepository
	outboxRepo repositories.OutboxRepository
	logger     *zap.Logger
}

// NewTagService ...
func NewTagService(
	tagRepo repositories.TagRepository,
	outboxRepo repositories.OutboxRepository,
	logger *zap.Logger,
) TagService {
	return &tagService{tagRepo: tagRepo, outboxRepo: outboxRepo, logger: logger}
}

func (s *tagService) Create(req models.CreateTagRequest) (*models.Tag, error) {
	tag := &models.Tag{Title: req.Title}
	created, err := s.tagRepo.Create(tag)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, models.Conflict("tag already exists")
	}
	return tag, nil
}

func (s *tagService) Get(id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "tag", id)
	}
	return tag, nil
}

func (s *tagService) List(params models.ListParams) ([]models.Tag, int64, error) {
	params.Normalize()
	return s.tagRepo.List(params)
}

// Update renames the tag and rewrites it inside every lesson document
// carrying the old title.
func (s *tagService) Update(caller Caller, id uint, req models.CreateTagRequest) (*models.Tag, error) {
	if !caller.IsSuperuser {
		return nil, models.Forbidden("superuser access required")
	}
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "tag", id)
	}
	if tag.Title == req.Title {
		return tag, nil
	}
	if _, err := s.tagRepo.FindByTitle(req.Title); err == nil {
		return nil, models.Conflict("tag already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	oldTitle := tag.Title
	if err := s.tagRepo.Rename(id, req.Title); err != nil {
		return nil, err
	}
	s.mirrorTagRewrite(oldTitle, req.Title)

	tag.Title = req.Title
	return tag, nil
}

func (s *tagService) Delete(caller Caller, id uint) error {
	if !caller.IsSuperuser {
		return models.Forbidden("superuser access required")
	}
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		return notFoundIfMissing(err, "tag", id)
	}
	if err := s.tagRepo.Delete(id); err != nil {
		return err
	}
	s.mirrorTagRewrite(tag.Title, "")
	return nil
}

// mirrorTagRewrite replaces (or removes, when newTitle is empty) a tag title
// inside all lesson documents.
func (s *tagService) mirrorTagRewrite(oldTitle, newTitle string) {
	source := "ctx._source.tags.removeIf(t -> t == params.old)"
	params := map[string]any{"old": oldTitle}
	if newTitle != "" {
		source = "if (ctx._source.tags.removeIf(t -> t == params.old)) { ctx._source.tags.add(params.new) }"
		params["new"] = newTitle
	}
	body := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"tags": oldTitle},
		},
		"script": map[string]any{
			"source": source,
			"lang":   "painless",
			"params": params,
		},
	}
	if err := s.outboxRepo.Enqueue(models.SearchUpdateByQueryEntry(search.IndexLessons, body)); err != nil {
		s.logger.Warn("enqueue tag mirror rewrite failed", zap.Error(err))
	}
}
