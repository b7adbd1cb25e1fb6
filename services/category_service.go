package services

import (
	"fmt"

	"eduone-core/models"
	"eduone-core/repositories"
	"eduone-core/search"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryService manages the course category catalog; all writes are
// superuser-only.
type CategoryService interface {
	Create(caller Caller, req models.CreateCategoryRequest) (*models.Category, error)
	Get(id uint) (*models.Category, error)
	List(params models.ListParams) ([]models.Category, int64, error)
	Popular(limit int) ([]models.Category, error)
	Update(caller Caller, id uint, req models.UpdateCategoryRequest) (*models.Category, error)
	Delete(caller Caller, id uint) error
}

type categoryService struct {
	tx           TxRunner
	categoryRepo repositories.CategoryRepository
	outboxRepo   repositories.OutboxRepository
	logger       *zap.Logger
}

// NewCategoryService ...
func NewCategoryService(
	tx TxRunner,
	categoryRepo repositories.CategoryRepository,
	outboxRepo repositories.OutboxRepository,
	logger *zap.Logger,
) CategoryService {
	return &categoryService{
		tx:           tx,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		logger:       logger,
	}
}

func categoryDocID(id uint) string { return fmt.Sprintf("%d", id) }

func (s *categoryService) Create(caller Caller, req models.CreateCategoryRequest) (*models.Category, error) {
	if !caller.IsSuperuser {
		return nil, models.Forbidden("superuser access required")
	}

	category := &models.Category{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Image != "" {
		category.Image = req.Image
	}

	err := s.tx(func(tx *gorm.DB) error {
		if err := s.categoryRepo.WithTx(tx).Create(category); err != nil {
			return err
		}
		doc := map[string]any{
			"title":       category.Title,
			"description": category.Description,
		}
		return s.outboxRepo.WithTx(tx).Enqueue(models.SearchIndexEntry(
			search.IndexCategories, categoryDocID(category.ID), doc))
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Get(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "category", id)
	}
	return category, nil
}

func (s *categoryService) List(params models.ListParams) ([]models.Category, int64, error) {
	params.Normalize()
	return s.categoryRepo.List(params)
}

// Popular ranks categories by live course count.
func (s *categoryService) Popular(limit int) ([]models.Category, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.categoryRepo.ListPopular(limit)
}

func (s *categoryService) Update(caller Caller, id uint, req models.UpdateCategoryRequest) (*models.Category, error) {
	if !caller.IsSuperuser {
		return nil, models.Forbidden("superuser access required")
	}
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return nil, notFoundIfMissing(err, "category", id)
	}

	fields := map[string]interface{}{}
	mirror := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
		mirror["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		mirror["description"] = *req.Description
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if len(fields) == 0 {
		return s.categoryRepo.FindByID(id)
	}

	err := s.tx(func(tx *gorm.DB) error {
		if err := s.categoryRepo.WithTx(tx).Updates(id, fields); err != nil {
			return err
		}
		if len(mirror) == 0 {
			return nil
		}
		return s.outboxRepo.WithTx(tx).Enqueue(models.SearchUpdateEntry(
			search.IndexCategories, categoryDocID(id), mirror))
	})
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.FindByID(id)
}

func (s *categoryService) Delete(caller Caller, id uint) error {
	if !caller.IsSuperuser {
		return models.Forbidden("superuser access required")
	}
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return notFoundIfMissing(err, "category", id)
	}

	return s.tx(func(tx *gorm.DB) error {
		if err := s.categoryRepo.WithTx(tx).Delete(id); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Enqueue(
			models.SearchDeleteEntry(search.IndexCategories, categoryDocID(id)))
	})
}
