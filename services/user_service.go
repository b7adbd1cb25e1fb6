package services

import (
	"context"
	"time"

	"eduone-core/models"
	"eduone-core/repositories"
	"eduone-core/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService ...
type UserService interface {
	Get(caller Caller, id uuid.UUID) (*models.User, error)
	List(params models.ListParams) ([]models.User, int64, error)
	PopularAuthors(limit int) ([]models.User, error)
	Update(caller Caller, id uuid.UUID, req models.UpdateUserRequest) (*models.User, error)
	Deactivate(caller Caller, id uuid.UUID) error
	PromoteAuthor(caller Caller, id uuid.UUID) error
}

type userService struct {
	tx         TxRunner
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	outboxRepo repositories.OutboxRepository
	counters   CounterStore
	logger     *zap.Logger
}

// NewUserService ...
func NewUserService(
	tx TxRunner,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	outboxRepo repositories.OutboxRepository,
	counters CounterStore,
	logger *zap.Logger,
) UserService {
	return &userService{
		tx:         tx,
		userRepo:   userRepo,
		followRepo: followRepo,
		outboxRepo: outboxRepo,
		counters:   counters,
		logger:     logger,
	}
}

// Get returns the profile with cached activity counters attached. A cache
// failure logs and leaves the counters at zero; the profile still loads.
func (s *userService) Get(caller Caller, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, notFoundIfMissing(err, "user", id)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if counters, err := s.counters.Get(ctx, id); err != nil {
		s.logger.Warn("counter cache read failed", zap.String("user_id", id.String()), zap.Error(err))
	} else {
		user.PostsCount = counters.PostsCount
		user.FollowersCount = counters.FollowersCount
		user.FollowingCount = counters.FollowingCount
	}

	if caller.ID != uuid.Nil && caller.ID != id {
		followed, err := s.followRepo.IsFollowing(caller.ID, id)
		if err != nil {
			return nil, err
		}
		user.IsFollowed = followed
	}
	return user, nil
}

func (s *userService) List(params models.ListParams) ([]models.User, int64, error) {
	params.Normalize()
	return s.userRepo.List(params)
}

// PopularAuthors ranks authors by lifetime course sales.
func (s *userService) PopularAuthors(limit int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.userRepo.ListPopularAuthors(limit)
}

// Update applies a patch: only fields present in the request change.
func (s *userService) Update(caller Caller, id uuid.UUID, req models.UpdateUserRequest) (*models.User, error) {
	if caller.ID != id && !caller.IsSuperuser {
		return nil, models.Forbidden("you can only edit your own profile")
	}
	if _, err := s.userRepo.FindByID(id); err != nil {
		return nil, notFoundIfMissing(err, "user", id)
	}

	fields := map[string]interface{}{}
	mirror := map[string]interface{}{}
	if req.Username != nil {
		fields["username"] = *req.Username
		mirror["username"] = *req.Username
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
		mirror["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
		mirror["last_name"] = *req.LastName
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		mirror["description"] = *req.Description
	}
	if req.Website != nil {
		fields["website"] = *req.Website
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.BirthDate != nil {
		fields["birth_date"] = *req.BirthDate
	}
	if len(fields) == 0 {
		return s.userRepo.FindByID(id)
	}

	err := s.tx(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Updates(id, fields); err != nil {
			return err
		}
		if len(mirror) == 0 {
			return nil
		}
		outbox := s.outboxRepo.WithTx(tx)
		if err := outbox.Enqueue(models.SearchUpdateEntry(search.IndexUsers, id.String(), mirror)); err != nil {
			return err
		}
		// Courses carry a denormalized author name.
		if req.Username != nil {
			body := map[string]any{
				"query": map[string]any{
					"term": map[string]any{"author_id": id.String()},
				},
				"script": map[string]any{
					"source": "ctx._source.author = params.author",
					"lang":   "painless",
					"params": map[string]any{"author": *req.Username},
				},
			}
			return outbox.Enqueue(models.SearchUpdateByQueryEntry(search.IndexCourses, body))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(id)
}

// Deactivate hides the account and drops its search document.
func (s *userService) Deactivate(caller Caller, id uuid.UUID) error {
	if caller.ID != id && !caller.IsSuperuser {
		return models.Forbidden("you can only deactivate your own account")
	}
	if _, err := s.userRepo.FindByID(id); err != nil {
		return notFoundIfMissing(err, "user", id)
	}

	return s.tx(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Delete(id); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Enqueue(
			models.SearchDeleteEntry(search.IndexUsers, id.String()))
	})
}

// PromoteAuthor grants course-authoring rights.
func (s *userService) PromoteAuthor(caller Caller, id uuid.UUID) error {
	if !caller.IsSuperuser {
		return models.Forbidden("superuser access required")
	}
	if _, err := s.userRepo.FindByID(id); err != nil {
		return notFoundIfMissing(err, "user", id)
	}
	return s.userRepo.Updates(id, map[string]interface{}{"is_author": true})
}
