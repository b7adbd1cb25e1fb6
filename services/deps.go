package services

import (
	"context"

	"eduone-core/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TxRunner runs fn inside a database transaction. Injecting the runner
// keeps services free of a hard *gorm.DB dependency.
type TxRunner func(fn func(tx *gorm.DB) error) error

// GormTxRunner ...
func GormTxRunner(db *gorm.DB) TxRunner {
	return func(fn func(tx *gorm.DB) error) error {
		return db.Transaction(fn)
	}
}

// CounterStore is the per-user counter cache; *cache.CounterCache
// implements it.
type CounterStore interface {
	Get(ctx context.Context, userID uuid.UUID) (cache.Counters, error)
	SetFollowCounts(ctx context.Context, userID uuid.UUID, followers, following int64) error
	SetPostsCount(ctx context.Context, userID uuid.UUID, posts int64) error
}
