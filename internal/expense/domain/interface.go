package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../../mocks/mock_expense_repository.go -package=mocks github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/domain ExpenseRepository,Cache

type ExpenseRepository interface {
	// GetByDateRange returns the user's expenses with date in [start, end],
	// both ends inclusive.
	GetByDateRange(ctx context.Context, userID int64, start, end time.Time) ([]Expense, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]Expense, error)
	Create(ctx context.Context, expense *Expense) error
	// Update and Delete report whether a matching row existed.
	Update(ctx context.Context, expense *Expense) (bool, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
}

// Cache is the key-value capability backing the cache-aside read path. A
// miss is (nil, false, nil); errors mean the backend is unreachable.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
