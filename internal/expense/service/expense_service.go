package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/domain"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/dto"
	autherror "github.com/Ylandolsi/ExpenseTrackerApi/internal/errors"
)

const dateLayout = "2006-01-02"

// ExpenseService serves expense reads through a cache-aside path with a
// sliding expiration, and writes straight through to the primary store.
type ExpenseService struct {
	expenses domain.ExpenseRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewExpenseService(expenses domain.ExpenseRepository, cache domain.Cache, cacheTTL time.Duration) *ExpenseService {
	return &ExpenseService{
		expenses: expenses,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// GetByDateRange checks the cache first and falls back to the primary store,
// populating the cache on miss. Cache failures are logged and never surface
// to the caller; the store remains the source of truth.
func (s *ExpenseService) GetByDateRange(ctx context.Context, userID int64, start, end time.Time) ([]dto.ExpenseOutput, error) {
	if start.After(end) {
		return nil, autherror.ErrInvalidDateRange
	}

	key := cacheKey(userID, start, end)

	payload, found, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("warn: cache unavailable for key %s: %v", key, err)
	} else if found {
		var cached []dto.ExpenseOutput
		if err := json.Unmarshal(payload, &cached); err != nil {
			log.Printf("warn: failed to decode cached payload for key %s: %v", key, err)
		} else {
			s.slideExpiration(ctx, key)
			return cached, nil
		}
	}

	expenses, err := s.expenses.GetByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	output := toOutput(expenses)

	// An empty result set is cached too, so sparse ranges do not miss
	// repeatedly.
	if encoded, err := json.Marshal(output); err != nil {
		log.Printf("warn: failed to encode expenses for key %s: %v", key, err)
	} else if err := s.cache.Set(ctx, key, encoded, s.cacheTTL); err != nil {
		log.Printf("warn: failed to cache expenses for key %s: %v", key, err)
	}

	return output, nil
}

// GetLastNDays queries [today-n, today] through the same cache path as
// GetByDateRange.
func (s *ExpenseService) GetLastNDays(ctx context.Context, userID int64, n int) ([]dto.ExpenseOutput, error) {
	if n < 0 {
		return nil, autherror.ErrInvalidLastDays
	}

	end := time.Now().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -n)

	return s.GetByDateRange(ctx, userID, start, end)
}

func (s *ExpenseService) GetAll(ctx context.Context, userID int64) ([]dto.ExpenseOutput, error) {
	expenses, err := s.expenses.GetAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOutput(expenses), nil
}

func (s *ExpenseService) Create(ctx context.Context, userID int64, input dto.ExpenseInput) (*dto.ExpenseOutput, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := &domain.Expense{
		UserID:      userID,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if expense.Description == "" {
		expense.Description = "No description"
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	out := expenseToOutput(*expense)
	return &out, nil
}

func (s *ExpenseService) Update(ctx context.Context, userID, expenseID int64, input dto.ExpenseInput) error {
	date, err := parseDate(input.Date)
	if err != nil {
		return err
	}

	expense := &domain.Expense{
		ID:          expenseID,
		UserID:      userID,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Date:        date,
		UpdatedAt:   time.Now(),
	}

	found, err := s.expenses.Update(ctx, expense)
	if err != nil {
		return err
	}
	if !found {
		return autherror.ErrExpenseNotFound
	}
	return nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID int64) error {
	found, err := s.expenses.Delete(ctx, expenseID, userID)
	if err != nil {
		return err
	}
	if !found {
		return autherror.ErrExpenseNotFound
	}
	return nil
}

// slideExpiration resets the entry's TTL to the full window once the
// remaining lifetime drops below it.
func (s *ExpenseService) slideExpiration(ctx context.Context, key string) {
	ttl, err := s.cache.TTL(ctx, key)
	if err != nil {
		log.Printf("warn: failed to read TTL for key %s: %v", key, err)
		return
	}
	if ttl >= 0 && ttl < s.cacheTTL {
		if err := s.cache.Expire(ctx, key, s.cacheTTL); err != nil {
			log.Printf("warn: failed to extend TTL for key %s: %v", key, err)
		}
	}
}

// cacheKey must be deterministic for identical arguments: two equal queries
// have to land on the same entry.
func cacheKey(userID int64, start, end time.Time) string {
	return fmt.Sprintf("expenses:%d:%s:%s", userID, start.Format(dateLayout), end.Format(dateLayout))
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expense date %q: %w", value, err)
	}
	return date, nil
}

func toOutput(expenses []domain.Expense) []dto.ExpenseOutput {
	output := make([]dto.ExpenseOutput, 0, len(expenses))
	for _, e := range expenses {
		output = append(output, expenseToOutput(e))
	}
	return output
}

func expenseToOutput(e domain.Expense) dto.ExpenseOutput {
	return dto.ExpenseOutput{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Price:       e.Price,
		Date:        e.Date.Format(dateLayout),
	}
}
