package expense

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/observability"
	"fintrack/internal/user"
	"fintrack/internal/utils"

	"github.com/sirupsen/logrus"
)

// ErrInvalidType is returned when an expense type falls outside the closed set.
var ErrInvalidType = errors.New("invalid expense type")

type ExpenseService struct {
	repo  ExpenseRepositoryInterface
	users user.UserRepositoryInterface
	db    *sql.DB
	cache *cache.MonthCache
}

type ExpenseServiceInterface interface {
	AddExpense(expense *Expense) error
	ListCurrentMonth(userID int) ([]*Expense, error)
	GetStatistics(userID int) (*Statistics, error)
}

func NewExpenseService(repo ExpenseRepositoryInterface, users user.UserRepositoryInterface, db *sql.DB, monthCache *cache.MonthCache) ExpenseServiceInterface {
	return &ExpenseService{
		repo:  repo,
		users: users,
		db:    db,
		cache: monthCache,
	}
}

// AddExpense records an expense, defaulting its date to now. The referenced
// user is not checked to exist.
func (s *ExpenseService) AddExpense(expense *Expense) error {
	if !ValidType(expense.Type) {
		return ErrInvalidType
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}

	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		id, err := s.repo.Create(tx, expense)
		if err != nil {
			return err
		}
		expense.ID = id
		return nil
	}); err != nil {
		return err
	}

	observability.GlobalMetrics.ExpensesRecordedTotal.WithLabelValues(expense.Type).Inc()

	// The month's cached list and statistics are now stale.
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		keys := []string{
			cache.ExpensesKey(expense.UserID, expense.Date),
			cache.StatisticsKey(expense.UserID, expense.Date),
		}
		if err := s.cache.Invalidate(ctx, keys...); err != nil {
			logrus.WithError(err).Warn("Failed to invalidate expense caches")
		}
	}

	return nil
}

// ListCurrentMonth returns the user's expenses dated within the current
// calendar month, ascending by date.
func (s *ExpenseService) ListCurrentMonth(userID int) ([]*Expense, error) {
	now := time.Now()
	cacheKey := cache.ExpensesKey(userID, now)

	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var expenses []*Expense
			if json.Unmarshal(data, &expenses) == nil {
				observability.GlobalMetrics.CacheHitsTotal.WithLabelValues("expenses").Inc()
				return expenses, nil
			}
		}
		observability.GlobalMetrics.CacheMissesTotal.WithLabelValues("expenses").Inc()
	}

	expenses, err := s.repo.GetForUserSince(s.db, userID, MonthStart(now))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.cache.Set(ctx, cacheKey, expenses); err != nil {
			logrus.WithError(err).Warn("Failed to set expenses cache")
		}
	}

	return expenses, nil
}

// GetStatistics derives month-to-date aggregates for the user. The user read
// and the expense read are independent; a concurrent income update between
// them is an accepted race.
func (s *ExpenseService) GetStatistics(userID int) (*Statistics, error) {
	now := time.Now()
	cacheKey := cache.StatisticsKey(userID, now)

	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var stats Statistics
			if json.Unmarshal(data, &stats) == nil {
				observability.GlobalMetrics.CacheHitsTotal.WithLabelValues("statistics").Inc()
				observability.GlobalMetrics.StatisticsServedTotal.Inc()
				return &stats, nil
			}
		}
		observability.GlobalMetrics.CacheMissesTotal.WithLabelValues("statistics").Inc()
	}

	owner, err := s.users.GetByID(s.db, userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.GetForUserSince(s.db, userID, MonthStart(now))
	if err != nil {
		return nil, err
	}

	// Absent monthly income is treated as 0.
	var monthlyIncome float64
	if owner.MonthlyIncome != nil {
		monthlyIncome = *owner.MonthlyIncome
	}

	stats := computeStatistics(monthlyIncome, expenses)

	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.cache.Set(ctx, cacheKey, stats); err != nil {
			logrus.WithError(err).Warn("Failed to set statistics cache")
		}
	}

	observability.GlobalMetrics.StatisticsServedTotal.Inc()
	return &stats, nil
}

// computeStatistics aggregates a month's expenses against the income figure.
// The average is exactly 0 for an empty set.
func computeStatistics(monthlyIncome float64, expenses []*Expense) Statistics {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	var average float64
	if len(expenses) > 0 {
		average = total / float64(len(expenses))
	}

	return Statistics{
		TotalExpenses:   total,
		RemainingIncome: monthlyIncome - total,
		AverageExpense:  average,
	}
}
