package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/observability"
	"fintrack/internal/utils"

	"github.com/sirupsen/logrus"
)

// ErrInvalidCredentials is returned when the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	repo      UserRepositoryInterface
	db        *sql.DB
	cache     *cache.MonthCache
	jwtSecret string
}

type UserServiceInterface interface {
	Register(username, email, password string) (int, error)
	Login(email, password string) (string, error)
	SetMonthlyIncome(userID int, monthlyIncome float64) (*User, error)
	GetUserByID(id int) (*User, error)
}

func NewUserService(repo UserRepositoryInterface, db *sql.DB, monthCache *cache.MonthCache, jwtSecret string) UserServiceInterface {
	return &UserService{
		repo:      repo,
		db:        db,
		cache:     monthCache,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new user with a hashed password and returns its id.
func (s *UserService) Register(username, email, password string) (int, error) {
	hashedPassword, err := auth.GeneratePasswordHash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}

	var id int
	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		id, err = s.repo.Create(tx, user)
		return err
	}); err != nil {
		return 0, err
	}

	observability.GlobalMetrics.UsersRegisteredTotal.Inc()
	return id, nil
}

// Login verifies the credentials and issues a signed bearer token.
// Returns ErrNotFound for an unknown email and ErrInvalidCredentials for a
// password mismatch; the two are never conflated.
func (s *UserService) Login(email, password string) (string, error) {
	user, err := s.repo.GetByEmail(s.db, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			observability.GlobalMetrics.LoginsTotal.WithLabelValues("not_found").Inc()
		} else {
			observability.GlobalMetrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return "", err
	}

	if err := auth.ComparePasswordHash([]byte(user.Password), password); err != nil {
		observability.GlobalMetrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret)
	if err != nil {
		observability.GlobalMetrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	observability.GlobalMetrics.LoginsTotal.WithLabelValues("success").Inc()
	logrus.WithField("user_id", user.ID).Info("Login successful")
	return token, nil
}

// SetMonthlyIncome upserts the income figure and returns the updated user.
// Negative and zero values are accepted as-is.
func (s *UserService) SetMonthlyIncome(userID int, monthlyIncome float64) (*User, error) {
	user, err := s.repo.UpdateMonthlyIncome(s.db, userID, monthlyIncome)
	if err != nil {
		return nil, err
	}

	observability.GlobalMetrics.IncomeUpdatesTotal.Inc()

	// Cached statistics embed remainingIncome; drop them for this month.
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		key := cache.StatisticsKey(userID, time.Now())
		if err := s.cache.Invalidate(ctx, key); err != nil {
			logrus.WithError(err).Warn("Failed to invalidate statistics cache")
		}
	}

	return user, nil
}

// GetUserByID retrieves a user by id.
func (s *UserService) GetUserByID(id int) (*User, error) {
	return s.repo.GetByID(s.db, id)
}
