package user

import (
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a user id or email resolves to nothing.
var ErrNotFound = errors.New("user not found")

type UserRepository struct{}

type UserRepositoryInterface interface {
	Create(tx *sql.Tx, user *User) (int, error)
	GetByID(db *sql.DB, id int) (*User, error)
	GetByEmail(db *sql.DB, email string) (*User, error)
	UpdateMonthlyIncome(db *sql.DB, id int, monthlyIncome float64) (*User, error)
}

func NewUserRepository() UserRepositoryInterface {
	return &UserRepository{}
}

// Create inserts a new user and returns the generated id.
func (r *UserRepository) Create(tx *sql.Tx, user *User) (int, error) {
	query := `
		INSERT INTO users (
			username, email, password, created_at
		)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`

	var id int
	err := tx.QueryRow(
		query,
		user.Username,
		user.Email,
		user.Password,
	).Scan(&id)

	if err != nil {
		logrus.WithError(err).Error("Failed to create user")
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  id,
		"username": user.Username,
	}).Info("User created successfully")

	return id, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(db *sql.DB, id int) (*User, error) {
	query := `
		SELECT id, username, email, password, monthly_income, created_at
		FROM users
		WHERE id = $1
	`

	user := &User{}
	err := db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.MonthlyIncome,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logrus.WithField("user_id", id).Warn("User not found")
			return nil, ErrNotFound
		}
		logrus.WithError(err).Error("Failed to get user by ID")
		return nil, err
	}

	return user, nil
}

// GetByEmail retrieves a user by the login email.
func (r *UserRepository) GetByEmail(db *sql.DB, email string) (*User, error) {
	query := `
		SELECT id, username, email, password, monthly_income, created_at
		FROM users
		WHERE email = $1
	`

	user := &User{}
	err := db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.MonthlyIncome,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logrus.WithField("email", email).Warn("User not found")
			return nil, ErrNotFound
		}
		logrus.WithError(err).Error("Failed to get user by email")
		return nil, err
	}

	return user, nil
}

// UpdateMonthlyIncome upserts the monthly income figure and returns the
// updated record. No constraint is placed on the sign or magnitude of the
// value.
func (r *UserRepository) UpdateMonthlyIncome(db *sql.DB, id int, monthlyIncome float64) (*User, error) {
	query := `
		UPDATE users
		SET monthly_income = $1
		WHERE id = $2
		RETURNING id, username, email, password, monthly_income, created_at
	`

	user := &User{}
	err := db.QueryRow(query, monthlyIncome, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.MonthlyIncome,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logrus.WithField("user_id", id).Warn("User not found")
			return nil, ErrNotFound
		}
		logrus.WithError(err).Error("Failed to update monthly income")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":        id,
		"monthly_income": monthlyIncome,
	}).Info("Monthly income updated")

	return user, nil
}
