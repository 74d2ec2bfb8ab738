package expense

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
)

type ExpenseRepository struct{}

type ExpenseRepositoryInterface interface {
	Create(tx *sql.Tx, expense *Expense) (int, error)
	GetForUserSince(db *sql.DB, userID int, since time.Time) ([]*Expense, error)
}

func NewExpenseRepository() ExpenseRepositoryInterface {
	return &ExpenseRepository{}
}

// Create inserts an expense and returns the generated id. The referenced
// user is not verified to exist.
func (r *ExpenseRepository) Create(tx *sql.Tx, expense *Expense) (int, error) {
	query := `
		INSERT INTO expenses (
			user_id, amount, type, date
		)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int
	err := tx.QueryRow(
		query,
		expense.UserID,
		expense.Amount,
		expense.Type,
		expense.Date,
	).Scan(&id)

	if err != nil {
		logrus.WithError(err).Error("Failed to create expense")
		return 0, err
	}

	return id, nil
}

// GetForUserSince retrieves a user's expenses dated on or after since,
// ascending by date.
func (r *ExpenseRepository) GetForUserSince(db *sql.DB, userID int, since time.Time) ([]*Expense, error) {
	query := `
		SELECT id, user_id, amount, type, date
		FROM expenses
		WHERE user_id = $1 AND date >= $2
		ORDER BY date ASC
	`

	rows, err := db.Query(query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		var e Expense
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Amount,
			&e.Type,
			&e.Date,
		)
		if err != nil {
			logrus.Error("Error scanning expense row: ", err)
			continue
		}
		expenses = append(expenses, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}
