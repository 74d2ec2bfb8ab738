package user

import "time"

type User struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Password      string    `json:"-"` // Never expose password hash in JSON
	MonthlyIncome *float64  `json:"monthlyIncome,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
