package expense

import "time"

// The closed set of expense types.
const (
	TypeRent           = "Rent"
	TypeFood           = "Food"
	TypeTransportation = "Transportation"
	TypeMedical        = "Medical"
	TypeOther          = "Other"
)

var validTypes = map[string]bool{
	TypeRent:           true,
	TypeFood:           true,
	TypeTransportation: true,
	TypeMedical:        true,
	TypeOther:          true,
}

// ValidType reports whether t belongs to the closed expense type set.
func ValidType(t string) bool {
	return validTypes[t]
}

type Expense struct {
	ID     int       `json:"id"`
	UserID int       `json:"userId"`
	Amount float64   `json:"amount"`
	Type   string    `json:"type"`
	Date   time.Time `json:"date"`
}

// Statistics are the month-to-date aggregates derived from a user's
// current-month expenses.
type Statistics struct {
	TotalExpenses   float64 `json:"totalExpenses"`
	RemainingIncome float64 `json:"remainingIncome"`
	AverageExpense  float64 `json:"averageExpense"`
}

// MonthStart returns the first instant of t's calendar month in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
