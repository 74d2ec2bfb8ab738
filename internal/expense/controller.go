package expense

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/response"
	"fintrack/internal/user"

	"github.com/gin-gonic/gin"
)

type ExpenseController struct {
	service ExpenseServiceInterface
}

func NewExpenseController(service ExpenseServiceInterface) *ExpenseController {
	return &ExpenseController{
		service: service,
	}
}

// AddExpense handles POST /expenses.
func (ec *ExpenseController) AddExpense(c *gin.Context) {
	var req struct {
		UserID int `json:"userId" binding:"required"`
		// Pointer so that a zero amount still satisfies "required"; no sign
		// constraint is enforced.
		Amount *float64 `json:"amount" binding:"required"`
		Type   string   `json:"type" binding:"required,oneof=Rent Food Transportation Medical Other"`
		// Optional; defaults to the creation time when omitted.
		Date time.Time `json:"date"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Failed to add expense", response.ValidationErrors(err))
		return
	}

	expense := &Expense{
		UserID: req.UserID,
		Amount: *req.Amount,
		Type:   req.Type,
		Date:   req.Date,
	}

	if err := ec.service.AddExpense(expense); err != nil {
		if errors.Is(err, ErrInvalidType) {
			response.Fail(c, http.StatusBadRequest, "Failed to add expense", map[string]string{
				"type": "Must be one of: Rent Food Transportation Medical Other",
			})
			return
		}
		response.FailErr(c, http.StatusInternalServerError, "Failed to add expense", err)
		return
	}

	response.OK(c, http.StatusCreated, "Expense added", gin.H{
		"expense": expense,
	})
}

// ListCurrentMonth handles GET /expenses/:userId.
func (ec *ExpenseController) ListCurrentMonth(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Failed to retrieve expenses", map[string]string{
			"userId": "Invalid user ID",
		})
		return
	}

	expenses, err := ec.service.ListCurrentMonth(userID)
	if err != nil {
		response.FailErr(c, http.StatusInternalServerError, "Failed to retrieve expenses", err)
		return
	}

	// An empty month serializes as [], not null.
	if expenses == nil {
		expenses = []*Expense{}
	}

	response.OK(c, http.StatusOK, "Expenses retrieved", gin.H{
		"expenses": expenses,
	})
}

// GetStatistics handles GET /statistics/:userId.
func (ec *ExpenseController) GetStatistics(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Failed to retrieve statistics", map[string]string{
			"userId": "Invalid user ID",
		})
		return
	}

	stats, err := ec.service.GetStatistics(userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found", map[string]string{
				"userId": "Invalid user ID",
			})
			return
		}
		response.FailErr(c, http.StatusInternalServerError, "Failed to retrieve statistics", err)
		return
	}

	response.OK(c, http.StatusOK, "Statistics retrieved", stats)
}
