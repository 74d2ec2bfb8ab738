package expense

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockExpenseService is a mock implementation of ExpenseServiceInterface
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) AddExpense(expense *Expense) error {
	args := m.Called(expense)
	return args.Error(0)
}

func (m *MockExpenseService) ListCurrentMonth(userID int) ([]*Expense, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Expense), args.Error(1)
}

func (m *MockExpenseService) GetStatistics(userID int) (*Statistics, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Statistics), args.Error(1)
}

func decodeEnvelope(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestAddExpense_Success(t *testing.T) {
	mockService := new(MockExpenseService)
	controller := NewExpenseController(mockService)
	router := gin.New()
	router.POST("/expenses", controller.AddExpense)

	mockService.On("AddExpense", mock.MatchedBy(func(e *Expense) bool {
		return e.UserID == 7 && e.Amount == 49.90 && e.Type == TypeFood
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*Expense).ID = 99
	}).Return(nil)

	body := `{"userId":7,"amount":49.90,"type":"Food"}`
	req := httptest.NewRequest("POST", "/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Expense added", envelope["message"])
	data := envelope["data"].(map[string]interface{})
	stored := data["expense"].(map[string]interface{})
	assert.Equal(t, float64(99), stored["id"])
	// The stored type round-trips exactly.
	assert.Equal(t, "Food", stored["type"])

	mockService.AssertExpectations(t)
}

func TestAddExpense_TypeOutsideSet(t *testing.T) {
	mockService := new(MockExpenseService)
	controller := NewExpenseController(mockService)
	router := gin.New()
	router.POST("/expenses", controller.AddExpense)

	body := `{"userId":7,"amount":10,"type":"Groceries"}`
	req := httptest.NewRequest("POST", "/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, false, envelope["success"])
	errs := envelope["errors"].(map[string]interface{})
	assert.Contains(t, errs, "type")

	mockService.AssertNotCalled(t, "AddExpense")
}

func TestAddExpense_EveryTypeInSetAccepted(t *testing.T) {
	for _, typ := range []string{TypeRent, TypeFood, TypeTransportation, TypeMedical, TypeOther} {
		t.Run(typ, func(t *testing.T) {
			mockService := new(MockExpenseService)
			controller := NewExpenseController(mockService)
			router := gin.New()
			router.POST("/expenses", controller.AddExpense)

			mockService.On("AddExpense", mock.MatchedBy(func(e *Expense) bool {
				return e.Type == typ
			})).Return(nil)

			body := `{"userId":7,"amount":10,"type":"` + typ + `"}`
			req := httptest.NewRequest("POST", "/expenses", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusCreated, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestListCurrentMonth_EmptyIsNotAnError(t *testing.T) {
	mockService := new(MockExpenseService)
	controller := NewExpenseController(mockService)
	router := gin.New()
	router.GET("/expenses/:userId", controller.ListCurrentMonth)

	mockService.On("ListCurrentMonth", 7).Return([]*Expense(nil), nil)

	req := httptest.NewRequest("GET", "/expenses/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "Expenses retrieved", envelope["message"])
	data := envelope["data"].(map[string]interface{})
	expenses, ok := data["expenses"].([]interface{})
	require.True(t, ok, "expenses must serialize as an array, not null")
	assert.Empty(t, expenses)

	mockService.AssertExpectations(t)
}

func TestListCurrentMonth_InvalidUserID(t *testing.T) {
	mockService := new(MockExpenseService)
	controller := NewExpenseController(mockService)
	router := gin.New()
	router.GET("/expenses/:userId", controller.ListCurrentMonth)

	req := httptest.NewRequest("GET", "/expenses/not-a-number", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ListCurrentMonth")
}

func TestGetStatistics_Success(t *testing.T) {
	mockService := new(MockExpenseService)
	controller := NewExpenseController(mockService)
	router := gin.New()
	router.GET("/statistics/:userId", controller.GetStatistics)

	mockService.On("GetStatistics", 7).Return(&Statistics{
		TotalExpenses:   100,
		RemainingIncome: 900,
		AverageExpense:  100.0 / 3.0,
	}, nil)

	req := httptest.NewRequest("GET", "/statistics/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "Statistics retrieved", envelope["message"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(100), data["totalExpenses"])
	assert.Equal(t, float64(900), data["remainingIncome"])
	assert.InDelta(t, 33.33, data["averageExpense"].(float64), 0.01)

	mockService.AssertExpectations(t)
}

func TestGetStatistics_UnknownUserResponse(t *testing.T) {
	mockService := new(MockExpenseService)
	controller := NewExpenseController(mockService)
	router := gin.New()
	router.GET("/statistics/:userId", controller.GetStatistics)

	mockService.On("GetStatistics", 42).Return(nil, user.ErrNotFound)

	req := httptest.NewRequest("GET", "/statistics/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "User not found", envelope["message"])
	errs := envelope["errors"].(map[string]interface{})
	assert.Equal(t, "Invalid user ID", errs["userId"])

	mockService.AssertExpectations(t)
}
