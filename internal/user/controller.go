package user

import (
	"errors"
	"net/http"

	"fintrack/internal/auth"
	"fintrack/internal/response"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService UserServiceInterface
}

func NewUserController(userService UserServiceInterface) *UserController {
	return &UserController{
		userService: userService,
	}
}

// Register handles POST /register.
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Failed to register user", response.ValidationErrors(err))
		return
	}

	userID, err := uc.userService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		response.FailErr(c, http.StatusInternalServerError, "Failed to register user", err)
		return
	}

	response.OK(c, http.StatusCreated, "User registered successfully", gin.H{
		"userId": userID,
	})
}

// Login handles POST /login.
func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Login failed", response.ValidationErrors(err))
		return
	}

	token, err := uc.userService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Fail(c, http.StatusNotFound, "User not found", map[string]string{
				"email": "No account with this email exists",
			})
		case errors.Is(err, ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, "Invalid credentials", map[string]string{
				"password": "Incorrect password",
			})
		default:
			response.FailErr(c, http.StatusInternalServerError, "Login failed", err)
		}
		return
	}

	response.OK(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
	})
}

// UpdateIncome handles PUT /income.
func (uc *UserController) UpdateIncome(c *gin.Context) {
	var req struct {
		UserID int `json:"userId" binding:"required"`
		// Pointer so that a zero income still satisfies "required".
		MonthlyIncome *float64 `json:"monthlyIncome" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Failed to update monthly income", response.ValidationErrors(err))
		return
	}

	user, err := uc.userService.SetMonthlyIncome(req.UserID, *req.MonthlyIncome)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found", map[string]string{
				"userId": "Invalid user ID",
			})
			return
		}
		response.FailErr(c, http.StatusInternalServerError, "Failed to update monthly income", err)
		return
	}

	response.OK(c, http.StatusOK, "Monthly income updated", gin.H{
		"user": user,
	})
}

// Me handles GET /api/v1/me for the authenticated user.
func (uc *UserController) Me(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Authentication required", map[string]string{
			"token": "User not authenticated",
		})
		return
	}

	user, err := uc.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found", map[string]string{
				"userId": "Invalid user ID",
			})
			return
		}
		response.FailErr(c, http.StatusInternalServerError, "Failed to retrieve user", err)
		return
	}

	response.OK(c, http.StatusOK, "User retrieved", gin.H{
		"user": user,
	})
}
