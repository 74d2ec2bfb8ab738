package handler

import (
	"database/sql"
	"net/http"

	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/expense"
	"fintrack/internal/middleware"
	"fintrack/internal/observability"
	"fintrack/internal/response"
	"fintrack/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// SetupHandler initializes all dependencies and routes.
func SetupHandler(db *sql.DB, redisClient *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.PrometheusMiddleware(observability.GlobalMetrics))

	monthCache := cache.NewMonthCache(redisClient)

	// Initialize repositories
	userRepo := user.NewUserRepository()
	expenseRepo := expense.NewExpenseRepository()

	// Initialize services
	userService := user.NewUserService(userRepo, db, monthCache, cfg.JWT.Secret)
	expenseService := expense.NewExpenseService(expenseRepo, userRepo, db, monthCache)

	// Initialize controllers
	userController := user.NewUserController(userService)
	expenseController := expense.NewExpenseController(expenseService)

	setupRoutes(r, db, userController, expenseController, redisClient, cfg.JWT.Secret)

	return r
}

// setupRoutes configures all application routes.
func setupRoutes(r *gin.Engine, db *sql.DB, userCtrl *user.UserController, expenseCtrl *expense.ExpenseController, redisClient *redis.Client, jwtSecret string) {
	r.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			response.FailErr(c, http.StatusServiceUnavailable, "Store unreachable", err)
			return
		}
		response.OK(c, http.StatusOK, "OK", nil)
	})

	// Credential endpoints get the strict limiter, keyed by client IP.
	strict := middleware.RateLimiterMiddleware(redisClient, middleware.StrictRateLimiterConfig())
	r.POST("/register", strict, userCtrl.Register)
	r.POST("/login", strict, userCtrl.Login)

	// Public tracking surface: callers identify the user explicitly.
	r.PUT("/income", userCtrl.UpdateIncome)
	r.POST("/expenses", expenseCtrl.AddExpense)
	r.GET("/expenses/:userId", expenseCtrl.ListCurrentMonth)
	r.GET("/statistics/:userId", expenseCtrl.GetStatistics)

	// Token-protected routes
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	api.Use(middleware.RateLimiterMiddleware(redisClient, middleware.DefaultRateLimiterConfig()))
	{
		api.GET("/me", userCtrl.Me)
	}
}
