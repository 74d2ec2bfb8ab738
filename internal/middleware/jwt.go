package middleware

import (
	"errors"
	"net/http"
	"strings"

	"fintrack/internal/auth"
	"fintrack/internal/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and puts the user id in the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, http.StatusUnauthorized, "Authentication required", map[string]string{
				"token": "Authorization header required",
			})
			c.Abort()
			return
		}

		// Expect "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Fail(c, http.StatusUnauthorized, "Authentication required", map[string]string{
				"token": "Invalid authorization format. Use: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(parts[1], secret)
		if err != nil {
			detail := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				detail = "Token expired"
			}
			response.Fail(c, http.StatusUnauthorized, "Authentication required", map[string]string{
				"token": detail,
			})
			c.Abort()
			return
		}

		c.Set(auth.UserIDKey, claims.UserID)
		c.Next()
	}
}
