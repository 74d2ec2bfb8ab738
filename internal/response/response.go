// Package response renders the envelope shared by every API route:
// {success, message, data?, errors?}.
package response

import "github.com/gin-gonic/gin"

type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// OK writes a success envelope with the given status and data payload.
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail writes a failure envelope carrying field-level error details.
func Fail(c *gin.Context, status int, message string, errs map[string]string) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// FailErr is shorthand for a failure whose only detail is the error message.
func FailErr(c *gin.Context, status int, message string, err error) {
	Fail(c, status, message, map[string]string{"error": err.Error()})
}
