package user

import (
	"os"
	"testing"

	"fintrack/internal/observability"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	observability.InitMetrics()
	os.Exit(m.Run())
}
