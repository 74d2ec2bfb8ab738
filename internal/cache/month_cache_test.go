package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthKeys(t *testing.T) {
	march := time.Date(2024, time.March, 17, 10, 0, 0, 0, time.Local)
	april := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.Local)

	assert.Equal(t, "expenses:user:7:2024-03", ExpensesKey(7, march))
	assert.Equal(t, "stats:user:7:2024-03", StatisticsKey(7, march))

	// A month rollover changes the key, so stale entries are never read.
	assert.NotEqual(t, ExpensesKey(7, march), ExpensesKey(7, april))
}
