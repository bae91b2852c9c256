package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestDaysBetweenIsInclusive(t *testing.T) {
	assert.Equal(t, 1, DaysBetween(date("2026-03-02"), date("2026-03-02")))
	assert.Equal(t, 3, DaysBetween(date("2026-03-02"), date("2026-03-04")))
	assert.Equal(t, 31, DaysBetween(date("2026-03-01"), date("2026-03-31")))
}

func TestAllowanceCapped(t *testing.T) {
	assert.True(t, Allowance{Offered: true, MaxDays: 5}.Capped())
	assert.False(t, Allowance{Offered: true, Unlimited: true}.Capped())
	assert.False(t, Allowance{}.Capped())
}
