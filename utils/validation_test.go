package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "9:30", "23:59", "10:00"}
	for _, v := range valid {
		assert.True(t, ValidTimeOfDay(v), v)
	}
	invalid := []string{"24:00", "10:60", "10", "10:0", "ten:30", "", "10:00:00"}
	for _, v := range invalid {
		assert.False(t, ValidTimeOfDay(v), v)
	}
}

func TestCombineDateAndTime(t *testing.T) {
	date := time.Date(2026, 9, 2, 17, 45, 12, 0, time.UTC)
	combined := CombineDateAndTime(date, "10:30")
	assert.Equal(t, time.Date(2026, 9, 2, 10, 30, 0, 0, time.UTC), combined)
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(start, time.Date(2026, 9, 3, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysBetween(start, start))
	assert.Equal(t, -1, DaysBetween(start, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+14155552671"))
	assert.True(t, ValidatePhone("(415) 555-2671"))
	assert.False(t, ValidatePhone("not-a-phone"))
	assert.False(t, ValidatePhone("+0123"))
}
