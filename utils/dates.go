package utils

import (
	"strconv"
	"strings"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// CombineDateAndTime anchors an HH:MM clock string onto a calendar date.
func CombineDateAndTime(date time.Time, clock string) time.Time {
	hours, minutes := 0, 0
	if parts := strings.SplitN(clock, ":", 2); len(parts) == 2 {
		hours, _ = strconv.Atoi(parts[0])
		minutes, _ = strconv.Atoi(parts[1])
	}
	year, month, day := date.Date()
	return time.Date(year, month, day, hours, minutes, 0, 0, date.Location())
}
