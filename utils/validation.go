package utils

import (
	"regexp"
	"strings"
)

var timeOfDayRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeOfDay checks the HH:MM 24-hour format.
func ValidTimeOfDay(value string) bool {
	return timeOfDayRe.MatchString(value)
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	match, _ := regexp.MatchString(`^\+?[1-9]\d{1,14}$`, cleaned)
	return match
}
