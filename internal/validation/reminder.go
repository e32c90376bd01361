package validation

import (
	"errors"
	"regexp"
)

// Strict two-digit-hour:two-digit-minute, e.g. "07:30".
var reminderTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidateReminderTime validates a habit reminder time string
func ValidateReminderTime(reminder string) error {
	if !reminderTimePattern.MatchString(reminder) {
		return errors.New("invalid reminder format, expected HH:MM")
	}

	return nil
}
