// internal/schedule/errors.go
package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange reports a requested slot whose start is not before its end.
	ErrInvalidRange = errors.New("start time must be earlier than end time")

	// ErrInvalidDuration reports a non-positive duration request.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")

	// ErrInvalidWorkHours reports a day whose working hours do not form a
	// valid interval. Ingestion treats this as fatal.
	ErrInvalidWorkHours = errors.New("work hours start must be earlier than end")
)

// ClockFormatError reports a time string that does not parse as "HH:MM".
type ClockFormatError struct {
	Value string
}

func (e *ClockFormatError) Error() string {
	return fmt.Sprintf("invalid time format %q: use HH:MM", e.Value)
}

// DateFormatError reports a date string that does not parse as "YYYY-MM-DD".
type DateFormatError struct {
	Value string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date format %q: use YYYY-MM-DD", e.Value)
}
