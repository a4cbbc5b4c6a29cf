// internal/schedule/clock.go
package schedule

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// Clock is a wall-clock time of day. No date, no timezone.
type Clock struct {
	hour   int
	minute int
}

// ParseClock parses a "HH:MM" 24-hour time string.
func ParseClock(raw string) (Clock, error) {
	parsed, err := time.Parse(clockLayout, raw)
	if err != nil {
		return Clock{}, &ClockFormatError{Value: raw}
	}
	return Clock{hour: parsed.Hour(), minute: parsed.Minute()}, nil
}

// ClockAt builds a Clock from an hour and minute. Intended for tests and
// fixtures; out-of-range values are not checked.
func ClockAt(hour, minute int) Clock {
	return Clock{hour: hour, minute: minute}
}

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int {
	return c.hour*60 + c.minute
}

func (c Clock) Before(other Clock) bool {
	return c.Minutes() < other.Minutes()
}

// Sub returns c - other in minutes.
func (c Clock) Sub(other Clock) int {
	return c.Minutes() - other.Minutes()
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

// MarshalJSON renders the clock as a "HH:MM" JSON string.
func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func maxClock(a, b Clock) Clock {
	if a.Before(b) {
		return b
	}
	return a
}
