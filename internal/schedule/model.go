// internal/schedule/model.go
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/dtsarkov/freebusy/internal/feed"
)

const dateLayout = "2006-01-02"

// DaySchedule holds one date's working window and its booked slots,
// sorted ascending by start time.
type DaySchedule struct {
	WorkHours Interval
	Busy      []Interval
}

// Model is the per-date schedule for a single employee. It is built once
// by NewModel and never mutated afterwards, so concurrent readers need no
// synchronization.
type Model struct {
	days map[string]DaySchedule
}

// NewModel ingests raw source records into a queryable model.
//
// Timeslots referencing an unknown day id are dropped. Any record with an
// unparsable clock time, or a day whose working hours are not a valid
// interval, aborts the whole build: no partial model is ever produced.
func NewModel(payload feed.Payload) (*Model, error) {
	type dayInfo struct {
		date  string
		hours Interval
	}

	// Transient ingestion index, discarded once the model is built.
	daysByID := make(map[int]dayInfo, len(payload.Days))
	days := make(map[string]DaySchedule, len(payload.Days))

	for _, day := range payload.Days {
		start, err := ParseClock(day.Start)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", day.ID, err)
		}
		end, err := ParseClock(day.End)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", day.ID, err)
		}
		if !start.Before(end) {
			return nil, fmt.Errorf("day %d (%s): %w", day.ID, day.Date, ErrInvalidWorkHours)
		}
		hours := Interval{Start: start, End: end}
		daysByID[day.ID] = dayInfo{date: day.Date, hours: hours}
		days[day.Date] = DaySchedule{WorkHours: hours}
	}

	for _, slot := range payload.Timeslots {
		info, ok := daysByID[slot.DayID]
		if !ok {
			continue
		}
		start, err := ParseClock(slot.Start)
		if err != nil {
			return nil, fmt.Errorf("timeslot %d: %w", slot.ID, err)
		}
		end, err := ParseClock(slot.End)
		if err != nil {
			return nil, fmt.Errorf("timeslot %d: %w", slot.ID, err)
		}
		day := days[info.date]
		day.Busy = append(day.Busy, Interval{Start: start, End: end})
		days[info.date] = day
	}

	for date, day := range days {
		sort.Slice(day.Busy, func(i, j int) bool {
			return day.Busy[i].Start.Before(day.Busy[j].Start)
		})
		days[date] = day
	}

	return &Model{days: days}, nil
}

// Dates returns every date present in the model in ascending order.
func (m *Model) Dates() []string {
	dates := make([]string, 0, len(m.days))
	for date := range m.days {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Len returns the number of dates with a working-hours record.
func (m *Model) Len() int {
	return len(m.days)
}

func (m *Model) day(date string) (DaySchedule, bool, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return DaySchedule{}, false, &DateFormatError{Value: date}
	}
	day, ok := m.days[date]
	return day, ok, nil
}
