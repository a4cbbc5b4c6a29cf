// internal/schedule/engine.go
package schedule

// BusySlots returns the booked slots for a date, ascending by start time.
// A date with no working-hours record yields an empty list.
func (m *Model) BusySlots(date string) ([]Interval, error) {
	day, ok, err := m.day(date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	slots := make([]Interval, len(day.Busy))
	copy(slots, day.Busy)
	return slots, nil
}

// FreeSlots returns the maximal gaps between working-hours bounds and
// booked slots, ascending by start time.
//
// The sweep advances a cursor from the start of working hours past each
// busy slot in order; overlapping or nested busy slots are absorbed
// because the cursor never moves backwards.
func (m *Model) FreeSlots(date string) ([]Interval, error) {
	day, ok, err := m.day(date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var free []Interval
	cursor := day.WorkHours.Start
	for _, busy := range day.Busy {
		if cursor.Before(busy.Start) {
			free = append(free, Interval{Start: cursor, End: busy.Start})
		}
		cursor = maxClock(cursor, busy.End)
	}
	if cursor.Before(day.WorkHours.End) {
		free = append(free, Interval{Start: cursor, End: day.WorkHours.End})
	}
	return free, nil
}

// IsSlotAvailable reports whether the requested slot lies within working
// hours and clear of every booked slot. Touching a busy slot's boundary
// does not count as a conflict. A date absent from the model is simply
// unavailable, not an error.
func (m *Model) IsSlotAvailable(date, startRaw, endRaw string) (bool, error) {
	start, err := ParseClock(startRaw)
	if err != nil {
		return false, err
	}
	end, err := ParseClock(endRaw)
	if err != nil {
		return false, err
	}
	if !start.Before(end) {
		return false, ErrInvalidRange
	}

	day, ok, err := m.day(date)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	requested := Interval{Start: start, End: end}
	if !day.WorkHours.Contains(requested) {
		return false, nil
	}
	for _, busy := range day.Busy {
		if requested.Overlaps(busy) {
			return false, nil
		}
	}
	return true, nil
}

// FindSlotsForDuration returns, per date in ascending order, the free
// slots of at least the requested length in minutes. Dates without a
// qualifying slot are omitted.
func (m *Model) FindSlotsForDuration(durationMinutes int) (map[string][]Interval, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	suitable := make(map[string][]Interval)
	for _, date := range m.Dates() {
		free, err := m.FreeSlots(date)
		if err != nil {
			return nil, err
		}
		for _, slot := range free {
			if slot.Minutes() >= durationMinutes {
				suitable[date] = append(suitable[date], slot)
			}
		}
	}
	return suitable, nil
}
