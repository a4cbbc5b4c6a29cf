// internal/schedule/interval.go
package schedule

// Interval is a half-open [Start, End) span within a single day.
type Interval struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// Minutes returns the span length in minutes.
func (iv Interval) Minutes() int {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two intervals share any interior time.
// Boundary-touching intervals do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	start := maxClock(iv.Start, other.Start)
	end := other.End
	if iv.End.Before(other.End) {
		end = iv.End
	}
	return start.Before(end)
}

// Contains reports whether other lies fully within iv, boundaries included.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !iv.End.Before(other.End)
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}
