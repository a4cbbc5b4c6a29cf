// internal/feed/types.go
package feed

// DayRecord is one working day as published by the schedule source.
type DayRecord struct {
	ID    int    `json:"id"`
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeslotRecord is one booked slot, tied to a day by DayID.
type TimeslotRecord struct {
	ID    int    `json:"id"`
	DayID int    `json:"day_id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Payload is the source document. Missing collections decode as empty.
type Payload struct {
	Days      []DayRecord      `json:"days"`
	Timeslots []TimeslotRecord `json:"timeslots"`
}
