package availability

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dtsarkov/freebusy/internal/feed"
	"github.com/dtsarkov/freebusy/internal/schedule"
)

func setupHandlersTest(t *testing.T) {
	t.Helper()

	model, err := schedule.NewModel(feed.Payload{
		Days: []feed.DayRecord{
			{ID: 1, Date: "2024-10-10", Start: "09:00", End: "18:00"},
		},
		Timeslots: []feed.TimeslotRecord{
			{ID: 1, DayID: 1, Start: "11:00", End: "12:00"},
			{ID: 2, DayID: 1, Start: "15:00", End: "15:30"},
		},
	})
	if err != nil {
		t.Fatalf("build model: %v", err)
	}

	store = nil
	storeOnce = sync.Once{}
	InitHandlers(schedule.NewStore(model))

	t.Cleanup(func() {
		store = nil
		storeOnce = sync.Once{}
	})
}

type slotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func doRequest(t *testing.T, handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleBusySlots(t *testing.T) {
	setupHandlersTest(t)

	rec := doRequest(t, HandleBusySlots, "/api/v1/schedule/busy?date=2024-10-10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var slots []slotDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	if slots[0].Start != "11:00" || slots[0].End != "12:00" {
		t.Errorf("first slot = %+v, want 11:00-12:00", slots[0])
	}
}

func TestHandleBusySlots_AbsentDate(t *testing.T) {
	setupHandlersTest(t)

	rec := doRequest(t, HandleBusySlots, "/api/v1/schedule/busy?date=2025-01-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var slots []slotDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("absent date should yield an empty list, got %v", slots)
	}
}

func TestHandleBusySlots_InvalidDate(t *testing.T) {
	setupHandlersTest(t)

	rec := doRequest(t, HandleBusySlots, "/api/v1/schedule/busy?date=2024/10/10")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleBusySlots_MissingDate(t *testing.T) {
	setupHandlersTest(t)

	rec := doRequest(t, HandleBusySlots, "/api/v1/schedule/busy")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleFreeSlots(t *testing.T) {
	setupHandlersTest(t)

	rec := doRequest(t, HandleFreeSlots, "/api/v1/schedule/free?date=2024-10-10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var slots []slotDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []slotDTO{
		{Start: "09:00", End: "11:00"},
		{Start: "12:00", End: "15:00"},
		{Start: "15:30", End: "18:00"},
	}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots %v, want %d", len(slots), slots, len(want))
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d = %+v, want %+v", i, slots[i], want[i])
		}
	}
}

func TestHandleSlotAvailable(t *testing.T) {
	setupHandlersTest(t)

	tests := []struct {
		name   string
		target string
		status int
		want   bool
	}{
		{name: "free", target: "/api/v1/schedule/available?date=2024-10-10&start=09:00&end=10:00", status: http.StatusOK, want: true},
		{name: "busy", target: "/api/v1/schedule/available?date=2024-10-10&start=11:30&end=12:30", status: http.StatusOK, want: false},
		{name: "boundary", target: "/api/v1/schedule/available?date=2024-10-10&start=12:00&end=12:30", status: http.StatusOK, want: true},
		{name: "absent date", target: "/api/v1/schedule/available?date=2025-01-01&start=10:00&end=11:00", status: http.StatusOK, want: false},
		{name: "bad time", target: "/api/v1/schedule/available?date=2024-10-10&start=9-00&end=11:00", status: http.StatusBadRequest},
		{name: "inverted range", target: "/api/v1/schedule/available?date=2024-10-10&start=11:00&end=10:00", status: http.StatusBadRequest},
		{name: "missing start", target: "/api/v1/schedule/available?date=2024-10-10&end=10:00", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, HandleSlotAvailable, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			var body map[string]bool
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body["available"] != tt.want {
				t.Errorf("available = %v, want %v", body["available"], tt.want)
			}
		})
	}
}

func TestHandleDurationSearch(t *testing.T) {
	setupHandlersTest(t)

	rec := doRequest(t, HandleDurationSearch, "/api/v1/schedule/search?duration=150")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body map[string][]slotDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	slots, ok := body["2024-10-10"]
	if !ok {
		t.Fatalf("expected 2024-10-10 in response, got %v", body)
	}
	// 09:00-11:00 (120m) misses the cut, 12:00-15:00 and 15:30-18:00 qualify.
	if len(slots) != 2 {
		t.Errorf("got %d qualifying slots %v, want 2", len(slots), slots)
	}
}

func TestHandleDurationSearch_Invalid(t *testing.T) {
	setupHandlersTest(t)

	for _, target := range []string{
		"/api/v1/schedule/search?duration=-10",
		"/api/v1/schedule/search?duration=0",
		"/api/v1/schedule/search?duration=ninety",
		"/api/v1/schedule/search",
	} {
		rec := doRequest(t, HandleDurationSearch, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestHandlers_UninitializedStore(t *testing.T) {
	store = nil
	storeOnce = sync.Once{}
	t.Cleanup(func() {
		store = nil
		storeOnce = sync.Once{}
	})

	rec := doRequest(t, HandleBusySlots, "/api/v1/schedule/busy?date=2024-10-10")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
