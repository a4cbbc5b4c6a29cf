package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"days": [{"id": 1, "date": "2024-10-10", "start": "09:00", "end": "18:00"}],
			"timeslots": [{"id": 1, "day_id": 1, "start": "11:00", "end": "12:00"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeout)
	payload, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(payload.Days) != 1 {
		t.Fatalf("got %d days, want 1", len(payload.Days))
	}
	day := payload.Days[0]
	if day.ID != 1 || day.Date != "2024-10-10" || day.Start != "09:00" || day.End != "18:00" {
		t.Errorf("unexpected day record: %+v", day)
	}
	if len(payload.Timeslots) != 1 {
		t.Fatalf("got %d timeslots, want 1", len(payload.Timeslots))
	}
	if payload.Timeslots[0].DayID != 1 {
		t.Errorf("unexpected timeslot record: %+v", payload.Timeslots[0])
	}
}

func TestClientFetch_MissingCollections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeout)
	payload, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(payload.Days) != 0 || len(payload.Timeslots) != 0 {
		t.Errorf("missing collections should decode empty, got %+v", payload)
	}
}

func TestClientFetch_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeout)
	if _, err := client.Fetch(context.Background()); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("want ErrSourceUnavailable, got %v", err)
	}
}

func TestClientFetch_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeout)
	if _, err := client.Fetch(context.Background()); !errors.Is(err, ErrMalformedSource) {
		t.Errorf("want ErrMalformedSource, got %v", err)
	}
}

func TestClientFetch_Timeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewClient(server.URL, 50*time.Millisecond)
	if _, err := client.Fetch(context.Background()); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("want ErrSourceUnavailable on timeout, got %v", err)
	}
}

func TestClientFetch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, DefaultTimeout)
	if _, err := client.Fetch(context.Background()); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("want ErrSourceUnavailable, got %v", err)
	}
}
