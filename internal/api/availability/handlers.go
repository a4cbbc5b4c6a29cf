// internal/api/availability/handlers.go
package availability

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dtsarkov/freebusy/internal/api/apiutil"
	"github.com/dtsarkov/freebusy/internal/schedule"
)

const (
	dateQueryKey     = "date"
	startQueryKey    = "start"
	endQueryKey      = "end"
	durationQueryKey = "duration"
)

var (
	store     *schedule.Store
	storeOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *schedule.Store) {
	if s == nil {
		return
	}
	storeOnce.Do(func() {
		store = s
	})
}

// GET /api/v1/schedule/busy?date=YYYY-MM-DD
func HandleBusySlots(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	model := loadModel()
	if model == nil {
		logger.Error().Msg("Schedule store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	date, err := requiredParam(r, dateQueryKey)
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}

	slots, err := model.BusySlots(date)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	writeSlots(w, r, slots)
}

// GET /api/v1/schedule/free?date=YYYY-MM-DD
func HandleFreeSlots(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	model := loadModel()
	if model == nil {
		logger.Error().Msg("Schedule store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	date, err := requiredParam(r, dateQueryKey)
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}

	slots, err := model.FreeSlots(date)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	writeSlots(w, r, slots)
}

// GET /api/v1/schedule/available?date=YYYY-MM-DD&start=HH:MM&end=HH:MM
func HandleSlotAvailable(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	model := loadModel()
	if model == nil {
		logger.Error().Msg("Schedule store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	date, err := requiredParam(r, dateQueryKey)
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}
	start, err := requiredParam(r, startQueryKey)
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}
	end, err := requiredParam(r, endQueryKey)
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}

	available, err := model.IsSlotAvailable(date, start, end)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]bool{"available": available}); err != nil {
		logger.Error().Err(err).Msg("Failed to write availability response")
	}
}

// GET /api/v1/schedule/search?duration=MINUTES
func HandleDurationSearch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	model := loadModel()
	if model == nil {
		logger.Error().Msg("Schedule store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	raw, err := requiredParam(r, durationQueryKey)
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		writeBadRequest(w, r, apiutil.FieldError{Field: durationQueryKey, Reason: "must be an integer number of minutes"})
		return
	}

	found, err := model.FindSlotsForDuration(minutes)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, found); err != nil {
		logger.Error().Err(err).Msg("Failed to write duration search response")
	}
}

func loadModel() *schedule.Model {
	if store == nil {
		return nil
	}
	return store.Model()
}

func requiredParam(r *http.Request, key string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return "", apiutil.FieldError{Field: key, Reason: "is required"}
	}
	return value, nil
}

func writeSlots(w http.ResponseWriter, r *http.Request, slots []schedule.Interval) {
	if slots == nil {
		slots = []schedule.Interval{}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, slots); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write slots response")
	}
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	log.Ctx(r.Context()).Warn().Err(err).Msg("Rejected schedule query")
	if writeErr := apiutil.WriteError(w, http.StatusBadRequest, err.Error()); writeErr != nil {
		log.Ctx(r.Context()).Error().Err(writeErr).Msg("Failed to write error response")
	}
}

// writeQueryError maps engine validation failures to 400. The engine has
// no other failure modes, so anything unexpected is a 500.
func writeQueryError(w http.ResponseWriter, r *http.Request, err error) {
	var dateErr *schedule.DateFormatError
	var clockErr *schedule.ClockFormatError
	switch {
	case errors.As(err, &dateErr),
		errors.As(err, &clockErr),
		errors.Is(err, schedule.ErrInvalidRange),
		errors.Is(err, schedule.ErrInvalidDuration):
		writeBadRequest(w, r, err)
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("Schedule query failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
