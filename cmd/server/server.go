// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dtsarkov/freebusy/internal/api"
	"github.com/dtsarkov/freebusy/internal/api/availability"
	"github.com/dtsarkov/freebusy/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	registerRoutes(router)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Schedule query routes
	mux.HandleFunc("/api/v1/schedule/busy", availability.HandleBusySlots)
	mux.HandleFunc("/api/v1/schedule/free", availability.HandleFreeSlots)
	mux.HandleFunc("/api/v1/schedule/available", availability.HandleSlotAvailable)
	mux.HandleFunc("/api/v1/schedule/search", availability.HandleDurationSearch)
}
