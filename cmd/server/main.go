// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/dtsarkov/freebusy/internal/api/availability"
	"github.com/dtsarkov/freebusy/internal/config"
	"github.com/dtsarkov/freebusy/internal/feed"
	"github.com/dtsarkov/freebusy/internal/refresh"
	"github.com/dtsarkov/freebusy/internal/schedule"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", getEnv("CONFIG_PATH", "config/config.yaml"), "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	shutdownTimeout := time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second

	// Construction is fail-fast: a schedule we cannot fetch or ingest
	// means nothing to serve.
	client := feed.NewClient(cfg.Source.URL, cfg.Source.Timeout())
	payload, err := client.Fetch(context.Background())
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.Source.URL).Msg("Failed to fetch schedule source")
	}
	model, err := schedule.NewModel(payload)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to ingest schedule")
	}
	log.Info().Int("dates", model.Len()).Msg("Schedule model loaded")

	store := schedule.NewStore(model)
	availability.InitHandlers(store)

	server := newServer(cfg)

	var refresher *refresh.Service
	if cfg.Refresh.Cron != "" {
		refresher, err = refresh.New(client, store, cfg.Refresh.Cron)
		if err != nil {
			log.Fatal().Err(err).Str("cron", cfg.Refresh.Cron).Msg("Failed to create refresh job")
		}
		refresher.Start()
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if refresher != nil {
			if err := refresher.Stop(); err != nil {
				log.Error().Err(err).Msg("Failed to stop refresh job")
			}
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
