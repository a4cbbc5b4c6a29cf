// internal/refresh/refresh.go
package refresh

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dtsarkov/freebusy/internal/feed"
	"github.com/dtsarkov/freebusy/internal/schedule"
)

var ErrEmptyCronExpr = errors.New("cron expression is required")

// Service periodically rebuilds the schedule model from the source and
// swaps it into the store. A failed refresh keeps the previous model.
type Service struct {
	scheduler gocron.Scheduler
	client    *feed.Client
	store     *schedule.Store
	stopOnce  sync.Once
	stopErr   error
}

func New(client *feed.Client, store *schedule.Store, cronExpr string) (*Service, error) {
	if strings.TrimSpace(cronExpr) == "" {
		return nil, ErrEmptyCronExpr
	}

	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Refresh job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	svc := &Service{scheduler: sched, client: client, store: store}
	_, err = sched.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(svc.refresh),
		gocron.WithName("schedule-refresh"),
	)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// Start begins running the refresh job.
func (s *Service) Start() {
	log.Info().Msg("Schedule refresh starting")
	s.scheduler.Start()
}

// Stop shuts down the scheduler and prevents further refreshes.
func (s *Service) Stop() error {
	s.stopOnce.Do(func() {
		log.Info().Msg("Schedule refresh stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}

func (s *Service) refresh() {
	payload, err := s.client.Fetch(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Schedule refresh fetch failed, keeping previous model")
		return
	}
	model, err := schedule.NewModel(payload)
	if err != nil {
		log.Error().Err(err).Msg("Schedule refresh ingest failed, keeping previous model")
		return
	}
	s.store.Swap(model)
	log.Info().Int("dates", model.Len()).Msg("Schedule model refreshed")
}
