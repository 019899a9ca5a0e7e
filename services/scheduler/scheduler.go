package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"bus-buddy/constants"
	"bus-buddy/logger"
	"bus-buddy/services/reset"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily trip-counter reset at the configured wall-clock
// boundary, independent of any request. It shares no memory with request
// handling; the job and the HTTP path communicate only through the store.
type Scheduler struct {
	cron  *cron.Cron
	reset *reset.Service
}

// New builds a scheduler in the RESET_TIMEZONE location (UTC when unset or
// invalid). A panicking job run is recovered and logged; the next day's
// trigger fires regardless.
func New(resetService *reset.Service) *Scheduler {
	tz := os.Getenv("RESET_TIMEZONE")
	if tz == "" {
		tz = constants.DefaultResetTimeZone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.Warning(fmt.Sprintf("Unknown RESET_TIMEZONE %q, falling back to UTC", tz))
		loc = time.UTC
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	return &Scheduler{
		cron:  c,
		reset: resetService,
	}
}

// Start registers the reset job and starts the cron loop.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(constants.ResetCronSpec, s.runReset); err != nil {
		logger.Error("Failed to schedule daily trip count reset", err)
		return
	}
	logger.Success(fmt.Sprintf("Scheduled daily trip count reset (%s, %s)",
		constants.ResetCronSpec, s.cron.Location().String()))

	s.cron.Start()
}

// Stop stops the cron loop; a run already in flight finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runReset() {
	if _, err := s.reset.Run(context.Background()); err != nil {
		logger.Error("Daily trip count reset failed", err)
	}
}
