package reset

import (
	"context"
	"fmt"
	"time"

	"bus-buddy/constants"
	"bus-buddy/logger"
	"bus-buddy/models/systemlog"
	"bus-buddy/models/tripcounter"
)

// Store is the persistence surface the daily reset needs. ResetBatch must
// commit atomically; batches are not atomic across each other, which is fine
// because the reset is idempotent and the next run recovers a partial one.
type Store interface {
	AllTripCounters(ctx context.Context) ([]tripcounter.TripCounter, error)
	ResetBatch(ctx context.Context, passIDs []uint, at time.Time) error
	AppendSystemLog(ctx context.Context, entry *systemlog.SystemLog) error
}

// Service zeroes every pass's daily trip counter once per calendar day and
// appends one audit row per run. It holds no state between runs and is safe
// to run concurrently with scan increments: a racing increment resolves as
// last-writer-wins at the store.
type Service struct {
	store     Store
	batchSize int
}

func NewService(store Store) *Service {
	return &Service{
		store:     store,
		batchSize: constants.ResetBatchSize,
	}
}

// Stats describes one completed (or failed) run.
type Stats struct {
	DocumentsProcessed int
	BatchesUsed        int
}

// Run executes one full reset. It never returns mid-batch: every error path
// first attempts to append an error audit row, and a failure writing that row
// is only surfaced to operational logging, never retried inline.
func (s *Service) Run(ctx context.Context) (Stats, error) {
	started := time.Now()
	logger.Info(fmt.Sprintf("Starting daily trip count reset at %s", started.Format(time.RFC3339)))

	documentsProcessed := 0
	batchesUsed := 0

	counters, err := s.store.AllTripCounters(ctx)
	if err != nil {
		s.audit(ctx, documentsProcessed, batchesUsed, err)
		return Stats{}, err
	}

	if len(counters) == 0 {
		logger.Info("No scanned-pass records found, nothing to reset")
		s.audit(ctx, 0, 0, nil)
		return Stats{}, nil
	}

	total := len(counters)
	now := time.Now()

	for start := 0; start < total; start += s.batchSize {
		end := start + s.batchSize
		if end > total {
			end = total
		}

		passIDs := make([]uint, 0, end-start)
		for _, counter := range counters[start:end] {
			passIDs = append(passIDs, counter.PassID)
		}

		if err := s.store.ResetBatch(ctx, passIDs, now); err != nil {
			s.audit(ctx, documentsProcessed, batchesUsed, err)
			return Stats{DocumentsProcessed: documentsProcessed, BatchesUsed: batchesUsed}, err
		}

		documentsProcessed += len(passIDs)
		batchesUsed++

		if total > s.batchSize {
			logger.Info(fmt.Sprintf("Completed batch %d (%d/%d records)", batchesUsed, documentsProcessed, total))
		}
	}

	logger.Success(fmt.Sprintf("Reset daily trip count for %d passes in %d batches", documentsProcessed, batchesUsed))
	s.audit(ctx, documentsProcessed, batchesUsed, nil)
	return Stats{DocumentsProcessed: documentsProcessed, BatchesUsed: batchesUsed}, nil
}

// audit appends the per-run SystemLog row, best-effort.
func (s *Service) audit(ctx context.Context, documentsProcessed, batchesUsed int, runErr error) {
	entry := &systemlog.SystemLog{
		Operation:          systemlog.OperationResetDailyTripCount,
		DocumentsProcessed: documentsProcessed,
		BatchesUsed:        batchesUsed,
		Status:             systemlog.StatusSuccess,
	}
	if runErr != nil {
		entry.Status = systemlog.StatusError
		msg := runErr.Error()
		entry.ErrorMessage = &msg
	}

	if err := s.store.AppendSystemLog(ctx, entry); err != nil {
		logger.Error("Failed to write reset audit entry", err)
	}
}
