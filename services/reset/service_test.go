package reset

import (
	"context"
	"errors"
	"testing"
	"time"

	"bus-buddy/models/systemlog"
	"bus-buddy/models/tripcounter"
)

type stubStore struct {
	counters []tripcounter.TripCounter
	batches  [][]uint
	logs     []*systemlog.SystemLog

	listErr  error
	batchErr error
}

func (s *stubStore) AllTripCounters(ctx context.Context) ([]tripcounter.TripCounter, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.counters, nil
}

func (s *stubStore) ResetBatch(ctx context.Context, passIDs []uint, at time.Time) error {
	if s.batchErr != nil {
		return s.batchErr
	}
	s.batches = append(s.batches, passIDs)
	return nil
}

func (s *stubStore) AppendSystemLog(ctx context.Context, entry *systemlog.SystemLog) error {
	s.logs = append(s.logs, entry)
	return nil
}

func counters(n int) []tripcounter.TripCounter {
	out := make([]tripcounter.TripCounter, n)
	for i := range out {
		out[i] = tripcounter.TripCounter{PassID: uint(i + 1), DailyTripCount: 2}
	}
	return out
}

func TestRunBatching(t *testing.T) {
	store := &stubStore{counters: counters(1200)}
	svc := NewService(store)

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if stats.DocumentsProcessed != 1200 {
		t.Errorf("documentsProcessed = %d, want 1200", stats.DocumentsProcessed)
	}
	if stats.BatchesUsed != 3 {
		t.Errorf("batchesUsed = %d, want 3", stats.BatchesUsed)
	}
	if len(store.batches) != 3 {
		t.Fatalf("store saw %d batches, want 3", len(store.batches))
	}
	if len(store.batches[0]) != 500 || len(store.batches[1]) != 500 || len(store.batches[2]) != 200 {
		t.Errorf("batch sizes = %d/%d/%d, want 500/500/200",
			len(store.batches[0]), len(store.batches[1]), len(store.batches[2]))
	}

	seen := map[uint]bool{}
	for _, batch := range store.batches {
		for _, id := range batch {
			if seen[id] {
				t.Errorf("pass %d reset twice", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != 1200 {
		t.Errorf("reset %d distinct passes, want 1200", len(seen))
	}
}

func TestRunWritesOneSuccessAudit(t *testing.T) {
	store := &stubStore{counters: counters(3)}
	svc := NewService(store)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(store.logs) != 1 {
		t.Fatalf("wrote %d audit rows, want 1", len(store.logs))
	}
	entry := store.logs[0]
	if entry.Operation != systemlog.OperationResetDailyTripCount {
		t.Errorf("operation = %q", entry.Operation)
	}
	if entry.Status != systemlog.StatusSuccess {
		t.Errorf("status = %q, want success", entry.Status)
	}
	if entry.DocumentsProcessed != 3 || entry.BatchesUsed != 1 {
		t.Errorf("audit counts = %d/%d, want 3/1", entry.DocumentsProcessed, entry.BatchesUsed)
	}
	if entry.ErrorMessage != nil {
		t.Errorf("unexpected error message: %s", *entry.ErrorMessage)
	}
}

func TestRunEmptyIsSuccessfulNoop(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if stats.DocumentsProcessed != 0 || stats.BatchesUsed != 0 {
		t.Errorf("stats = %+v, want zeroes", stats)
	}
	if len(store.batches) != 0 {
		t.Errorf("store saw %d batches on empty input", len(store.batches))
	}
	if len(store.logs) != 1 || store.logs[0].Status != systemlog.StatusSuccess {
		t.Fatalf("empty run should still write one success audit, got %+v", store.logs)
	}
}

func TestRunBatchFailureWritesErrorAudit(t *testing.T) {
	batchErr := errors.New("connection reset")
	store := &stubStore{counters: counters(10), batchErr: batchErr}
	svc := NewService(store)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, batchErr) {
		t.Fatalf("err = %v, want the batch error", err)
	}

	if len(store.logs) != 1 {
		t.Fatalf("wrote %d audit rows, want 1", len(store.logs))
	}
	entry := store.logs[0]
	if entry.Status != systemlog.StatusError {
		t.Errorf("status = %q, want error", entry.Status)
	}
	if entry.ErrorMessage == nil || *entry.ErrorMessage != "connection reset" {
		t.Errorf("errorMessage = %v, want the failure text", entry.ErrorMessage)
	}
}
