package reset

import (
	"context"
	"time"

	"bus-buddy/models/systemlog"
	"bus-buddy/models/tripcounter"
	"bus-buddy/types"

	"gorm.io/gorm"
)

// GormStore is the gorm-backed Store implementation.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) AllTripCounters(ctx context.Context) ([]tripcounter.TripCounter, error) {
	var counters []tripcounter.TripCounter
	if err := s.DB.WithContext(ctx).Find(&counters).Error; err != nil {
		return nil, types.NewStorageError("query trip counters", err)
	}
	return counters, nil
}

// ResetBatch zeroes one batch of counters in a single transaction.
func (s *GormStore) ResetBatch(ctx context.Context, passIDs []uint, at time.Time) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&tripcounter.TripCounter{}).
			Where("pass_id IN ?", passIDs).
			Updates(map[string]interface{}{
				"daily_trip_count": 0,
				"last_reset":       at,
			}).Error
	})
	if err != nil {
		return types.NewStorageError("reset batch", err)
	}
	return nil
}

func (s *GormStore) AppendSystemLog(ctx context.Context, entry *systemlog.SystemLog) error {
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return types.NewStorageError("append system log", err)
	}
	return nil
}
