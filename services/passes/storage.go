package passes

import (
	"errors"
	"strings"
	"time"

	passModel "bus-buddy/models/pass"
	"bus-buddy/models/tripcounter"
	"bus-buddy/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence surface the pass manager needs.
type Store interface {
	PassesForUser(userID uint) ([]passModel.Pass, error)
	CreatePassWithMarker(p *passModel.Pass) error
	PurgeExpiredMarkers(userID uint, before time.Time) error
	UpsertPassCard(card *passModel.PassCard) error
	TripCount(passID uint) (int, error)
	CountPassesForUser(userID uint) (int64, error)
}

// GormStore is the gorm-backed Store implementation.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) PassesForUser(userID uint) ([]passModel.Pass, error) {
	var passes []passModel.Pass
	if err := s.DB.Where("user_id = ?", userID).Find(&passes).Error; err != nil {
		return nil, types.NewStorageError("query passes", err)
	}
	return passes, nil
}

func (s *GormStore) CountPassesForUser(userID uint) (int64, error) {
	var count int64
	if err := s.DB.Model(&passModel.Pass{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, types.NewStorageError("count passes", err)
	}
	return count, nil
}

// CreatePassWithMarker persists the pass and its active-pass marker in one
// transaction. The unique index on active_pass_markers.user_id turns a lost
// race between two concurrent creations into a constraint violation instead
// of two active passes.
func (s *GormStore) CreatePassWithMarker(p *passModel.Pass) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		marker := passModel.ActivePassMarker{
			UserID:  p.UserID,
			PassID:  p.ID,
			EndDate: p.EndDate,
		}
		return tx.Create(&marker).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return types.ErrActivePassExists
		}
		return types.NewStorageError("create pass", err)
	}
	return nil
}

// PurgeExpiredMarkers removes the marker of a pass that has since expired so
// a new pass can be created. Markers of still-active passes are left alone.
func (s *GormStore) PurgeExpiredMarkers(userID uint, before time.Time) error {
	err := s.DB.Where("user_id = ? AND end_date < ?", userID, before).
		Delete(&passModel.ActivePassMarker{}).Error
	if err != nil {
		return types.NewStorageError("purge expired markers", err)
	}
	return nil
}

func (s *GormStore) UpsertPassCard(card *passModel.PassCard) error {
	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "pass_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "start_date", "end_date", "profile_image_url", "updated_at",
		}),
	}).Create(card).Error
	if err != nil {
		return types.NewStorageError("upsert pass card", err)
	}
	return nil
}

// TripCount reads the daily trip count for a pass. Absence of a counter row
// means the pass was never scanned today and reads as zero.
func (s *GormStore) TripCount(passID uint) (int, error) {
	var counter tripcounter.TripCounter
	err := s.DB.First(&counter, "pass_id = ?", passID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, types.NewStorageError("read trip counter", err)
	}
	return counter.DailyTripCount, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
