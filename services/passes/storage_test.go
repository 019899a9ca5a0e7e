package passes

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}

	return NewGormStore(db), mock
}

func TestTripCountMissingRowReadsZero(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM "trip_counters"`).
		WillReturnRows(sqlmock.NewRows([]string{"pass_id", "daily_trip_count"}))

	count, err := store.TripCount(42)
	if err != nil {
		t.Fatalf("TripCount returned error: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 for a never-scanned pass", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTripCountReadsStoredValue(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"pass_id", "daily_trip_count"}).AddRow(42, 2)
	mock.ExpectQuery(`SELECT (.+) FROM "trip_counters"`).WillReturnRows(rows)

	count, err := store.TripCount(42)
	if err != nil {
		t.Fatalf("TripCount returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestPurgeExpiredMarkers(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "active_pass_markers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := store.PurgeExpiredMarkers(1, time.Now()); err != nil {
		t.Fatalf("PurgeExpiredMarkers returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
