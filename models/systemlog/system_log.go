package systemlog

import (
	"time"
)

// Run statuses recorded by scheduled jobs.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OperationResetDailyTripCount is the audit operation name of the daily
// trip-counter reset.
const OperationResetDailyTripCount = "reset_daily_trip_count"

// SystemLog is the append-only audit trail of scheduled job runs; one row per
// run, success or failure.
type SystemLog struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Operation          string    `gorm:"type:varchar(100);not null;index" json:"operation"`
	DocumentsProcessed int       `gorm:"not null" json:"documents_processed"`
	BatchesUsed        int       `gorm:"not null" json:"batches_used"`
	Status             string    `gorm:"type:varchar(20);not null" json:"status"`
	ErrorMessage       *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}
