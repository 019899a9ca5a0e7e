package tripcounter

import (
	"time"
)

// TripCounter is the per-pass daily trip record, keyed by pass id. The row is
// created by the external scanning agent the first time a pass is scanned;
// absence of a row reads as a count of zero. The daily reset job zeroes every
// row once per calendar day.
type TripCounter struct {
	PassID         uint      `gorm:"primaryKey" json:"pass_id"`
	DailyTripCount int       `gorm:"not null;default:0" json:"daily_trip_count"`
	LastReset      time.Time `json:"last_reset"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
