package buslocation

import (
	"time"
)

// BusLocation is the latest reported position of a bus on a route, written by
// the tracking feed and read by the map view. One row per route.
type BusLocation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Route     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"route"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Heading   float64   `json:"heading"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
