package ticket

import (
	"bus-buddy/models/user"
	"time"
)

// Ticket represents a single-journey booking tied to one calendar date.
// Immutable once created; validity at display time is purely a date-equality
// check against today, with no trip counter involved.
type Ticket struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for users relationship
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	Source      string `gorm:"type:varchar(255);not null" json:"source"`
	Destination string `gorm:"type:varchar(255);not null" json:"destination"`
	Route       string `gorm:"type:varchar(255);not null" json:"route"`

	// JourneyDate is stored as the raw string the booking flow produced, to
	// keep the display path tolerant of malformed historical values.
	JourneyDate string `gorm:"type:varchar(64);not null" json:"journey_date"`
	TimeSlot    string `gorm:"type:varchar(20);not null" json:"time_slot"`
	Passengers  int    `gorm:"not null" json:"passengers"`

	Amount     int          `gorm:"not null" json:"amount"`
	PaymentRef string       `gorm:"type:varchar(255);not null" json:"payment_ref"`
	Status     TicketStatus `gorm:"type:varchar(50);not null" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
