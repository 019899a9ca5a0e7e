package pass

import (
	"bus-buddy/models/user"
	"time"
)

// Pass represents a time-bounded travel authorization for one user, rendered
// as a QR code. Immutable after creation; it becomes inactive once the end
// date has passed and is never deleted.
type Pass struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for users relationship
	UserID uint      `gorm:"not null" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	FullName               string  `gorm:"type:varchar(255);not null" json:"full_name"`
	EmergencyContactName   string  `gorm:"type:varchar(255);not null" json:"emergency_contact_name"`
	EmergencyContactMobile string  `gorm:"type:varchar(20);not null" json:"emergency_contact_mobile"`
	Source                 string  `gorm:"type:varchar(255);not null" json:"source"`
	Destination            string  `gorm:"type:varchar(255);not null" json:"destination"`
	Route                  string  `gorm:"type:varchar(255);not null" json:"route"`
	ProfileImageURL        *string `gorm:"type:varchar(2048)" json:"profile_image_url,omitempty"`

	// StartDate is normalized to midnight; EndDate is inclusive, so a 7-day
	// pass starting on the 1st ends on the 7th.
	StartDate    time.Time `gorm:"not null" json:"start_date"`
	EndDate      time.Time `gorm:"not null;index" json:"end_date"`
	ValidityDays int       `gorm:"not null" json:"validity_days"`

	Amount     int    `gorm:"not null" json:"amount"`
	PaymentRef string `gorm:"type:varchar(255);not null" json:"payment_ref"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// IsActive reports whether the pass end date has not yet passed. The end
// date is inclusive: the pass stays active for the whole of its last
// calendar day.
func (p *Pass) IsActive(at time.Time) bool {
	y, m, d := at.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, at.Location())
	return !p.EndDate.Before(today)
}

// ActivePassMarker enforces at most one active pass per user at the store
// level. One row is inserted in the same transaction that creates a pass, and
// the unique index on user_id makes a second concurrent creation fail instead
// of racing past the read-then-write guard. Markers of expired passes are
// purged before a new pass is created.
type ActivePassMarker struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	PassID  uint      `gorm:"not null" json:"pass_id"`
	EndDate time.Time `gorm:"not null" json:"end_date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// PassCard is the projection consumed by the external scanning agent. It is
// upserted whenever an active pass is resolved and carries only the static
// fields that go into the QR payload.
type PassCard struct {
	PassID          uint      `gorm:"primaryKey" json:"pass_id"`
	FullName        string    `gorm:"type:varchar(255);not null" json:"full_name"`
	StartDate       time.Time `gorm:"not null" json:"start_date"`
	EndDate         time.Time `gorm:"not null" json:"end_date"`
	ProfileImageURL *string   `gorm:"type:varchar(2048)" json:"profile_image_url,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
