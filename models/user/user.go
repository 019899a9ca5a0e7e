package user

import (
	"time"
)

// User model with fields based on the JWT token structure of the external
// auth provider. Pass and ticket records reference users by id.
type User struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid          string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	FullName      string  `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone         string  `gorm:"type:varchar(20)" json:"phone"`
	Email         *string `gorm:"type:varchar(255);unique" json:"email"`
	EmailVerified bool    `gorm:"type:bool;default:false" json:"email_verified"`

	// ProfileImageURL is the stable URL returned by the image host; empty
	// when the user never uploaded a photo or the upload failed.
	ProfileImageURL string `gorm:"type:varchar(2048)" json:"profile_image_url"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
