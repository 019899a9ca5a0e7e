package pass

import (
	"fmt"
	"time"
)

// PassCreateRequest represents the request payload for creating a bus pass.
// The end date is never accepted from the client; it is derived from the
// start date and validity.
type PassCreateRequest struct {
	FullName               string `json:"full_name" validate:"required,min=2,max=255"`
	EmergencyContactName   string `json:"emergency_contact_name" validate:"required,min=2,max=255"`
	EmergencyContactMobile string `json:"emergency_contact_mobile" validate:"required,min=10,max=20"`
	Source                 string `json:"source" validate:"required,min=1,max=255"`
	Destination            string `json:"destination" validate:"required,min=1,max=255"`
	Route                  string `json:"route" validate:"required,min=1,max=255"`
	StartDate              string `json:"start_date" validate:"required"` // ISO-8601 date
	Validity               int    `json:"validity" validate:"required,oneof=7 15 30"`
	ProfileImage           string `json:"profile_image,omitempty"` // base64 payload, optional
}

func (p PassCreateRequest) Validate() error {
	if p.FullName == "" {
		return fmt.Errorf("fullName is required")
	}
	if p.EmergencyContactName == "" {
		return fmt.Errorf("emergencyContactName is required")
	}
	if p.EmergencyContactMobile == "" {
		return fmt.Errorf("emergencyContactMobile is required")
	}
	if p.Source == "" {
		return fmt.Errorf("source is required")
	}
	if p.Destination == "" {
		return fmt.Errorf("destination is required")
	}
	if p.Route == "" {
		return fmt.Errorf("route is required")
	}
	if p.StartDate == "" {
		return fmt.Errorf("startDate is required")
	}
	return nil
}

// QrStateResponse is the dynamic pass state returned alongside the static
// QR payload whenever a pass card is rendered or scanned.
type QrStateResponse struct {
	Color       string `json:"color"`
	IsScannable bool   `json:"is_scannable"`
	Message     string `json:"message,omitempty"`
	QrPayload   string `json:"qr_payload"`
	TripsToday  int    `json:"trips_today"`
}

// ActivePassResponse bundles a pass with its resolved QR state and the number
// of calendar days remaining.
type ActivePassResponse struct {
	Pass          interface{}     `json:"pass"`
	QrState       QrStateResponse `json:"qr_state"`
	DaysRemaining int             `json:"days_remaining"`
}

// ParseStartDate parses the request start date, accepting a full RFC 3339
// timestamp or a bare calendar date.
func (p PassCreateRequest) ParseStartDate() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, p.StartDate); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", p.StartDate)
}
