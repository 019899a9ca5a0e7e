package ticket

import (
	"fmt"
	"time"
)

// TicketCreateRequest represents the request payload for booking a
// single-journey ticket.
type TicketCreateRequest struct {
	Source      string `json:"source" validate:"required,min=1,max=255"`
	Destination string `json:"destination" validate:"required,min=1,max=255"`
	Route       string `json:"route" validate:"required,min=1,max=255"`
	Date        string `json:"date" validate:"required"` // ISO-8601 journey date
	Time        string `json:"time" validate:"required"`
	Passengers  int    `json:"passengers" validate:"required,min=1,max=10"`
}

func (t TicketCreateRequest) Validate() error {
	if t.Source == "" {
		return fmt.Errorf("source is required")
	}
	if t.Destination == "" {
		return fmt.Errorf("destination is required")
	}
	if t.Route == "" {
		return fmt.Errorf("route is required")
	}
	if t.Date == "" {
		return fmt.Errorf("date is required")
	}
	if t.Time == "" {
		return fmt.Errorf("time is required")
	}
	return nil
}

// ParseDate parses the journey date, accepting a full RFC 3339 timestamp or a
// bare calendar date.
func (t TicketCreateRequest) ParseDate() (time.Time, error) {
	if d, err := time.Parse(time.RFC3339, t.Date); err == nil {
		return d, nil
	}
	return time.Parse("2006-01-02", t.Date)
}

// TicketResponse decorates a stored ticket with its display-time validity.
type TicketResponse struct {
	Ticket    interface{} `json:"ticket"`
	IsValid   bool        `json:"is_valid"`
	IsExpired bool        `json:"is_expired"`
}
