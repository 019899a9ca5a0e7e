package tickets

import (
	"errors"
	"testing"
	"time"

	ticketModel "bus-buddy/models/ticket"
	"bus-buddy/types"
)

type stubStore struct {
	created []*ticketModel.Ticket
	list    []ticketModel.Ticket
}

func (s *stubStore) CreateTicket(t *ticketModel.Ticket) error {
	t.ID = uint(len(s.created) + 1)
	s.created = append(s.created, t)
	return nil
}

func (s *stubStore) TicketsForUser(userID uint) ([]ticketModel.Ticket, error) {
	return s.list, nil
}

func (s *stubStore) CountTicketsForUser(userID uint) (int64, error) {
	return int64(len(s.list)), nil
}

func validParams() CreateParams {
	return CreateParams{
		UserID:      1,
		Source:      "Central",
		Destination: "Airport",
		Route:       "12A",
		JourneyDate: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "08:00 AM",
		Passengers:  3,
		PaymentRef:  "pi_test",
	}
}

func TestFare(t *testing.T) {
	cases := map[int]int{1: 50, 3: 150, 10: 500}
	for passengers, want := range cases {
		if got := Fare(passengers); got != want {
			t.Errorf("Fare(%d) = %d, want %d", passengers, got, want)
		}
	}
}

func TestCreateTicket(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	created, err := svc.CreateTicket(validParams())
	if err != nil {
		t.Fatalf("CreateTicket returned error: %v", err)
	}

	if created.Amount != 150 {
		t.Errorf("amount = %d, want 150", created.Amount)
	}
	if created.Status != ticketModel.TicketStatusConfirmed {
		t.Errorf("status = %q, want confirmed", created.Status)
	}
	if created.JourneyDate != "2024-06-05T00:00:00Z" {
		t.Errorf("journeyDate = %q, want normalized RFC3339 midnight", created.JourneyDate)
	}
}

func TestCreateTicketValidation(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	sameStops := validParams()
	sameStops.Destination = sameStops.Source
	if _, err := svc.CreateTicket(sameStops); !errors.Is(err, types.ErrSameSourceDestination) {
		t.Errorf("same stops: err = %v, want ErrSameSourceDestination", err)
	}

	for _, passengers := range []int{0, -1, 11} {
		p := validParams()
		p.Passengers = passengers
		if _, err := svc.CreateTicket(p); !errors.Is(err, types.ErrInvalidPassengerCount) {
			t.Errorf("passengers=%d: err = %v, want ErrInvalidPassengerCount", passengers, err)
		}
	}

	badSlot := validParams()
	badSlot.TimeSlot = "25:00 PM"
	if _, err := svc.CreateTicket(badSlot); !errors.Is(err, types.ErrInvalidTimeSlot) {
		t.Errorf("bad slot: err = %v, want ErrInvalidTimeSlot", err)
	}

	noPayment := validParams()
	noPayment.PaymentRef = ""
	if _, err := svc.CreateTicket(noPayment); !errors.Is(err, types.ErrMissingPaymentRef) {
		t.Errorf("no payment: err = %v, want ErrMissingPaymentRef", err)
	}

	if len(store.created) != 0 {
		t.Errorf("validation failures still created %d tickets", len(store.created))
	}
}

func TestValidity(t *testing.T) {
	now := time.Date(2024, 6, 5, 14, 0, 0, 0, time.UTC)

	today := &ticketModel.Ticket{JourneyDate: "2024-06-05T00:00:00Z"}
	isValid, isExpired := Validity(today, now)
	if !isValid || isExpired {
		t.Errorf("today's ticket: valid=%v expired=%v, want true/false", isValid, isExpired)
	}

	yesterday := &ticketModel.Ticket{JourneyDate: "2024-06-04T00:00:00Z"}
	isValid, isExpired = Validity(yesterday, now)
	if isValid || !isExpired {
		t.Errorf("yesterday's ticket: valid=%v expired=%v, want false/true", isValid, isExpired)
	}

	tomorrow := &ticketModel.Ticket{JourneyDate: "2024-06-06T00:00:00Z"}
	isValid, isExpired = Validity(tomorrow, now)
	if isValid || isExpired {
		t.Errorf("tomorrow's ticket: valid=%v expired=%v, want false/false", isValid, isExpired)
	}
}

// A malformed stored date reads as today, so the row shows as valid instead
// of breaking the list view.
func TestValidityMalformedDateFallsBackToToday(t *testing.T) {
	now := time.Date(2024, 6, 5, 14, 0, 0, 0, time.UTC)

	broken := &ticketModel.Ticket{JourneyDate: "not-a-date"}
	isValid, isExpired := Validity(broken, now)
	if !isValid || isExpired {
		t.Errorf("malformed date: valid=%v expired=%v, want true/false", isValid, isExpired)
	}
}

func TestValidityAcceptsDateOnlyFormat(t *testing.T) {
	now := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)

	dateOnly := &ticketModel.Ticket{JourneyDate: "2024-06-05"}
	isValid, isExpired := Validity(dateOnly, now)
	if !isValid || isExpired {
		t.Errorf("date-only format: valid=%v expired=%v, want true/false", isValid, isExpired)
	}
}
