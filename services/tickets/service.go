package tickets

import (
	"time"

	"bus-buddy/constants"
	ticketModel "bus-buddy/models/ticket"
	"bus-buddy/types"
	"bus-buddy/utils"
)

// Store is the persistence surface the ticket manager needs.
type Store interface {
	CreateTicket(t *ticketModel.Ticket) error
	TicketsForUser(userID uint) ([]ticketModel.Ticket, error)
	CountTicketsForUser(userID uint) (int64, error)
}

// CreateParams carries a validated booking. Payment must already have
// succeeded.
type CreateParams struct {
	UserID      uint
	Source      string
	Destination string
	Route       string
	JourneyDate time.Time
	TimeSlot    string
	Passengers  int
	PaymentRef  string
}

// Service is the ticket record manager. Tickets are the stateless sibling of
// passes: one journey, one calendar date, no counters.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Fare computes the booking amount for a passenger count.
func Fare(passengers int) int {
	return constants.TicketBaseFare * passengers
}

// CreateTicket validates the booking and persists one confirmed ticket.
func (s *Service) CreateTicket(params CreateParams) (*ticketModel.Ticket, error) {
	if params.Source == params.Destination {
		return nil, types.ErrSameSourceDestination
	}
	if params.Passengers < constants.MinPassengers || params.Passengers > constants.MaxPassengers {
		return nil, types.ErrInvalidPassengerCount
	}
	if !constants.IsValidTimeSlot(params.TimeSlot) {
		return nil, types.ErrInvalidTimeSlot
	}
	if params.PaymentRef == "" {
		return nil, types.ErrMissingPaymentRef
	}

	t := &ticketModel.Ticket{
		UserID:      params.UserID,
		Source:      params.Source,
		Destination: params.Destination,
		Route:       params.Route,
		JourneyDate: utils.NormalizeToMidnight(params.JourneyDate).Format(time.RFC3339),
		TimeSlot:    params.TimeSlot,
		Passengers:  params.Passengers,
		Amount:      Fare(params.Passengers),
		PaymentRef:  params.PaymentRef,
		Status:      ticketModel.TicketStatusConfirmed,
	}

	if err := s.store.CreateTicket(t); err != nil {
		return nil, err
	}
	return t, nil
}

// TicketsForUser lists a user's tickets, newest first per store ordering.
func (s *Service) TicketsForUser(userID uint) ([]ticketModel.Ticket, error) {
	return s.store.TicketsForUser(userID)
}

// CountForUser returns how many tickets the user has ever booked.
func (s *Service) CountForUser(userID uint) (int64, error) {
	return s.store.CountTicketsForUser(userID)
}

// Validity resolves a ticket's display-time state. A ticket is valid exactly
// on its journey date and expired once that day has passed. A malformed
// stored date falls back to today so a bad row shows as valid instead of
// breaking the view.
func Validity(t *ticketModel.Ticket, at time.Time) (isValid, isExpired bool) {
	journey := utils.NormalizeToMidnight(utils.ParseDateSoft(t.JourneyDate, at))
	today := utils.NormalizeToMidnight(at)

	isValid = utils.SameCalendarDay(journey, today)
	isExpired = journey.Before(today)
	return isValid, isExpired
}
