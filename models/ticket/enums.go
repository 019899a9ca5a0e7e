package ticket

// TicketStatus is the lifecycle state of a booked ticket. Confirmed is the
// only value the booking flow produces; the type exists so future states
// (cancelled, refunded) have a home.
type TicketStatus string

const (
	TicketStatusConfirmed TicketStatus = "confirmed"
)

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	switch ts {
	case TicketStatusConfirmed:
		return true
	default:
		return false
	}
}
