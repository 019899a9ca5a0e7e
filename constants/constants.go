package constants

// Pass validity options in days, with their fares in rupees.
const (
	ValidityWeek      = 7
	ValidityFortnight = 15
	ValidityMonth     = 30

	FareWeek      = 500
	FareFortnight = 900
	FareMonth     = 1500
)

// ValidityFares maps each allowed validity duration to its fare.
var ValidityFares = map[int]int{
	ValidityWeek:      FareWeek,
	ValidityFortnight: FareFortnight,
	ValidityMonth:     FareMonth,
}

// Daily trip allowance per pass. The scanning agent increments the counter;
// a pass with DailyTripLimit or more trips today is no longer scannable.
const DailyTripLimit = 2

// Ticket booking limits and pricing.
const (
	TicketBaseFare = 50
	MinPassengers  = 1
	MaxPassengers  = 10
)

// TimeSlots lists the bookable departure slots for single-journey tickets.
var TimeSlots = []string{
	"06:00 AM",
	"07:00 AM",
	"08:00 AM",
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
	"06:00 PM",
	"07:00 PM",
	"08:00 PM",
}

// IsValidTimeSlot reports whether slot is one of the bookable departure slots.
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Daily reset batching. Postgres has no hard per-transaction operation limit,
// but the reset keeps the document-store batch contract of 500 updates per
// commit so a crash mid-run loses at most one uncommitted batch.
const ResetBatchSize = 500

// Scheduler defaults, overridable via environment.
const (
	ResetCronSpec        = "0 0 * * *"
	DefaultResetTimeZone = "UTC"
)

// Pass expiry warning window used by the notifications feed.
const ExpiryWarningDays = 7
