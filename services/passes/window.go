package passes

import (
	"time"

	"bus-buddy/constants"
	"bus-buddy/types"
	"bus-buddy/utils"
)

// ValidityWindow computes a pass's validity interval from its start date and
// validity duration. Both endpoints are inclusive: a 7-day pass starting on
// June 1 ends on June 7. The start date is normalized to midnight; the end
// date is never accepted from a caller.
func ValidityWindow(startDate time.Time, validityDays int) (time.Time, time.Time, error) {
	if _, ok := constants.ValidityFares[validityDays]; !ok {
		return time.Time{}, time.Time{}, types.ErrInvalidDuration
	}

	start := utils.NormalizeToMidnight(startDate)
	end := start.AddDate(0, 0, validityDays-1)
	return start, end, nil
}

// FareForValidity returns the fare for a validity duration.
func FareForValidity(validityDays int) (int, error) {
	fare, ok := constants.ValidityFares[validityDays]
	if !ok {
		return 0, types.ErrInvalidDuration
	}
	return fare, nil
}

// DaysRemaining counts the calendar days from now to the pass end date,
// counting today. Zero or negative means the pass has expired.
func DaysRemaining(endDate, at time.Time) int {
	end := utils.NormalizeToMidnight(endDate)
	today := utils.NormalizeToMidnight(at)
	return int(end.Sub(today).Hours()/24) + 1
}
