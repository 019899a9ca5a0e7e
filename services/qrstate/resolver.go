package qrstate

import (
	"encoding/json"
	"strconv"
	"time"

	"bus-buddy/constants"
	"bus-buddy/utils"
)

// Color is the visual state of a rendered pass QR code.
type Color string

const (
	ColorFresh   Color = "FRESH"
	ColorPartial Color = "PARTIAL"
	ColorBlocked Color = "BLOCKED"
)

// Scan-time messages. Expiry takes precedence over an exhausted counter.
const (
	MessageExpired      = "Pass is expired"
	MessageLastTripDone = "Last Trip Done"
)

// State is the dynamic interpretation of a pass QR code at render or scan
// time. The payload itself is static; only the interpretation changes.
type State struct {
	Color       Color
	IsScannable bool
	Message     string
	QrPayload   string
}

// Payload is the static QR content. Field order is fixed so encoding the same
// pass always yields byte-identical JSON; the scanning agent depends on this
// exact shape.
type Payload struct {
	PassID    string `json:"passId"`
	FullName  string `json:"fullName"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// EncodePayload serializes the static QR content for a pass. The trip count
// is deliberately excluded: the printed code never changes during the pass's
// lifetime, and all validity checks happen against live state instead.
func EncodePayload(passID uint, fullName string, startDate, endDate time.Time) (string, error) {
	payload := Payload{
		PassID:    strconv.FormatUint(uint64(passID), 10),
		FullName:  fullName,
		StartDate: startDate.Format(time.RFC3339),
		EndDate:   endDate.Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Resolve derives the QR state from live expiry and trip-count inputs.
// Display logic treats any count at or above the daily limit as exhausted,
// regardless of how high the stored value actually is.
func Resolve(isExpired bool, dailyTripCount int, qrPayload string) State {
	state := State{QrPayload: qrPayload}

	switch {
	case isExpired:
		state.Color = ColorBlocked
		state.Message = MessageExpired
	case dailyTripCount >= constants.DailyTripLimit:
		state.Color = ColorBlocked
		state.Message = MessageLastTripDone
	case dailyTripCount == 1:
		state.Color = ColorPartial
	default:
		state.Color = ColorFresh
	}

	state.IsScannable = state.Color != ColorBlocked
	return state
}

// IsExpired reports whether a pass end date has passed. The end date is
// inclusive, so a pass expires at the first midnight after it.
func IsExpired(endDate, at time.Time) bool {
	return endDate.Before(utils.NormalizeToMidnight(at))
}
