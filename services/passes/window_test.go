package passes

import (
	"errors"
	"testing"
	"time"

	"bus-buddy/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidityWindow(t *testing.T) {
	cases := []struct {
		name    string
		start   time.Time
		days    int
		wantEnd time.Time
	}{
		{"week", date(2024, 6, 1), 7, date(2024, 6, 7)},
		{"fortnight", date(2024, 6, 1), 15, date(2024, 6, 15)},
		{"month", date(2024, 6, 1), 30, date(2024, 6, 30)},
		{"month boundary", date(2024, 1, 28), 7, date(2024, 2, 3)},
		{"leap february", date(2024, 2, 27), 7, date(2024, 3, 4)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end, err := ValidityWindow(tc.start, tc.days)
			if err != nil {
				t.Fatalf("ValidityWindow returned error: %v", err)
			}
			if !start.Equal(tc.start) {
				t.Errorf("start = %v, want %v", start, tc.start)
			}
			if !end.Equal(tc.wantEnd) {
				t.Errorf("end = %v, want %v", end, tc.wantEnd)
			}
		})
	}
}

func TestValidityWindowNormalizesStartTime(t *testing.T) {
	noon := time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)
	start, end, err := ValidityWindow(noon, 7)
	if err != nil {
		t.Fatalf("ValidityWindow returned error: %v", err)
	}
	if !start.Equal(date(2024, 6, 1)) {
		t.Errorf("start not normalized to midnight: %v", start)
	}
	if !end.Equal(date(2024, 6, 7)) {
		t.Errorf("end = %v, want 2024-06-07", end)
	}
}

func TestValidityWindowRejectsUnknownDuration(t *testing.T) {
	for _, days := range []int{0, 1, 14, 31, -7} {
		_, _, err := ValidityWindow(date(2024, 6, 1), days)
		if !errors.Is(err, types.ErrInvalidDuration) {
			t.Errorf("days=%d: err = %v, want ErrInvalidDuration", days, err)
		}
	}
}

func TestFareForValidity(t *testing.T) {
	cases := map[int]int{7: 500, 15: 900, 30: 1500}
	for days, want := range cases {
		got, err := FareForValidity(days)
		if err != nil {
			t.Fatalf("FareForValidity(%d) error: %v", days, err)
		}
		if got != want {
			t.Errorf("FareForValidity(%d) = %d, want %d", days, got, want)
		}
	}

	if _, err := FareForValidity(10); !errors.Is(err, types.ErrInvalidDuration) {
		t.Errorf("FareForValidity(10) err = %v, want ErrInvalidDuration", err)
	}
}

func TestDaysRemaining(t *testing.T) {
	end := date(2024, 6, 7)

	if got := DaysRemaining(end, date(2024, 6, 1)); got != 7 {
		t.Errorf("first day: got %d, want 7", got)
	}
	if got := DaysRemaining(end, date(2024, 6, 7)); got != 1 {
		t.Errorf("last day: got %d, want 1", got)
	}
	if got := DaysRemaining(end, date(2024, 6, 8)); got > 0 {
		t.Errorf("day after expiry: got %d, want <= 0", got)
	}
}
