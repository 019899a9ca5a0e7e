package utils

import (
	"testing"
	"time"
)

func TestNormalizeToMidnight(t *testing.T) {
	in := time.Date(2024, 6, 5, 18, 42, 7, 123, time.UTC)
	got := NormalizeToMidnight(in)
	want := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2024, 6, 5, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 5, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2024, 6, 6, 0, 1, 0, 0, time.UTC)

	if !SameCalendarDay(morning, evening) {
		t.Error("same day reported as different")
	}
	if SameCalendarDay(evening, nextDay) {
		t.Error("different days reported as same")
	}
}

func TestParseDateSoft(t *testing.T) {
	fallback := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339", "2024-06-01T00:00:00Z", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"millis", "2024-06-01T00:00:00.000Z", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"date only", "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"empty", "", fallback},
		{"garbage", "not-a-date", fallback},
		{"whitespace", "   ", fallback},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDateSoft(tc.value, fallback)
			if !got.Equal(tc.want) {
				t.Errorf("ParseDateSoft(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}
