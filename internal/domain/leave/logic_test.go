package leave

import (
	"errors"
	"testing"
	"time"
)

func TestCalculateDays(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	cases := []struct {
		name       string
		start, end time.Time
		want       float64
	}{
		{
			name:  "single day",
			start: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "inclusive range",
			start: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
			want:  3,
		},
		{
			// 2025-03-09 is 23 hours long in New York.
			name:  "spring forward",
			start: time.Date(2025, 3, 8, 0, 0, 0, 0, newYork),
			end:   time.Date(2025, 3, 10, 0, 0, 0, 0, newYork),
			want:  3,
		},
		{
			// 2025-11-02 is 25 hours long in New York.
			name:  "fall back",
			start: time.Date(2025, 11, 1, 0, 0, 0, 0, newYork),
			end:   time.Date(2025, 11, 3, 0, 0, 0, 0, newYork),
			want:  3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days, err := CalculateDays(tc.start, tc.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if days != tc.want {
				t.Fatalf("expected %v days, got %v", tc.want, days)
			}
		})
	}
}

func TestCalculateDaysRejectsReversedRange(t *testing.T) {
	start := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC)

	days, err := CalculateDays(start, end)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if days != 0 {
		t.Fatalf("expected 0 days on error, got %v", days)
	}
}
