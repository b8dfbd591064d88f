package models

import (
	"testing"
	"time"
)

func TestSubmissionWindowOpen(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	event := Event{
		EventDate:           base.AddDate(0, 1, 0),
		SubmissionStartDate: base,
		SubmissionEndDate:   base.AddDate(0, 0, 14),
	}

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before window", base.Add(-time.Hour), false},
		{"window opens", base, true},
		{"inside window", base.AddDate(0, 0, 7), true},
		{"window closes", base.AddDate(0, 0, 14), true},
		{"after window", base.AddDate(0, 0, 15), false},
		{"after event", base.AddDate(0, 2, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := event.SubmissionWindowOpen(tc.at); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestEffectiveWindowMergesUpdateOverStoredDates(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	event := Event{
		SubmissionStartDate: base,
		SubmissionEndDate:   base.AddDate(0, 0, 14),
	}

	// No dates in the request keeps the stored window.
	start, end := EventUpdateRequest{}.EffectiveWindow(&event)
	if !start.Equal(event.SubmissionStartDate) || !end.Equal(event.SubmissionEndDate) {
		t.Fatalf("stored window not preserved: %v .. %v", start, end)
	}

	// Moving only the end behind the stored start must be visible to the
	// caller's end-before-start check.
	newEnd := base.AddDate(0, 0, -1)
	start, end = EventUpdateRequest{SubmissionEndDate: &newEnd}.EffectiveWindow(&event)
	if !end.Before(start) {
		t.Fatalf("inverted window not detected: %v .. %v", start, end)
	}

	newStart := base.AddDate(0, 0, 7)
	start, end = EventUpdateRequest{SubmissionStartDate: &newStart}.EffectiveWindow(&event)
	if !start.Equal(newStart) || !end.Equal(event.SubmissionEndDate) {
		t.Fatalf("partial update misapplied: %v .. %v", start, end)
	}
}
