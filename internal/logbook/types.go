// Package logbook stores the daily entries a user logs: mood, sleep, stress, cramps, activity
// and free-text notes.
//
// The analytics core only reads entries through Store.Query. Add exists for the daemon's
// ingestion endpoint.
package logbook

import (
	"time"

	"github.com/fyrsmithlabs/luna/internal/mood"
)

// Activity is the self-reported physical activity level for a day.
type Activity string

const (
	ActivityLow      Activity = "Low"
	ActivityModerate Activity = "Moderate"
	ActivityHigh     Activity = "High"
)

// Entry is one user's log for one day.
type Entry struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id" validate:"required,max=128"`
	Date           time.Time  `json:"date" validate:"required"`
	Mood           mood.Label `json:"mood" validate:"required,mood"`
	SleepHours     float64    `json:"sleep_hours" validate:"gte=0,lte=24"`
	StressLevel    int        `json:"stress_level" validate:"min=1,max=10"`
	CrampIntensity int        `json:"cramp_intensity" validate:"min=1,max=10"`
	Activity       Activity   `json:"physical_activity" validate:"required,oneof=Low Moderate High"`
	PCOS           bool       `json:"pcos"`
	Thyroid        bool       `json:"thyroid"`
	Notes          string     `json:"notes,omitempty" validate:"max=4000"`
	// Tags is comma-separated free text, stored as typed.
	Tags      string `json:"tags,omitempty" validate:"max=512"`
	Breakfast string `json:"breakfast,omitempty" validate:"max=256"`
	Lunch     string `json:"lunch,omitempty" validate:"max=256"`
	Dinner    string `json:"dinner,omitempty" validate:"max=256"`
}

// DateRange selects entries by calendar date, both ends inclusive. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the calendar date of t lies inside r.
func (r DateRange) Contains(t time.Time) bool {
	d := dateOnly(t)
	if !r.From.IsZero() && d.Before(dateOnly(r.From)) {
		return false
	}
	if !r.To.IsZero() && d.After(dateOnly(r.To)) {
		return false
	}
	return true
}

// Since returns the range starting n days before today with no upper bound.
func Since(today time.Time, n int) DateRange {
	return DateRange{From: dateOnly(today).AddDate(0, 0, -n)}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
