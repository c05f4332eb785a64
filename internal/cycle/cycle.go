// Package cycle computes menstrual-cycle calendars from a last period date and an average
// cycle length.
//
// All dates are civil dates. Inputs are truncated to midnight UTC before any arithmetic, so
// callers may pass time.Now() or a parsed "2006-01-02" value interchangeably.
package cycle

import (
	"fmt"
	"time"
)

const (
	// DefaultCycleLength is the length callers assume when a user does not give one.
	DefaultCycleLength = 28

	// lutealDays is the fixed distance from ovulation to the next period.
	lutealDays = 14
	// fertileLeadDays is how many days before ovulation the fertile window opens.
	fertileLeadDays = 5

	day = 24 * time.Hour
)

// Profile is what a user supplies for a prediction.
type Profile struct {
	LastPeriod  time.Time `json:"last_period_date"`
	CycleLength int       `json:"cycle_length"`
}

// Schedule is the calendar derived from a Profile. The fertile window runs from
// FertileStart to FertileEnd inclusive, and FertileEnd is always the ovulation day.
type Schedule struct {
	LastPeriod      time.Time `json:"last_period_date"`
	NextPeriod      time.Time `json:"next_period_date"`
	Ovulation       time.Time `json:"ovulation_date"`
	FertileStart    time.Time `json:"fertile_window_start"`
	FertileEnd      time.Time `json:"fertile_window_end"`
	CurrentCycleDay int       `json:"current_cycle_day"`
}

// Predict builds the schedule for a cycle that started on lastPeriod.
//
// today is the reference date for CurrentCycleDay. A lastPeriod after today is not an
// error: the cycle day clamps to 1.
func Predict(lastPeriod time.Time, cycleLength int, today time.Time) (Schedule, error) {
	if cycleLength <= 0 {
		return Schedule{}, fmt.Errorf("%w: got %d", ErrInvalidCycleLength, cycleLength)
	}

	last := dateOnly(lastPeriod)
	next := last.AddDate(0, 0, cycleLength)
	ovulation := next.AddDate(0, 0, -lutealDays)

	return Schedule{
		LastPeriod:      last,
		NextPeriod:      next,
		Ovulation:       ovulation,
		FertileStart:    ovulation.AddDate(0, 0, -fertileLeadDays),
		FertileEnd:      ovulation,
		CurrentCycleDay: CycleDay(last, today),
	}, nil
}

// PredictProfile is Predict for a Profile. A zero CycleLength is rejected like any other
// non-positive length; callers fill in DefaultCycleLength when the user gave none.
func PredictProfile(p Profile, today time.Time) (Schedule, error) {
	return Predict(p.LastPeriod, p.CycleLength, today)
}

// CycleDay returns the 1-based day of the cycle that started on lastPeriod, as seen on today.
// It never returns less than 1.
func CycleDay(lastPeriod, today time.Time) int {
	n := DaysBetween(lastPeriod, today) + 1
	if n < 1 {
		return 1
	}
	return n
}

// InFertileWindow reports whether d falls inside the fertile window, bounds included.
func (s Schedule) InFertileWindow(d time.Time) bool {
	d = dateOnly(d)
	return !d.Before(s.FertileStart) && !d.After(s.FertileEnd)
}

// DaysUntilNextPeriod returns the whole days from today to NextPeriod. It is negative once
// the predicted date has passed.
func (s Schedule) DaysUntilNextPeriod(today time.Time) int {
	return DaysBetween(today, s.NextPeriod)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)) / day)
}

// dateOnly drops the clock and location, keeping the calendar date as written.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
