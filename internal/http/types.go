package http

import (
	"time"

	"github.com/fyrsmithlabs/luna/internal/cycle"
	"github.com/fyrsmithlabs/luna/internal/logbook"
	"github.com/fyrsmithlabs/luna/internal/mood"
	"github.com/fyrsmithlabs/luna/internal/risk"
	"github.com/fyrsmithlabs/luna/internal/telemetry"
)

// dateLayout is the wire format for every date in the API.
const dateLayout = time.DateOnly

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status     string                  `json:"status"`
	ModelReady bool                    `json:"model_ready"`
	Telemetry  *telemetry.HealthStatus `json:"telemetry,omitempty"`
}

// CycleRequest is the request body for POST /api/v1/cycle. An absent cycle length means
// cycle.DefaultCycleLength; an explicit zero is rejected. An empty today means the server's
// current date.
type CycleRequest struct {
	LastPeriodDate string `json:"last_period_date" validate:"required,datetime=2006-01-02"`
	CycleLength    *int   `json:"cycle_length,omitempty"`
	Today          string `json:"today,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// length returns the requested cycle length, or cycle.DefaultCycleLength when absent.
func (r CycleRequest) length() int {
	if r.CycleLength == nil {
		return cycle.DefaultCycleLength
	}
	return *r.CycleLength
}

// RiskRequest is the request body for POST /api/v1/risk.
type RiskRequest struct {
	Symptoms []string `json:"symptoms"`
}

// CatalogueResponse is the response body for GET /api/v1/risk/catalogue.
type CatalogueResponse struct {
	Symptoms []risk.Symptom `json:"symptoms"`
}

// LogRequest is the request body for POST /api/v1/users/:user/logs.
type LogRequest struct {
	Date           string           `json:"date" validate:"required,datetime=2006-01-02"`
	Mood           mood.Label       `json:"mood"`
	SleepHours     float64          `json:"sleep_hours"`
	StressLevel    int              `json:"stress_level"`
	CrampIntensity int              `json:"cramp_intensity"`
	Activity       logbook.Activity `json:"physical_activity"`
	PCOS           bool             `json:"pcos"`
	Thyroid        bool             `json:"thyroid"`
	Notes          string           `json:"notes,omitempty"`
	Tags           string           `json:"tags,omitempty"`
	Breakfast      string           `json:"breakfast,omitempty"`
	Lunch          string           `json:"lunch,omitempty"`
	Dinner         string           `json:"dinner,omitempty"`
}

// entry converts r into a log entry for userID. r.Date must already be validated.
func (r LogRequest) entry(userID string) (logbook.Entry, error) {
	d, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return logbook.Entry{}, err
	}
	return logbook.Entry{
		UserID:         userID,
		Date:           d,
		Mood:           r.Mood,
		SleepHours:     r.SleepHours,
		StressLevel:    r.StressLevel,
		CrampIntensity: r.CrampIntensity,
		Activity:       r.Activity,
		PCOS:           r.PCOS,
		Thyroid:        r.Thyroid,
		Notes:          r.Notes,
		Tags:           r.Tags,
		Breakfast:      r.Breakfast,
		Lunch:          r.Lunch,
		Dinner:         r.Dinner,
	}, nil
}
