// Package trends aggregates a user's own log entries into weekly summaries and chart series.
package trends

import (
	"sort"
	"strings"
	"time"

	"github.com/fyrsmithlabs/luna/internal/logbook"
	"github.com/fyrsmithlabs/luna/internal/mood"
)

const (
	// WindowDays is how far back from today a weekly summary looks.
	WindowDays = 7
	// MinEntries is the fewest entries a summary or series accepts.
	MinEntries = 2
)

// WeeklySummary describes the entries logged in the week ending today.
type WeeklySummary struct {
	WindowStart           time.Time          `json:"window_start"`
	WindowEnd             time.Time          `json:"window_end"`
	Entries               int                `json:"entries"`
	AverageSleepHours     float64            `json:"average_sleep_hours"`
	AverageStressLevel    float64            `json:"average_stress_level"`
	AverageCrampIntensity float64            `json:"average_cramp_intensity"`
	MoodFrequency         map[mood.Label]int `json:"mood_frequency"`
	TagFrequency          map[string]int     `json:"tag_frequency"`
}

// SummarizeWeek summarises the entries dated today minus WindowDays or later.
//
// Entries outside the window are ignored, so callers may pass a user's full history.
// Dates after today are kept, matching a plain lower-bound filter.
func SummarizeWeek(entries []logbook.Entry, today time.Time) (WeeklySummary, error) {
	start := dateOnly(today).AddDate(0, 0, -WindowDays)

	var window []logbook.Entry
	for _, e := range entries {
		if !dateOnly(e.Date).Before(start) {
			window = append(window, e)
		}
	}
	if len(window) < MinEntries {
		return WeeklySummary{}, insufficient(len(window))
	}

	s := WeeklySummary{
		WindowStart:   start,
		WindowEnd:     dateOnly(today),
		Entries:       len(window),
		MoodFrequency: make(map[mood.Label]int),
		TagFrequency:  make(map[string]int),
	}

	var sleep, stress, cramps float64
	for _, e := range window {
		sleep += e.SleepHours
		stress += float64(e.StressLevel)
		cramps += float64(e.CrampIntensity)
		s.MoodFrequency[e.Mood]++
		for _, tag := range SplitTags(e.Tags) {
			s.TagFrequency[tag]++
		}
	}

	n := float64(len(window))
	s.AverageSleepHours = sleep / n
	s.AverageStressLevel = stress / n
	s.AverageCrampIntensity = cramps / n
	return s, nil
}

// SplitTags splits comma-separated tag text into trimmed, non-empty tags. Repeats are kept.
func SplitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Count is one row of a ranked frequency table.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Ranked orders a frequency table by count, highest first, then by key.
func Ranked(freq map[string]int) []Count {
	out := make([]Count, 0, len(freq))
	for k, v := range freq {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// RankedMoods is Ranked for a mood frequency table.
func (s WeeklySummary) RankedMoods() []Count {
	freq := make(map[string]int, len(s.MoodFrequency))
	for k, v := range s.MoodFrequency {
		freq[string(k)] = v
	}
	return Ranked(freq)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
