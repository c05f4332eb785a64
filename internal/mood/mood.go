// Package mood defines the closed set of mood labels shared by logs, trends and forecasts.
package mood

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLabel is returned when text does not name a known mood.
var ErrUnknownLabel = errors.New("unknown mood label")

// Label is a mood as recorded in a log entry or predicted by the forecaster.
type Label string

const (
	Happy        Label = "Happy"
	Content      Label = "Content"
	Joyful       Label = "Joyful"
	Laughing     Label = "Laughing"
	Sad          Label = "Sad"
	Crying       Label = "Crying"
	Disappointed Label = "Disappointed"
	Gloomy       Label = "Gloomy"
	Angry        Label = "Angry"
	Frustrated   Label = "Frustrated"
	Annoyed      Label = "Annoyed"
	Tired        Label = "Tired"
	Sleepy       Label = "Sleepy"
	Exhausted    Label = "Exhausted"
	Anxious      Label = "Anxious"
	Scared       Label = "Scared"
	Worried      Label = "Worried"
	Neutral      Label = "Neutral"
	Calm         Label = "Calm"
	Relaxed      Label = "Relaxed"
	Energetic    Label = "Energetic"
	Motivated    Label = "Motivated"
	Excited      Label = "Excited"

	// Stressed and Unstable only come out of the forecaster's symptom mapping,
	// but are accepted in logs too.
	Stressed Label = "Stressed"
	Unstable Label = "Unstable"
)

var all = []Label{
	Happy, Content, Joyful, Laughing,
	Sad, Crying, Disappointed, Gloomy,
	Angry, Frustrated, Annoyed,
	Tired, Sleepy, Exhausted,
	Anxious, Scared, Worried,
	Neutral, Calm, Relaxed,
	Energetic, Motivated, Excited,
	Stressed, Unstable,
}

var (
	byFold  = make(map[string]Label, len(all))
	ordinal = make(map[Label]int, len(all))
)

func init() {
	for i, l := range all {
		byFold[strings.ToLower(string(l))] = l
		ordinal[l] = i
	}
}

// All returns every label in declaration order.
func All() []Label {
	out := make([]Label, len(all))
	copy(out, all)
	return out
}

// Parse resolves s to a Label, ignoring case and surrounding whitespace.
func Parse(s string) (Label, error) {
	if l, ok := byFold[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// Valid reports whether l is a member of the enumeration.
func (l Label) Valid() bool {
	_, ok := ordinal[l]
	return ok
}

// Ordinal returns the position of l in All, or -1 for an unknown label.
func (l Label) Ordinal() int {
	if i, ok := ordinal[l]; ok {
		return i
	}
	return -1
}

func (l Label) String() string {
	return string(l)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l), nil
}
