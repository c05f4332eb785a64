package forecast

import (
	"sort"
	"strings"

	"github.com/fyrsmithlabs/luna/internal/mood"
)

// crampSymptom marks a dataset row as a cramp case when it appears anywhere in Symptoms.
const crampSymptom = "Cramps"

// symptomMoods maps a dataset symptom to the mood it implies, in lookup order.
var symptomMoods = []struct {
	symptom string
	mood    mood.Label
}{
	{"Headache", mood.Stressed},
	{"Fatigue", mood.Tired},
	{"Bloating", mood.Neutral},
	{"Cramps", mood.Sad},
	{"Mood Swings", mood.Unstable},
}

// CrampFlag returns 1 when symptoms mentions cramps, else 0.
func CrampFlag(symptoms string) int {
	if strings.Contains(symptoms, crampSymptom) {
		return 1
	}
	return 0
}

// MoodFor derives the training mood from a Symptoms cell.
//
// A cell naming exactly one known symptom maps directly. A cell listing several takes the
// first known symptom in table order that it contains; an exact-match-only lookup would label
// those rows Neutral, and this deliberately does not. Anything else is Neutral.
func MoodFor(symptoms string) mood.Label {
	s := strings.TrimSpace(symptoms)
	for _, sm := range symptomMoods {
		if s == sm.symptom {
			return sm.mood
		}
	}
	for _, sm := range symptomMoods {
		if strings.Contains(s, sm.symptom) {
			return sm.mood
		}
	}
	return mood.Neutral
}

// LabelEncoder maps mood labels to the dense class indices the forest is trained on.
// Classes are the distinct labels sorted by name, so the mapping depends only on the set
// of labels seen.
type LabelEncoder struct {
	classes []mood.Label
	index   map[mood.Label]int
}

// NewLabelEncoder builds an encoder over the distinct values in labels.
func NewLabelEncoder(labels []mood.Label) *LabelEncoder {
	index := make(map[mood.Label]int)
	for _, l := range labels {
		index[l] = 0
	}
	classes := make([]mood.Label, 0, len(index))
	for l := range index {
		classes = append(classes, l)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	for i, l := range classes {
		index[l] = i
	}
	return &LabelEncoder{classes: classes, index: index}
}

// Encode returns the class index of l.
func (e *LabelEncoder) Encode(l mood.Label) (int, bool) {
	i, ok := e.index[l]
	return i, ok
}

// Decode returns the label for class index i.
func (e *LabelEncoder) Decode(i int) (mood.Label, bool) {
	if i < 0 || i >= len(e.classes) {
		return "", false
	}
	return e.classes[i], true
}

// Classes returns the labels in class-index order.
func (e *LabelEncoder) Classes() []mood.Label {
	out := make([]mood.Label, len(e.classes))
	copy(out, e.classes)
	return out
}

// Len is the number of classes.
func (e *LabelEncoder) Len() int {
	return len(e.classes)
}
