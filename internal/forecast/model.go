// Package forecast trains and serves the mood and cramp-risk forecaster.
//
// A TrainedModel holds two random forests over the features [age, bmi, stress, sleep]: one
// predicting a mood label, one predicting whether cramps are likely. Train builds a model
// from population samples, and Predict takes that model explicitly. Nothing is cached at
// package level.
package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/luna/internal/mood"
	"github.com/fyrsmithlabs/luna/internal/validation"
)

// CrampRisk is the decoded output of the cramp forest.
type CrampRisk string

const (
	CrampRiskLow  CrampRisk = "Low"
	CrampRiskHigh CrampRisk = "High"
)

func crampRiskFor(flag int) CrampRisk {
	if flag == 1 {
		return CrampRiskHigh
	}
	return CrampRiskLow
}

// Input is an individual's measurements.
type Input struct {
	Age         float64 `json:"age" validate:"gt=0,lte=120"`
	WeightKg    float64 `json:"weight_kg" validate:"gt=0,lte=500"`
	HeightCm    float64 `json:"height_cm" validate:"gt=0,lte=300"`
	StressLevel float64 `json:"stress_level" validate:"min=1,max=10"`
	SleepHours  float64 `json:"sleep_hours" validate:"min=1,max=12"`
}

// Output is a forecast for one Input.
type Output struct {
	Mood            mood.Label `json:"mood"`
	MoodConfidence  float64    `json:"mood_confidence"`
	CrampRisk       CrampRisk  `json:"cramp_risk"`
	CrampConfidence float64    `json:"cramp_confidence"`
	BMI             float64    `json:"bmi"`
}

// TrainedModel is an immutable, trained forecaster. It is safe for concurrent use.
type TrainedModel struct {
	ID        string
	TrainedAt time.Time
	Samples   int
	Options   Options

	labels *LabelEncoder
	mood   *Forest
	cramp  *Forest
}

// Labels returns the mood labels the model can predict, in class order.
func (m *TrainedModel) Labels() []mood.Label {
	return m.labels.Classes()
}

// Train fits a model on samples.
func Train(ctx context.Context, samples []Sample, opts Options) (*TrainedModel, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrDatasetUnavailable)
	}

	x := make([][]float64, len(samples))
	moods := make([]mood.Label, len(samples))
	cramps := make([]int, len(samples))
	for i, s := range samples {
		x[i] = s.features()
		for _, v := range x[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: sample %d has a non-finite feature", ErrDatasetMalformed, i)
			}
		}
		moods[i] = MoodFor(s.Symptoms)
		cramps[i] = CrampFlag(s.Symptoms)
	}

	enc := NewLabelEncoder(moods)
	moodY := make([]int, len(moods))
	for i, l := range moods {
		moodY[i], _ = enc.Encode(l)
	}

	opts = opts.withDefaults()
	moodForest, err := fitForest(ctx, x, moodY, enc.Len(), opts)
	if err != nil {
		return nil, fmt.Errorf("fit mood forest: %w", err)
	}
	crampForest, err := fitForest(ctx, x, cramps, 2, opts)
	if err != nil {
		return nil, fmt.Errorf("fit cramp forest: %w", err)
	}

	return &TrainedModel{
		ID:        uuid.NewString(),
		TrainedAt: time.Now().UTC(),
		Samples:   len(samples),
		Options:   opts,
		labels:    enc,
		mood:      moodForest,
		cramp:     crampForest,
	}, nil
}

// Predict forecasts mood and cramp risk for in.
//
// A nil model fails with ErrModelUnavailable. A zero height fails with ErrDivisionGuard
// before BMI is computed.
func Predict(m *TrainedModel, in Input) (Output, error) {
	if m == nil || m.mood == nil || m.cramp == nil {
		return Output{}, ErrModelUnavailable
	}
	if in.HeightCm == 0 {
		return Output{}, ErrDivisionGuard
	}
	if err := validation.Struct(in); err != nil {
		return Output{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	bmi, err := BMI(in.WeightKg, in.HeightCm)
	if err != nil {
		return Output{}, err
	}

	features := []float64{in.Age, bmi, in.StressLevel, in.SleepHours}
	moodClass, moodShare := m.mood.Predict(features)
	crampClass, crampShare := m.cramp.Predict(features)

	label, ok := m.labels.Decode(moodClass)
	if !ok {
		return Output{}, fmt.Errorf("%w: mood class %d out of range", ErrModelUnavailable, moodClass)
	}

	return Output{
		Mood:            label,
		MoodConfidence:  moodShare,
		CrampRisk:       crampRiskFor(crampClass),
		CrampConfidence: crampShare,
		BMI:             bmi,
	}, nil
}
