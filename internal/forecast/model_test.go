package forecast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/luna/internal/mood"
	"github.com/fyrsmithlabs/luna/internal/validation"
)

func trainFixture(t *testing.T) *TrainedModel {
	t.Helper()
	samples, err := OpenDataset("testdata/population.csv")
	require.NoError(t, err)
	m, err := Train(context.Background(), samples, Options{Trees: 40, Seed: 42})
	require.NoError(t, err)
	return m
}

func TestTrain(t *testing.T) {
	m := trainFixture(t)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, 12, m.Samples)
	assert.Equal(t, 40, m.Options.Trees)
	assert.Equal(t,
		[]mood.Label{mood.Neutral, mood.Sad, mood.Stressed, mood.Tired, mood.Unstable},
		m.Labels())
}

func TestTrain_Errors(t *testing.T) {
	_, err := Train(context.Background(), nil, Options{})
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
}

func TestPredict(t *testing.T) {
	m := trainFixture(t)

	out, err := Predict(m, Input{Age: 23, WeightKg: 56, HeightCm: 163, StressLevel: 9, SleepHours: 5})
	require.NoError(t, err)
	assert.Contains(t, m.Labels(), out.Mood)
	assert.Contains(t, []CrampRisk{CrampRiskLow, CrampRiskHigh}, out.CrampRisk)
	assert.InDelta(t, 56/(1.63*1.63), out.BMI, 1e-9)
	assert.Greater(t, out.MoodConfidence, 0.0)
	assert.LessOrEqual(t, out.MoodConfidence, 1.0)
	assert.Greater(t, out.CrampConfidence, 0.0)
	assert.LessOrEqual(t, out.CrampConfidence, 1.0)
}

func TestPredict_Deterministic(t *testing.T) {
	a := trainFixture(t)
	b := trainFixture(t)
	in := Input{Age: 30, WeightKg: 70, HeightCm: 168, StressLevel: 4, SleepHours: 7}

	outA, err := Predict(a, in)
	require.NoError(t, err)
	outB, err := Predict(b, in)
	require.NoError(t, err)
	assert.Equal(t, outA, outB)
}

func TestPredict_Errors(t *testing.T) {
	m := trainFixture(t)

	_, err := Predict(nil, Input{Age: 30, WeightKg: 60, HeightCm: 160, StressLevel: 5, SleepHours: 7})
	assert.ErrorIs(t, err, ErrModelUnavailable)

	_, err = Predict(&TrainedModel{}, Input{Age: 30, WeightKg: 60, HeightCm: 160, StressLevel: 5, SleepHours: 7})
	assert.ErrorIs(t, err, ErrModelUnavailable)

	_, err = Predict(m, Input{Age: 30, WeightKg: 60, HeightCm: 0, StressLevel: 5, SleepHours: 7})
	assert.ErrorIs(t, err, ErrDivisionGuard)

	_, err = Predict(nil, Input{HeightCm: 0})
	assert.ErrorIs(t, err, ErrModelUnavailable, "missing model is reported before the height guard")

	_, err = Predict(m, Input{Age: 30, WeightKg: 60, HeightCm: 160, StressLevel: 11, SleepHours: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = Predict(m, Input{Age: 30, WeightKg: 60, HeightCm: 160, StressLevel: 5, SleepHours: 0.5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCrampRiskFor(t *testing.T) {
	assert.Equal(t, CrampRiskHigh, crampRiskFor(1))
	assert.Equal(t, CrampRiskLow, crampRiskFor(0))
}
