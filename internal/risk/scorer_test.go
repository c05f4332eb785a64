package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssess_EmptySelection(t *testing.T) {
	_, err := Assess(nil)
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = Assess([]string{})
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestAssess_Verdicts(t *testing.T) {
	tests := []struct {
		name        string
		selected    []string
		wantPCOS    int
		wantThyroid int
		wantVerdict Verdict
	}{
		{
			name:        "three pcos symptoms",
			selected:    []string{IrregularPeriods, HeavyBleeding, HairGrowth},
			wantPCOS:    3,
			wantVerdict: VerdictPotentialPCOS,
		},
		{
			name:        "two thyroid symptoms",
			selected:    []string{Fatigue, TemperatureSense},
			wantThyroid: 2,
			wantVerdict: VerdictPotentialThyroid,
		},
		{
			name:        "shared symptoms count toward both",
			selected:    []string{WeightGain, HairLoss},
			wantPCOS:    2,
			wantThyroid: 2,
			wantVerdict: VerdictPotentialThyroid,
		},
		{
			name:        "pcos takes precedence",
			selected:    []string{WeightGain, HairLoss, AnxietyDepressed},
			wantPCOS:    3,
			wantThyroid: 3,
			wantVerdict: VerdictPotentialPCOS,
		},
		{
			name:        "below both thresholds",
			selected:    []string{AcneOilySkin, Fatigue},
			wantPCOS:    1,
			wantThyroid: 1,
			wantVerdict: VerdictMonitor,
		},
		{
			name:        "duplicates count once",
			selected:    []string{HairGrowth, HairGrowth, HairGrowth},
			wantPCOS:    1,
			wantVerdict: VerdictMonitor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Assess(tt.selected)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPCOS, a.PCOSScore)
			assert.Equal(t, tt.wantThyroid, a.ThyroidScore)
			assert.Equal(t, tt.wantVerdict, a.Verdict)
			assert.Equal(t, Disclaimer, a.Disclaimer)
		})
	}
}

func TestAssess_FindingsListEveryThreshold(t *testing.T) {
	a, err := Assess([]string{WeightGain, HairLoss, AnxietyDepressed})
	require.NoError(t, err)
	assert.Equal(t, []string{findingPCOS, findingThyroid}, a.Findings)

	a, err = Assess([]string{HairGrowth})
	require.NoError(t, err)
	assert.Equal(t, []string{findingMonitor}, a.Findings)
}

func TestAssess_Advice(t *testing.T) {
	a, err := Assess([]string{HairGrowth, IrregularPeriods, HeavyBleeding, Fatigue})
	require.NoError(t, err)

	require.Len(t, a.Advice, 3)
	assert.Equal(t, Advice{Symptom: IrregularPeriods, Text: adviceRegularity}, a.Advice[0])
	assert.Equal(t, Advice{Symptom: HeavyBleeding, Text: adviceRegularity}, a.Advice[1])
	assert.Equal(t, Advice{Symptom: Fatigue, Text: adviceEnergy}, a.Advice[2])
}

func TestAssess_UnknownSymptoms(t *testing.T) {
	a, err := Assess([]string{"Headache", AcneOilySkin})
	require.NoError(t, err)
	assert.Equal(t, 1, a.PCOSScore)
	assert.Equal(t, []string{"Headache"}, a.Unknown)
	assert.Len(t, a.Advice, 1)

	a, err = Assess([]string{"Headache"})
	require.NoError(t, err)
	assert.Equal(t, VerdictMonitor, a.Verdict)
	assert.Empty(t, a.Advice)
}
