package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue(t *testing.T) {
	c := Catalogue()
	require.Len(t, c, catalogueSize)
	assert.Equal(t, IrregularPeriods, c[0].Name)
	assert.Equal(t, TemperatureSense, c[len(c)-1].Name)

	counts := map[Category]int{}
	for _, s := range c {
		counts[s.Category]++
	}
	assert.Equal(t, map[Category]int{
		CategoryPCOS:        4,
		CategoryPCOSThyroid: 3,
		CategoryThyroid:     2,
	}, counts)

	// Returned slice is a copy.
	c[0].Name = "mutated"
	assert.Equal(t, IrregularPeriods, Catalogue()[0].Name)
}

func TestCatalogue_AdviceAttached(t *testing.T) {
	s, ok := Lookup(AcneOilySkin)
	require.True(t, ok)
	assert.Equal(t, adviceSkin, s.Advice)

	s, ok = Lookup(HairLoss)
	require.True(t, ok)
	assert.Empty(t, s.Advice)

	_, ok = Lookup("acne or oily skin")
	assert.False(t, ok)
}

func TestBuildIndex_Rejects(t *testing.T) {
	good := []Symptom{{Name: "A", Category: CategoryPCOS}, {Name: "B", Category: CategoryThyroid}}

	tests := []struct {
		name     string
		symptoms []Symptom
		advice   map[string]string
		size     int
		errMsg   string
	}{
		{name: "wrong size", symptoms: good, size: 3, errMsg: "expected 3 symptoms"},
		{
			name:     "unknown category",
			symptoms: []Symptom{{Name: "A", Category: "liver"}, {Name: "B", Category: CategoryThyroid}},
			size:     2,
			errMsg:   "unknown category",
		},
		{
			name:     "duplicate",
			symptoms: []Symptom{{Name: "A", Category: CategoryPCOS}, {Name: "A", Category: CategoryThyroid}},
			size:     2,
			errMsg:   "duplicate symptom",
		},
		{
			name:     "empty name",
			symptoms: []Symptom{{Name: "", Category: CategoryPCOS}, {Name: "B", Category: CategoryThyroid}},
			size:     2,
			errMsg:   "empty name",
		},
		{
			name:     "orphan advice",
			symptoms: good,
			advice:   map[string]string{"C": "drink water"},
			size:     2,
			errMsg:   "not in the catalogue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildIndex(tt.symptoms, tt.advice, tt.size)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	index, err := buildIndex(good, map[string]string{"A": "tip"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "tip", index["A"].Advice)
}
