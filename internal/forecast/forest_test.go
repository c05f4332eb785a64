package forecast

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable returns n rows per class where only feature 0 varies and class 1 sits above 100.
func separable(n int) ([][]float64, []int) {
	var x [][]float64
	var y []int
	for i := 0; i < n; i++ {
		x = append(x, []float64{float64(i), 1, 1, 1})
		y = append(y, 0)
		x = append(x, []float64{float64(100 + i), 1, 1, 1})
		y = append(y, 1)
	}
	return x, y
}

func TestGrowTree_FitsTrainingRows(t *testing.T) {
	x, y := separable(10)
	rows := make([]int, len(x))
	for i := range rows {
		rows[i] = i
	}
	params := treeParams{classes: 2, maxFeatures: 2, minSamplesSplit: 2}
	tr := growTree(x, y, rows, params, rand.New(rand.NewPCG(1, 2)))

	for i := range x {
		assert.Equal(t, y[i], tr.predict(x[i]))
	}
	assert.Equal(t, 1, tr.depth())
	assert.Equal(t, 54.5, tr.nodes[0].threshold)
}

func TestGrowTree_MaxDepth(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}}
	y := []int{0, 1, 0, 1}
	params := treeParams{classes: 2, maxFeatures: 1, maxDepth: 1, minSamplesSplit: 2}
	tr := growTree(x, y, []int{0, 1, 2, 3}, params, rand.New(rand.NewPCG(0, 0)))
	assert.LessOrEqual(t, tr.depth(), 1)
}

func TestGrowTree_ConstantFeaturesMakeLeaf(t *testing.T) {
	x := [][]float64{{1, 1}, {1, 1}, {1, 1}}
	y := []int{0, 1, 1}
	params := treeParams{classes: 2, maxFeatures: 1, minSamplesSplit: 2}
	tr := growTree(x, y, []int{0, 1, 2}, params, rand.New(rand.NewPCG(0, 0)))
	require.Len(t, tr.nodes, 1)
	assert.Equal(t, 1, tr.predict([]float64{1, 1}))
}

func TestArgmax_TiesGoLow(t *testing.T) {
	assert.Equal(t, 0, argmax([]int{2, 2, 1}))
	assert.Equal(t, 1, argmax([]int{1, 3, 3}))
	assert.Equal(t, 0, argmax([]int{0, 0}))
}

func TestWeightedGini(t *testing.T) {
	assert.Equal(t, 0.0, weightedGini([]int{4, 0}, 4))
	assert.InDelta(t, 2.0, weightedGini([]int{2, 2}, 4), 1e-12)
	assert.Equal(t, 0.0, weightedGini([]int{0, 0}, 0))
}

func TestFitForest_Separable(t *testing.T) {
	x, y := separable(10)
	f, err := fitForest(context.Background(), x, y, 2, Options{Trees: 25, Seed: 7})
	require.NoError(t, err)
	assert.Equal(t, 25, f.Size())

	class, share := f.Predict([]float64{-50, 1, 1, 1})
	assert.Equal(t, 0, class)
	assert.Equal(t, 1.0, share)

	class, _ = f.Predict([]float64{500, 1, 1, 1})
	assert.Equal(t, 1, class)
}

func TestFitForest_DeterministicAcrossWorkers(t *testing.T) {
	samples, err := OpenDataset("testdata/population.csv")
	require.NoError(t, err)

	x := make([][]float64, len(samples))
	y := make([]int, len(samples))
	for i, s := range samples {
		x[i] = s.features()
		y[i] = CrampFlag(s.Symptoms)
	}

	serial, err := fitForest(context.Background(), x, y, 2, Options{Trees: 30, Seed: 42, Workers: 1})
	require.NoError(t, err)
	parallel, err := fitForest(context.Background(), x, y, 2, Options{Trees: 30, Seed: 42, Workers: 8})
	require.NoError(t, err)

	probes := [][]float64{
		{20, 20, 7, 6},
		{35, 28, 3, 8},
		{40, 30, 9, 5},
		{25, 22, 5, 7},
	}
	for _, p := range probes {
		assert.Equal(t, serial.Votes(p), parallel.Votes(p))
	}
}

func TestFitForest_Errors(t *testing.T) {
	_, err := fitForest(context.Background(), nil, nil, 2, Options{})
	assert.ErrorIs(t, err, ErrDatasetMalformed)

	_, err = fitForest(context.Background(), [][]float64{{1}}, []int{0, 1}, 2, Options{})
	assert.ErrorIs(t, err, ErrDatasetMalformed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	x, y := separable(3)
	_, err = fitForest(ctx, x, y, 2, Options{Trees: 5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptions_WithDefaults(t *testing.T) {
	o := Options{MaxDepth: -3}.withDefaults()
	assert.Equal(t, 100, o.Trees)
	assert.Equal(t, 2, o.MinSamplesSplit)
	assert.Equal(t, 0, o.MaxDepth)
	assert.Positive(t, o.Workers)
	assert.Equal(t, uint64(0), o.Seed)

	d := DefaultOptions()
	assert.Equal(t, uint64(42), d.Seed)
}
