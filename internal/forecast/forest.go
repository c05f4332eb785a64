package forecast

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options configures forest training.
type Options struct {
	// Trees is the number of trees per forest.
	Trees int `koanf:"trees"`
	// Seed makes training reproducible. Tree i draws from a PCG stream keyed by (Seed, i).
	Seed uint64 `koanf:"seed"`
	// MaxDepth limits tree depth. Zero grows trees until leaves are pure.
	MaxDepth int `koanf:"max_depth"`
	// MinSamplesSplit is the fewest rows a node needs before it may split.
	MinSamplesSplit int `koanf:"min_samples_split"`
	// Workers bounds how many trees are fitted at once.
	Workers int `koanf:"workers"`
}

// DefaultOptions returns 100 trees seeded with 42, grown to purity.
func DefaultOptions() Options {
	return Options{
		Trees:           100,
		Seed:            42,
		MinSamplesSplit: 2,
		Workers:         runtime.GOMAXPROCS(0),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Trees <= 0 {
		o.Trees = d.Trees
	}
	if o.MinSamplesSplit < 2 {
		o.MinSamplesSplit = d.MinSamplesSplit
	}
	if o.Workers <= 0 {
		o.Workers = d.Workers
	}
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	return o
}

// Forest is a bagged ensemble of classification trees that predicts by majority vote.
type Forest struct {
	trees   []*tree
	classes int
}

// fitForest trains opts.Trees trees on bootstrap resamples of (x, y). Labels in y must lie
// in [0, classes). The result does not depend on opts.Workers.
func fitForest(ctx context.Context, x [][]float64, y []int, classes int, opts Options) (*Forest, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrDatasetMalformed, len(x), len(y))
	}
	if classes < 1 {
		return nil, fmt.Errorf("%w: no classes", ErrDatasetMalformed)
	}
	opts = opts.withDefaults()

	params := treeParams{
		classes:         classes,
		maxFeatures:     max(1, int(math.Sqrt(float64(len(x[0]))))),
		maxDepth:        opts.MaxDepth,
		minSamplesSplit: opts.MinSamplesSplit,
	}

	f := &Forest{trees: make([]*tree, opts.Trees), classes: classes}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range f.trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(opts.Seed, uint64(i)))
			rows := make([]int, len(x))
			for j := range rows {
				rows[j] = rng.IntN(len(x))
			}
			f.trees[i] = growTree(x, y, rows, params, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return f, nil
}

// Votes returns how many trees predict each class for x.
func (f *Forest) Votes(x []float64) []int {
	votes := make([]int, f.classes)
	for _, t := range f.trees {
		votes[t.predict(x)]++
	}
	return votes
}

// Predict returns the majority class for x and the share of trees that voted for it.
// Ties go to the lowest class index.
func (f *Forest) Predict(x []float64) (class int, share float64) {
	votes := f.Votes(x)
	class = argmax(votes)
	return class, float64(votes[class]) / float64(len(f.trees))
}

// Size returns the number of trees.
func (f *Forest) Size() int {
	return len(f.trees)
}
