package forecast

import (
	"math/rand/v2"
	"sort"
)

// leaf marks a node without children.
const leaf = -1

// node is a split (feature, threshold, children) or, when left is leaf, a class prediction.
// Samples with x[feature] <= threshold go left.
type node struct {
	feature   int
	threshold float64
	left      int
	right     int
	class     int
}

// tree is a CART classification tree stored as a flat node slice rooted at index 0.
type tree struct {
	nodes []node
}

func (t *tree) predict(x []float64) int {
	i := 0
	for {
		n := &t.nodes[i]
		if n.left == leaf {
			return n.class
		}
		if x[n.feature] <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
}

func (t *tree) depth() int {
	var walk func(i int) int
	walk = func(i int) int {
		n := t.nodes[i]
		if n.left == leaf {
			return 0
		}
		return 1 + max(walk(n.left), walk(n.right))
	}
	return walk(0)
}

// treeParams controls how a single tree grows.
type treeParams struct {
	classes         int
	maxFeatures     int
	maxDepth        int // 0 means unlimited
	minSamplesSplit int
}

// treeBuilder grows one tree over a fixed training matrix. It is not safe for concurrent
// use; each tree gets its own builder and RNG.
type treeBuilder struct {
	x      [][]float64
	y      []int
	params treeParams
	rng    *rand.Rand
	nodes  []node
}

// growTree fits a tree on the rows of x listed in rows, which may repeat.
func growTree(x [][]float64, y []int, rows []int, params treeParams, rng *rand.Rand) *tree {
	b := &treeBuilder{x: x, y: y, params: params, rng: rng}
	b.build(rows, 0)
	return &tree{nodes: b.nodes}
}

func (b *treeBuilder) build(rows []int, depth int) int {
	id := len(b.nodes)
	counts := b.classCounts(rows)
	b.nodes = append(b.nodes, node{left: leaf, right: leaf, class: argmax(counts)})

	if isPure(counts) || len(rows) < b.params.minSamplesSplit {
		return id
	}
	if b.params.maxDepth > 0 && depth >= b.params.maxDepth {
		return id
	}

	feature, threshold, ok := b.bestSplit(rows)
	if !ok {
		return id
	}

	var left, right []int
	for _, r := range rows {
		if b.x[r][feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[id] = node{feature: feature, threshold: threshold, left: l, right: r, class: b.nodes[id].class}
	return id
}

// bestSplit searches a random subset of features for the split with the lowest weighted
// Gini impurity. Features that are constant over rows do not count toward the subset, so
// a split is found whenever any feature varies.
func (b *treeBuilder) bestSplit(rows []int) (feature int, threshold float64, ok bool) {
	nFeatures := len(b.x[rows[0]])
	order := b.rng.Perm(nFeatures)

	best := 0.0
	sorted := make([]int, len(rows))
	leftCounts := make([]int, b.params.classes)
	rightCounts := make([]int, b.params.classes)

	visited := 0
	for _, f := range order {
		if visited >= b.params.maxFeatures && ok {
			break
		}

		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool { return b.x[sorted[i]][f] < b.x[sorted[j]][f] })
		if b.x[sorted[0]][f] == b.x[sorted[len(sorted)-1]][f] {
			continue
		}
		visited++

		clear(leftCounts)
		copy(rightCounts, b.classCounts(rows))
		n := len(sorted)
		for i := 0; i < n-1; i++ {
			c := b.y[sorted[i]]
			leftCounts[c]++
			rightCounts[c]--

			lo, hi := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
			if lo == hi {
				continue
			}
			score := weightedGini(leftCounts, i+1) + weightedGini(rightCounts, n-i-1)
			if !ok || score < best {
				best = score
				feature = f
				threshold = lo + (hi-lo)/2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func (b *treeBuilder) classCounts(rows []int) []int {
	counts := make([]int, b.params.classes)
	for _, r := range rows {
		counts[b.y[r]]++
	}
	return counts
}

// weightedGini returns n times the Gini impurity of counts, which sum to n.
func weightedGini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	var sumSq float64
	for _, c := range counts {
		sumSq += float64(c) * float64(c)
	}
	return float64(n) - sumSq/float64(n)
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

// argmax returns the index of the largest count, preferring the lowest index on ties.
func argmax(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}
