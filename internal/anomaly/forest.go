// Package anomaly flags unusual trips with an isolation forest over
// duration, distance and speed features.
package anomaly

import (
	"math"
	"math/rand/v2"

	"github.com/yerzhan-m/geotrips/internal/core/model"
)

// Params configures the forest. Deterministic for a fixed seed.
type Params struct {
	Trees      int
	SampleSize int
	Seed       uint64
}

// DefaultParams follows the common isolation-forest defaults.
func DefaultParams() Params {
	return Params{Trees: 100, SampleSize: 256, Seed: 42}
}

func (p Params) validate() error {
	if p.Trees <= 0 {
		return model.Invalidf("forest trees %d (must be positive)", p.Trees)
	}
	if p.SampleSize < 2 {
		return model.Invalidf("forest sample size %d (must be >= 2)", p.SampleSize)
	}
	return nil
}

type node struct {
	// leaf when left == nil; size is the number of samples that ended here
	left, right *node
	dim         int
	split       float64
	size        int
}

// Forest is a fitted isolation forest.
type Forest struct {
	trees      []*node
	sampleSize int
}

// Fit grows p.Trees isolation trees over random subsamples of the rows.
func Fit(rows [][featureDims]float64, p Params) (*Forest, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, model.Invalidf("empty feature matrix")
	}

	sample := p.SampleSize
	if sample > len(rows) {
		sample = len(rows)
	}
	heightLimit := int(math.Ceil(math.Log2(float64(sample))))
	if heightLimit < 1 {
		heightLimit = 1
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed))
	f := &Forest{trees: make([]*node, p.Trees), sampleSize: sample}

	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	for t := 0; t < p.Trees; t++ {
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		sub := make([]int, sample)
		copy(sub, idx[:sample])
		f.trees[t] = grow(rows, sub, 0, heightLimit, rng)
	}
	return f, nil
}

func grow(rows [][featureDims]float64, idx []int, depth, limit int, rng *rand.Rand) *node {
	if depth >= limit || len(idx) <= 1 {
		return &node{size: len(idx)}
	}

	dim := rng.IntN(featureDims)
	lo, hi := rows[idx[0]][dim], rows[idx[0]][dim]
	for _, i := range idx[1:] {
		v := rows[i][dim]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return &node{size: len(idx)}
	}
	split := lo + rng.Float64()*(hi-lo)

	var left, right []int
	for _, i := range idx {
		if rows[i][dim] < split {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &node{
		dim:   dim,
		split: split,
		size:  len(idx),
		left:  grow(rows, left, depth+1, limit, rng),
		right: grow(rows, right, depth+1, limit, rng),
	}
}

// avgPathLength is the c(n) normalization term from Liu et al.
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	h := math.Log(float64(n-1)) + 0.5772156649015329
	return 2*h - 2*float64(n-1)/float64(n)
}

func pathLength(n *node, row [featureDims]float64, depth float64) float64 {
	if n.left == nil {
		return depth + avgPathLength(n.size)
	}
	if row[n.dim] < n.split {
		return pathLength(n.left, row, depth+1)
	}
	return pathLength(n.right, row, depth+1)
}

// ScoreSamples scores each row with the sign convention of common statistics
// toolkits: values lie in [-1, 0) and lower means more anomalous.
func (f *Forest) ScoreSamples(rows [][featureDims]float64) []float64 {
	scores := make([]float64, len(rows))
	// a single-sample forest has c(1) == 0; floor the normalization at c(2)
	// so scores stay finite
	n := f.sampleSize
	if n < 2 {
		n = 2
	}
	c := avgPathLength(n)
	for i, row := range rows {
		var sum float64
		for _, t := range f.trees {
			sum += pathLength(t, row, 0)
		}
		mean := sum / float64(len(f.trees))
		scores[i] = -math.Exp2(-mean / c)
	}
	return scores
}
