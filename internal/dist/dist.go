// Package dist provides the discrete and continuous random draws the dataset
// generator is built on. Every draw goes through a single seeded stream so a
// run is fully reproducible from its seed. Reproducibility is guaranteed only
// across runs of this implementation: the seed pins the stream, not the
// generator algorithm, so other implementations of the same schema will not
// be bit-identical.
package dist

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Source wraps a single pseudo-random stream. It is not safe for concurrent
// use; the generation pipeline is strictly sequential.
type Source struct {
	rng *rand.Rand
}

// NewSource seeds a fresh stream.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float64 draws a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Roll reports whether a uniform draw landed under p.
func (s *Source) Roll(p float64) bool {
	return s.rng.Float64() < p
}

// Uniform draws a value in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// IntBetween draws an integer in [lo, hi] inclusive.
func (s *Source) IntBetween(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

// Normal draws from a gaussian with the given mean and standard deviation.
func (s *Source) Normal(mean, stddev float64) float64 {
	return mean + s.rng.NormFloat64()*stddev
}

// ClampedNormal draws from a gaussian and clamps the result to [lo, hi].
func (s *Source) ClampedNormal(mean, stddev, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, s.Normal(mean, stddev)))
}

// LogNormal draws from a log-normal distribution parameterized in log space.
func (s *Source) LogNormal(mu, sigma float64) float64 {
	return math.Exp(s.Normal(mu, sigma))
}

// Poisson draws from a Poisson distribution with the given mean using
// Knuth's multiplication method. Fine for the small means used here.
func (s *Source) Poisson(mean float64) int {
	limit := math.Exp(-mean)
	k := 0
	p := 1.0
	for {
		p *= s.rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// TimeBetween draws a timestamp uniformly in [start, end). When the window is
// empty it returns start.
func (s *Source) TimeBetween(start, end time.Time) time.Time {
	delta := end.Sub(start)
	if delta <= 0 {
		return start
	}
	offset := time.Duration(s.rng.Float64() * float64(delta))
	return start.Add(offset)
}

// Choice pairs a candidate value with its relative weight.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// Weighted samples from an explicit (value, weight) list. Weights need not
// sum to one; they are normalized by the running total.
type Weighted[T any] struct {
	values []T
	cum    []float64
	total  float64
}

// NewWeighted validates the choice list and precomputes cumulative weights.
func NewWeighted[T any](choices []Choice[T]) (*Weighted[T], error) {
	if len(choices) == 0 {
		return nil, fmt.Errorf("weighted distribution requires at least one choice")
	}
	w := &Weighted[T]{
		values: make([]T, 0, len(choices)),
		cum:    make([]float64, 0, len(choices)),
	}
	for _, c := range choices {
		if c.Weight < 0 {
			return nil, fmt.Errorf("negative weight %v", c.Weight)
		}
		w.total += c.Weight
		w.values = append(w.values, c.Value)
		w.cum = append(w.cum, w.total)
	}
	if w.total <= 0 {
		return nil, fmt.Errorf("weights must sum to a positive total")
	}
	return w, nil
}

// MustWeighted is NewWeighted for the fixed, compile-time choice tables.
func MustWeighted[T any](choices []Choice[T]) *Weighted[T] {
	w, err := NewWeighted(choices)
	if err != nil {
		panic(err)
	}
	return w
}

// Sample draws one value, consuming exactly one uniform from the stream.
func (w *Weighted[T]) Sample(s *Source) T {
	target := s.rng.Float64() * w.total
	for i, c := range w.cum {
		if target < c {
			return w.values[i]
		}
	}
	return w.values[len(w.values)-1]
}

// PickOne draws uniformly from a non-empty slice.
func PickOne[T any](s *Source, items []T) T {
	return items[s.rng.Intn(len(items))]
}
