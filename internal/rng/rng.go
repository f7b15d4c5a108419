// Package rng provides the seeded pseudo-random generator that every piece
// of synthetic data generation draws from. It implements mulberry32 over a
// 32-bit state so that a given seed always produces the same sequence,
// matching the reference sequences used by the demo frontend.
package rng

import "math"

// RNG is a deterministic mulberry32 generator. It is not safe for concurrent
// use; generation code owns exactly one instance and advances it in a fixed
// call order.
type RNG struct {
	state uint32
}

// New returns a generator seeded with the given 32-bit seed.
func New(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Float64 returns the next value in [0, 1) and advances the state.
func (r *RNG) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = imul(t^(t>>15), t|1)
	t ^= t + imul(t^(t>>7), t|61)
	return float64(t^(t>>14)) / 4294967296
}

// imul is 32-bit integer multiplication with wraparound, the semantics the
// mulberry32 mixing rounds are defined over.
func imul(a, b uint32) uint32 {
	return uint32(uint64(a) * uint64(b))
}

// IntN returns a uniform integer in [min, max] inclusive.
func (r *RNG) IntN(min, max int) int {
	return int(math.Floor(r.Float64()*float64(max-min+1))) + min
}

// FloatN returns a uniform float in [min, max).
func (r *RNG) FloatN(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Choice returns a random element of items. items must be non-empty.
func Choice[T any](r *RNG, items []T) T {
	return items[int(r.Float64()*float64(len(items)))]
}

// Sample returns n unique random elements of items (all of them if n exceeds
// the length), drawn via a Fisher-Yates shuffle of a copy.
func Sample[T any](r *RNG, items []T, n int) []T {
	shuffled := Shuffle(r, items)
	if n > len(items) {
		n = len(items)
	}
	return shuffled[:n]
}

// Normal returns a normally distributed value via Box-Muller. Two fresh
// uniform draws are consumed per call; a zero first draw is replaced with a
// small epsilon to keep the log finite.
func (r *RNG) Normal(mean, std float64) float64 {
	u1 := r.Float64()
	if u1 == 0 {
		u1 = 0.0001
	}
	u2 := r.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*std
}

// JitterPercent scales value by a uniform factor in [1-pct/100, 1+pct/100).
func (r *RNG) JitterPercent(value, pct float64) float64 {
	return value * (1 + (r.Float64()-0.5)*2*(pct/100))
}

// JitterAmount is JitterPercent rounded to cents.
func (r *RNG) JitterAmount(value, pct float64) float64 {
	return math.Round(r.JitterPercent(value, pct)*100) / 100
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Float64() < p
}

// Shuffle returns a Fisher-Yates shuffled copy of items. The input is never
// modified.
func Shuffle[T any](r *RNG, items []T) []T {
	result := make([]T, len(items))
	copy(result, items)
	for i := len(result) - 1; i > 0; i-- {
		j := int(r.Float64() * float64(i+1))
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// WeightedChoice returns an element of items with probability proportional to
// its weight. items and weights must be the same non-zero length.
func WeightedChoice[T any](r *RNG, items []T, weights []float64) T {
	var total float64
	for _, w := range weights {
		total += w
	}
	draw := r.Float64() * total
	for i, w := range weights {
		draw -= w
		if draw <= 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}

// HashString is the rolling polynomial hash used to fold a time-bucket
// string into a seed: h = (h<<5) - h + c over int32 arithmetic, sign
// stripped. It matches the frontend's implementation bit for bit.
func HashString(s string) uint32 {
	var h int32
	for _, c := range s {
		h = (h << 5) - h + int32(c)
	}
	return absInt32(h)
}

// HashInts folds a sequence of integers into a seed with the same rolling
// polynomial. Used to derive reproducible forecast noise from historical
// data shape.
func HashInts(nums ...int) uint32 {
	var h int32
	for _, n := range nums {
		h = (h << 5) - h + int32(n)
	}
	return absInt32(h)
}

func absInt32(h int32) uint32 {
	if h < 0 {
		// -MinInt32 does not fit in int32; widen first.
		return uint32(-int64(h))
	}
	return uint32(h)
}
