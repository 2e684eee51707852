// Package xrand provides the deterministic pseudo-random source the engine
// draws from. It is a 128-bit xorshift generator (Marsaglia's xor128): four
// 32-bit state words, one word of output per step.
//
// Reproducibility is a hard contract, not an implementation detail: two
// sources built with the same seed produce the same infinite sequence, which
// is what makes "re-run with the logged seed" reproduce a failing trial run
// bit for bit. Do not change the recurrence or the seeding constants.
package xrand

import (
	"fmt"
	"time"
)

// The three companion constants. The seed replaces the first state word; the
// rest are fixed so that a zero seed still yields a non-zero state.
const (
	word1 = 1901068
	word2 = 521288629
	word3 = 88675123
)

// Source is a seeded xorshift128 generator. It is not safe for concurrent
// use; each run owns its own Source.
type Source struct {
	x, y, z, w uint32
	seed       int64
}

// New creates a Source from the given seed. Only the low 32 bits of the seed
// enter the state.
func New(seed int64) *Source {
	return &Source{
		x:    uint32(seed),
		y:    word1,
		z:    word2,
		w:    word3,
		seed: seed,
	}
}

// NewFromTime creates a Source seeded from the wall clock. Runs that need to
// be reproduced should log the seed and use New instead.
func NewFromTime() *Source {
	return New(time.Now().UnixNano())
}

// Seed returns the seed this source was built with, for reporting.
func (s *Source) Seed() int64 { return s.seed }

// Next32 advances the generator and returns the next 32-bit word.
func (s *Source) Next32() uint32 {
	t := s.x ^ (s.x << 11)
	s.x, s.y, s.z = s.y, s.z, s.w
	s.w = s.w ^ (s.w >> 19) ^ (t ^ (t >> 8))
	return s.w
}

// Unit returns a float64 in [0, 1).
func (s *Source) Unit() float64 {
	return float64(s.Next32()) / (1 << 32)
}

// Range returns a float64 in [lo, hi) where lo and hi are the smaller and
// larger of a and b. The bounds may be passed in either order but must be
// distinct; equal bounds are a usage error.
func (s *Source) Range(a, b float64) float64 {
	if a == b {
		panic(fmt.Sprintf("xrand: Range bounds must differ, got %v", a))
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + s.Unit()*(hi-lo)
}
