package gen

import (
	"fmt"
	"iter"
	"math"

	"github.com/propq/propq/xrand"
)

// Constant always generates v and never shrinks.
func Constant[T any](v T) *Arbitrary[T] {
	return &Arbitrary[T]{
		Generate: func(*xrand.Source, int) T { return v },
		Shrink:   func(T) iter.Seq[T] { return emptySeq[T]() },
	}
}

// OneOf generates a uniform pick from values. Shrinking walks backward from
// the picked element toward the first-listed one, so order the values
// simplest-first. Panics if values is empty.
func OneOf[T comparable](values ...T) *Arbitrary[T] {
	if len(values) == 0 {
		panic("gen: OneOf called with no values")
	}
	vs := append([]T(nil), values...)
	return &Arbitrary[T]{
		Generate: func(r *xrand.Source, _ int) T {
			return vs[int(r.Unit()*float64(len(vs)))]
		},
		Shrink: func(v T) iter.Seq[T] {
			return func(yield func(T) bool) {
				idx := -1
				for i, x := range vs {
					if x == v {
						idx = i
						break
					}
				}
				for i := idx - 1; i >= 0; i-- {
					if !yield(vs[i]) {
						return
					}
				}
			}
		},
	}
}

// Int generates integers in [-size, size), truncated toward zero. Shrinking
// steps toward zero: one closer, half, then zero itself.
func Int() *Arbitrary[int64] {
	return &Arbitrary[int64]{
		Generate: func(r *xrand.Source, size int) int64 {
			if size <= 0 {
				return 0
			}
			s := float64(size)
			return int64(math.Trunc(r.Range(-s, s)))
		},
		Shrink: shrinkInt,
	}
}

func shrinkInt(v int64) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		if v == 0 {
			return
		}
		step := v - 1
		if v < 0 {
			step = v + 1
		}
		if !yield(step) {
			return
		}
		if !yield(v / 2) {
			return
		}
		yield(0)
	}
}

// denomCap bounds the numerator and denominator of generated rationals.
const denomCap = 9_999_999_999_999

// Float generates pseudo-rational reals: a truncated numerator in
// [-size*denomCap, size*denomCap) over a truncated denominator in
// [1, denomCap). Shrinking flips a negative value positive first, then
// shrinks the value truncated toward zero like an integer.
func Float() *Arbitrary[float64] {
	return &Arbitrary[float64]{
		Generate: func(r *xrand.Source, size int) float64 {
			if size <= 0 {
				return 0
			}
			s := float64(size)
			num := math.Trunc(r.Range(-s*denomCap, s*denomCap))
			den := math.Trunc(r.Range(1, denomCap))
			return num / den
		},
		Shrink: func(v float64) iter.Seq[float64] {
			return func(yield func(float64) bool) {
				if v < 0 && !yield(-v) {
					return
				}
				for c := range shrinkInt(int64(math.Trunc(v))) {
					if !yield(float64(c)) {
						return
					}
				}
			}
		},
	}
}

// Rune shrinking orders code points by class, simplest class first; ties
// within a class break by numeric value. A shrink candidate must be strictly
// simpler than the value it replaces.
const (
	classLower = iota
	classUpper
	classDigit
	classASCII
	classLatin1
	classBeyond
)

func runeClass(c rune) int {
	switch {
	case c >= 'a' && c <= 'z':
		return classLower
	case c >= 'A' && c <= 'Z':
		return classUpper
	case c >= '0' && c <= '9':
		return classDigit
	case c <= 0x7F:
		return classASCII
	case c <= 0xFF:
		return classLatin1
	default:
		return classBeyond
	}
}

func simplerRune(c, v rune) bool {
	cc, vc := runeClass(c), runeClass(v)
	if cc != vc {
		return cc < vc
	}
	return c < v
}

// Rune generates code points in [min, max], capped at Latin-1: half the time
// the pick is confined to the ASCII part of the range, otherwise it spans the
// whole Latin-1 part. Panics unless 0 <= min <= max and min is within
// Latin-1.
func Rune(min, max rune) *Arbitrary[rune] {
	if min < 0 || max < min {
		panic(fmt.Sprintf("gen: Rune requires 0 <= min <= max, got [%d, %d]", min, max))
	}
	if min > 0xFF {
		panic(fmt.Sprintf("gen: Rune minimum %d is beyond Latin-1", min))
	}
	asciiHi := max
	if asciiHi > 0x7F {
		asciiHi = 0x7F
	}
	latinHi := max
	if latinHi > 0xFF {
		latinHi = 0xFF
	}
	return &Arbitrary[rune]{
		Generate: func(r *xrand.Source, _ int) rune {
			hi := latinHi
			if r.Unit() < 0.5 && asciiHi >= min {
				hi = asciiHi
			}
			return rune(math.Trunc(r.Range(float64(min), float64(hi)+1)))
		},
		Shrink: shrinkRune,
	}
}

func shrinkRune(v rune) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, c := range [...]rune{v - 1, v / 2, ' ', '\n', '0', 'a'} {
			if c < 0 || c == v || !simplerRune(c, v) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}
