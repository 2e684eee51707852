package gen

import (
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"

	"github.com/propq/propq/xrand"
)

// SliceOf generates slices of elem values. The length is uniform in
// [minLen, size], never below minLen even when size is smaller.
//
// Shrinking mixes two kinds of candidates: prefixes of the slice with the
// length halved step by step down to minLen, and, at each visited length,
// copies with a single element replaced by one of that element's own
// shrinks. A slice already at or below minLen does not shrink.
func SliceOf[T any](elem *Arbitrary[T], minLen int) *Arbitrary[[]T] {
	if minLen < 0 {
		panic("gen: SliceOf minLen must be >= 0")
	}
	return &Arbitrary[[]T]{
		Generate: func(r *xrand.Source, size int) []T {
			hi := size
			if hi < minLen {
				hi = minLen
			}
			n := int(math.Trunc(r.Range(float64(minLen), float64(hi)+1)))
			out := make([]T, n)
			for i := range out {
				out[i] = elem.Generate(r, size)
			}
			return out
		},
		Shrink: func(xs []T) iter.Seq[[]T] {
			return func(yield func([]T) bool) {
				n := len(xs)
				if n <= minLen {
					return
				}
				for l := n; ; {
					if l < n {
						if !yield(slices.Clone(xs[:l])) {
							return
						}
					}
					for i := 0; i < l; i++ {
						for c := range elem.Shrink(xs[i]) {
							cand := slices.Clone(xs[:l])
							cand[i] = c
							if !yield(cand) {
								return
							}
						}
					}
					if l <= minLen {
						return
					}
					l /= 2
					if l < minLen {
						l = minLen
					}
				}
			}
		},
	}
}

// String generates Latin-1 text of any length. Equivalent to StringOf over
// the full Rune range with no minimum length.
func String() *Arbitrary[string] {
	return StringOf(Rune(0, 0xFF), 0)
}

// StringOf generates strings built from runes, at least minLen long.
// Shrinking decodes to the code-point sequence, shrinks it like a slice, and
// re-encodes.
func StringOf(runes *Arbitrary[rune], minLen int) *Arbitrary[string] {
	return Map(SliceOf(runes, minLen),
		func(rs []rune) string { return string(rs) },
		func(s string) []rune { return []rune(s) })
}

// Record generates map-shaped records with one arbitrary per field. Fields
// are drawn and shrunk in sorted field-name order so identically seeded runs
// consume the random stream identically. Each shrink candidate replaces
// exactly one field with one of that field's own shrinks.
func Record(fields map[string]*Arbitrary[any]) *Arbitrary[map[string]any] {
	names := slices.Sorted(maps.Keys(fields))
	arbs := make([]*Arbitrary[any], len(names))
	for i, name := range names {
		arbs[i] = fields[name]
	}
	return &Arbitrary[map[string]any]{
		Generate: func(r *xrand.Source, size int) map[string]any {
			out := make(map[string]any, len(names))
			for i, name := range names {
				out[name] = arbs[i].Generate(r, size)
			}
			return out
		},
		Shrink: func(v map[string]any) iter.Seq[map[string]any] {
			return func(yield func(map[string]any) bool) {
				for i, name := range names {
					for c := range arbs[i].Shrink(v[name]) {
						cand := maps.Clone(v)
						cand[name] = c
						if !yield(cand) {
							return
						}
					}
				}
			}
		},
	}
}

// Tuple generates fixed-arity heterogeneous sequences, one arbitrary per
// position. Each shrink candidate replaces exactly one position; a value
// whose arity differs from the combinator's yields no candidates.
func Tuple(items ...*Arbitrary[any]) *Arbitrary[[]any] {
	arbs := slices.Clone(items)
	return &Arbitrary[[]any]{
		Generate: func(r *xrand.Source, size int) []any {
			out := make([]any, len(arbs))
			for i, a := range arbs {
				out[i] = a.Generate(r, size)
			}
			return out
		},
		Shrink: func(v []any) iter.Seq[[]any] {
			return func(yield func([]any) bool) {
				if len(v) != len(arbs) {
					return
				}
				for i, a := range arbs {
					for c := range a.Shrink(v[i]) {
						cand := slices.Clone(v)
						cand[i] = c
						if !yield(cand) {
							return
						}
					}
				}
			}
		},
	}
}

// Branch is one alternative of a Sum: an arbitrary plus the predicate that
// recognizes values it produced. The branches of a Sum must partition the
// value space: every value matches exactly one branch.
type Branch[T any] struct {
	Arb   *Arbitrary[T]
	Match func(v T) bool
}

// Sum generates from a uniformly picked branch. Shrinking delegates to the
// branch whose predicate matches the value; overlapping branches go
// undetected (the first match wins), but a value no branch recognizes panics.
// Panics if branches is empty.
func Sum[T any](branches ...Branch[T]) *Arbitrary[T] {
	if len(branches) == 0 {
		panic("gen: Sum called with no branches")
	}
	bs := slices.Clone(branches)
	return &Arbitrary[T]{
		Generate: func(r *xrand.Source, size int) T {
			return bs[int(r.Unit()*float64(len(bs)))].Arb.Generate(r, size)
		},
		Shrink: func(v T) iter.Seq[T] {
			for _, b := range bs {
				if b.Match(v) {
					return b.Arb.Shrink(v)
				}
			}
			panic(fmt.Sprintf("gen: no Sum branch matches value %v", v))
		},
	}
}

// Ptr generates nil half the time and a pointer to an inner value otherwise.
// A present value shrinks through the inner arbitrary only; shrinking never
// jumps from present to nil.
func Ptr[T any](inner *Arbitrary[T]) *Arbitrary[*T] {
	present := Map(inner,
		func(v T) *T { return &v },
		func(p *T) T { return *p })
	return Sum(
		Branch[*T]{
			Arb:   Constant[*T](nil),
			Match: func(p *T) bool { return p == nil },
		},
		Branch[*T]{
			Arb:   present,
			Match: func(p *T) bool { return p != nil },
		},
	)
}
