// Package gen provides the generator/shrinker algebra the engine runs on.
//
// An Arbitrary pairs two capabilities over a value type: drawing a random
// value at a given size hint, and lazily enumerating candidate values that
// are "simpler" than a given one. Primitives (Constant, OneOf, Int, Float,
// Rune) cover the leaf types; combinators (Map, Filter, SliceOf, String,
// Record, Tuple, Sum, Ptr) compose new arbitraries out of existing ones
// without mutating them, so an arbitrary built once can be shared across
// unrelated runs.
//
// Shrink sequences are finite, deterministic, and consume no randomness.
// A shrink sequence never yields the value it was derived from.
package gen

import (
	"iter"

	"github.com/propq/propq/xrand"
)

// Arbitrary is the capability pair {generate, shrink} for values of type T.
// The fields are exported so callers can assemble custom arbitraries when no
// combinator fits.
type Arbitrary[T any] struct {
	// Generate draws a value using the next draws of r. The size hint biases
	// magnitude and length but never affects correctness.
	Generate func(r *xrand.Source, size int) T

	// Shrink enumerates candidates simpler than v, simplest-first under the
	// combinator's own ordering. It must be finite and must not yield v.
	Shrink func(v T) iter.Seq[T]
}

func emptySeq[T any]() iter.Seq[T] {
	return func(func(T) bool) {}
}

// Map builds an arbitrary for B out of one for A. to converts generated
// values; from recovers the underlying A so shrinking can run on it. from
// must be a left inverse of to on generated values; this is not checked.
func Map[A, B any](inner *Arbitrary[A], to func(A) B, from func(B) A) *Arbitrary[B] {
	return &Arbitrary[B]{
		Generate: func(r *xrand.Source, size int) B {
			return to(inner.Generate(r, size))
		},
		Shrink: func(v B) iter.Seq[B] {
			return func(yield func(B) bool) {
				for c := range inner.Shrink(from(v)) {
					if !yield(to(c)) {
						return
					}
				}
			}
		},
	}
}

// Filter restricts an arbitrary to values satisfying keep. Generation draws
// from inner until keep holds, with no retry bound: an always-false predicate
// loops forever, and bounding the search is the caller's job. Shrink
// candidates that fail keep are dropped.
func Filter[T any](inner *Arbitrary[T], keep func(T) bool) *Arbitrary[T] {
	return &Arbitrary[T]{
		Generate: func(r *xrand.Source, size int) T {
			for {
				if v := inner.Generate(r, size); keep(v) {
					return v
				}
			}
		},
		Shrink: func(v T) iter.Seq[T] {
			return func(yield func(T) bool) {
				for c := range inner.Shrink(v) {
					if keep(c) && !yield(c) {
						return
					}
				}
			}
		},
	}
}

// AsAny erases the element type so a typed arbitrary can be used as a Record
// field or Tuple position. Shrinking a value that is not a T panics.
func AsAny[T any](a *Arbitrary[T]) *Arbitrary[any] {
	return Map(a,
		func(v T) any { return v },
		func(v any) T { return v.(T) })
}

// Deferred returns a placeholder arbitrary and its resolve function, for
// recursive generator definitions: build the placeholder first, reference it
// inside the real definition, then resolve exactly once before first use.
// Using the placeholder before resolving panics, as does resolving twice or
// with nil.
func Deferred[T any]() (*Arbitrary[T], func(*Arbitrary[T])) {
	var inner *Arbitrary[T]

	resolve := func(a *Arbitrary[T]) {
		if a == nil {
			panic("gen: Deferred resolved with nil")
		}
		if inner != nil {
			panic("gen: Deferred resolved twice")
		}
		inner = a
	}
	deref := func() *Arbitrary[T] {
		if inner == nil {
			panic("gen: Deferred arbitrary used before resolve")
		}
		return inner
	}

	return &Arbitrary[T]{
		Generate: func(r *xrand.Source, size int) T {
			return deref().Generate(r, size)
		},
		Shrink: func(v T) iter.Seq[T] {
			return deref().Shrink(v)
		},
	}, resolve
}
