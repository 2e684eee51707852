package check

import (
	"errors"
	"fmt"
)

// Status classifies a single predicate evaluation.
type Status int

const (
	// Passed means the property held for the value.
	Passed Status = iota
	// Falsified means the property returned a non-nil error.
	Falsified
	// Panicked means the property panicked; the payload is captured.
	Panicked
)

// Property evaluates one generated value. Return nil to pass the trial and a
// non-nil error to falsify it; a panic is captured and classified as a
// failure too, so assertion-style properties work unchanged.
type Property[T any] func(v T) error

// ErrFalsified is the error a Prop-adapted predicate reports on false.
var ErrFalsified = errors.New("check: property returned false")

// Prop adapts a plain boolean predicate to a Property.
func Prop[T any](pred func(v T) bool) Property[T] {
	return func(v T) error {
		if !pred(v) {
			return ErrFalsified
		}
		return nil
	}
}

// PanicError carries the payload recovered from a panicking property.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("property panicked: %v", e.Value)
}

// Unwrap exposes the payload when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

type outcome struct {
	status Status
	err    error
}

func (o outcome) failed() bool { return o.status != Passed }

// evaluate runs the property on one value and classifies the result. Panics
// are recovered here and nowhere else; the trial loop and shrink search see
// only classified outcomes.
func evaluate[T any](prop Property[T], v T) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = outcome{status: Panicked, err: &PanicError{Value: r}}
		}
	}()
	if err := prop(v); err != nil {
		return outcome{status: Falsified, err: err}
	}
	return outcome{status: Passed}
}
