package check

// Report is the terminal artifact of a run. It is complete: nothing about
// the original or minimized failing value is elided.
type Report[T any] struct {
	// Passed is true when every trial passed.
	Passed bool

	// Seed is the seed the run's random source was built with; re-running
	// with it reproduces the same trial sequence.
	Seed int64

	// Trials is the number of trials executed. On failure this is the
	// failing trial's index plus one.
	Trials int

	// Shrinks counts every failing value recorded during shrinking, the
	// original failing value included. Zero on success.
	Shrinks int

	// Original and Minimized are the first failing value and the locally
	// minimal counterexample the shrink search converged to. Zero values on
	// success.
	Original  T
	Minimized T

	// Err is the falsification or panic error from the minimized value's
	// evaluation (or the original's, if nothing shrank). Nil on success.
	Err error
}

// Summary is the rendered, type-erased form of a Report handed to sinks.
type Summary struct {
	Passed    bool
	Seed      int64
	Trials    int
	Shrinks   int
	Original  string
	Minimized string
	Err       error
}

func (r Report[T]) summarize(render func(T) string) Summary {
	s := Summary{
		Passed:  r.Passed,
		Seed:    r.Seed,
		Trials:  r.Trials,
		Shrinks: r.Shrinks,
		Err:     r.Err,
	}
	if !r.Passed {
		s.Original = render(r.Original)
		s.Minimized = render(r.Minimized)
	}
	return s
}
