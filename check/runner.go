// Package check drives property runs: it draws values from a gen.Arbitrary
// at sizes that grow across the run, evaluates the caller's property on
// each, and on the first failure searches the arbitrary's shrink sequences
// for a locally minimal counterexample.
//
// Runs are sequential and single-threaded. One run owns one random source;
// shrinking consumes no randomness at all, so a failing run minimizes the
// same way every time.
package check

import (
	"math"

	"github.com/propq/propq/gen"
	"github.com/propq/propq/show"
	"github.com/propq/propq/xrand"
)

// Checker bundles an arbitrary with the renderer used for report output.
type Checker[T any] struct {
	Gen *gen.Arbitrary[T]

	// Render defaults to show.Show. It is used only for reports and sink
	// callbacks, never for decisions inside the run.
	Render func(v T) string
}

func (c Checker[T]) render(v T) string {
	if c.Render != nil {
		return c.Render(v)
	}
	return show.Show(v)
}

// Run checks prop against values drawn from arb under cfg, rendering values
// with the default renderer.
func Run[T any](arb *gen.Arbitrary[T], prop Property[T], cfg Config) Report[T] {
	return Checker[T]{Gen: arb}.Run(prop, cfg)
}

// Run executes up to MaxTrials trials and returns the final report. The
// first falsified or panicked trial enters the shrink search and ends the
// run; the report then carries both the original and the minimized failing
// value.
func (c Checker[T]) Run(prop Property[T], cfg Config) Report[T] {
	cfg = cfg.withDefaults()
	seed := effectiveSeed(cfg)
	src := xrand.New(seed)

	for i := 0; i < cfg.MaxTrials; i++ {
		v := c.Gen.Generate(src, trialSize(i, cfg))
		cfg.Sink.Trial(i, c.render(v))

		out := evaluate(prop, v)
		if !out.failed() {
			continue
		}

		rep := c.shrinkSearch(prop, v, out, cfg)
		rep.Seed = seed
		rep.Trials = i + 1
		cfg.Sink.Finish(rep.summarize(c.render))
		return rep
	}

	rep := Report[T]{Passed: true, Seed: seed, Trials: cfg.MaxTrials}
	cfg.Sink.Finish(rep.summarize(c.render))
	return rep
}

// trialSize interpolates the size hint linearly from StartSize to EndSize
// over the run, so early trials draw small values and later ones large.
func trialSize(i int, cfg Config) int {
	span := float64(cfg.EndSize - cfg.StartSize)
	frac := float64(i+1) / float64(cfg.MaxTrials)
	return int(math.Floor(float64(cfg.StartSize) + span*frac))
}
