package check

import (
	"errors"
	"log/slog"
	"testing"
)

// Sink receives run progress. The engine only calls these methods; it never
// depends on what they do.
type Sink interface {
	// Trial is called once per drawn value, before the property runs.
	Trial(index int, value string)

	// ShrinkStep is called each time the shrink search records a new best
	// failing value. best is the previous best, which candidate replaces.
	ShrinkStep(shrinks int, best, candidate string)

	// Finish is called exactly once with the rendered final report.
	Finish(s Summary)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Trial(int, string) {}

func (NopSink) ShrinkStep(int, string, string) {}

func (NopSink) Finish(Summary) {}

// LogSink reports through slog. It is the default sink: a failing run is
// logged, never raised, so embedding a run in a larger program cannot take
// the host down. Test suites that want hard failures use TestSink.
type LogSink struct {
	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// Verbose additionally logs every trial and shrink step at debug level.
	Verbose bool
}

func (s LogSink) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s LogSink) Trial(index int, value string) {
	if s.Verbose {
		s.logger().Debug("trial", "index", index, "value", value)
	}
}

func (s LogSink) ShrinkStep(shrinks int, best, candidate string) {
	if s.Verbose {
		s.logger().Debug("shrink_step", "failures", shrinks, "best", best, "candidate", candidate)
	}
}

func (s LogSink) Finish(sum Summary) {
	if sum.Passed {
		s.logger().Info("property_passed", "seed", sum.Seed, "trials", sum.Trials)
		return
	}
	s.logger().Error("property_failed",
		"seed", sum.Seed,
		"trials", sum.Trials,
		"shrink_failures", sum.Shrinks,
		"original", sum.Original,
		"minimized", sum.Minimized,
		"err", sum.Err,
	)
}

// TestSink fails the surrounding test when the run falsifies the property,
// logging the seed so the failure can be replayed with SeedEnv.
func TestSink(tb testing.TB) Sink {
	return testSink{tb}
}

type testSink struct {
	tb testing.TB
}

func (testSink) Trial(int, string) {}

func (testSink) ShrinkStep(int, string, string) {}

func (s testSink) Finish(sum Summary) {
	s.tb.Helper()
	if sum.Passed {
		return
	}
	s.tb.Errorf("property failed on trial %d: minimized %s from %s after %d shrink failures (seed=%d, use %s=%d to reproduce)",
		sum.Trials, sum.Minimized, sum.Original, sum.Shrinks, sum.Seed, SeedEnv, sum.Seed)
	if sum.Err != nil && !errors.Is(sum.Err, ErrFalsified) {
		s.tb.Errorf("property error: %v", sum.Err)
	}
}
