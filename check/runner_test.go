package check

import (
	"errors"
	"iter"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/propq/propq/gen"
	"github.com/propq/propq/xrand"
)

// recordingSink captures every callback for inspection.
type recordingSink struct {
	trials    []string
	shrinks   int
	summaries []Summary
}

func (s *recordingSink) Trial(index int, value string) {
	s.trials = append(s.trials, value)
}

func (s *recordingSink) ShrinkStep(shrinks int, best, candidate string) {
	s.shrinks++
}

func (s *recordingSink) Finish(sum Summary) {
	s.summaries = append(s.summaries, sum)
}

// Reference scenario: bounded integers under seed 1873066016 with 20 trials
// sized 1..100 first falsify "v <= 10" at the last trial with value 18, and
// the search minimizes it to 11 after recording 8 failing values.
func TestRunScenarioBoundedInt(t *testing.T) {
	sink := &recordingSink{}
	rep := Run(gen.Int(), Prop(func(v int64) bool { return v <= 10 }), Config{
		Seed:      1873066016,
		MaxTrials: 20,
		StartSize: 1,
		EndSize:   100,
		Sink:      sink,
	})

	require.False(t, rep.Passed)
	require.Equal(t, int64(1873066016), rep.Seed)
	require.Equal(t, 20, rep.Trials)
	require.Equal(t, int64(18), rep.Original)
	require.Equal(t, int64(11), rep.Minimized)
	require.Equal(t, 8, rep.Shrinks)
	require.ErrorIs(t, rep.Err, ErrFalsified)

	require.Len(t, sink.trials, 20)
	require.Len(t, sink.summaries, 1)
	require.False(t, sink.summaries[0].Passed)
	// the original failing value is recorded but is not a shrink step
	require.Equal(t, rep.Shrinks-1, sink.shrinks)
}

// Starting the search from a known failing value exercises the hill climb
// without any randomness: 18 walks down one step per pass and stops at 11,
// having recorded 8 failing values (the original included).
func TestShrinkSearchFromEighteen(t *testing.T) {
	always18 := &gen.Arbitrary[int64]{
		Generate: func(*xrand.Source, int) int64 { return 18 },
		Shrink:   gen.Int().Shrink,
	}
	rep := Run(always18, Prop(func(v int64) bool { return v <= 10 }), Config{
		Seed:      1,
		MaxTrials: 1,
		Sink:      NopSink{},
	})

	require.False(t, rep.Passed)
	require.Equal(t, 1, rep.Trials)
	require.Equal(t, int64(18), rep.Original)
	require.Equal(t, int64(11), rep.Minimized)
	require.Equal(t, 8, rep.Shrinks)
}

// pairSink records the (best, candidate) pair of every shrink step.
type pairSink struct {
	NopSink
	steps [][2]string
}

func (s *pairSink) ShrinkStep(_ int, best, candidate string) {
	s.steps = append(s.steps, [2]string{best, candidate})
}

// The best value reported to a shrink step is the previous best failing
// value, which may be simpler than the basis of the current pass.
func TestShrinkStepReportsPreviousBest(t *testing.T) {
	always18 := &gen.Arbitrary[int64]{
		Generate: func(*xrand.Source, int) int64 { return 18 },
		Shrink:   gen.Int().Shrink,
	}
	sink := &pairSink{}
	c := Checker[int64]{
		Gen:    always18,
		Render: func(v int64) string { return strconv.FormatInt(v, 10) },
	}
	rep := c.Run(Prop(func(v int64) bool { return v == 0 }), Config{
		Seed:      1,
		MaxTrials: 1,
		Sink:      sink,
	})

	require.False(t, rep.Passed)
	require.Equal(t, int64(1), rep.Minimized)
	want := [][2]string{
		{"18", "17"}, {"17", "9"},
		{"9", "8"}, {"8", "4"},
		{"4", "3"}, {"3", "2"},
		{"2", "1"}, {"1", "1"},
	}
	require.Equal(t, want, sink.steps)
}

// The minimized value is locally minimal: a fresh shrink pass over it opens
// with a passing candidate.
func TestMinimizedIsLocallyMinimal(t *testing.T) {
	fails := func(v int64) bool { return v > 10 }
	rep := Run(gen.Int(), Prop(func(v int64) bool { return !fails(v) }), Config{
		Seed:      1873066016,
		MaxTrials: 20,
		EndSize:   100,
		Sink:      NopSink{},
	})

	require.False(t, rep.Passed)
	require.True(t, fails(rep.Minimized))
	for cand := range gen.Int().Shrink(rep.Minimized) {
		require.False(t, fails(cand), "shrink(%d) still has failing candidate %d", rep.Minimized, cand)
		break // only the first candidate of a fresh pass matters
	}
}

func TestRunAllTrialsPass(t *testing.T) {
	sink := &recordingSink{}
	rep := Run(gen.Int(), Prop(func(int64) bool { return true }), Config{
		Seed:      99,
		MaxTrials: 50,
		Sink:      sink,
	})

	require.True(t, rep.Passed)
	require.Equal(t, int64(99), rep.Seed)
	require.Equal(t, 50, rep.Trials)
	require.Zero(t, rep.Shrinks)
	require.NoError(t, rep.Err)
	require.Len(t, sink.trials, 50)
	require.Len(t, sink.summaries, 1)
	require.True(t, sink.summaries[0].Passed)
}

// A panicking property is classified as a failure and shrinks exactly like a
// falsifying one; the recovered payload survives into the report.
func TestRunPanickingProperty(t *testing.T) {
	boom := errors.New("boom")
	rep := Run(gen.Int(), func(v int64) error {
		if v > 10 {
			panic(boom)
		}
		return nil
	}, Config{
		Seed:      1873066016,
		MaxTrials: 20,
		EndSize:   100,
		Sink:      NopSink{},
	})

	require.False(t, rep.Passed)
	require.Equal(t, int64(11), rep.Minimized)
	var pe *PanicError
	require.ErrorAs(t, rep.Err, &pe)
	require.Equal(t, boom, pe.Value)
	require.ErrorIs(t, rep.Err, boom)
}

// The size hint interpolates linearly from StartSize to EndSize and never
// decreases when EndSize >= StartSize.
func TestTrialSizesInterpolate(t *testing.T) {
	sizeEcho := &gen.Arbitrary[int64]{
		Generate: func(_ *xrand.Source, size int) int64 { return int64(size) },
		Shrink:   func(int64) iter.Seq[int64] { return func(func(int64) bool) {} },
	}

	var sizes []int64
	rep := Run(sizeEcho, func(v int64) error {
		sizes = append(sizes, v)
		return nil
	}, Config{
		Seed:      1,
		MaxTrials: 20,
		StartSize: 1,
		EndSize:   100,
		Sink:      NopSink{},
	})

	require.True(t, rep.Passed)
	want := []int64{5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100}
	require.Equal(t, want, sizes)
	for i := 1; i < len(sizes); i++ {
		require.GreaterOrEqual(t, sizes[i], sizes[i-1])
	}
}

func TestSeedEnvOverride(t *testing.T) {
	t.Setenv(SeedEnv, "123")
	rep := Run(gen.Int(), Prop(func(int64) bool { return true }), Config{
		Seed: 42, // env takes precedence
		Sink: NopSink{},
	})
	require.Equal(t, int64(123), rep.Seed)
}

func TestConfigDefaults(t *testing.T) {
	rep := Run(gen.Int(), Prop(func(int64) bool { return true }), Config{
		Seed: 7,
		Sink: NopSink{},
	})
	require.True(t, rep.Passed)
	require.Equal(t, 100, rep.Trials)
}

// Two runs with the same seed report identical results.
func TestRunDeterministic(t *testing.T) {
	prop := Prop(func(v int64) bool { return v <= 25 })
	cfg := Config{Seed: 555, MaxTrials: 40, Sink: NopSink{}}
	a := Run(gen.Int(), prop, cfg)
	b := Run(gen.Int(), prop, cfg)
	require.Equal(t, a, b)
}

func TestCheckerCustomRender(t *testing.T) {
	sink := &recordingSink{}
	c := Checker[int64]{
		Gen:    gen.Int(),
		Render: func(v int64) string { return "#" },
	}
	rep := c.Run(Prop(func(v int64) bool { return v <= 10 }), Config{
		Seed:      1873066016,
		MaxTrials: 20,
		EndSize:   100,
		Sink:      sink,
	})
	require.False(t, rep.Passed)
	require.Equal(t, "#", sink.summaries[0].Minimized)
	require.Equal(t, "#", sink.trials[0])
}
