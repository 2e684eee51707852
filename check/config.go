package check

import (
	"os"
	"strconv"
	"time"
)

// SeedEnv overrides the seed for every run when set, so a logged failure can
// be replayed without touching code.
const SeedEnv = "PROPQ_SEED"

// Config controls a single run. The zero value of each field means its
// default; a Config is not modified by the run.
type Config struct {
	// Seed for the run's random source. 0 means: take SeedEnv if set,
	// otherwise derive from the wall clock. Always set a seed (or SeedEnv)
	// in regression suites.
	Seed int64

	// MaxTrials is the number of values drawn before the property counts as
	// passed. Default: 100.
	MaxTrials int

	// StartSize and EndSize bound the size hint, interpolated linearly
	// across the run. Defaults: 1 and 100.
	StartSize int
	EndSize   int

	// Sink receives progress and the final report. Default: a LogSink on
	// slog's default logger.
	Sink Sink
}

func (c Config) withDefaults() Config {
	if c.MaxTrials <= 0 {
		c.MaxTrials = 100
	}
	if c.StartSize <= 0 {
		c.StartSize = 1
	}
	if c.EndSize <= 0 {
		c.EndSize = 100
	}
	if c.Sink == nil {
		c.Sink = LogSink{}
	}
	return c
}

// effectiveSeed resolves the seed: environment override first, then the
// configured seed, then the wall clock.
func effectiveSeed(c Config) int64 {
	if env := os.Getenv(SeedEnv); env != "" {
		if seed, err := strconv.ParseInt(env, 10, 64); err == nil {
			return seed
		}
	}
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
