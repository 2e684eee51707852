package check

// shrinkSearch hill-climbs from one failing value to a locally minimal one:
// a value whose fresh shrink pass opens with a passing candidate.
//
// Each pass walks the shrink sequence of the current basis in order. Failing
// candidates are recorded as the new best and the walk continues, always
// preferring the earliest (simplest) candidates. The first passing candidate
// after a run of failures ends the pass and restarts from the best failing
// value found; a pass whose very first candidate passes, or whose sequence
// is exhausted, ends the search.
func (c Checker[T]) shrinkSearch(prop Property[T], original T, first outcome, cfg Config) Report[T] {
	maxFail := original // basis whose shrink sequence is being walked
	minFail := original // best failing value seen so far
	shrinks := 1        // the original is the first recorded failure
	lastErr := first.err

search:
	for {
		failCount := 0
		restarted := false
		for cand := range c.Gen.Shrink(maxFail) {
			out := evaluate(prop, cand)
			if out.failed() {
				failCount++
				shrinks++
				prev := minFail
				minFail = cand
				lastErr = out.err
				cfg.Sink.ShrinkStep(shrinks, c.render(prev), c.render(cand))
				continue
			}
			if failCount == 0 {
				// A fresh pass opened with a passing candidate: maxFail
				// (== minFail) is locally minimal.
				break search
			}
			maxFail = minFail
			restarted = true
			break
		}
		if !restarted {
			// Every candidate of maxFail failed; minFail is the last and
			// simplest of them.
			break
		}
	}

	return Report[T]{
		Passed:    false,
		Shrinks:   shrinks,
		Original:  original,
		Minimized: minFail,
		Err:       lastErr,
	}
}
