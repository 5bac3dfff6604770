// Package benchmark times tracker updates by event kind and reports
// latency percentiles, the way the rest of this codebase reports
// latency for its other pipelines.
package benchmark

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Kind distinguishes the two update costs worth measuring separately: a
// regular hypothesis-rescoring update and the heavier state-transition
// update that also re-centres the hypothesis set and re-scores it from
// scratch.
type Kind int

const (
	Regular Kind = iota
	State
)

// Timing accumulates per-kind update durations and reports percentile
// statistics on demand. The zero value is ready to use. Not safe for
// concurrent writes from multiple goroutines without external locking.
type Timing struct {
	samples [2][]float64 // nanoseconds, indexed by Kind
}

// Record appends one observed duration under the given kind.
func (t *Timing) Record(kind Kind, d time.Duration) {
	t.samples[kind] = append(t.samples[kind], float64(d.Nanoseconds()))
}

// Stopwatch returns a function that, when called, records the elapsed
// time since Stopwatch was called as a sample of the given kind.
func (t *Timing) Stopwatch(kind Kind) func() {
	start := time.Now()
	return func() { t.Record(kind, time.Since(start)) }
}

// Count returns the number of samples recorded under kind.
func (t *Timing) Count(kind Kind) int { return len(t.samples[kind]) }

// Merge appends another Timing's samples into this one, so that
// per-worker accumulators can be combined into an overall report.
func (t *Timing) Merge(other *Timing) {
	t.samples[Regular] = append(t.samples[Regular], other.samples[Regular]...)
	t.samples[State] = append(t.samples[State], other.samples[State]...)
}

// Percentiles reports the p50/p85/p98 latency in nanoseconds for the
// given kind, using gonum's empirical quantile estimator. Returns all
// zeros if no samples were recorded.
func (t *Timing) Percentiles(kind Kind) (p50, p85, p98 float64) {
	raw := t.samples[kind]
	if len(raw) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(raw))
	copy(sorted, raw)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p85 = stat.Quantile(0.85, stat.Empirical, sorted, nil)
	p98 = stat.Quantile(0.98, stat.Empirical, sorted, nil)
	return
}

// Mean returns the arithmetic mean latency in nanoseconds for kind, or
// zero if no samples were recorded.
func (t *Timing) Mean(kind Kind) float64 {
	raw := t.samples[kind]
	if len(raw) == 0 {
		return 0
	}
	return stat.Mean(raw, nil)
}

// Report renders a human-readable summary across both kinds, in the
// spirit of a simple latency dashboard: share of updates in each kind
// plus their mean and tail latencies.
func (t *Timing) Report() string {
	total := t.Count(Regular) + t.Count(State)
	pct := func(kind Kind) float64 {
		if total == 0 {
			return 0
		}
		return 100 * float64(t.Count(kind)) / float64(total)
	}

	regP50, regP85, regP98 := t.Percentiles(Regular)
	stateP50, stateP85, stateP98 := t.Percentiles(State)

	return fmt.Sprintf(
		"Benchmark results:\n"+
			"Regular events: %5.1f%%  mean %8.0f ns  p50 %8.0f  p85 %8.0f  p98 %8.0f\n"+
			"State events:   %5.1f%%  mean %8.0f ns  p50 %8.0f  p85 %8.0f  p98 %8.0f\n"+
			"Total updates:  %d\n",
		pct(Regular), t.Mean(Regular), regP50, regP85, regP98,
		pct(State), t.Mean(State), stateP50, stateP85, stateP98,
		total,
	)
}
