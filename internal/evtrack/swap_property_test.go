package evtrack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splitmix64 is a small seeded PRNG so this property test is
// reproducible without touching math/rand's global state.
type splitmix64 uint64

func (s *splitmix64) next() uint64 {
	*s += 0x9E3779B97F4A7C15
	z := uint64(*s)
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (s *splitmix64) float32In(lo, hi float32) float32 {
	f := float32(s.next()%1_000_000) / 1_000_000
	return lo + f*(hi-lo)
}

// TestHasteCorrelationStarScoringParityUnderRandomSwaps pushes 200
// pseudo-random in-range events through a running tracker — each one a
// real (oldest, newest) window swap — and checks after every single
// swap that the scorer's incremental UpdateHypothesesScore result
// matches a from-scratch InitializeHypotheses recomputation against the
// same (now-updated) window and template.
func TestHasteCorrelationStarScoringParityUnderRandomSwaps(t *testing.T) {
	t.Parallel()

	tr, err := New(VariantHasteCorrelationStar, 0, 15, 15, 0)
	require.NoError(t, err)

	for _, e := range syntheticStream(EventWindowSize, 15, 15) {
		tr.PushEvent(e.T, e.X, e.Y)
	}
	require.Equal(t, Running, tr.Status())

	scorer := tr.scorer.(*HasteCorrelationStarScorer)

	var rng splitmix64 = 42
	for round := 0; round < 200; round++ {
		et := tr.T() + float64(round) + 1
		ex := tr.X() + rng.float32In(-5, 5)
		ey := tr.Y() + rng.float32In(-5, 5)

		upd := tr.PushEvent(et, ex, ey)
		require.NotEqual(t, OutOfRange, upd, "round %d: synthetic event fell out of range", round)
		if upd == StateEvent {
			// A transition already called InitializeHypotheses itself;
			// nothing left to compare this round.
			continue
		}

		incremental := append([]float32(nil), tr.Scores()...)
		scorer.InitializeHypotheses(tr)
		recomputed := tr.Scores()

		for i := range incremental {
			assert.True(t, almostEqual(incremental[i], recomputed[i], 1e-5),
				"round %d hypothesis %d: incremental %v vs recomputed %v", round, i, incremental[i], recomputed[i])
		}
	}
}

func almostEqual(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}
