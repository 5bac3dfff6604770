package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/evtrack.report/internal/benchmark"
	"github.com/banshee-data/evtrack.report/internal/dataset"
	"github.com/banshee-data/evtrack.report/internal/evtrack"
)

// syntheticEvents builds a stream of in-range events around (cx, cy),
// starting at t=0, one per unit of time. Every event sits on the same
// point, so once initialised the null hypothesis keeps winning and the
// tracker only reports regular events.
func syntheticEvents(n int, cx, cy float32) []dataset.Event {
	events := make([]dataset.Event, n)
	for i := 0; i < n; i++ {
		events[i] = dataset.Event{T: float64(i), X: cx, Y: cy}
	}
	return events
}

func TestRunInitialisesAndRecordsTrail(t *testing.T) {
	t.Parallel()

	cx, cy := float32(50), float32(50)
	events := syntheticEvents(evtrack.EventWindowSize*3, cx, cy)
	seed := dataset.Seed{ID: "seed-1", T: 0, X: float64(cx), Y: float64(cy)}

	cfg := Config{TrackerType: evtrack.VariantCorrelation, Policy: Regular, ImageWidth: 200, ImageHeight: 200}
	timing := &benchmark.Timing{}

	result, err := Run(cfg, seed, events, timing)
	require.NoError(t, err)
	assert.True(t, result.Initialised)
	assert.Equal(t, "seed-1", result.SeedID)
	require.NotEmpty(t, result.Trail)
	assert.Greater(t, timing.Count(benchmark.Regular)+timing.Count(benchmark.State), 0)
}

func TestOutOfFrameDetectsEdgeProximity(t *testing.T) {
	t.Parallel()

	margin := float32(evtrack.PatchHalf)
	tr, err := evtrack.New(evtrack.VariantCorrelation, 0, 10, 10, 0)
	require.NoError(t, err)

	assert.True(t, outOfFrame(tr, margin, 20, 20), "tracker centred at (10,10) is within margin of a 20x20 frame's edges")

	trCentre, err := evtrack.New(evtrack.VariantCorrelation, 0, 100, 100, 0)
	require.NoError(t, err)
	assert.False(t, outOfFrame(trCentre, margin, 200, 200), "tracker centred in a large frame should not be flagged")
}

func TestRunFailsInitialisationReturnsUninitialisedResult(t *testing.T) {
	t.Parallel()

	// Too few events for the tracker to ever reach a state transition.
	events := syntheticEvents(5, 50, 50)
	seed := dataset.Seed{ID: "seed-short", T: 0, X: 50, Y: 50}

	cfg := Config{TrackerType: evtrack.VariantCorrelation, Policy: Regular, ImageWidth: 200, ImageHeight: 200}
	timing := &benchmark.Timing{}

	result, err := Run(cfg, seed, events, timing)
	require.NoError(t, err)
	assert.False(t, result.Initialised)
	assert.Empty(t, result.Trail)
}

func TestRunAllProducesOneResultPerSeedInOrder(t *testing.T) {
	t.Parallel()

	events := syntheticEvents(evtrack.EventWindowSize*3, 50, 50)
	seeds := []dataset.Seed{
		{ID: "a", T: 0, X: 50, Y: 50},
		{ID: "b", T: 0, X: 50, Y: 50},
		{ID: "c", T: 0, X: 50, Y: 50},
	}

	cfg := Config{TrackerType: evtrack.VariantCorrelation, Policy: Regular, ImageWidth: 200, ImageHeight: 200}
	results, timing := RunAll(cfg, seeds, events)

	require.Len(t, results, 3)
	for i, s := range seeds {
		assert.Equal(t, s.ID, results[i].SeedID)
		assert.True(t, results[i].Initialised)
	}
	assert.Greater(t, timing.Count(benchmark.Regular)+timing.Count(benchmark.State), 0)
}

func TestRunAllWithCenteredPolicy(t *testing.T) {
	t.Parallel()

	half := evtrack.EventWindowSize / 2
	cx, cy := float32(50), float32(50)
	var events []dataset.Event
	for i := 0; i < half; i++ {
		events = append(events, dataset.Event{T: float64(i), X: cx, Y: cy})
	}
	seedTime := float64(half)
	for i := 0; i < evtrack.EventWindowSize*2; i++ {
		events = append(events, dataset.Event{T: seedTime + float64(i), X: cx, Y: cy})
	}

	seeds := []dataset.Seed{{ID: "centered-seed", T: seedTime, X: float64(cx), Y: float64(cy)}}
	cfg := Config{TrackerType: evtrack.VariantCorrelation, Policy: Centered, ImageWidth: 200, ImageHeight: 200}

	results, _ := RunAll(cfg, seeds, events)
	require.Len(t, results, 1)
	assert.True(t, results[0].Initialised)
}
