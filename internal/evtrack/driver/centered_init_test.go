package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/evtrack.report/internal/dataset"
	"github.com/banshee-data/evtrack.report/internal/evtrack"
)

// TestInitializeCenteredRetainsFirstEvent pins the fix for the reference
// implementation's off-by-one: its backward walk decrements before
// re-checking against the start of the stream, so the very first event
// is never tested for inclusion in the pre-seed half of the window. This
// fixture places the seed so that exactly EventWindowSize/2 in-range
// events precede it, with the very first event in the stream among
// them; initialization must succeed and must have consumed that first
// event.
func TestInitializeCenteredRetainsFirstEvent(t *testing.T) {
	t.Parallel()

	half := evtrack.EventWindowSize / 2
	cx, cy := float32(15), float32(15)

	var events []dataset.Event
	// half in-range events strictly before the seed time, index 0 included.
	for i := 0; i < half; i++ {
		events = append(events, dataset.Event{T: float64(i), X: cx, Y: cy})
	}
	seedTime := float64(half)
	// enough forward events to drive the tracker to StateEvent.
	for i := 0; i < evtrack.EventWindowSize+10; i++ {
		events = append(events, dataset.Event{T: seedTime + float64(i), X: cx, Y: cy})
	}

	tr, err := evtrack.New(evtrack.VariantCorrelation, seedTime, cx, cy, 0)
	require.NoError(t, err)

	startIdx, err := initializeCentered(tr, events)
	require.NoError(t, err)
	assert.Equal(t, evtrack.Running, tr.Status())
	assert.Equal(t, evtrack.EventWindowSize, tr.EventCounter(),
		"a dropped first event would leave the tracker one short of a full window")
	assert.GreaterOrEqual(t, startIdx, half)
}

// TestInitializeCenteredFailsWithoutEnoughPastEvents exercises the error
// path: fewer than EventWindowSize/2 in-range events precede the seed.
func TestInitializeCenteredFailsWithoutEnoughPastEvents(t *testing.T) {
	t.Parallel()

	cx, cy := float32(15), float32(15)
	var events []dataset.Event
	for i := 0; i < 3; i++ {
		events = append(events, dataset.Event{T: float64(i), X: cx, Y: cy})
	}
	events = append(events, dataset.Event{T: 100, X: cx, Y: cy})

	tr, err := evtrack.New(evtrack.VariantCorrelation, 100, cx, cy, 0)
	require.NoError(t, err)

	_, err = initializeCentered(tr, events)
	assert.Error(t, err)
}
