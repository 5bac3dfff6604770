package evtrack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHypothesisTrig(t *testing.T) {
	t.Parallel()

	h := NewHypothesis(1.0, 2, 3, float32(math.Pi/2))
	assert.InDelta(t, 0, h.CosTheta, 1e-6)
	assert.InDelta(t, 1, h.SinTheta, 1e-6)
}

func TestHypothesisAddPreservesTime(t *testing.T) {
	t.Parallel()

	h := NewHypothesis(42.0, 0, 0, 0)
	moved := h.Add(Offset{DX: 1, DY: -1, DTheta: deltaTheta})
	assert.Equal(t, 42.0, moved.T)
	assert.InDelta(t, 1, moved.X, 1e-6)
	assert.InDelta(t, -1, moved.Y, 1e-6)
	assert.InDelta(t, deltaTheta, moved.Theta, 1e-6)
}

func TestOffsetTablesCenterOnNullHypothesis(t *testing.T) {
	t.Parallel()

	t.Run("8-neighbour table", func(t *testing.T) {
		t.Parallel()
		require.Len(t, Offsets8Neigh2Rot, 11)
		assert.Equal(t, Offset{}, Offsets8Neigh2Rot[0])
	})

	t.Run("4-neighbour table", func(t *testing.T) {
		t.Parallel()
		require.Len(t, Offsets4Neigh2Rot, 7)
		assert.Equal(t, Offset{}, Offsets4Neigh2Rot[0])
	})
}

func TestGenerateHypothesesNoAllocation(t *testing.T) {
	t.Parallel()

	dst := make([]Hypothesis, len(Offsets8Neigh2Rot))
	center := NewHypothesis(10, 5, 5, 0)
	GenerateHypotheses(dst, center, Offsets8Neigh2Rot[:])

	require.Len(t, dst, 11)
	assert.Equal(t, center, dst[0])
	assert.InDelta(t, 6, dst[1].X, 1e-6)
	assert.InDelta(t, 5, dst[1].Y, 1e-6)
}

func TestPatchLocationIsIdentityAtCenter(t *testing.T) {
	t.Parallel()

	h := NewHypothesis(0, 10, 20, 0)
	xp, yp := PatchLocation(10, 20, h)
	assert.InDelta(t, PatchHalf, xp, 1e-6)
	assert.InDelta(t, PatchHalf, yp, 1e-6)
}

func TestPatchLocationBatchMatchesScalar(t *testing.T) {
	t.Parallel()

	h := NewHypothesis(0, 1, 2, 0.3)
	exs := []float32{0, 1, 2, 3}
	eys := []float32{3, 2, 1, 0}
	xps := make([]float32, len(exs))
	yps := make([]float32, len(exs))
	PatchLocationBatch(exs, eys, h, xps, yps)

	for i := range exs {
		wantX, wantY := PatchLocation(exs[i], eys[i], h)
		assert.InDelta(t, wantX, xps[i], 1e-6)
		assert.InDelta(t, wantY, yps[i], 1e-6)
	}
}

func TestEventUpdateString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		u    EventUpdate
		want string
	}{
		{OutOfRange, "OutOfRange"},
		{InitializingEvent, "InitializingEvent"},
		{RegularEvent, "RegularEvent"},
		{StateEvent, "StateEvent"},
		{EventUpdate(99), "Unknown"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.u.String())
	}
}
