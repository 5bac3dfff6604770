package evtrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventWindowAppendRolls(t *testing.T) {
	t.Parallel()

	var w EventWindow
	var lastOldest EventSample
	for i := 0; i < EventWindowSize+5; i++ {
		lastOldest = w.Append(float64(i), float32(i), float32(-i))
	}

	// The last Append saw the window holding samples 4..EventWindowSize+3,
	// so it displaced sample 4.
	assert.Equal(t, EventSample{T: 4, X: 4, Y: -4}, lastOldest)
	assert.Equal(t, EventSample{T: float64(EventWindowSize + 4), X: float32(EventWindowSize + 4), Y: float32(-(EventWindowSize + 4))}, w.Newest())
}

func TestEventWindowMiddleIsFixedOffsetFromOldest(t *testing.T) {
	t.Parallel()

	var w EventWindow
	for i := 0; i < EventWindowSize; i++ {
		w.Append(float64(i), 0, 0)
	}
	assert.Equal(t, float64(middleIdx), w.Middle().T)
	assert.Equal(t, float64(0), w.Oldest().T)
	assert.Equal(t, float64(EventWindowSize-1), w.Newest().T)
}
