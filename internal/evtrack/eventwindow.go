package evtrack

// EventWindow is a fixed-capacity rolling buffer of the EventWindowSize
// most recent in-range events, stored as three parallel arrays (times,
// xs, ys). It is zero-valued and ready to use; Append never allocates.
type EventWindow struct {
	t [EventWindowSize]float64
	x [EventWindowSize]float32
	y [EventWindowSize]float32
}

// Append shifts the window left by one slot and writes (t, x, y) as the
// newest sample, returning the displaced oldest sample.
func (w *EventWindow) Append(t float64, x, y float32) EventSample {
	oldest := EventSample{T: w.t[0], X: w.x[0], Y: w.y[0]}
	copy(w.t[:EventWindowSize-1], w.t[1:])
	copy(w.x[:EventWindowSize-1], w.x[1:])
	copy(w.y[:EventWindowSize-1], w.y[1:])
	w.t[EventWindowSize-1] = t
	w.x[EventWindowSize-1] = x
	w.y[EventWindowSize-1] = y
	return oldest
}

// Get returns the i-th sample (0 = oldest, EventWindowSize-1 = newest).
func (w *EventWindow) Get(i int) EventSample {
	return EventSample{T: w.t[i], X: w.x[i], Y: w.y[i]}
}

// Oldest returns index 0.
func (w *EventWindow) Oldest() EventSample { return w.Get(0) }

// Newest returns index EventWindowSize-1.
func (w *EventWindow) Newest() EventSample { return w.Get(EventWindowSize - 1) }

// Middle returns the window's middle event, the tracker's time reference.
func (w *EventWindow) Middle() EventSample { return w.Get(middleIdx) }

// Times returns a view over the whole times array for vectorised math.
func (w *EventWindow) Times() []float64 { return w.t[:] }

// Xs returns a view over the whole xs array.
func (w *EventWindow) Xs() []float32 { return w.x[:] }

// Ys returns a view over the whole ys array.
func (w *EventWindow) Ys() []float32 { return w.y[:] }
