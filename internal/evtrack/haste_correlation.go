package evtrack

// HasteCorrelationScorer specialises CorrelationScorer for speed: instead
// of resampling the whole event window against the template on every
// event, it keeps a per-hypothesis rolling stack of already-sampled
// template values and only appends one new column per event: one
// template sample per hypothesis per event instead of one per window
// event. Each score is still a full-window weighted dot product over the
// stack.
type HasteCorrelationScorer struct {
	CorrelationScorer
	stack [][EventWindowSize]float32 // one row per hypothesis
}

// NewHasteCorrelationScorer builds a scorer whose rolling stack holds
// numHypotheses rows, one per entry in the tracker's hypothesis set.
func NewHasteCorrelationScorer(numHypotheses int) *HasteCorrelationScorer {
	s := &HasteCorrelationScorer{
		stack: make([][EventWindowSize]float32, numHypotheses),
	}
	s.setGaussianWeights()
	return s
}

// Name implements Scorer.
func (s *HasteCorrelationScorer) Name() string { return "HasteCorrelation" }

// AppendEventToWindow implements windowAppender: it rolls the event
// window exactly as the default does, but additionally rolls every
// hypothesis's sample stack and appends the newest event's template
// sample under each hypothesis's current pose.
func (s *HasteCorrelationScorer) AppendEventToWindow(t *Tracker, newest EventSample) EventSample {
	oldest := t.window.Append(newest.T, newest.X, newest.Y)

	hyps := t.Hypotheses()
	tmpl := t.Template()
	for i := range s.stack {
		row := &s.stack[i]
		copy(row[:EventWindowSize-1], row[1:])
		xp, yp := PatchLocation(newest.X, newest.Y, hyps[i])
		row[EventWindowSize-1] = tmpl.Sample(xp, yp)
	}

	t.eventCounter++
	return oldest
}

// InitializeHypotheses implements Scorer: every row of the stack is
// resampled in full against the new hypothesis set, then every score is
// the Gaussian-weighted dot product of its row.
func (s *HasteCorrelationScorer) InitializeHypotheses(t *Tracker) {
	xs, ys := t.EventWindow().Xs(), t.EventWindow().Ys()
	tmpl := t.Template()
	scores := t.Scores()
	for i, h := range t.Hypotheses() {
		row := &s.stack[i]
		for j := range xs {
			xp, yp := PatchLocation(xs[j], ys[j], h)
			row[j] = tmpl.Sample(xp, yp)
		}
		scores[i] = dot(row[:], s.weights[:])
	}
}

// UpdateHypothesesScore implements Scorer. The stack was already rolled
// forward in AppendEventToWindow, so oldest and newest are unused here:
// scoring is just the dot product against the (already current) stack.
func (s *HasteCorrelationScorer) UpdateHypothesesScore(t *Tracker, _, _ EventSample) {
	scores := t.Scores()
	for i := range s.stack {
		scores[i] = dot(s.stack[i][:], s.weights[:])
	}
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
