package evtrack

import "math"

// CorrelationScorer scores each hypothesis by the Gaussian-weighted
// correlation between the rolling template and the event window resampled
// under that hypothesis, recomputed from scratch on every event. It is
// the baseline variant the Haste* variants specialise for speed.
type CorrelationScorer struct {
	weights [EventWindowSize]float32
}

// NewCorrelationScorer builds a scorer with its Gaussian weight vector
// precomputed (sigma = EventWindowSize/6, centered on the window middle).
func NewCorrelationScorer() *CorrelationScorer {
	s := &CorrelationScorer{}
	s.setGaussianWeights()
	return s
}

func (s *CorrelationScorer) setGaussianWeights() {
	const half = float64(EventWindowSize-1) / 2
	const sigma = float64(EventWindowSize) / 6.0
	sigma2 := sigma * sigma

	var sum float64
	raw := make([]float64, EventWindowSize)
	for i := 0; i < EventWindowSize; i++ {
		d := float64(i) - half
		v := math.Exp(-0.5 * d * d / sigma2)
		raw[i] = v
		sum += v
	}
	for i, v := range raw {
		s.weights[i] = float32(v / sum)
	}
}

// Name implements Scorer.
func (s *CorrelationScorer) Name() string { return "Correlation" }

// UpdateTemplate implements Scorer: the middle event is folded in weighted
// by its own place in the Gaussian window.
func (s *CorrelationScorer) UpdateTemplate(t *Tracker) {
	t.updateTemplateWithMiddleEvent(s.weights[middleIdx])
}

// EventWindowToModel implements Scorer, weighting every event by its
// Gaussian weight.
func (s *CorrelationScorer) EventWindowToModel(t *Tracker, h Hypothesis) Patch {
	return t.eventWindowToModelWeighted(h, s.weights[:])
}

// InitializeHypotheses implements Scorer: every hypothesis's score is
// computed from scratch against the current template.
func (s *CorrelationScorer) InitializeHypotheses(t *Tracker) {
	scores := t.Scores()
	for i, h := range t.Hypotheses() {
		scores[i] = s.score(t, h)
	}
}

// UpdateHypothesesScore implements Scorer. Correlation recomputes every
// score from scratch on every event rather than tracking an incremental
// update; oldest and newest are intentionally unused.
func (s *CorrelationScorer) UpdateHypothesesScore(t *Tracker, _, _ EventSample) {
	s.InitializeHypotheses(t)
}

func (s *CorrelationScorer) score(t *Tracker, h Hypothesis) float32 {
	xs, ys := t.EventWindow().Xs(), t.EventWindow().Ys()
	tmpl := t.Template()
	var sum float32
	for i := range xs {
		xp, yp := PatchLocation(xs[i], ys[i], h)
		sum += s.weights[i] * tmpl.Sample(xp, yp)
	}
	return sum
}
