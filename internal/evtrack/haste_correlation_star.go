package evtrack

// hasteWeight is the uniform per-event weight the Haste* variants use in
// place of Correlation's Gaussian weighting, chosen so a fully-populated
// window sums to 1.
const hasteWeight = float32(1.0 / EventWindowSize)

// HasteCorrelationStarScorer scores each hypothesis against a
// sum-normalised copy of the template, updating each hypothesis's score
// incrementally by subtracting the displaced event's contribution and
// adding the new event's — no resampling of the whole window on a
// regular event, only on a transition.
type HasteCorrelationStarScorer struct {
	templateNormalized Patch
}

// NewHasteCorrelationStarScorer builds an empty scorer; its normalised
// template is populated on the first InitializeHypotheses call.
func NewHasteCorrelationStarScorer() *HasteCorrelationStarScorer {
	return &HasteCorrelationStarScorer{}
}

// Name implements Scorer.
func (s *HasteCorrelationStarScorer) Name() string { return "HasteCorrelationStar" }

// UpdateTemplate implements Scorer.
func (s *HasteCorrelationStarScorer) UpdateTemplate(t *Tracker) {
	t.updateTemplateWithMiddleEvent(hasteWeight)
}

// EventWindowToModel implements Scorer.
func (s *HasteCorrelationStarScorer) EventWindowToModel(t *Tracker, h Hypothesis) Patch {
	return t.eventWindowToModelUnitary(h, hasteWeight)
}

// InitializeHypotheses implements Scorer: rebuilds the normalised template
// and resamples the whole window against every hypothesis from scratch.
// This is the one point where this variant pays the full O(window) cost;
// every other event only pays an O(1) incremental update.
func (s *HasteCorrelationStarScorer) InitializeHypotheses(t *Tracker) {
	s.templateNormalized = *t.Template()
	if sum := s.templateNormalized.Sum(); sum != 0 {
		s.templateNormalized.Scale(1 / sum)
	}

	xs, ys := t.EventWindow().Xs(), t.EventWindow().Ys()
	scores := t.Scores()
	for i, h := range t.Hypotheses() {
		var sampled float32
		for j := range xs {
			xp, yp := PatchLocation(xs[j], ys[j], h)
			sampled += s.templateNormalized.Sample(xp, yp)
		}
		scores[i] = hasteWeight * sampled
	}
}

// UpdateHypothesesScore implements Scorer: each hypothesis's score moves
// by the normalised template's value under the newest event minus its
// value under the event the window just displaced.
func (s *HasteCorrelationStarScorer) UpdateHypothesesScore(t *Tracker, oldest, newest EventSample) {
	scores := t.Scores()
	for i, h := range t.Hypotheses() {
		xpOld, ypOld := PatchLocation(oldest.X, oldest.Y, h)
		xpNew, ypNew := PatchLocation(newest.X, newest.Y, h)
		vOld := s.templateNormalized.Sample(xpOld, ypOld)
		vNew := s.templateNormalized.Sample(xpNew, ypNew)
		scores[i] += hasteWeight * (vNew - vOld)
	}
}
