package evtrack

// HasteDifferenceScorer scores each hypothesis by how poorly a
// sum-normalised render of the event window under that hypothesis
// matches the sum-normalised template: the negative sum of squared
// per-cell differences, so a perfect match scores 0 and every mismatch
// scores negative (higher is still better, consistent with the other
// variants' "higher score wins" convention).
type HasteDifferenceScorer struct{}

// NewHasteDifferenceScorer builds a HasteDifferenceScorer. It holds no
// state of its own beyond what Tracker already tracks.
func NewHasteDifferenceScorer() *HasteDifferenceScorer { return &HasteDifferenceScorer{} }

// Name implements Scorer.
func (s *HasteDifferenceScorer) Name() string { return "HasteDifference" }

// UpdateTemplate implements Scorer.
func (s *HasteDifferenceScorer) UpdateTemplate(t *Tracker) {
	t.updateTemplateWithMiddleEvent(hasteWeight)
}

// EventWindowToModel implements Scorer.
func (s *HasteDifferenceScorer) EventWindowToModel(t *Tracker, h Hypothesis) Patch {
	return t.eventWindowToModelUnitary(h, hasteWeight)
}

// InitializeHypotheses implements Scorer: every hypothesis's difference
// patch, and thus score, is rebuilt from scratch.
func (s *HasteDifferenceScorer) InitializeHypotheses(t *Tracker) {
	scores := t.Scores()
	for i, h := range t.Hypotheses() {
		diff := s.differencePatch(t, h)
		scores[i] = -diff.SquareSum()
	}
}

// UpdateHypothesesScore implements Scorer. The base variant recomputes
// every difference patch from scratch on every event; oldest and newest
// are unused here. HasteDifferenceStarScorer overrides this with an
// incremental update.
func (s *HasteDifferenceScorer) UpdateHypothesesScore(t *Tracker, _, _ EventSample) {
	s.InitializeHypotheses(t)
}

// differencePatch renders the event window under h (sum-normalised by
// construction, since EventWindowSize*hasteWeight == 1) and subtracts it
// from the sum-normalised template, cell by cell.
func (s *HasteDifferenceScorer) differencePatch(t *Tracker, h Hypothesis) Patch {
	model := t.eventWindowToModelUnitary(h, hasteWeight)

	var diff Patch
	tmplRaw := t.Template().Raw()
	modelRaw := model.Raw()
	diffRaw := diff.Raw()

	sum := t.Template().Sum()
	if sum == 0 {
		for i := range diffRaw {
			diffRaw[i] = -modelRaw[i]
		}
		return diff
	}
	for i := range diffRaw {
		diffRaw[i] = tmplRaw[i]/sum - modelRaw[i]
	}
	return diff
}
