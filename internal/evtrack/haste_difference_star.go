package evtrack

// HasteDifferenceStarScorer specialises HasteDifferenceScorer the same
// way HasteCorrelationStarScorer specialises Correlation: it keeps each
// hypothesis's difference patch around and updates only the one 2x2
// neighbourhood touched by the newest and displaced events, instead of
// re-rendering the whole window every time.
type HasteDifferenceStarScorer struct {
	HasteDifferenceScorer
	diffPatches []Patch // one per hypothesis
}

// NewHasteDifferenceStarScorer builds a scorer holding numHypotheses
// difference patches, one per entry in the tracker's hypothesis set.
func NewHasteDifferenceStarScorer(numHypotheses int) *HasteDifferenceStarScorer {
	return &HasteDifferenceStarScorer{diffPatches: make([]Patch, numHypotheses)}
}

// Name implements Scorer.
func (s *HasteDifferenceStarScorer) Name() string { return "HasteDifferenceStar" }

// InitializeHypotheses implements Scorer: every difference patch is
// rebuilt from scratch and cached for the incremental update that follows
// on every subsequent regular event.
func (s *HasteDifferenceStarScorer) InitializeHypotheses(t *Tracker) {
	scores := t.Scores()
	for i, h := range t.Hypotheses() {
		s.diffPatches[i] = s.differencePatch(t, h)
		scores[i] = -s.diffPatches[i].SquareSum()
	}
}

// UpdateHypothesesScore implements Scorer: each hypothesis's cached
// difference patch is nudged by the newest event's arrival and the
// displaced event's departure, and the score adjusted by exactly the
// change in squared sum those two nudges produced in their 2x2
// neighbourhoods — no other cell of the patch is touched or re-summed.
func (s *HasteDifferenceStarScorer) UpdateHypothesesScore(t *Tracker, oldest, newest EventSample) {
	scores := t.Scores()
	for i, h := range t.Hypotheses() {
		diff := &s.diffPatches[i]
		scores[i] += s.updateDifference(diff, newest, h, -1)
		scores[i] += s.updateDifference(diff, oldest, h, +1)
	}
}

// updateDifference nudges diff's 2x2 neighbourhood at the patch location
// of ev under h by increment*hasteWeight, and returns the resulting change
// in that neighbourhood's contribution to the squared-sum score (before
// minus after, so it can simply be added to the running score). Events
// that fall outside the bilinear neighbourhood leave diff untouched.
func (s *HasteDifferenceStarScorer) updateDifference(diff *Patch, ev EventSample, h Hypothesis, increment float32) float32 {
	xp, yp := PatchLocation(ev.X, ev.Y, h)
	if !InBounds(xp, yp) {
		return 0
	}
	k := BilinearKernel(xp, yp)
	block := diff.Block(xp, yp)
	before := block.SquareSum()
	block.AddKernel(k, increment*hasteWeight)
	after := block.SquareSum()
	return before - after
}
