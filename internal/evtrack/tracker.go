package evtrack

// Scorer is the per-variant scoring strategy a Tracker delegates to on
// every pushed event. The five HASTE scoring variants (Correlation,
// HasteCorrelation, HasteCorrelationStar, HasteDifference,
// HasteDifferenceStar) each implement Scorer; Tracker itself holds no
// variant-specific state or knowledge of which one it was built with.
type Scorer interface {
	// Name is the variant's PascalCase display name (e.g. "Correlation"),
	// distinct from the lowercase selector string New accepts.
	Name() string
	// UpdateTemplate folds the tracker's current state into the rolling
	// template after a pushed event has been scored.
	UpdateTemplate(t *Tracker)
	// EventWindowToModel renders the tracker's full event window into a
	// patch under hypothesis h, used both at initialisation (to seed the
	// template) and by some variants on every transition.
	EventWindowToModel(t *Tracker, h Hypothesis) Patch
	// InitializeHypotheses (re)computes every hypothesis's score from
	// scratch; called whenever the tracker transitions to a new pose.
	InitializeHypotheses(t *Tracker)
	// UpdateHypothesesScore incorporates a newly pushed event (and the
	// event it displaced from the window) into every hypothesis's score.
	UpdateHypothesesScore(t *Tracker, oldest, newest EventSample)
}

// windowAppender is an optional capability a Scorer may implement to take
// over event-window maintenance entirely. HasteCorrelationScorer is the
// only variant that needs this: it keeps a rolling stack of per-hypothesis
// template samples that must advance in lockstep with the window itself.
// Scorers that don't need this fall back to Tracker's default append.
type windowAppender interface {
	AppendEventToWindow(t *Tracker, newest EventSample) EventSample
}

// Tracker is the hypothesis-based patch tracker. It owns the rolling event
// window, the template, and the current hypothesis set; a Scorer supplies
// the variant-specific scoring and template-update rules.
type Tracker struct {
	status Status
	scorer Scorer

	offsets []Offset
	hyps    []Hypothesis
	scores  []float32

	tmpl   Patch
	window EventWindow

	eventCounter int
}

// NewTracker builds an uninitialised tracker seeded at (t, x, y, theta).
// offsets determines the hypothesis neighbourhood (Offsets8Neigh2Rot or
// Offsets4Neigh2Rot); offsets[0] must be the zero offset.
func NewTracker(scorer Scorer, t float64, x, y, theta float32, offsets []Offset) *Tracker {
	tr := &Tracker{
		scorer:  scorer,
		offsets: offsets,
		hyps:    make([]Hypothesis, len(offsets)),
		scores:  make([]float32, len(offsets)),
	}
	tr.hyps[0] = NewHypothesis(t, x, y, theta)
	return tr
}

// State returns the current (null hypothesis) pose.
func (t *Tracker) State() Hypothesis { return t.hyps[0] }

// T returns the current pose's timestamp.
func (t *Tracker) T() float64 { return t.hyps[0].T }

// X returns the current pose's x coordinate.
func (t *Tracker) X() float32 { return t.hyps[0].X }

// Y returns the current pose's y coordinate.
func (t *Tracker) Y() float32 { return t.hyps[0].Y }

// Theta returns the current pose's rotation angle in radians.
func (t *Tracker) Theta() float32 { return t.hyps[0].Theta }

// EventWindow exposes the rolling event window for a Scorer's use.
func (t *Tracker) EventWindow() *EventWindow { return &t.window }

// Template exposes the rolling template for a Scorer's use.
func (t *Tracker) Template() *Patch { return &t.tmpl }

// SetTemplate overwrites the rolling template.
func (t *Tracker) SetTemplate(p Patch) { t.tmpl = p }

// Hypotheses exposes the current hypothesis set, index 0 being the null
// hypothesis. Scorers may read but must not resize this slice.
func (t *Tracker) Hypotheses() []Hypothesis { return t.hyps }

// Scores exposes the current per-hypothesis score, parallel to Hypotheses.
func (t *Tracker) Scores() []float32 { return t.scores }

// EventCounter returns the number of in-range events seen so far.
func (t *Tracker) EventCounter() int { return t.eventCounter }

// Status returns the tracker's lifecycle state.
func (t *Tracker) Status() Status { return t.status }

// ScorerName returns the active Scorer's display name (Scorer.Name), not
// the selector string the tracker was built with.
func (t *Tracker) ScorerName() string { return t.scorer.Name() }

// IsInRange applies the tracker's acceptance test: an event is in range
// when its distance to the current pose is within the patch's half-size,
// regardless of orientation. It is evaluated before the rigid transform,
// as a cheap circular gate; the open disc it accepts lies inside the
// square bilinear in-bounds region used for splatting, so it is the
// stricter of the two tests.
func (t *Tracker) IsInRange(ex, ey float32) bool {
	dx := ex - t.hyps[0].X
	dy := ey - t.hyps[0].Y
	const d2Thresh = float32(PatchHalf * PatchHalf)
	return dx*dx+dy*dy < d2Thresh
}

// PushEvent feeds one event-camera event through the tracker. It returns
// what happened: the event was rejected (OutOfRange), the tracker is
// still warming up its window (InitializingEvent), the pose was
// re-scored but did not change (RegularEvent), or the pose changed
// (StateEvent, which also covers the initialisation transition).
func (t *Tracker) PushEvent(et float64, ex, ey float32) EventUpdate {
	if !t.IsInRange(ex, ey) {
		return OutOfRange
	}

	newest := EventSample{T: et, X: ex, Y: ey}
	oldest := t.appendEventToWindow(newest)

	if t.status == Uninitialised {
		if t.eventCounter >= EventWindowSize {
			t.initialiseTracker()
			return StateEvent
		}
		return InitializingEvent
	}

	t.updateHypothesesTimeFromMiddleEvent()
	t.scorer.UpdateHypothesesScore(t, oldest, newest)

	winner := t.selectWinner()
	var ret EventUpdate
	if winner == 0 {
		ret = RegularEvent
	} else {
		ret = StateEvent
		t.transitionTo(t.hyps[winner])
	}
	t.scorer.UpdateTemplate(t)
	return ret
}

func (t *Tracker) appendEventToWindow(newest EventSample) EventSample {
	if wa, ok := t.scorer.(windowAppender); ok {
		return wa.AppendEventToWindow(t, newest)
	}
	oldest := t.window.Append(newest.T, newest.X, newest.Y)
	t.eventCounter++
	return oldest
}

func (t *Tracker) updateHypothesesTimeFromMiddleEvent() {
	mid := t.window.Middle()
	for i := range t.hyps {
		t.hyps[i].T = mid.T
	}
}

// selectWinner implements the hysteresis-based vote: the best-scoring
// hypothesis only unseats the null hypothesis when its margin over the
// null hypothesis, normalised by the full score spread, exceeds
// Hysteresis. Ties and a flat score spread both resolve to the null
// hypothesis.
func (t *Tracker) selectWinner() int {
	best, worst := 0, 0
	for i, s := range t.scores {
		if s > t.scores[best] {
			best = i
		}
		if s < t.scores[worst] {
			worst = i
		}
	}
	nullScore := t.scores[0]
	bestScore := t.scores[best]
	worstScore := t.scores[worst]
	if nullScore >= bestScore {
		return 0
	}
	spread := bestScore - worstScore
	if spread == 0 {
		return 0
	}
	margin := (bestScore - nullScore) / spread
	if margin > Hysteresis {
		return best
	}
	return 0
}

// transitionTo re-centers the hypothesis set on h and asks the Scorer to
// rebuild every hypothesis's score from scratch against the new set.
func (t *Tracker) transitionTo(h Hypothesis) {
	GenerateHypotheses(t.hyps, h, t.offsets)
	t.scorer.InitializeHypotheses(t)
}

func (t *Tracker) initialiseTracker() {
	t.status = Running
	mid := t.window.Middle()
	initial := NewHypothesis(mid.T, t.hyps[0].X, t.hyps[0].Y, t.hyps[0].Theta)
	t.tmpl = t.scorer.EventWindowToModel(t, initial)
	t.transitionTo(initial)
}

// updateTemplateWithMiddleEvent splats the window's middle event into the
// running template at the current pose, scaled by weight*TemplateUpdateFactor.
// Only the middle event is ever folded into the template directly; every
// other event only ever contributes through the rolling window itself.
func (t *Tracker) updateTemplateWithMiddleEvent(weight float32) {
	mid := t.window.Middle()
	xp, yp := PatchLocation(mid.X, mid.Y, t.hyps[0])
	t.tmpl.Splat(xp, yp, weight*TemplateUpdateFactor)
}

// eventWindowToModelUnitary renders the whole event window into a patch
// under hypothesis h, splatting every event with the same weight.
func (t *Tracker) eventWindowToModelUnitary(h Hypothesis, weight float32) Patch {
	var model Patch
	xs, ys := t.window.Xs(), t.window.Ys()
	for i := range xs {
		xp, yp := PatchLocation(xs[i], ys[i], h)
		model.Splat(xp, yp, weight)
	}
	return model
}

// eventWindowToModelWeighted is the per-event-weighted form of
// eventWindowToModelUnitary, used by the Correlation variant's Gaussian
// weighting.
func (t *Tracker) eventWindowToModelWeighted(h Hypothesis, weights []float32) Patch {
	var model Patch
	xs, ys := t.window.Xs(), t.window.Ys()
	for i := range xs {
		xp, yp := PatchLocation(xs[i], ys[i], h)
		model.Splat(xp, yp, weights[i])
	}
	return model
}
