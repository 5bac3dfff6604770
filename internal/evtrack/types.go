package evtrack

import "math"

// Derived constants. These must match the reference tracker exactly; the
// derivation of EventWindowSize is given beside it below.
const (
	// TextureFactor sets the rolling window size relative to patch area.
	TextureFactor = 0.2
	// TemplateUpdateFactor scales how much a single event contributes to
	// the running template on each update.
	TemplateUpdateFactor = 0.1

	// PatchSize is the side length of the square template/model array.
	PatchSize = 31
	// PatchHalf is the patch's center coordinate, used to re-center
	// world-frame offsets into patch space.
	PatchHalf = (PatchSize - 1) / 2

	// EventWindowSize = 1 + 2*floor(TextureFactor*PatchSize*PatchSize/2)
	// = 1 + 2*floor(0.2*31*31/2) = 1 + 2*floor(96.1) = 1 + 192 = 193.
	EventWindowSize = 193

	// middleIdx is the index of the window's middle event, used as the
	// tracker's reference time and the only event ever splatted into the
	// rolling template.
	middleIdx = (EventWindowSize - 1) / 2

	// Hysteresis is the minimum normalised score margin required for a
	// non-null hypothesis to win the vote.
	Hysteresis = 0.05

	// deltaTheta is the 4-degree rotation step between neighbouring
	// rotational hypotheses, expressed in radians.
	deltaTheta = float32(4.0 * math.Pi / 180.0)
)

// EventSample is a single (t, x, y) reading, the unit the window and the
// scoring variants operate on. Polarity is not part of the core's data
// model: the spec treats it as present-but-unused at the parser boundary,
// never threaded into the tracker.
type EventSample struct {
	T    float64
	X, Y float32
}

// Hypothesis is an immutable candidate pose with pre-computed trigonometry,
// generated by adding an Offset to a center pose. Index 0 of a
// HypothesisSet is always the unperturbed center ("null hypothesis").
type Hypothesis struct {
	T                  float64
	X, Y, Theta        float32
	CosTheta, SinTheta float32
}

// NewHypothesis builds a Hypothesis, caching cos/sin of theta.
func NewHypothesis(t float64, x, y, theta float32) Hypothesis {
	s, c := math.Sincos(float64(theta))
	return Hypothesis{T: t, X: x, Y: y, Theta: theta, CosTheta: float32(c), SinTheta: float32(s)}
}

// Offset is an incremental translation/rotation applied to a center
// hypothesis to build a neighbourhood of candidates.
type Offset struct {
	DX, DY, DTheta float32
}

// Add returns the hypothesis obtained by applying o to h. The time
// component is carried through unchanged.
func (h Hypothesis) Add(o Offset) Hypothesis {
	return NewHypothesis(h.T, h.X+o.DX, h.Y+o.DY, h.Theta+o.DTheta)
}

// Offsets8Neigh2Rot is the default "8-neighbour + 2-rotation" hypothesis
// generator: N=11, index 0 is the null offset. Callers must never reorder
// this table — index 0 must stay the center/null entry.
var Offsets8Neigh2Rot = [11]Offset{
	{0, 0, 0},
	{+1, 0, 0}, {-1, 0, 0}, {0, +1, 0}, {0, -1, 0},
	{+1, +1, 0}, {-1, +1, 0}, {-1, -1, 0}, {+1, -1, 0},
	{0, 0, +deltaTheta}, {0, 0, -deltaTheta},
}

// Offsets4Neigh2Rot is the "4-neighbour + 2-rotation" alternative: N=7.
var Offsets4Neigh2Rot = [7]Offset{
	{0, 0, 0},
	{+1, 0, 0}, {-1, 0, 0}, {0, +1, 0}, {0, -1, 0},
	{0, 0, +deltaTheta}, {0, 0, -deltaTheta},
}

// GenerateHypotheses fills dst with center + offsets[i] for every i,
// reusing dst's backing array (no allocation). dst must have the same
// length as offsets.
func GenerateHypotheses(dst []Hypothesis, center Hypothesis, offsets []Offset) {
	for i, o := range offsets {
		dst[i] = center.Add(o)
	}
}

// PatchLocation maps a world-frame point into the patch coordinates of
// hypothesis h: the rigid-body transform at the heart of the tracker.
func PatchLocation(ex, ey float32, h Hypothesis) (xp, yp float32) {
	dx := ex - h.X
	dy := ey - h.Y
	xp = dx*h.CosTheta + dy*h.SinTheta + PatchHalf
	yp = -dx*h.SinTheta + dy*h.CosTheta + PatchHalf
	return xp, yp
}

// PatchLocationBatch is the vectorised form of PatchLocation, writing into
// caller-owned xps/yps (which must be at least len(exs) long).
func PatchLocationBatch(exs, eys []float32, h Hypothesis, xps, yps []float32) {
	for i := range exs {
		xps[i], yps[i] = PatchLocation(exs[i], eys[i], h)
	}
}

// EventUpdate reports what a call to PushEvent did.
type EventUpdate int

const (
	// OutOfRange means the event fell outside the tracker's patch and was
	// rejected without mutating any state.
	OutOfRange EventUpdate = iota
	// InitializingEvent means the tracker is still accumulating its first
	// EventWindowSize in-range events.
	InitializingEvent
	// RegularEvent means scores and template were updated but the pose
	// (null hypothesis) did not change.
	RegularEvent
	// StateEvent means the pose changed: either the tracker just
	// initialised, or a neighbouring hypothesis won the vote.
	StateEvent
)

func (u EventUpdate) String() string {
	switch u {
	case OutOfRange:
		return "OutOfRange"
	case InitializingEvent:
		return "InitializingEvent"
	case RegularEvent:
		return "RegularEvent"
	case StateEvent:
		return "StateEvent"
	default:
		return "Unknown"
	}
}

// Status is the tracker's lifecycle state.
type Status int

const (
	Uninitialised Status = iota
	Running
)

func (s Status) String() string {
	if s == Running {
		return "Running"
	}
	return "Uninitialised"
}
