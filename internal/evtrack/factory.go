package evtrack

import "fmt"

// Variant names accepted by New and by cmd/evtrack's -tracker-type flag.
const (
	VariantCorrelation          = "correlation"
	VariantHasteCorrelation     = "haste_correlation"
	VariantHasteCorrelationStar = "haste_correlation_star"
	VariantHasteDifference      = "haste_difference"
	VariantHasteDifferenceStar  = "haste_difference_star"
)

// Variants lists every accepted variant name.
var Variants = []string{
	VariantCorrelation,
	VariantHasteCorrelation,
	VariantHasteCorrelationStar,
	VariantHasteDifference,
	VariantHasteDifferenceStar,
}

// New builds an uninitialised Tracker running the named scoring variant,
// seeded at (t, x, y, theta) and using the default 11-hypothesis
// 8-neighbour/2-rotation search. It returns an error for an unrecognised
// variant name rather than panicking, since the name typically comes
// straight from a CLI flag or config file.
func New(variant string, t float64, x, y, theta float32) (*Tracker, error) {
	return NewWithOffsets(variant, t, x, y, theta, Offsets8Neigh2Rot[:])
}

// NewWithOffsets is New with an explicit hypothesis neighbourhood,
// letting a caller opt into the smaller 7-hypothesis 4-neighbour search
// (Offsets4Neigh2Rot) instead of the default.
func NewWithOffsets(variant string, t float64, x, y, theta float32, offsets []Offset) (*Tracker, error) {
	n := len(offsets)
	var scorer Scorer
	switch variant {
	case VariantCorrelation:
		scorer = NewCorrelationScorer()
	case VariantHasteCorrelation:
		scorer = NewHasteCorrelationScorer(n)
	case VariantHasteCorrelationStar:
		scorer = NewHasteCorrelationStarScorer()
	case VariantHasteDifference:
		scorer = NewHasteDifferenceScorer()
	case VariantHasteDifferenceStar:
		scorer = NewHasteDifferenceStarScorer(n)
	default:
		return nil, fmt.Errorf("evtrack: unknown tracker variant %q", variant)
	}
	return NewTracker(scorer, t, x, y, theta, offsets), nil
}
