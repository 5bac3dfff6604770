// Package evtrack implements the hypothesis-based patch tracker for an
// asynchronous event-camera pixel stream.
//
// A tracker follows a small rigid patch of the image plane described by a
// 4-DoF pose (time, x, y, rotation angle). Given a seed pose it accumulates
// a rolling window of nearby events into a template, then evaluates a small
// discrete set of pose hypotheses around the current pose on every new
// event, switching pose whenever a neighbouring hypothesis scores
// sufficiently better than the current ("null") one.
//
// Dependency rule: this package has no I/O, no logging, and no
// configuration surface — those are driver concerns (see
// internal/calibration, internal/dataset, cmd/evtrack).
package evtrack
