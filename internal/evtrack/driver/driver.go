// Package driver runs hypothesis patch trackers from seed and event
// files: it resolves the initialisation policy for each seed, shards
// independent trackers across a worker pool, applies the field-of-view
// stopping predicate, and records each tracker's pose trail.
package driver

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/banshee-data/evtrack.report/internal/benchmark"
	"github.com/banshee-data/evtrack.report/internal/dataset"
	"github.com/banshee-data/evtrack.report/internal/evtrack"
	"github.com/banshee-data/evtrack.report/internal/monitoring"
)

// InitPolicy selects how a tracker is brought from its seed into the
// Running state.
type InitPolicy int

const (
	// Regular feeds events forward from the seed time only, initialising
	// the tracker arbitrarily later than the seed.
	Regular InitPolicy = iota
	// Centered gathers half the event window from before the seed time
	// and half from after, initialising as close to the seed as possible.
	Centered
)

// Config bundles the options needed to run one seed to completion.
type Config struct {
	TrackerType string
	Policy      InitPolicy
	ImageWidth  int
	ImageHeight int
}

// Result is the outcome of running a single seed: its recorded pose
// trail (empty if initialisation failed), whether it initialised, and
// the number of events pushed after initialisation until it stopped.
type Result struct {
	SeedID       string
	Trail        []dataset.PoseRecord
	Initialised  bool
	EventsWalked int
}

// Run drives one tracker, seeded at seed, through events according to
// cfg, recording every state-event pose until the tracker leaves the
// frame or the stream is exhausted.
func Run(cfg Config, seed dataset.Seed, events []dataset.Event, timing *benchmark.Timing) (Result, error) {
	tracker, err := evtrack.New(cfg.TrackerType, seed.T, float32(seed.X), float32(seed.Y), float32(seed.Theta))
	if err != nil {
		return Result{}, fmt.Errorf("driver: create tracker for seed %s: %w", seed.ID, err)
	}

	var startIdx int
	switch cfg.Policy {
	case Centered:
		startIdx, err = initializeCentered(tracker, events)
	default:
		startIdx, err = initializeRegular(tracker, events)
	}
	if err != nil {
		monitoring.Logf("driver: seed %s failed to initialise: %v", seed.ID, err)
		return Result{SeedID: seed.ID}, nil
	}

	result := Result{SeedID: seed.ID, Initialised: true}
	result.Trail = append(result.Trail, recordPose(seed.ID, tracker))

	margin := float32(evtrack.PatchHalf)
	stopped := false
	i := startIdx
	for ; i < len(events); i++ {
		e := events[i]
		start := time.Now()
		upd := tracker.PushEvent(e.T, e.X, e.Y)
		elapsed := time.Since(start)

		switch upd {
		case evtrack.RegularEvent:
			timing.Record(benchmark.Regular, elapsed)
		case evtrack.StateEvent:
			timing.Record(benchmark.State, elapsed)
			result.Trail = append(result.Trail, recordPose(seed.ID, tracker))
			if outOfFrame(tracker, margin, cfg.ImageWidth, cfg.ImageHeight) {
				stopped = true
			}
		}
		if stopped {
			i++
			break
		}
	}
	result.EventsWalked = i - startIdx
	return result, nil
}

func recordPose(id string, t *evtrack.Tracker) dataset.PoseRecord {
	return dataset.PoseRecord{ID: id, T: t.T(), X: float64(t.X()), Y: float64(t.Y()), Theta: float64(t.Theta())}
}

// outOfFrame mirrors the reference stopping predicate: a tracker is
// removed once its centre comes within margin pixels of any image edge.
func outOfFrame(t *evtrack.Tracker, margin float32, width, height int) bool {
	x, y := t.X(), t.Y()
	return !(x >= margin && y >= margin && x+margin < float32(width) && y+margin < float32(height))
}

// initializeRegular walks forward from the seed time only, pushing
// events until the tracker reports a state event. It returns the index
// of the first unconsumed event.
func initializeRegular(t *evtrack.Tracker, events []dataset.Event) (int, error) {
	start := lowerBound(events, t.T())
	for i := start; i < len(events); i++ {
		e := events[i]
		if t.PushEvent(e.T, e.X, e.Y) == evtrack.StateEvent {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("stream exhausted before tracker initialised")
}

// initializeCentered gathers half the event window from strictly before
// the seed time and half from at-or-after it, so the tracker becomes
// Running as close in time to the seed as the window allows. Unlike the
// reference implementation's backward walk, this scan is inclusive of
// index 0: the very first event in the stream is a valid initialisation
// candidate and must not be silently skipped.
func initializeCentered(t *evtrack.Tracker, events []dataset.Event) (int, error) {
	seedIdx := lowerBound(events, t.T())
	half := evtrack.EventWindowSize / 2

	var past []dataset.Event
	for i := seedIdx - 1; i >= 0 && len(past) < half; i-- {
		e := events[i]
		if t.IsInRange(e.X, e.Y) {
			past = append(past, e)
		}
	}
	if len(past) != half {
		return 0, fmt.Errorf("not enough events before seed to centre-initialise (found %d, need %d)", len(past), half)
	}

	for i := len(past) - 1; i >= 0; i-- {
		e := past[i]
		if upd := t.PushEvent(e.T, e.X, e.Y); upd != evtrack.InitializingEvent {
			return 0, fmt.Errorf("unexpected update type %v while priming centred initialisation", upd)
		}
	}

	for i := seedIdx; i < len(events); i++ {
		e := events[i]
		if t.PushEvent(e.T, e.X, e.Y) == evtrack.StateEvent {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("stream exhausted before tracker initialised")
}

// lowerBound returns the index of the first event whose time is not
// less than t, matching std::lower_bound's semantics against a
// time-sorted event stream.
func lowerBound(events []dataset.Event, t float64) int {
	lo, hi := 0, len(events)
	for lo < hi {
		mid := (lo + hi) / 2
		if events[mid].T < t {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// RunAll shards seeds across a worker pool sized to runtime.NumCPU(),
// running each seed's tracker to completion independently. Results are
// returned in seed order regardless of completion order.
func RunAll(cfg Config, seeds []dataset.Seed, events []dataset.Event) ([]Result, *benchmark.Timing) {
	results := make([]Result, len(seeds))
	timing := &benchmark.Timing{}
	var timingMu sync.Mutex

	workers := runtime.NumCPU()
	if workers > len(seeds) {
		workers = len(seeds)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, len(seeds))
	for i := range seeds {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := &benchmark.Timing{}
			for idx := range jobs {
				res, err := Run(cfg, seeds[idx], events, local)
				if err != nil {
					monitoring.Logf("driver: seed %s: %v", seeds[idx].ID, err)
				}
				results[idx] = res
			}
			timingMu.Lock()
			timing.Merge(local)
			timingMu.Unlock()
		}()
	}
	wg.Wait()
	return results, timing
}
