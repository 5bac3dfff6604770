// Package dataset loads event streams and tracker seeds from disk and
// writes recorded pose trails back out, in the plain-text formats used
// by the reference tracking toolchain.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Event is a single asynchronous brightness-change measurement, as read
// from an event file line "t x y p".
type Event struct {
	T        float64
	X, Y     float32
	Polarity bool
}

// Seed is the initial state handed to a tracker before it starts
// consuming events: a time, a 4-DoF pose, and an opaque identifier used
// only to correlate seeds with their resulting pose trail.
type Seed struct {
	T, X, Y, Theta float64
	ID             string
}

// PoseRecord is one tracked pose sample, tagged with the seed ID it
// belongs to, ready to be appended to a trail.
type PoseRecord struct {
	ID             string
	T, X, Y, Theta float64
}

// LoadEvents reads an event file, one "t x y p" record per line, where t
// is a float, x and y are pixel coordinates, and p is 0 or 1. If limit
// is positive, reading stops after that many events.
func LoadEvents(path string, limit int) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var e Event
		var polarity int
		var x, y float32
		if _, err := fmt.Sscan(line, &e.T, &x, &y, &polarity); err != nil {
			return nil, fmt.Errorf("dataset: %s: parse event %q: %w", path, line, err)
		}
		e.X, e.Y = x, y
		e.Polarity = polarity != 0
		events = append(events, e)
		if limit > 0 && len(events) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}
	return events, nil
}

// LoadSeeds reads tracker seeds from a file, one per line, formatted
// "t,x,y,theta" or "t,x,y,theta,id". A seed without an id is assigned a
// random UUID so every seed can still be correlated with its trail.
func LoadSeeds(path string) ([]Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	var seeds []Seed
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		seed, err := parseSeedLine(line)
		if err != nil {
			return nil, fmt.Errorf("dataset: %s: %w", path, err)
		}
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}
	return seeds, nil
}

// ParseSeed parses a single "t,x,y,theta[,id]" line, minting a fresh
// UUID when the id token is absent. Exported so callers can accept a
// single seed from a flag value as well as from a file.
func ParseSeed(line string) (Seed, error) {
	return parseSeedLine(line)
}

func parseSeedLine(line string) (Seed, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 && len(fields) != 5 {
		return Seed{}, fmt.Errorf("parse seed %q: expected 4 or 5 comma-separated tokens, got %d", line, len(fields))
	}

	var s Seed
	if _, err := fmt.Sscan(fields[0], &s.T); err != nil {
		return Seed{}, fmt.Errorf("parse seed %q: time: %w", line, err)
	}
	if _, err := fmt.Sscan(fields[1], &s.X); err != nil {
		return Seed{}, fmt.Errorf("parse seed %q: x: %w", line, err)
	}
	if _, err := fmt.Sscan(fields[2], &s.Y); err != nil {
		return Seed{}, fmt.Errorf("parse seed %q: y: %w", line, err)
	}
	if _, err := fmt.Sscan(fields[3], &s.Theta); err != nil {
		return Seed{}, fmt.Errorf("parse seed %q: theta: %w", line, err)
	}

	if len(fields) == 5 {
		s.ID = fields[4]
	} else {
		s.ID = uuid.NewString()
	}
	return s, nil
}

// WriteTrail writes recorded pose samples to file, one per line,
// formatted "t,x,y,theta,id", mirroring the seed format so a trail can
// be re-used as a seed file for a downstream run.
func WriteTrail(path string, records []PoseRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%f,%f,%f,%f,%s\n", r.T, r.X, r.Y, r.Theta, r.ID); err != nil {
			return fmt.Errorf("dataset: write %s: %w", path, err)
		}
	}
	return w.Flush()
}
