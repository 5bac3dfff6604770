// Command evtrack runs a hypothesis patch tracker over a recorded
// event stream, starting from one or more seed poses, and reports the
// resulting pose trail and timing benchmark.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/evtrack.report/internal/calibration"
	"github.com/banshee-data/evtrack.report/internal/dataset"
	"github.com/banshee-data/evtrack.report/internal/evtrack"
	"github.com/banshee-data/evtrack.report/internal/evtrack/driver"
	"github.com/banshee-data/evtrack.report/internal/posetrail"
	"github.com/banshee-data/evtrack.report/internal/version"
)

var (
	eventsFile   = flag.String("events", "", "Plain text file of events, one \"t x y polarity\" record per line. [Required]")
	seedFlag     = flag.String("seed", "", "Single seed \"t,x,y,theta[,id]\". Required if -seeds is not set.")
	seedsFile    = flag.String("seeds", "", "Plain text file of seeds, one \"t,x,y,theta[,id]\" per line. Required if -seed is not set.")
	numEvents    = flag.Int("num-events", 0, "Only load the first n events from -events. 0 means unlimited.")
	trackerType  = flag.String("tracker-type", evtrack.VariantHasteCorrelationStar, "Tracker variant: correlation, haste_correlation, haste_correlation_star, haste_difference, haste_difference_star")
	centered     = flag.Bool("centered", false, "Centre-initialise each tracker as close as possible to its seed, instead of walking forward only.")
	cameraParams = flag.String("camera-params", "", "Calibration file \"fx fy cx cy k1 k2 p1 p2 k3\". When set, events are undistorted before tracking.")
	cameraSize   = flag.String("camera-size", "240x180", "Image sensor resolution WIDTHxHEIGHT.")
	outputFile   = flag.String("output", "", "Write the recorded pose trail to this plain-text file.")
	outputDB     = flag.String("output-db", "", "Additionally persist the recorded pose trail to this SQLite database.")
	versionFlag  = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("evtrack v%s (git SHA: %s)\n", version.Version, version.GitSHA)
		return
	}

	if *eventsFile == "" {
		log.Fatal("evtrack: -events is required")
	}
	if *seedFlag == "" && *seedsFile == "" {
		log.Fatal("evtrack: one of -seed or -seeds is required")
	}

	width, height, err := parseCameraSize(*cameraSize)
	if err != nil {
		log.Fatalf("evtrack: %v", err)
	}

	events, err := dataset.LoadEvents(*eventsFile, *numEvents)
	if err != nil {
		log.Fatalf("evtrack: %v", err)
	}
	if len(events) == 0 {
		log.Fatal("evtrack: no events loaded")
	}
	log.Printf("evtrack: loaded %d events from %s", len(events), *eventsFile)

	if *cameraParams != "" {
		cam, err := calibration.LoadCalibration(*cameraParams)
		if err != nil {
			log.Fatalf("evtrack: %v", err)
		}
		log.Printf("evtrack: undistorting %d events as a preprocessing step", len(events))
		for i := range events {
			ux, uy := cam.Undistort(float64(events[i].X), float64(events[i].Y))
			events[i].X, events[i].Y = float32(ux), float32(uy)
		}
	}

	seeds, err := loadSeeds(*seedFlag, *seedsFile)
	if err != nil {
		log.Fatalf("evtrack: %v", err)
	}

	policy := driver.Regular
	if *centered {
		policy = driver.Centered
		log.Print("evtrack: centred tracker initialisation enforced (-centered=true): each tracker will initialise as close as spatio-temporally possible to its seed.")
	} else {
		log.Print("evtrack: centred tracker initialisation not enforced: each tracker will initialise arbitrarily later than its seed.")
	}

	cfg := driver.Config{
		TrackerType: *trackerType,
		Policy:      policy,
		ImageWidth:  width,
		ImageHeight: height,
	}

	results, timing := driver.RunAll(cfg, seeds, events)

	var trail []dataset.PoseRecord
	for _, r := range results {
		if !r.Initialised {
			log.Printf("evtrack: seed %s could not be initialised, skipping", r.SeedID)
			continue
		}
		log.Printf("evtrack: seed %s tracked across %d events, %d poses recorded", r.SeedID, r.EventsWalked, len(r.Trail))
		trail = append(trail, r.Trail...)
	}

	if *outputFile != "" {
		if err := dataset.WriteTrail(*outputFile, trail); err != nil {
			log.Fatalf("evtrack: %v", err)
		}
		log.Printf("evtrack: wrote %d pose records to %s", len(trail), *outputFile)
	}

	if *outputDB != "" {
		db, err := posetrail.Open(*outputDB)
		if err != nil {
			log.Fatalf("evtrack: %v", err)
		}
		defer db.Close()
		if err := db.InsertRecords(trail); err != nil {
			log.Fatalf("evtrack: %v", err)
		}
		log.Printf("evtrack: wrote %d pose records to %s", len(trail), *outputDB)
	}

	fmt.Print(timing.Report())
}

func parseCameraSize(s string) (width, height int, err error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid -camera-size %q, expected WIDTHxHEIGHT", s)
	}
	width, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -camera-size width %q: %w", parts[0], err)
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -camera-size height %q: %w", parts[1], err)
	}
	return width, height, nil
}

func loadSeeds(single, file string) ([]dataset.Seed, error) {
	if file != "" {
		seeds, err := dataset.LoadSeeds(file)
		if err != nil {
			return nil, err
		}
		if len(seeds) == 0 {
			return nil, fmt.Errorf("no seeds loaded from %s", file)
		}
		return seeds, nil
	}
	seed, err := dataset.ParseSeed(single)
	if err != nil {
		return nil, err
	}
	return []dataset.Seed{seed}, nil
}
