package simulate

import "time"

// Config holds configuration for a breeding simulation run.
type Config struct {
	NumBirths  int           // Number of birth events to generate
	Workers    int           // Number of concurrent workers
	DrainWait  time.Duration // How long to wait for the queue to drain
	OutputFile string        // Output file for generated events
	Verbose    bool          // Enable verbose logging
}

// Stats holds simulation statistics.
type Stats struct {
	EventsGenerated int
	EventsSubmitted int
	EventsAccepted  int
	EventsDropped   int
	FoalsRecorded   int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
