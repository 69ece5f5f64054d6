package simulate

import "os"

// ShowHelp prints usage information for the breeding simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Sireline Breeding Simulator
===========================

Generates synthetic birth events and runs them through the epigenetic
trait assignment pipeline, then reports the trait distribution.

Usage:
  go run cmd/main.go [options]

Options:
  -births int
        Number of birth events to generate and submit (default 10000)
  -workers int
        Number of concurrent submission workers (default CPU cores * 2)
  -drain-wait duration
        How long to wait for the queue to drain (default 30s)
  -output string
        Output file for generated events (optional)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Service configuration comes from SIRELINE_* environment variables or a
YAML file named by SIRELINE_CONFIG, e.g.:

  SIRELINE_WORKER_COUNT=8 SIRELINE_AFFINITY_THRESHOLD=3 go run cmd/main.go

Examples:
  # Simulate with default settings
  go run cmd/main.go

  # Simulate a large crop of foals with more workers
  go run cmd/main.go -births 50000 -workers 16

  # Keep the generated events for inspection
  go run cmd/main.go -births 1000 -output births.json
`)
}
