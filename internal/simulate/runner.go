package simulate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	service "github.com/okian/sireline/internal/app"
	"github.com/okian/sireline/internal/domain/model"
	"github.com/okian/sireline/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	outputPermission    = 0600
)

// Drain polling constants.
const (
	drainPollInterval    = 50 * time.Millisecond
	defaultDrainWait     = 30 * time.Second
	percentageMultiplier = 100
)

// Run generates a batch of births, pushes them through the service, and
// reports the resulting trait distribution.
func Run(ctx context.Context, config *Config, svc *service.Service) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting breeding simulation",
		logger.Int("births", config.NumBirths),
		logger.Int("workers", config.Workers),
		logger.String("drainWait", config.DrainWait.String()),
		logger.Any("verbose", config.Verbose))

	// Step 1: Generate birth events
	events, err := generateBirths(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("birth generation failed: %w", err)
	}

	// Step 2: Submit events concurrently
	submitBirths(ctx, config, svc, events, stats)

	// Step 3: Wait for the queue to drain
	if err := waitForDrain(ctx, config, svc); err != nil {
		return fmt.Errorf("queue drain failed: %w", err)
	}

	// Step 4: Verify outcomes were recorded
	verifyOutcomes(ctx, svc, events, stats)

	// Step 5: Report trait distribution
	displayTraitDistribution(ctx, svc, stats)

	// Step 6: Save events to file
	if config.OutputFile != "" {
		if err := saveEventsToFile(ctx, config, events); err != nil {
			logger.Get().Warn(ctx, "failed to save events to file", logger.Error(err))
		}
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// submitBirths pushes events into the service using a bounded worker pool.
func submitBirths(ctx context.Context, config *Config, svc *service.Service, events []model.BirthEvent, stats *Stats) {
	logger.Get().Info(ctx, "submitting birth events", logger.Int("count", len(events)))

	var (
		mu       sync.Mutex
		accepted int
		dropped  int
	)

	workerCount := minInt(config.Workers, len(events))
	if workerCount < 1 {
		workerCount = 1
	}

	eventChan := make(chan model.BirthEvent, workerCount)
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for event := range eventChan {
				ok := svc.Enqueue(ctx, event)
				mu.Lock()
				if ok {
					accepted++
				} else {
					dropped++
				}
				mu.Unlock()
			}
		}()
	}

	for _, event := range events {
		select {
		case <-ctx.Done():
			close(eventChan)
			wg.Wait()
			return
		case eventChan <- event:
		}
	}
	close(eventChan)
	wg.Wait()

	stats.EventsSubmitted = len(events)
	stats.EventsAccepted = accepted
	stats.EventsDropped = dropped

	logger.Get().Info(ctx, "submitted birth events",
		logger.Int("accepted", accepted),
		logger.Int("dropped", dropped))
}

// waitForDrain polls the service until the queue is empty or the wait expires.
func waitForDrain(ctx context.Context, config *Config, svc *service.Service) error {
	wait := config.DrainWait
	if wait <= 0 {
		wait = defaultDrainWait
	}

	deadline := time.Now().Add(wait)
	for {
		stats := svc.GetStats()
		queueLen, _ := stats["queueLength"].(int)
		if queueLen == 0 {
			// One extra poll interval lets in-flight births finish
			time.Sleep(drainPollInterval)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("queue still has %d events after %s", queueLen, wait)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(drainPollInterval):
		}
	}
}

// verifyOutcomes checks every submitted foal has a recorded outcome.
func verifyOutcomes(ctx context.Context, svc *service.Service, events []model.BirthEvent, stats *Stats) {
	recorded := 0
	for _, event := range events {
		if _, err := svc.Outcome(ctx, event.FoalID); err == nil {
			recorded++
		}
	}
	stats.FoalsRecorded = recorded

	logger.Get().Info(ctx, "verified recorded outcomes",
		logger.Int("recorded", recorded),
		logger.Int("submitted", len(events)))
}

// displayTraitDistribution logs how often each trait was granted.
func displayTraitDistribution(ctx context.Context, svc *service.Service, stats *Stats) {
	counts := svc.TraitCounts(ctx)
	if len(counts) == 0 {
		logger.Get().Warn(ctx, "no traits were granted")
		return
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]logger.Field, 0, len(names))
	for _, name := range names {
		share := float64(counts[name]) / float64(maxInt(stats.FoalsRecorded, 1)) * percentageMultiplier
		fields = append(fields, logger.String(name, fmt.Sprintf("%d (%.1f%%)", counts[name], share)))
	}
	logger.Get().Info(ctx, "trait distribution", fields...)
}

// saveEventsToFile saves the generated events to a JSON file.
func saveEventsToFile(ctx context.Context, config *Config, events []model.BirthEvent) error {
	if len(events) == 0 {
		return fmt.Errorf("no events to save")
	}

	filename := config.OutputFile

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	if err := os.WriteFile(filename, data, outputPermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "events saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var recordedRate, birthsPerSecond float64

	if stats.EventsSubmitted > 0 {
		recordedRate = float64(stats.FoalsRecorded) / float64(stats.EventsSubmitted) * percentageMultiplier
	}

	if stats.Duration > 0 {
		birthsPerSecond = float64(stats.EventsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("eventsGenerated", stats.EventsGenerated),
		logger.Int("eventsSubmitted", stats.EventsSubmitted),
		logger.Int("eventsAccepted", stats.EventsAccepted),
		logger.Int("eventsDropped", stats.EventsDropped),
		logger.Int("foalsRecorded", stats.FoalsRecorded),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("recordedRate", recordedRate),
		logger.Float64("birthsPerSecond", birthsPerSecond))
}

// maxInt returns the maximum of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
