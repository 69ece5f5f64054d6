// Package service provides the core breeding service that wires the
// birth queue, worker pool, foal registry, and trait assigner together.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	birthqueue "github.com/okian/sireline/internal/adapters/mq/queue"
	workerpool "github.com/okian/sireline/internal/adapters/mq/worker"
	"github.com/okian/sireline/internal/adapters/registry"
	"github.com/okian/sireline/internal/domain/dedupe"
	"github.com/okian/sireline/internal/domain/epigenetics"
	"github.com/okian/sireline/internal/domain/inbreeding"
	"github.com/okian/sireline/internal/domain/lineage"
	"github.com/okian/sireline/internal/domain/model"
	"github.com/okian/sireline/internal/domain/traits"
	"github.com/okian/sireline/pkg/logger"
	"github.com/okian/sireline/pkg/metrics"
)

// Service implements the breeding pipeline: births go in, trait outcomes
// come out of the registry.
type Service struct {
	mu sync.RWMutex

	// Core components
	foals      registry.Store
	deduper    dedupe.Deduper
	birthQueue *birthqueue.InMemoryQueue
	assigner   *epigenetics.Assigner
	workerPool *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int

	affinityThreshold int
	legacyTalentMin   int
	legacyTalentOdds  float64
	randFloat         func() float64

	stressCalmMax float64
	feedRichMin   float64
	stressHighMin float64
	feedPoorMax   float64

	moderateAt int
	severeAt   int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the birth event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAffinityThreshold sets the ancestor count required for a
// discipline affinity.
func WithAffinityThreshold(threshold int) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.affinityThreshold = threshold
		}
	}
}

// WithLegacyTalent sets the ancestor count that triggers the legacy
// talent roll and the odds of granting it.
func WithLegacyTalent(minAncestors int, odds float64) Option {
	return func(s *Service) {
		if minAncestors > 0 {
			s.legacyTalentMin = minAncestors
		}
		if odds >= 0 && odds <= 1 {
			s.legacyTalentOdds = odds
		}
	}
}

// WithMaternalThresholds sets the stress and feed bounds for the
// maternal-care rules.
func WithMaternalThresholds(stressCalmMax, feedRichMin, stressHighMin, feedPoorMax float64) Option {
	return func(s *Service) {
		s.stressCalmMax = stressCalmMax
		s.feedRichMin = feedRichMin
		s.stressHighMin = stressHighMin
		s.feedPoorMax = feedPoorMax
	}
}

// WithSeverityBands sets the duplicate-count bands for inbreeding severity.
func WithSeverityBands(moderateAt, severeAt int) Option {
	return func(s *Service) {
		if moderateAt > 0 && severeAt >= moderateAt {
			s.moderateAt = moderateAt
			s.severeAt = severeAt
		}
	}
}

// WithRandFloat overrides the randomness source for legacy talent rolls.
func WithRandFloat(randFloat func() float64) Option {
	return func(s *Service) {
		if randFloat != nil {
			s.randFloat = randFloat
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:       runtime.NumCPU() * 2,
		queueSize:         10000,
		dedupeSize:        50000,
		affinityThreshold: 3,
		legacyTalentMin:   4,
		legacyTalentOdds:  0.25,
		stressCalmMax:     20,
		feedRichMin:       80,
		stressHighMin:     80,
		feedPoorMax:       30,
		moderateAt:        2,
		severeAt:          4,
		logger:            nil, // resolved when the service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting breeding service...")

	// Initialize components
	s.foals = registry.NewMemoryStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.birthQueue = birthqueue.NewInMemoryQueue(
		birthqueue.WithCapacity(s.queueSize),
	)

	assignerOpts := []epigenetics.Option{
		epigenetics.WithAnalyzer(lineage.NewAnalyzer(
			lineage.WithAffinityThreshold(s.affinityThreshold),
		)),
		epigenetics.WithDetector(inbreeding.NewDetector(
			inbreeding.WithModerateAt(s.moderateAt),
			inbreeding.WithSevereAt(s.severeAt),
		)),
		epigenetics.WithStressCalmMax(s.stressCalmMax),
		epigenetics.WithFeedRichMin(s.feedRichMin),
		epigenetics.WithStressHighMin(s.stressHighMin),
		epigenetics.WithFeedPoorMax(s.feedPoorMax),
		epigenetics.WithLegacyTalentMin(s.legacyTalentMin),
		epigenetics.WithLegacyTalentOdds(s.legacyTalentOdds),
	}
	if s.randFloat != nil {
		assignerOpts = append(assignerOpts, epigenetics.WithRandFloat(s.randFloat))
	}
	s.assigner = epigenetics.NewAssigner(assignerOpts...)

	// Create and start the worker pool
	s.workerPool = workerpool.NewPool(s.workerCount, s.birthQueue, s.assigner, s.foals)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "breeding service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service, draining queued births first.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping breeding service...")

	// Close the queue and wait for workers to drain it
	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "breeding service stopped")
}

// SeenAndRecord atomically checks if an event id was seen and records it if not.
// Returns true if the event was already seen, false if it was newly recorded.
// This is the ONLY method for deduplication - thread-safe and atomic.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordBirthDuplicate()
	}
	return seen
}

// Unrecord removes an event ID from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits a birth event for asynchronous processing. It reports
// whether the event was accepted; duplicates count as accepted.
func (s *Service) Enqueue(ctx context.Context, event model.BirthEvent) bool {
	if event.FoalID == "" {
		s.logger.Warn(ctx, "rejecting birth event without foal id",
			logger.String("eventID", event.EventID),
		)
		return false
	}

	// Fall back to a deterministic event id so retries still dedupe
	if event.EventID == "" {
		event.EventID = fmt.Sprintf("birth_%s", event.FoalID)
	}

	if s.SeenAndRecord(ctx, event.EventID) {
		s.logger.Debug(ctx, "duplicate birth event detected, skipping",
			logger.String("eventID", event.EventID),
			logger.String("foalID", event.FoalID),
		)
		return true
	}

	s.logger.Debug(ctx, "enqueueing birth event",
		logger.String("eventID", event.EventID),
		logger.String("foalID", event.FoalID),
		logger.Int("lineage", len(event.Context.Lineage)),
	)

	success := s.birthQueue.Enqueue(ctx, event)
	if !success {
		// Allow the caller to retry a dropped event
		s.deduper.Unrecord(ctx, event.EventID)
	}
	return success
}

// AssignNow computes and records a trait outcome synchronously, bypassing
// the queue. Useful for callers that need the outcome immediately.
func (s *Service) AssignNow(ctx context.Context, foalID string, birth model.BirthContext) (traits.Outcome, error) {
	outcome, assessment := s.assigner.AssignDetailed(birth)

	if err := s.foals.Record(ctx, foalID, outcome); err != nil {
		return traits.Outcome{}, err
	}

	s.logger.Debug(ctx, "assigned traits synchronously",
		logger.String("foalID", foalID),
		logger.String("severity", string(assessment.Inbreeding.Severity)),
		logger.Any("positive", outcome.PositiveTraits()),
		logger.Any("negative", outcome.NegativeTraits()),
		logger.Any("hidden", outcome.HiddenTraits()),
	)
	return outcome, nil
}

// Outcome returns the recorded trait outcome for a foal.
func (s *Service) Outcome(ctx context.Context, foalID string) (traits.Outcome, error) {
	return s.foals.Outcome(ctx, foalID)
}

// TraitCounts aggregates how often each trait has been granted.
func (s *Service) TraitCounts(ctx context.Context) map[string]int {
	return s.foals.TraitCounts(ctx)
}

// CheckAffinity reports the dominant discipline affinity of a lineage.
func (s *Service) CheckAffinity(l model.Lineage) lineage.Affinity {
	return s.assigner.Analyzer().CheckAffinity(l)
}

// CheckAffinityDetailed reports the full per-discipline breakdown of a lineage.
func (s *Service) CheckAffinityDetailed(l model.Lineage) lineage.Detail {
	return s.assigner.Analyzer().CheckAffinityDetailed(l)
}

// CheckSpecificAffinity reports affinity for one discipline against a
// caller-supplied ancestor requirement.
func (s *Service) CheckSpecificAffinity(l model.Lineage, discipline string, required int) lineage.SpecificAffinity {
	return s.assigner.Analyzer().CheckSpecificAffinity(l, discipline, required)
}

// DetectInbreeding runs the duplicate-ancestor check on its own.
func (s *Service) DetectInbreeding(l model.Lineage) inbreeding.Report {
	return s.assigner.Detector().Detect(l)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.birthQueue.Len(ctx)
		totalFoals := s.foals.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalFoals"] = totalFoals

		// Update metrics
		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateFoalsRegistered(totalFoals)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
