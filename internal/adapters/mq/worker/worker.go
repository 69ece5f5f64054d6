// Package worker defines the pool that drains birth events and assigns
// traits during batch breeding runs.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/sireline/internal/domain/epigenetics"
	"github.com/okian/sireline/internal/domain/model"
	"github.com/okian/sireline/internal/domain/traits"
	"github.com/okian/sireline/pkg/logger"
	"github.com/okian/sireline/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Event is what workers read off the queue.
type Event = model.BirthEvent

// Assigner computes the trait outcome for one birth.
type Assigner interface {
	AssignDetailed(ctx model.BirthContext) (traits.Outcome, epigenetics.Assessment)
}

// Recorder stores the outcome assigned to a foal.
type Recorder interface {
	Record(ctx context.Context, foalID string, outcome traits.Outcome) error
}

// Queue defines how workers receive birth events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes birth events until stopped.
type Worker struct {
	queue    Queue
	assigner Assigner
	recorder Recorder
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(queue Queue, assigner Assigner, recorder Recorder, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		assigner: assigner,
		recorder: recorder,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run starts the worker loop until ctx is cancelled or the queue drains
// after close.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := w.processBirth(ctx, event); err != nil {
				w.logger.Error(ctx, "error processing birth event", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processBirth assigns traits for one birth event and records the outcome.
func (w *Worker) processBirth(ctx context.Context, event Event) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	assignStart := time.Now()
	outcome, assessment := w.assigner.AssignDetailed(event.Context)
	metrics.RecordAssignmentLatency(float64(time.Since(assignStart).Milliseconds()))

	if err := w.recorder.Record(ctx, event.FoalID, outcome); err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "recording outcome failed",
			logger.String("eventID", event.EventID),
			logger.String("foalID", event.FoalID),
			logger.Error(err),
		)
		return fmt.Errorf("record outcome for foal %s: %w", event.FoalID, err)
	}

	publishOutcomeMetrics(outcome, assessment)
	metrics.RecordBirthProcessed()

	w.logger.Debug(ctx, "assigned traits at birth",
		logger.String("foalID", event.FoalID),
		logger.Int("positive", len(outcome.Positive)),
		logger.Int("negative", len(outcome.Negative)),
		logger.Int("hidden", len(outcome.Hidden)),
	)
	return nil
}

// publishOutcomeMetrics reports what the rules granted for one birth.
func publishOutcomeMetrics(outcome traits.Outcome, assessment epigenetics.Assessment) {
	metrics.RecordTraitsGranted(string(traits.CategoryPositive), len(outcome.Positive))
	metrics.RecordTraitsGranted(string(traits.CategoryNegative), len(outcome.Negative))
	metrics.RecordTraitsGranted(string(traits.CategoryHidden), len(outcome.Hidden))

	if assessment.Inbreeding.Detected {
		metrics.RecordInbreedingDetected(string(assessment.Inbreeding.Severity))
	}
	if assessment.Affinity.Affinity {
		metrics.RecordAffinityDetected()
	}
	if outcome.HasTrait(traits.LegacyTalent) {
		metrics.RecordLegacyTalentGrant()
	}
}

// Pool manages multiple workers draining one queue.
type Pool struct {
	workers []*Worker
	queue   Queue

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers.
func NewPool(workerCount int, queue Queue, assigner Assigner, recorder Recorder) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*Worker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewWorker(
			queue,
			assigner,
			recorder,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop signals all workers and waits briefly for each to finish.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		select {
		case <-w.shutdown:
			// already signalled
		default:
			close(w.shutdown)
		}
	}

	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
	metrics.UpdateWorkerCount(0)
}

// Shutdown closes the queue and waits for the pool to drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateWorkerCount(0)
	return nil
}
