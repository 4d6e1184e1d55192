package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"matchlock/internal/catalog"
	"matchlock/internal/events"
	"matchlock/internal/logging"
	"matchlock/internal/match"
)

// DefaultWorkers is the worker pool width when the caller does not override it.
const DefaultWorkers = 4

// SnapshotProvider supplies the read-only catalog snapshot for one batch.
type SnapshotProvider interface {
	LoadSnapshot(ctx context.Context) ([]match.Entry, error)
}

// OutcomeSink persists resolved requests. Implementations must be safe for
// concurrent use; workers call RecordOutcome in parallel.
type OutcomeSink interface {
	RecordOutcome(ctx context.Context, outcome catalog.Outcome) error
}

// Summary reports a finished batch.
type Summary struct {
	BatchID   string `json:"batch_id"`
	Total     int    `json:"total"`
	Ambiguous int    `json:"ambiguous"`
}

// ResultPayload accompanies every result event. Recorded is false when the
// outcome could not be durably persisted; the result still counts toward the
// batch totals.
type ResultPayload struct {
	BatchID  string       `json:"batch_id"`
	Result   match.Result `json:"result"`
	Recorded bool         `json:"recorded"`
}

// CancelledPayload accompanies the cancelled terminal event.
type CancelledPayload struct {
	BatchID   string `json:"batch_id"`
	Reason    string `json:"reason"`
	Total     int    `json:"total"`
	Ambiguous int    `json:"ambiguous"`
}

// Runner executes batches against a snapshot provider and persistence sink.
type Runner struct {
	provider   SnapshotProvider
	sink       OutcomeSink
	hub        *events.Hub
	logger     *slog.Logger
	workers    int
	engineOpts []match.Option
}

// Option configures optional Runner behavior.
type Option func(*Runner)

// WithWorkers overrides the worker pool width.
func WithWorkers(workers int) Option {
	return func(r *Runner) {
		if workers > 0 {
			r.workers = workers
		}
	}
}

// WithEngineOptions passes tuning through to each batch's engine.
func WithEngineOptions(opts ...match.Option) Option {
	return func(r *Runner) {
		r.engineOpts = opts
	}
}

// New constructs a Runner. The hub may be nil when no observer cares about
// progress; logger nil falls back to a no-op logger.
func New(provider SnapshotProvider, sink OutcomeSink, hub *events.Hub, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		provider: provider,
		sink:     sink,
		hub:      hub,
		logger:   logging.NewComponentLogger(logger, "runner"),
		workers:  DefaultWorkers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every request to completion or cancellation and returns the
// batch totals. A snapshot load failure aborts before any worker starts; a
// persistence failure for one item never aborts the batch. Results are
// persisted and published in completion order, not input order.
func (r *Runner) Run(ctx context.Context, batchID string, requests []match.Request) (Summary, error) {
	if batchID == "" {
		batchID = uuid.NewString()
	}
	logger := r.logger.With(logging.String("batch_id", batchID))

	r.hub.Reset()

	snapshot, err := r.provider.LoadSnapshot(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load catalog snapshot: %w", err)
	}
	engine := match.NewEngine(snapshot, r.engineOpts...)
	logger.Info("batch started",
		logging.Int("requests", len(requests)),
		logging.Int("snapshot_entries", engine.Size()))

	work := make(chan match.Request, len(requests))
	for _, req := range requests {
		work <- req
	}
	close(work)

	workers := r.workers
	if workers > len(requests) {
		workers = len(requests)
	}
	if workers < 1 {
		workers = 1
	}

	var (
		total     atomic.Int64
		ambiguous atomic.Int64
		wg        sync.WaitGroup
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for req := range work {
				select {
				case <-ctx.Done():
					return
				default:
				}
				r.processRequest(ctx, logger, engine, batchID, req, &total, &ambiguous)
			}
		}()
	}
	wg.Wait()

	summary := Summary{
		BatchID:   batchID,
		Total:     int(total.Load()),
		Ambiguous: int(ambiguous.Load()),
	}

	if ctx.Err() != nil {
		logger.Info("batch cancelled",
			logging.Int("total", summary.Total),
			logging.Int("ambiguous", summary.Ambiguous))
		r.hub.Publish(events.EventCancelled, CancelledPayload{
			BatchID:   batchID,
			Reason:    ctx.Err().Error(),
			Total:     summary.Total,
			Ambiguous: summary.Ambiguous,
		})
	} else {
		logger.Info("batch complete",
			logging.Int("total", summary.Total),
			logging.Int("ambiguous", summary.Ambiguous))
		r.hub.Publish(events.EventComplete, summary)
	}
	r.hub.ScheduleReset()

	return summary, nil
}

func (r *Runner) processRequest(
	ctx context.Context,
	logger *slog.Logger,
	engine *match.Engine,
	batchID string,
	req match.Request,
	total, ambiguous *atomic.Int64,
) {
	result := engine.Resolve(req)

	// An item taken before cancellation completes its persist, so the
	// write uses a context that survives the batch's cancellation.
	recorded := true
	if err := r.sink.RecordOutcome(context.WithoutCancel(ctx), catalog.OutcomeFromResult(batchID, req, result)); err != nil {
		recorded = false
		logger.Warn("match outcome not durably recorded",
			logging.String("request_id", req.ID),
			logging.Error(err))
	}

	total.Add(1)
	if result.Ambiguous {
		ambiguous.Add(1)
	}

	r.hub.Publish(events.EventResult, ResultPayload{
		BatchID:  batchID,
		Result:   result,
		Recorded: recorded,
	})
}
