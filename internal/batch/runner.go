package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"lafter/internal/classifier"
	"lafter/internal/config"
	"lafter/internal/logging"
	"lafter/internal/queue"
	"lafter/internal/services"
	"lafter/internal/telemetry"
	"lafter/internal/titlellm"
)

// ErrLocked reports that another batch run holds the lock.
var ErrLocked = errors.New("another batch run is in progress")

// Summary reports what one run did.
type Summary struct {
	RunID             string        `json:"runId"`
	Pass              string        `json:"pass"`
	Processed         int           `json:"processed"`
	Comedy            int           `json:"comedy"`
	Other             int           `json:"other"`
	ParseFailures     int           `json:"parseFailures"`
	TransportFailures int           `json:"transportFailures"`
	Duration          time.Duration `json:"duration"`
}

// Runner executes batch passes against a queue store.
type Runner struct {
	store      *queue.Store
	classifier *classifier.Classifier
	llm        *titlellm.Classifier
	limits     config.Batch
	lockPath   string
	logger     *slog.Logger
	metrics    *telemetry.Provider
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLLM binds the LLM classifier used by RunLLM.
func WithLLM(llm *titlellm.Classifier) Option {
	return func(r *Runner) { r.llm = llm }
}

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithMetrics sets the telemetry provider.
func WithMetrics(metrics *telemetry.Provider) Option {
	return func(r *Runner) { r.metrics = metrics }
}

// NewRunner constructs a runner for the configured limits and lock path.
func NewRunner(cfg *config.Config, store *queue.Store, cls *classifier.Classifier, opts ...Option) (*Runner, error) {
	if cfg == nil || store == nil || cls == nil {
		return nil, services.Wrap(services.ErrConfiguration, "batch", "new runner", "config, store, and classifier are required", nil)
	}
	r := &Runner{
		store:      store,
		classifier: cls,
		limits:     cfg.Batch,
		lockPath:   cfg.BatchLockPath(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "batch")
	return r, nil
}

func (r *Runner) effectiveLimit(limit int) int {
	ceiling := r.limits.MaxItems
	if limit <= 0 || (ceiling > 0 && limit > ceiling) {
		return ceiling
	}
	return limit
}

// begin acquires the run lock and returns a release func plus a context
// tagged with a fresh run ID.
func (r *Runner) begin(ctx context.Context, pass string) (context.Context, func(), error) {
	if dir := filepath.Dir(r.lockPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create lock directory: %w", err)
		}
	}
	lock := flock.New(r.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, nil, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !ok {
		return nil, nil, fmt.Errorf("%w (lock %s)", ErrLocked, r.lockPath)
	}
	runCtx := services.WithPass(services.WithRunID(ctx, uuid.NewString()), pass)
	release := func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release batch lock", logging.Error(err))
		}
	}
	return runCtx, release, nil
}

func newSummary(ctx context.Context, pass string) Summary {
	runID, _ := services.RunIDFromContext(ctx)
	return Summary{RunID: runID, Pass: pass}
}

func (r *Runner) finish(ctx context.Context, summary *Summary, started time.Time, err error) {
	summary.Duration = time.Since(started)
	outcome := "ok"
	if err != nil {
		outcome = services.Kind(err)
	}
	r.metrics.RecordBatchRun(summary.Pass, outcome, summary.Processed)

	logger := logging.WithContext(ctx, r.logger)
	attrs := []any{
		slog.Int("processed", summary.Processed),
		slog.Int("comedy", summary.Comedy),
		slog.Int("other", summary.Other),
		slog.Int("parse_failures", summary.ParseFailures),
		slog.Int("transport_failures", summary.TransportFailures),
		slog.Duration("duration", summary.Duration),
	}
	if err != nil {
		logger.Warn("batch run stopped", append(attrs, logging.Error(err))...)
		return
	}
	logger.Info("batch run complete", attrs...)
}
