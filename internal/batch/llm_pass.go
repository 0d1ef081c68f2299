package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"lafter/internal/label"
	"lafter/internal/logging"
	"lafter/internal/queue"
	"lafter/internal/services"
	"lafter/internal/telemetry"
	"lafter/internal/titlellm"
)

// RunLLM re-checks up to limit model-rejected videos with the LLM. Positives
// return to pending; parse failures are recorded and skipped; transport
// failures leave the video untouched for the next run.
func (r *Runner) RunLLM(ctx context.Context, limit int) (Summary, error) {
	if !r.llm.Enabled() {
		return Summary{Pass: telemetry.PassLLM}, services.Wrap(services.ErrConfiguration, "batch", "llm pass", "llm classifier not configured", nil)
	}
	ctx, release, err := r.begin(ctx, telemetry.PassLLM)
	if err != nil {
		return Summary{Pass: telemetry.PassLLM}, err
	}
	defer release()

	started := time.Now()
	summary := newSummary(ctx, telemetry.PassLLM)
	err = r.runLLM(ctx, limit, &summary)
	r.finish(ctx, &summary, started, err)
	return summary, err
}

type llmOutcome int

const (
	outcomeComedy llmOutcome = iota
	outcomeOther
	outcomeParseFailure
	outcomeTransportFailure
)

func (r *Runner) runLLM(ctx context.Context, limit int, summary *Summary) error {
	videos, err := r.store.ModelRejectedPage(ctx, r.effectiveLimit(limit))
	if err != nil {
		return fmt.Errorf("load model rejections: %w", err)
	}
	if len(videos) == 0 {
		return nil
	}

	workers := r.limits.LLMConcurrency
	if workers <= 0 {
		workers = 1
	}
	if workers > len(videos) {
		workers = len(videos)
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if rps := r.limits.LLMRequestsPerSecond; rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	jobs := make(chan *queue.Video)
	record := func(outcome llmOutcome, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		summary.Processed++
		switch outcome {
		case outcomeComedy:
			summary.Comedy++
		case outcomeOther:
			summary.Other++
		case outcomeParseFailure:
			summary.ParseFailures++
		case outcomeTransportFailure:
			summary.TransportFailures++
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.metrics.WorkerStarted()
			defer r.metrics.WorkerStopped()
			for video := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					record(0, err)
					continue
				}
				record(r.checkVideo(ctx, video))
			}
		}()
	}

feed:
	for _, video := range videos {
		select {
		case jobs <- video:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return firstErr
}

// checkVideo classifies one video. The returned error is non-nil only when
// the store write fails; LLM failures are outcomes.
func (r *Runner) checkVideo(ctx context.Context, video *queue.Video) (llmOutcome, error) {
	itemCtx := services.WithItemID(ctx, video.ID)
	logger := logging.WithContext(itemCtx, r.logger)

	started := time.Now()
	verdict, err := r.llm.Classify(itemCtx, video.Title)
	elapsed := time.Since(started)

	var parseErr *titlellm.ParseError
	switch {
	case errors.As(err, &parseErr):
		r.metrics.RecordLLMFailure("parse")
		logger.Warn("llm verdict rejected",
			slog.String(logging.FieldErrorKind, "parse"),
			slog.String("reason", parseErr.Reason),
			slog.String("title", video.Title),
		)
		if err := r.store.RecordLLMFailure(itemCtx, video.ID, parseErr.Raw, parseErr.Error()); err != nil {
			return 0, fmt.Errorf("record llm failure for video %d: %w", video.ID, err)
		}
		return outcomeParseFailure, nil
	case err != nil:
		kind := services.Kind(err)
		r.metrics.RecordLLMFailure(kind)
		logger.Warn("llm call failed",
			slog.String(logging.FieldErrorKind, kind),
			slog.String("title", video.Title),
			logging.Error(err),
		)
		return outcomeTransportFailure, nil
	}

	r.metrics.RecordClassification(telemetry.PassLLM, verdict.Label.String(), elapsed)
	if err := r.store.RecordLLMVerdict(itemCtx, video.ID, verdict.Label, verdict.Raw); err != nil {
		return 0, fmt.Errorf("record llm verdict for video %d: %w", video.ID, err)
	}
	logger.Debug("llm verdict",
		slog.String("title", video.Title),
		slog.String("label", verdict.Label.String()),
		slog.Duration("elapsed", elapsed),
	)
	if verdict.Label == label.Comedy {
		return outcomeComedy, nil
	}
	return outcomeOther, nil
}
