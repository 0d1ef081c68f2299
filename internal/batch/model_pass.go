package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lafter/internal/label"
	"lafter/internal/logging"
	"lafter/internal/queue"
	"lafter/internal/services"
	"lafter/internal/telemetry"
)

// RunModel classifies up to limit unclassified pending videos (capped by
// max_items) and records approved/rejected verdicts.
func (r *Runner) RunModel(ctx context.Context, limit int) (Summary, error) {
	ctx, release, err := r.begin(ctx, telemetry.PassModel)
	if err != nil {
		return Summary{Pass: telemetry.PassModel}, err
	}
	defer release()

	started := time.Now()
	summary := newSummary(ctx, telemetry.PassModel)
	err = r.runModel(ctx, limit, &summary)
	r.finish(ctx, &summary, started, err)
	return summary, err
}

func (r *Runner) runModel(ctx context.Context, limit int, summary *Summary) error {
	videos, err := r.store.PendingPage(ctx, r.effectiveLimit(limit))
	if err != nil {
		return fmt.Errorf("load pending videos: %w", err)
	}
	for _, video := range videos {
		if err := ctx.Err(); err != nil {
			return err
		}
		itemCtx := services.WithItemID(ctx, video.ID)
		started := time.Now()
		result := r.classifier.ClassifyTitle(video.Title)
		r.metrics.RecordClassification(telemetry.PassModel, result.Label.String(), time.Since(started))

		verdict := queue.ModelVerdict{
			NormalizedTitle: result.NormalizedTitle,
			Probability:     result.Probability,
			Label:           result.Label,
		}
		if err := r.store.RecordModelVerdict(itemCtx, video.ID, verdict); err != nil {
			return fmt.Errorf("record verdict for video %d: %w", video.ID, err)
		}
		summary.Processed++
		if result.Label == label.Comedy {
			summary.Comedy++
		} else {
			summary.Other++
		}
		logging.WithContext(itemCtx, r.logger).Debug("model verdict",
			slog.String("title", video.Title),
			slog.Float64("probability", result.Probability),
			slog.String("label", result.Label.String()),
		)
	}
	return nil
}
