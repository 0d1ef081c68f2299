package queue

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"lafter/internal/label"
	"lafter/internal/services"
)

// ModelVerdict is the outcome of the rule/model pass for one video.
type ModelVerdict struct {
	NormalizedTitle string
	Probability     float64
	Label           label.Label
}

// RecordModelVerdict stores the model outcome and moves the video to
// approved (comedy) or rejected (other).
func (s *Store) RecordModelVerdict(ctx context.Context, id int64, verdict ModelVerdict) error {
	return s.update(ctx, id, "record model verdict", sq.Eq{
		"normalized_title": verdict.NormalizedTitle,
		"probability":      verdict.Probability,
		"label":            int(verdict.Label),
		"classified_by":    ByModel,
		"status":           StatusForLabel(verdict.Label),
		"error_message":    nil,
	})
}

// RecordLLMVerdict stores the LLM outcome. A comedy verdict sends the video
// back to pending for moderator review; any other verdict leaves the status
// as it is.
func (s *Store) RecordLLMVerdict(ctx context.Context, id int64, verdict label.Label, raw string) error {
	values := sq.Eq{
		"llm_label":     int(verdict),
		"llm_raw":       nullableString(raw),
		"llm_checked":   1,
		"error_message": nil,
	}
	if verdict == label.Comedy {
		values["status"] = StatusPending
		values["classified_by"] = ByLLM
	}
	return s.update(ctx, id, "record llm verdict", values)
}

// RecordLLMFailure marks the video as checked and keeps the raw reply and
// reason. Status and model verdict are not touched.
func (s *Store) RecordLLMFailure(ctx context.Context, id int64, raw, reason string) error {
	return s.update(ctx, id, "record llm failure", sq.Eq{
		"llm_label":     nil,
		"llm_raw":       nullableString(raw),
		"llm_checked":   1,
		"error_message": nullableString(reason),
	})
}

func (s *Store) update(ctx context.Context, id int64, operation string, values sq.Eq) error {
	values["updated_at"] = timestamp()
	query, args, err := sq.Update("videos").SetMap(values).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build %s: %w", operation, err)
	}
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", operation, err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "queue", operation, fmt.Sprintf("video %d", id), nil)
	}
	return nil
}
