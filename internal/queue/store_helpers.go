package queue

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lafter/internal/label"
)

var videoColumns = []string{
	"id", "video_id", "channel_id", "title", "status", "normalized_title",
	"probability", "label", "classified_by", "llm_label", "llm_raw",
	"llm_checked", "error_message", "created_at", "updated_at",
}

func scanVideo(scanner interface{ Scan(dest ...any) error }) (*Video, error) {
	var (
		video        Video
		channelID    sql.NullString
		normalized   sql.NullString
		probability  sql.NullFloat64
		modelLabel   sql.NullInt64
		classifiedBy sql.NullString
		llmLabel     sql.NullInt64
		llmRaw       sql.NullString
		llmChecked   int
		errorMessage sql.NullString
		createdRaw   string
		updatedRaw   string
	)
	if err := scanner.Scan(
		&video.ID,
		&video.VideoID,
		&channelID,
		&video.Title,
		&video.Status,
		&normalized,
		&probability,
		&modelLabel,
		&classifiedBy,
		&llmLabel,
		&llmRaw,
		&llmChecked,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	video.ChannelID = channelID.String
	video.NormalizedTitle = normalized.String
	video.Probability = probability.Float64
	video.Label = label.Label(modelLabel.Int64)
	video.ClassifiedBy = classifiedBy.String
	if llmLabel.Valid {
		l := label.Label(llmLabel.Int64)
		video.LLMLabel = &l
	}
	video.LLMRaw = llmRaw.String
	video.LLMChecked = llmChecked != 0
	video.ErrorMessage = errorMessage.String

	var err error
	if video.CreatedAt, err = parseTimeString(createdRaw); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if video.UpdatedAt, err = parseTimeString(updatedRaw); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &video, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
