package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"lafter/internal/services"
)

func selectVideos() sq.SelectBuilder {
	return sq.Select(videoColumns...).From("videos")
}

// Add inserts a pending video. Adding an existing video_id is a no-op that
// returns the stored row with created=false.
func (s *Store) Add(ctx context.Context, in NewVideo) (*Video, bool, error) {
	videoID := strings.TrimSpace(in.VideoID)
	title := strings.TrimSpace(in.Title)
	if videoID == "" {
		return nil, false, services.Wrap(services.ErrValidation, "queue", "add", "video id is required", nil)
	}
	if title == "" {
		return nil, false, services.Wrap(services.ErrValidation, "queue", "add", "title is required", nil)
	}

	now := timestamp()
	query, args, err := sq.Insert("videos").
		Columns("video_id", "channel_id", "title", "status", "created_at", "updated_at").
		Values(videoID, nullableString(strings.TrimSpace(in.ChannelID)), title, StatusPending, now, now).
		Suffix("ON CONFLICT(video_id) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build insert: %w", err)
	}
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("insert video: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}

	video, err := s.GetByVideoID(ctx, videoID)
	if err != nil {
		return nil, false, err
	}
	return video, affected > 0, nil
}

// GetByID fetches a video by row identifier. Missing rows return (nil, nil).
func (s *Store) GetByID(ctx context.Context, id int64) (*Video, error) {
	return s.getOne(ctx, sq.Eq{"id": id})
}

// GetByVideoID fetches a video by its external identifier.
func (s *Store) GetByVideoID(ctx context.Context, videoID string) (*Video, error) {
	return s.getOne(ctx, sq.Eq{"video_id": strings.TrimSpace(videoID)})
}

func (s *Store) getOne(ctx context.Context, where sq.Eq) (*Video, error) {
	query, args, err := selectVideos().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	video, err := scanVideo(s.db.QueryRowContext(ensureContext(ctx), query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// List returns videos ordered by id, optionally filtered by status.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]*Video, error) {
	builder := selectVideos().OrderBy("id")
	if len(filter.Statuses) > 0 {
		builder = builder.Where(sq.Eq{"status": filter.Statuses})
	}
	switch {
	case filter.Limit > 0:
		builder = builder.Limit(uint64(filter.Limit))
		if filter.Offset > 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	case filter.Offset > 0:
		// SQLite only accepts OFFSET after a LIMIT clause.
		builder = builder.Suffix("LIMIT -1 OFFSET ?", filter.Offset)
	}
	return s.query(ctx, builder)
}

// PendingPage returns up to limit pending videos that no pass has classified yet.
func (s *Store) PendingPage(ctx context.Context, limit int) ([]*Video, error) {
	builder := selectVideos().
		Where(sq.Eq{"status": StatusPending, "classified_by": nil}).
		OrderBy("id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return s.query(ctx, builder)
}

// ModelRejectedPage returns up to limit videos rejected by the model pass that
// the LLM pass has not checked yet.
func (s *Store) ModelRejectedPage(ctx context.Context, limit int) ([]*Video, error) {
	builder := selectVideos().
		Where(sq.Eq{"status": StatusRejected, "classified_by": ByModel, "llm_checked": 0}).
		OrderBy("id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return s.query(ctx, builder)
}

func (s *Store) query(ctx context.Context, builder sq.SelectBuilder) ([]*Video, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}
