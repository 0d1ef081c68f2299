package api

import (
	"context"

	"lafter/internal/queue"
)

// QueueReader abstracts queue persistence interactions needed for API queries.
type QueueReader interface {
	List(ctx context.Context, filter queue.ListFilter) ([]*queue.Video, error)
	Stats(ctx context.Context) (queue.Stats, error)
	GetByID(ctx context.Context, id int64) (*queue.Video, error)
}

// QueueService exposes read-only queue operations returning API DTOs.
type QueueService struct {
	store QueueReader
}

// NewQueueService constructs a QueueService around the provided reader.
func NewQueueService(store QueueReader) *QueueService {
	if store == nil {
		return nil
	}
	return &QueueService{store: store}
}

// List returns queue rows matching filter.
func (s *QueueService) List(ctx context.Context, filter queue.ListFilter) ([]VideoItem, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	videos, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return FromVideos(videos), nil
}

// Stats returns queue summary counts.
func (s *QueueService) Stats(ctx context.Context) (QueueStats, error) {
	if s == nil || s.store == nil {
		return QueueStats{}, nil
	}
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return QueueStats{}, err
	}
	return FromStats(stats), nil
}

// Describe fetches a single queue row. Missing rows return (nil, nil).
func (s *QueueService) Describe(ctx context.Context, id int64) (*VideoItem, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	video, err := s.store.GetByID(ctx, id)
	if err != nil || video == nil {
		return nil, err
	}
	dto := FromVideo(video)
	return &dto, nil
}
