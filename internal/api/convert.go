package api

import "lafter/internal/queue"

// FromVideo converts a queue row to its API representation.
func FromVideo(video *queue.Video) VideoItem {
	if video == nil {
		return VideoItem{}
	}
	dto := VideoItem{
		ID:              video.ID,
		VideoID:         video.VideoID,
		ChannelID:       video.ChannelID,
		Title:           video.Title,
		Status:          string(video.Status),
		NormalizedTitle: video.NormalizedTitle,
		ClassifiedBy:    video.ClassifiedBy,
		LLMChecked:      video.LLMChecked,
		ErrorMessage:    video.ErrorMessage,
	}
	if video.ClassifiedBy != "" {
		probability := video.Probability
		lbl := int(video.Label)
		dto.Probability = &probability
		dto.Label = &lbl
	}
	if video.LLMLabel != nil {
		lbl := int(*video.LLMLabel)
		dto.LLMLabel = &lbl
	}
	if !video.CreatedAt.IsZero() {
		dto.CreatedAt = video.CreatedAt.UTC().Format(dateTimeFormat)
	}
	if !video.UpdatedAt.IsZero() {
		dto.UpdatedAt = video.UpdatedAt.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromVideos converts a slice of queue rows.
func FromVideos(videos []*queue.Video) []VideoItem {
	out := make([]VideoItem, 0, len(videos))
	for _, video := range videos {
		if video == nil {
			continue
		}
		out = append(out, FromVideo(video))
	}
	return out
}

// FromStats converts queue stats, always listing every known status.
func FromStats(stats queue.Stats) QueueStats {
	dto := QueueStats{
		Total:      stats.Total,
		ByStatus:   make(map[string]int, len(stats.ByStatus)),
		LLMChecked: stats.LLMChecked,
		LLMFailed:  stats.LLMFailed,
	}
	for _, status := range queue.AllStatuses() {
		dto.ByStatus[string(status)] = stats.ByStatus[status]
	}
	return dto
}
