package testsupport

import (
	"context"
	"testing"

	"lafter/internal/config"
	"lafter/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddVideo inserts a pending video for tests using the provided store.
func AddVideo(t testing.TB, store *queue.Store, videoID, title string) *queue.Video {
	t.Helper()

	video, _, err := store.Add(context.Background(), queue.NewVideo{VideoID: videoID, ChannelID: "channel-1", Title: title})
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return video
}
