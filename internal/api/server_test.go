package api_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"lafter/internal/api"
	"lafter/internal/classifier"
	"lafter/internal/logging"
	"lafter/internal/testsupport"
)

func TestServerServesUntilCanceled(t *testing.T) {
	cls, err := classifier.New(testsupport.SampleModel(t), nil, 0.5)
	if err != nil {
		t.Fatalf("classifier.New: %v", err)
	}
	handler, err := api.NewHandler(cls)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	server := api.NewServer(listener.Addr().String(), handler, logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, listener) }()

	url := fmt.Sprintf("http://%s/health", listener.Addr().String())
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
