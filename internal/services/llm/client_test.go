package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"lafter/internal/services"
)

func contentResponse(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{
				"finish_reason": "stop",
				"message":       map[string]any{"content": content},
			},
		},
	}
}

func jsonServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request) any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := handler(w, r)
		if payload == nil {
			return
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCompleteJSONSendsPromptsAndHeaders(t *testing.T) {
	var got chatCompletionRequest
	var headers http.Header
	server := jsonServer(t, func(w http.ResponseWriter, r *http.Request) any {
		headers = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		return contentResponse(`{"label":"true"}`)
	})

	client := NewClient(Config{APIKey: "secret", BaseURL: server.URL, Model: "demo-model", Referer: "https://example.test", Title: "lafter"})
	content, err := client.CompleteJSON(context.Background(), "system rules", "【コント】先生")
	if err != nil {
		t.Fatalf("CompleteJSON returned error: %v", err)
	}
	if content != `{"label":"true"}` {
		t.Fatalf("unexpected content %q", content)
	}
	if got.Model != "demo-model" || got.Temperature != 0 || got.ResponseFormat["type"] != "json_object" {
		t.Fatalf("unexpected request %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "【コント】先生" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
	if headers.Get("Authorization") != "Bearer secret" {
		t.Fatalf("unexpected authorization header %q", headers.Get("Authorization"))
	}
	if headers.Get("HTTP-Referer") != "https://example.test" || headers.Get("X-Title") != "lafter" {
		t.Fatalf("unexpected attribution headers %v", headers)
	}
}

func TestCompleteJSONRequiresInputs(t *testing.T) {
	client := NewClient(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1", Model: "m"})
	if _, err := client.CompleteJSON(context.Background(), "", "title"); err == nil {
		t.Fatal("expected error for empty system prompt")
	}
	if _, err := client.CompleteJSON(context.Background(), "sys", "  "); err == nil {
		t.Fatal("expected error for empty user prompt")
	}
	noKey := NewClient(Config{BaseURL: "http://127.0.0.1:1", Model: "m"})
	if _, err := noKey.CompleteJSON(context.Background(), "sys", "title"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestCompleteJSONResponseShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"delta", map[string]any{"choices": []any{map[string]any{"delta": map[string]any{"content": `{"label":"false"}`}}}}},
		{"legacy text", map[string]any{"choices": []any{map[string]any{"text": `{"label":"false"}`}}}},
		{"tool call", map[string]any{"choices": []any{map[string]any{
			"finish_reason": "tool_calls",
			"message": map[string]any{
				"content": "",
				"tool_calls": []any{map[string]any{
					"type":     "function",
					"id":       "call_1",
					"function": map[string]any{"name": "classify", "arguments": `{"label":"false"}`},
				}},
			},
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := jsonServer(t, func(http.ResponseWriter, *http.Request) any { return tt.payload })
			client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"})
			content, err := client.CompleteJSON(context.Background(), "sys", "title")
			if err != nil {
				t.Fatalf("CompleteJSON returned error: %v", err)
			}
			if content != `{"label":"false"}` {
				t.Fatalf("unexpected content %q", content)
			}
		})
	}
}

func TestCompleteJSONEmptyContentHasSnippet(t *testing.T) {
	server := jsonServer(t, func(http.ResponseWriter, *http.Request) any { return contentResponse("") })
	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"})
	_, err := client.CompleteJSON(context.Background(), "sys", "title")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "empty content") || !strings.Contains(err.Error(), "response_snippet=") {
		t.Fatalf("expected empty-content error to include snippet, got %v", err)
	}
}

func TestCompleteJSONContentFilterRefusal(t *testing.T) {
	server := jsonServer(t, func(http.ResponseWriter, *http.Request) any {
		return map[string]any{
			"choices": []any{
				map[string]any{
					"finish_reason": "content_filter",
					"message":       map[string]any{"content": "", "refusal": "I can't help"},
				},
			},
		}
	})
	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"})
	_, err := client.CompleteJSON(context.Background(), "sys", "title")
	empty, ok := AsEmptyContent(err)
	if !ok {
		t.Fatalf("expected empty content error, got %v", err)
	}
	if empty.FinishReason != "content_filter" || empty.Reply() != "I can't help" {
		t.Fatalf("unexpected empty content error %+v", empty)
	}
	if _, ok := AsEmptyContent(errors.New("connection reset")); ok {
		t.Fatal("plain errors are not empty content")
	}
}

func TestCompleteJSONDoesNotRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	server := jsonServer(t, func(w http.ResponseWriter, _ *http.Request) any {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		return map[string]string{"error": "overloaded"}
	})
	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"})
	_, err := client.CompleteJSON(context.Background(), "sys", "title")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestCompleteJSONRetriesOnHTTP429(t *testing.T) {
	var calls atomic.Int32
	server := jsonServer(t, func(w http.ResponseWriter, _ *http.Request) any {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return map[string]string{"error": "rate limited"}
		}
		return contentResponse(`{"label":"true"}`)
	})

	var slept []time.Duration
	client := NewClient(
		Config{APIKey: "k", BaseURL: server.URL, Model: "m"},
		WithSleeper(func(d time.Duration) { slept = append(slept, d) }),
		WithRetryBackoff(0, 10*time.Second),
		WithRetryMaxAttempts(5),
	)
	if _, err := client.CompleteJSON(context.Background(), "sys", "title"); err != nil {
		t.Fatalf("CompleteJSON returned error: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
	if len(slept) != 1 || slept[0] != time.Second {
		t.Fatalf("expected single sleep of 1s, got %v", slept)
	}
}

func TestCompleteJSONRetriesOnEmptyContentThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := jsonServer(t, func(http.ResponseWriter, *http.Request) any {
		if calls.Add(1) < 3 {
			return contentResponse("")
		}
		return contentResponse(`{"label":0}`)
	})
	client := NewClient(
		Config{APIKey: "k", BaseURL: server.URL, Model: "m"},
		WithRetryBackoff(0, 0),
		WithSleeper(func(time.Duration) {}),
		WithRetryMaxAttempts(5),
	)
	content, err := client.CompleteJSON(context.Background(), "sys", "title")
	if err != nil {
		t.Fatalf("CompleteJSON returned error: %v", err)
	}
	if content != `{"label":0}` || calls.Load() != 3 {
		t.Fatalf("unexpected content %q after %d calls", content, calls.Load())
	}
}

func TestCompleteJSONStopsOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := jsonServer(t, func(w http.ResponseWriter, _ *http.Request) any {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		return map[string]string{"error": "bad model"}
	})
	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"}, WithRetryMaxAttempts(4), WithRetryBackoff(0, 0))
	if _, err := client.CompleteJSON(context.Background(), "sys", "title"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected single attempt for 400, got %d", calls.Load())
	}
}

func TestCompleteJSONHonoursCancellation(t *testing.T) {
	server := jsonServer(t, func(http.ResponseWriter, *http.Request) any { return contentResponse(`{"label":"true"}`) })
	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"}, WithRetryMaxAttempts(3))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.CompleteJSON(ctx, "sys", "title")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestClientHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		content string
		status  int
		wantErr bool
	}{
		{name: "plain", content: `{"ok":true}`},
		{name: "code fence", content: "```json\n{\"ok\":true}\n```"},
		{name: "not ok", content: `{"ok":false}`, wantErr: true},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := jsonServer(t, func(w http.ResponseWriter, _ *http.Request) any {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
					return map[string]string{"error": "unauthorized"}
				}
				return contentResponse(tt.content)
			})
			client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"})
			err := client.HealthCheck(context.Background())
			if tt.wantErr && err == nil {
				t.Fatal("expected health check to fail")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("HealthCheck returned error: %v", err)
			}
		})
	}
}

func TestRetryableStatus(t *testing.T) {
	for code, want := range map[int]bool{408: true, 429: true, 500: true, 503: true, 400: false, 401: false, 404: false} {
		if got := RetryableStatus(code); got != want {
			t.Fatalf("RetryableStatus(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestBackoffCapsAtMax(t *testing.T) {
	p := retryPolicy{maxAttempts: 10, baseDelay: time.Second, maxDelay: 5 * time.Second}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second, 5 * time.Second}
	for i, w := range want {
		if got := p.backoff(i + 1); got != w {
			t.Fatalf("backoff(%d) = %v, want %v", i+1, got, w)
		}
	}
}

func TestStatusErrorKinds(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{http.StatusUnauthorized, "configuration"},
		{http.StatusForbidden, "configuration"},
		{http.StatusTooManyRequests, "unavailable"},
		{http.StatusBadGateway, "unavailable"},
		{http.StatusBadRequest, "transient"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &StatusError{StatusCode: tt.code})
			if got := services.Kind(err); got != tt.want {
				t.Fatalf("Kind(%d) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}
