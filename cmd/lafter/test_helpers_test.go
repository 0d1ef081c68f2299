package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lafter/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	dataDir    string
	modelPath  string
}

type envOption func(*envSettings)

type envSettings struct {
	llmURL string
}

func withLLM(url string) envOption {
	return func(s *envSettings) { s.llmURL = url }
}

func setupCLITestEnv(t *testing.T, opts ...envOption) *cliTestEnv {
	t.Helper()

	var settings envSettings
	for _, opt := range opts {
		opt(&settings)
	}

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("LAFTER_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		dataDir:    filepath.Join(base, "data"),
		modelPath:  testsupport.WriteModel(t, filepath.Join(base, "models"), testsupport.SampleArtifact()),
	}

	var content strings.Builder
	fmt.Fprintf(&content, "[paths]\ndata_dir = %q\nlog_dir = %q\n\n", env.dataDir, filepath.Join(base, "logs"))
	fmt.Fprintf(&content, "[classifier]\nmodel_path = %q\nthreshold = 0.5\n\n", env.modelPath)
	if settings.llmURL != "" {
		fmt.Fprintf(&content, "[llm]\napi_key = \"test-key\"\nbase_url = %q\nretry_attempts = 1\n\n", settings.llmURL)
	}
	content.WriteString("[batch]\nmax_items = 50\nllm_concurrency = 2\nllm_requests_per_second = 100\n\n")
	content.WriteString("[logging]\nlevel = \"error\"\n")
	if err := os.WriteFile(env.configPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// fakeLLMServer answers health pings with {"ok":true} and labels any title
// containing a comedy marker as "true".
func fakeLLMServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		user := ""
		if n := len(req.Messages); n > 0 {
			user = req.Messages[n-1].Content
		}
		content := `{"label": "false"}`
		switch {
		case strings.Contains(user, `{"ok":true}`):
			content = `{"ok":true}`
		case strings.Contains(user, "漫才"), strings.Contains(user, "コント"):
			content = `{"label": "true"}`
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{
				"finish_reason": "stop",
				"message":       map[string]any{"content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected output to contain %q, got:\n%s", substr, output)
	}
}
