// Package titlellm classifies a title by asking an external language model
// for a strict single-key JSON verdict.
//
// The adapter makes exactly one request per call. Transport failures are
// returned wrapped but otherwise untouched. Malformed or empty replies
// surface as *ParseError so callers can choose their own fallback.
package titlellm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lafter/internal/label"
	"lafter/internal/services"
	"lafter/internal/services/llm"
)

// Completer sends a system and user prompt and returns the raw reply text.
// *llm.Client satisfies it.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Verdict is the LLM path output.
type Verdict struct {
	Title string      `json:"title"`
	Label label.Label `json:"label"`
	Raw   string      `json:"raw"`
}

// ParseError reports a reply that does not match {"label": <sentinel>}.
type ParseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "llm verdict: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + " (reply: " + llm.Snippet(e.Raw) + ")"
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// LabelKey is the only key accepted in a verdict object.
const LabelKey = "label"

// ClassifyTitle asks client for a verdict on title. A blank title is a
// validation error and no request is sent.
func ClassifyTitle(ctx context.Context, client Completer, title string) (Verdict, error) {
	if client == nil {
		return Verdict{}, services.Wrap(services.ErrConfiguration, "titlellm", "classify", "llm client not configured", nil)
	}
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return Verdict{}, services.Wrap(services.ErrValidation, "titlellm", "classify", "title is blank", nil)
	}
	raw, err := client.CompleteJSON(ctx, SystemPrompt(), trimmed)
	if empty, ok := llm.AsEmptyContent(err); ok {
		reason := "empty reply"
		if empty.FinishReason != "" {
			reason += " (finish_reason " + empty.FinishReason + ")"
		}
		return Verdict{}, &ParseError{Reason: reason, Raw: empty.Reply(), Err: err}
	}
	if err != nil {
		return Verdict{}, fmt.Errorf("titlellm classify: %w", err)
	}
	lbl, err := ParseVerdict(raw)
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{Title: title, Label: lbl, Raw: raw}, nil
}

// ParseVerdict extracts the first JSON object from raw and validates it.
// Accepted values are the strings "true"/"false" (case-insensitive, trimmed)
// and the integers 1/0. Anything else is a *ParseError.
func ParseVerdict(raw string) (label.Label, error) {
	object, ok := llm.ExtractJSONObject(raw)
	if !ok {
		return label.Other, &ParseError{Reason: "no json object found", Raw: raw}
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(object)))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return label.Other, &ParseError{Reason: "invalid json", Raw: raw, Err: err}
	}
	value, present := fields[LabelKey]
	if !present {
		return label.Other, &ParseError{Reason: "missing label field", Raw: raw}
	}
	if len(fields) != 1 {
		return label.Other, &ParseError{Reason: fmt.Sprintf("expected only %q, got %d keys", LabelKey, len(fields)), Raw: raw}
	}
	switch v := value.(type) {
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return label.Comedy, nil
		case "false":
			return label.Other, nil
		}
	case json.Number:
		switch v.String() {
		case "1":
			return label.Comedy, nil
		case "0":
			return label.Other, nil
		}
	}
	return label.Other, &ParseError{Reason: fmt.Sprintf("label value %v is not an accepted sentinel", value), Raw: raw}
}

// Classifier binds a Completer for repeated use by the batch runner and
// the HTTP surface.
type Classifier struct {
	client Completer
}

// New wraps client. A nil client yields a classifier whose calls fail with
// a configuration error.
func New(client Completer) *Classifier {
	return &Classifier{client: client}
}

// Enabled reports whether a client is bound.
func (c *Classifier) Enabled() bool { return c != nil && c.client != nil }

// Classify is ClassifyTitle with the bound client.
func (c *Classifier) Classify(ctx context.Context, title string) (Verdict, error) {
	if c == nil {
		return ClassifyTitle(ctx, nil, title)
	}
	return ClassifyTitle(ctx, c.client, title)
}
