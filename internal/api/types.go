package api

import "lafter/internal/classifier"

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// VideoItem describes a queue row in a transport-friendly format.
type VideoItem struct {
	ID              int64    `json:"id"`
	VideoID         string   `json:"videoId"`
	ChannelID       string   `json:"channelId,omitempty"`
	Title           string   `json:"title"`
	Status          string   `json:"status"`
	NormalizedTitle string   `json:"normalizedTitle,omitempty"`
	Probability     *float64 `json:"probability,omitempty"`
	Label           *int     `json:"label,omitempty"`
	ClassifiedBy    string   `json:"classifiedBy,omitempty"`
	LLMLabel        *int     `json:"llmLabel,omitempty"`
	LLMChecked      bool     `json:"llmChecked"`
	ErrorMessage    string   `json:"errorMessage,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// QueueStats summarizes queue counts.
type QueueStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	LLMChecked int            `json:"llmChecked"`
	LLMFailed  int            `json:"llmFailed"`
}

// ClassifyRequest is the body of POST /api/v1/classify and /classify/llm.
type ClassifyRequest struct {
	Title *string `json:"title"`
}

// BatchRequest is the body of POST /api/v1/classify/batch.
type BatchRequest struct {
	Titles []string `json:"titles"`
}

// BatchResponse carries results in request order.
type BatchResponse struct {
	Results   []classifier.Result `json:"results"`
	Threshold float64             `json:"threshold"`
}

// LLMResponse is the verdict returned by POST /api/v1/classify/llm.
type LLMResponse struct {
	Title string `json:"title"`
	Label int    `json:"label"`
	Raw   string `json:"raw"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status       string  `json:"status"`
	ModelSize    int     `json:"modelFeatures"`
	Threshold    float64 `json:"threshold"`
	LLMEnabled   bool    `json:"llmEnabled"`
	QueueEnabled bool    `json:"queueEnabled"`
}
