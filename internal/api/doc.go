// Package api exposes the classifier and the moderation queue over HTTP.
//
// # Key Types
//
// Handler: gin handlers for health, single and batch classification, the LLM
// verdict endpoint, and read-only queue views.
//
// Server: wraps an http.Server around the gin engine with graceful shutdown.
//
// VideoItem/QueueStats: transport-friendly views of queue rows and counts.
//
// # Error Mapping
//
// Malformed requests are 400. An unconfigured LLM is 503. A reply that does
// not parse as a verdict is 422 and carries the raw reply. Transport failures
// to the LLM are 502, timeouts 504.
//
// DTOs use camelCase JSON tags. Timestamps use RFC3339 with milliseconds.
package api
