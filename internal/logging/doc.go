// Package logging assembles structured slog loggers used across lafter.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so batch and API code can tag
// log lines with queue item IDs, run IDs, classification passes, and request
// IDs. A no-op logger is provided for tests and wiring code that cannot fail.
package logging
