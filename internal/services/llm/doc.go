// Package llm provides an OpenRouter-compatible chat-completions transport.
//
// The title classifier uses it to send a system prompt plus a single user
// message and receive the raw reply text. Parsing the verdict is the
// caller's job; this package only knows how to pull assistant text out of
// the various response shapes providers return and how to locate the first
// balanced JSON object inside free-form text.
//
// # Retry Behaviour
//
// A client makes exactly one attempt per call unless WithRetryMaxAttempts
// raises the limit. When enabled, HTTP 408/429/5xx, empty assistant content,
// and network timeouts are retried with exponential backoff (Retry-After is
// honoured). Context cancellation aborts immediately.
//
// # Errors
//
// Non-2xx responses surface as *StatusError, which unwraps to a services
// marker (401/403 configuration, 408/429/5xx unavailable). Every error from
// CompleteJSON is a transport failure from the caller's point of view.
package llm
