// Package services defines shared helpers consumed by the classification
// paths, the batch runner, and the HTTP surface.
//
// Key responsibilities:
//   - Context helpers that stamp queue item IDs, run identifiers, pass names,
//     and request identifiers for logging.
//   - Error markers plus the Wrap helper so callers can tell configuration,
//     validation, and transient failures apart with errors.Is.
//
// The llm subpackage holds the chat-completions transport used by the LLM
// title classifier.
package services
