// Package queue persists candidate videos in SQLite and records the
// verdicts produced by the model and LLM classification passes.
//
// A video enters as pending. The model pass approves or rejects it; the LLM
// pass re-checks model rejections and sends positives back to pending for a
// moderator. The Store owns the schema, busy retries, paging queries, and the
// per-status stats used by the CLI and API.
//
// Schema changes bump schemaVersion in schema.go; users clear the database to
// adopt a new schema.
package queue
