// Package batch drives the two classification passes over the queue.
//
// The model pass classifies unclassified pending videos with the rule/model
// classifier. The LLM pass re-checks model rejections through a bounded,
// rate-limited worker pool and sends positives back to pending for a
// moderator. Runs are serialized across processes by a file lock and tagged
// with a run ID that appears on every log line.
package batch
