package queue

import (
	"strings"
	"time"

	"lafter/internal/label"
)

// Status represents the moderation state of a video.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Classification passes recorded in classified_by.
const (
	ByModel = "model"
	ByLLM   = "llm"
)

var allStatuses = []Status{StatusPending, StatusApproved, StatusRejected}

// Video is a candidate title persisted in SQLite.
type Video struct {
	ID              int64
	VideoID         string
	ChannelID       string
	Title           string
	Status          Status
	NormalizedTitle string
	Probability     float64
	Label           label.Label
	ClassifiedBy    string
	LLMLabel        *label.Label
	LLMRaw          string
	LLMChecked      bool
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Classified reports whether the model or LLM pass has produced a verdict.
func (v Video) Classified() bool {
	return v.ClassifiedBy != ""
}

// NewVideo carries the fields accepted by Store.Add.
type NewVideo struct {
	VideoID   string
	ChannelID string
	Title     string
}

// ListFilter narrows Store.List. Zero Limit means no limit.
type ListFilter struct {
	Statuses []Status
	Limit    int
	Offset   int
}

// Stats is the per-status breakdown of the queue.
type Stats struct {
	Total      int
	ByStatus   map[Status]int
	LLMChecked int
	LLMFailed  int
}

// DatabaseHealth captures diagnostic information about the queue database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    int
	TableExists      bool
	MissingColumns   []string
	IntegrityCheck   bool
	TotalItems       int
	Error            string
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range allStatuses {
		if status == normalized {
			return status, true
		}
	}
	return "", false
}

// StatusForLabel maps a model verdict onto the moderation status.
func StatusForLabel(l label.Label) Status {
	if l == label.Comedy {
		return StatusApproved
	}
	return StatusRejected
}
