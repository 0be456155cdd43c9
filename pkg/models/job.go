package models

import (
	"time"
)

// JobStatus represents the lifecycle stage of a synthesis job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusComplete   JobStatus = "complete"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status is final.
func (s JobStatus) Terminal() bool {
	return s == JobStatusComplete || s == JobStatusFailed
}

// JobInfo is a point-in-time snapshot of a job, safe to hand to callers.
type JobInfo struct {
	ID          string     `json:"id"`
	Label       string     `json:"label,omitempty"`
	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ErrorDetail string     `json:"error_detail,omitempty"`
}

// ShortID returns the first 8 hex characters of the job's id, uppercased.
func (j JobInfo) ShortID() string {
	return ShortID(j.ID)
}

// ShortID derives the 8-character uppercase hex form of a job id, used in
// artifact filenames and report footers.
func ShortID(id string) string {
	clean := make([]byte, 0, 8)
	for i := 0; i < len(id) && len(clean) < 8; i++ {
		c := id[i]
		if c == '-' {
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		clean = append(clean, c)
	}
	return string(clean)
}
