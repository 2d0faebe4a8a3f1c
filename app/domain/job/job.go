package job

import "encoding/json"

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// IsTerminal reports whether the status can never change again server-side.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// CanCancel reports whether a cancel request still makes sense for the status.
func (s JobStatus) CanCancel() bool {
	return s == JobStatusPending || s == JobStatusProcessing
}

type JobKind string

const (
	JobKindValidation JobKind = "validation"
	JobKindConversion JobKind = "conversion"
)

type Job struct {
	ID           string    `json:"id"`
	Kind         JobKind   `json:"kind"`
	Status       JobStatus `json:"status"`
	Filename     string    `json:"filename,omitempty"`
	TargetFormat string    `json:"target_format,omitempty"`
	TemplateID   string    `json:"template_id,omitempty"`
	Progress     int       `json:"progress"`
	Error        *string   `json:"error,omitempty"`
	CreatedAt    int64     `json:"created_at"`
	UpdatedAt    int64     `json:"updated_at"`
	CompletedAt  *int64    `json:"completed_at,omitempty"`
}

// Result is the artifact of a completed job: a converted document, a
// validation report, or both.
type Result struct {
	JobID       string          `json:"job_id"`
	ContentType string          `json:"content_type"`
	Artifact    []byte          `json:"artifact,omitempty"`
	Report      json.RawMessage `json:"report,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
	GeneratedAt int64           `json:"generated_at"`
}

// Page is one page of a job listing.
type Page struct {
	Jobs     []Job `json:"jobs"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// ActiveCount returns how many jobs on the page are still pending or
// processing.
func (p Page) ActiveCount() int {
	n := 0
	for _, j := range p.Jobs {
		if !j.Status.IsTerminal() {
			n++
		}
	}
	return n
}
