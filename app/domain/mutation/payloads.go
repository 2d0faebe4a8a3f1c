package mutation

import (
	"encoding/json"

	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/domain/resource"
)

type FileSpec struct {
	Name        string `json:"name"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

type CreateJobPayload struct {
	Kind         job.JobKind `json:"kind"`
	Files        []FileSpec  `json:"files"`
	TargetFormat string      `json:"target_format,omitempty"`
	TemplateID   string      `json:"template_id,omitempty"`
}

// Payloads whose subject rides in the URL carry the id outside the JSON body.

type CancelJobPayload struct {
	JobID string `json:"-"`
}

type DeleteJobPayload struct {
	JobID string `json:"-"`
}

type UpdateUserPayload struct {
	UserID  string  `json:"-"`
	IsAdmin *bool   `json:"is_admin,omitempty"`
	Plan    *string `json:"plan,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

type CreateTemplatePayload struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	SourceFormat string          `json:"source_format"`
	TargetFormat string          `json:"target_format,omitempty"`
	Rules        json.RawMessage `json:"rules,omitempty"`
}

type UpdateTemplatePayload struct {
	TemplateID  string          `json:"-"`
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Rules       json.RawMessage `json:"rules,omitempty"`
}

type DeleteTemplatePayload struct {
	TemplateID string `json:"-"`
}

// SubjectID resolves the record a finished mutation touched. For updates the
// id comes from the payload; for creates it comes from the representation the
// server returned.
func SubjectID(kind Kind, payload any, result json.RawMessage) string {
	switch p := payload.(type) {
	case CancelJobPayload:
		return p.JobID
	case *CancelJobPayload:
		return p.JobID
	case DeleteJobPayload:
		return p.JobID
	case *DeleteJobPayload:
		return p.JobID
	case UpdateUserPayload:
		return p.UserID
	case *UpdateUserPayload:
		return p.UserID
	case UpdateTemplatePayload:
		return p.TemplateID
	case *UpdateTemplatePayload:
		return p.TemplateID
	case DeleteTemplatePayload:
		return p.TemplateID
	case *DeleteTemplatePayload:
		return p.TemplateID
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(result, &created); err == nil {
		return created.ID
	}
	return ""
}

// SeedKey names the cache key a mutation's returned representation seeds,
// saving the follow-up read. Deletes return an ack, not a resource, so they
// seed nothing.
func SeedKey(kind Kind, subjectID string) (resource.Key, bool) {
	if subjectID == "" {
		return resource.Key{}, false
	}
	switch kind {
	case KindJobCreate, KindJobCancel:
		return resource.JobKey(subjectID), true
	case KindUserUpdate:
		return resource.AdminUserKey(subjectID), true
	case KindTemplateCreate, KindTemplateUpdate:
		return resource.TemplateKey(subjectID), true
	}
	return resource.Key{}, false
}
