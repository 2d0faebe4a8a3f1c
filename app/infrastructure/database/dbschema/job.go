package dbschema

import (
	"gorm.io/datatypes"

	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Job{}, JobResult{})
}

type Job struct {
	BaseModel
	PublicID      string `gorm:"uniqueIndex;not null"`
	OwnerPublicID string `gorm:"index;not null"`
	Kind          string
	Status        string `gorm:"index"`
	Filename      string
	TargetFormat  string
	TemplateID    string
	Progress      int
	Error         *string
	CompletedAt   *int64
}

func NewSchemaJob(ownerPublicID string, j *job.Job) *Job {
	return &Job{
		PublicID:      j.ID,
		OwnerPublicID: ownerPublicID,
		Kind:          string(j.Kind),
		Status:        string(j.Status),
		Filename:      j.Filename,
		TargetFormat:  j.TargetFormat,
		TemplateID:    j.TemplateID,
		Progress:      j.Progress,
		Error:         j.Error,
		CompletedAt:   j.CompletedAt,
	}
}

func (j *Job) EtoD() *job.Job {
	return &job.Job{
		ID:           j.PublicID,
		Kind:         job.JobKind(j.Kind),
		Status:       job.JobStatus(j.Status),
		Filename:     j.Filename,
		TargetFormat: j.TargetFormat,
		TemplateID:   j.TemplateID,
		Progress:     j.Progress,
		Error:        j.Error,
		CreatedAt:    j.CreatedAt.Unix(),
		UpdatedAt:    j.UpdatedAt.Unix(),
		CompletedAt:  j.CompletedAt,
	}
}

// JobResult holds the artifact a completed job produced. One row per job,
// removed together with it.
type JobResult struct {
	BaseModel
	JobPublicID string `gorm:"uniqueIndex;not null"`
	ContentType string
	Artifact    []byte
	Report      datatypes.JSON
	Warnings    datatypes.JSON
	GeneratedAt int64
}
