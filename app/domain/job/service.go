package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/context"

	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/domain/shared/id"
	"docurio.ai/docurio-client/app/domain/template"
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/utils/clock"
	"docurio.ai/docurio-client/app/utils/functional"
	"docurio.ai/docurio-client/config/environment_variables"
)

var (
	ErrInvalidSpec     = errors.New("job specification is invalid")
	ErrUnknownTemplate = errors.New("job references an unknown template")
	ErrQuotaExhausted  = errors.New("guest job quota exhausted for today")
	ErrNotCancellable  = errors.New("job already reached a terminal status")
	ErrNotDeletable    = errors.New("job is still running; cancel it first")
	ErrResultNotReady  = errors.New("job has not completed yet")
)

// DefaultGuestDailyLimit caps guest submissions when no limit is configured.
const DefaultGuestDailyLimit = 5

// JobFilter narrows repository lookups. Nil fields match everything.
type JobFilter struct {
	OwnerID      *string
	Statuses     []JobStatus
	CreatedAfter *int64
}

type JobRepository interface {
	Create(ctx context.Context, ownerID string, j *Job) error
	FindByPublicID(ctx context.Context, publicID string) (*Job, string, error)
	FindByFilter(ctx context.Context, filter JobFilter, pagination *query.Pagination) ([]*Job, error)
	CountByFilter(ctx context.Context, filter JobFilter) (int64, error)
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, publicID string) (bool, error)
	SaveResult(ctx context.Context, r *Result) error
	ResultByJobID(ctx context.Context, jobID string) (*Result, error)
}

// CreateSpec is what a caller must supply to submit a job.
type CreateSpec struct {
	Kind         JobKind
	Filenames    []string
	TargetFormat string
	TemplateID   string
}

type JobService struct {
	jobrepo         JobRepository
	templateService *template.TemplateService
	idService       *id.IDService
	clk             clock.Clock
}

func NewService(jobrepo JobRepository, templateService *template.TemplateService, idService *id.IDService, clk clock.Clock) *JobService {
	return &JobService{
		jobrepo:         jobrepo,
		templateService: templateService,
		idService:       idService,
		clk:             clk,
	}
}

// Create validates a submission, enforces the guest quota, and stores the
// job in pending state. The worker simulation picks it up from there.
func (s *JobService) Create(ctx context.Context, owner *user.User, spec CreateSpec) (*Job, error) {
	if err := s.validateSpec(ctx, &spec); err != nil {
		return nil, err
	}
	if owner.Guest {
		if err := s.checkGuestQuota(ctx, owner.ID); err != nil {
			return nil, err
		}
	}
	publicId, err := s.idService.GenerateJobID()
	if err != nil {
		return nil, err
	}
	now := s.clk.Now().Unix()
	j := &Job{
		ID:           publicId,
		Kind:         spec.Kind,
		Status:       JobStatusPending,
		Filename:     spec.Filenames[0],
		TargetFormat: spec.TargetFormat,
		TemplateID:   spec.TemplateID,
		Progress:     0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.jobrepo.Create(ctx, owner.ID, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JobService) validateSpec(ctx context.Context, spec *CreateSpec) error {
	if spec.Kind != JobKindValidation && spec.Kind != JobKindConversion {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, spec.Kind)
	}
	if len(spec.Filenames) == 0 {
		return fmt.Errorf("%w: no files attached", ErrInvalidSpec)
	}
	if spec.TemplateID != "" {
		tpl, err := s.templateService.FindByPublicID(ctx, spec.TemplateID)
		if err != nil {
			return err
		}
		if tpl == nil {
			return ErrUnknownTemplate
		}
		if spec.TargetFormat == "" {
			spec.TargetFormat = tpl.TargetFormat
		}
	}
	if spec.Kind == JobKindConversion && spec.TargetFormat == "" {
		return fmt.Errorf("%w: conversion needs a target format or a template", ErrInvalidSpec)
	}
	return nil
}

func (s *JobService) checkGuestQuota(ctx context.Context, ownerID string) error {
	limit := environment_variables.EnvironmentVariables.GUEST_DAILY_JOB_LIMIT
	if limit <= 0 {
		limit = DefaultGuestDailyLimit
	}
	since := s.startOfToday().Unix()
	used, err := s.jobrepo.CountByFilter(ctx, JobFilter{
		OwnerID:      &ownerID,
		CreatedAfter: &since,
	})
	if err != nil {
		return err
	}
	if used >= int64(limit) {
		return ErrQuotaExhausted
	}
	return nil
}

func (s *JobService) startOfToday() time.Time {
	now := s.clk.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// GuestQuota reports the configured daily limit, how much of it the owner
// used since midnight UTC, and when the window resets.
func (s *JobService) GuestQuota(ctx context.Context, ownerID string) (used int64, limit int, resetsAt int64, err error) {
	limit = environment_variables.EnvironmentVariables.GUEST_DAILY_JOB_LIMIT
	if limit <= 0 {
		limit = DefaultGuestDailyLimit
	}
	since := s.startOfToday()
	used, err = s.jobrepo.CountByFilter(ctx, JobFilter{
		OwnerID:      &ownerID,
		CreatedAfter: func() *int64 { v := since.Unix(); return &v }(),
	})
	if err != nil {
		return 0, 0, 0, err
	}
	return used, limit, since.Add(24 * time.Hour).Unix(), nil
}

// FindByPublicID returns the job when it exists and belongs to the owner,
// nil otherwise. Callers cannot distinguish missing from foreign jobs.
func (s *JobService) FindByPublicID(ctx context.Context, ownerID, jobID string) (*Job, error) {
	j, jobOwner, err := s.jobrepo.FindByPublicID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j == nil || jobOwner != ownerID {
		return nil, nil
	}
	return j, nil
}

// List returns one page of the owner's jobs, newest first.
func (s *JobService) List(ctx context.Context, ownerID string, pagination *query.Pagination) (*Page, error) {
	filter := JobFilter{OwnerID: &ownerID}
	jobs, err := s.jobrepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}
	total, err := s.jobrepo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &Page{
		Jobs:     functional.Deref(jobs),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.Limit,
	}, nil
}

// Cancel stops a pending or processing job and returns its final state.
func (s *JobService) Cancel(ctx context.Context, ownerID, jobID string) (*Job, error) {
	j, err := s.FindByPublicID(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, nil
	}
	if !j.Status.CanCancel() {
		return nil, ErrNotCancellable
	}
	now := s.clk.Now().Unix()
	j.Status = JobStatusCancelled
	j.UpdatedAt = now
	j.CompletedAt = &now
	if err := s.jobrepo.Update(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// Delete removes a terminal job and its result. Running jobs must be
// cancelled first.
func (s *JobService) Delete(ctx context.Context, ownerID, jobID string) (bool, error) {
	j, err := s.FindByPublicID(ctx, ownerID, jobID)
	if err != nil {
		return false, err
	}
	if j == nil {
		return false, nil
	}
	if !j.Status.IsTerminal() {
		return false, ErrNotDeletable
	}
	return s.jobrepo.Delete(ctx, jobID)
}

// Result returns the artifact of a completed job.
func (s *JobService) Result(ctx context.Context, ownerID, jobID string) (*Result, error) {
	j, err := s.FindByPublicID(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, nil
	}
	if j.Status != JobStatusCompleted {
		return nil, ErrResultNotReady
	}
	return s.jobrepo.ResultByJobID(ctx, jobID)
}

func (s *JobService) CountByFilter(ctx context.Context, filter JobFilter) (int64, error) {
	return s.jobrepo.CountByFilter(ctx, filter)
}

// Advance moves every non-terminal job one step through its lifecycle:
// pending jobs start processing, processing jobs gain progress, and jobs
// that reach full progress complete with a generated result. It returns how
// many jobs changed.
func (s *JobService) Advance(ctx context.Context) (int, error) {
	active, err := s.jobrepo.FindByFilter(ctx, JobFilter{
		Statuses: []JobStatus{JobStatusPending, JobStatusProcessing},
	}, nil)
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, j := range active {
		if err := s.advanceOne(ctx, j); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func (s *JobService) advanceOne(ctx context.Context, j *Job) error {
	now := s.clk.Now().Unix()
	j.UpdatedAt = now
	switch j.Status {
	case JobStatusPending:
		j.Status = JobStatusProcessing
		j.Progress = 20
	case JobStatusProcessing:
		if s.shouldFail(j) {
			msg := "document is corrupted and cannot be processed"
			j.Status = JobStatusFailed
			j.Error = &msg
			j.CompletedAt = &now
			break
		}
		j.Progress += 40
		if j.Progress >= 100 {
			j.Progress = 100
			j.Status = JobStatusCompleted
			j.CompletedAt = &now
			if err := s.jobrepo.SaveResult(ctx, s.buildResult(j)); err != nil {
				return err
			}
		}
	}
	return s.jobrepo.Update(ctx, j)
}

// shouldFail gives the simulation a deterministic failure path so clients
// can exercise failed jobs on demand.
func (s *JobService) shouldFail(j *Job) bool {
	return strings.Contains(strings.ToLower(j.Filename), "corrupt")
}

func (s *JobService) buildResult(j *Job) *Result {
	r := &Result{
		JobID:       j.ID,
		GeneratedAt: s.clk.Now().Unix(),
	}
	switch j.Kind {
	case JobKindValidation:
		r.ContentType = "application/json"
		r.Report = json.RawMessage(fmt.Sprintf(
			`{"valid":true,"filename":%q,"checked_rules":12,"violations":[]}`, j.Filename))
		r.Warnings = []string{"embedded fonts were not verified"}
	case JobKindConversion:
		r.ContentType = contentTypeForFormat(j.TargetFormat)
		r.Artifact = []byte(fmt.Sprintf("converted %s as %s", j.Filename, j.TargetFormat))
	}
	return r
}

func contentTypeForFormat(format string) string {
	switch strings.ToLower(format) {
	case "pdf":
		return "application/pdf"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "html":
		return "text/html"
	case "md", "markdown":
		return "text/markdown"
	case "txt":
		return "text/plain"
	}
	return "application/octet-stream"
}
