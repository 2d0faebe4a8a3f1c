package audit

import (
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/domain/shared/id"
	"docurio.ai/docurio-client/app/utils/functional"
)

// Actions recorded by the platform. Handlers may record others; these cover
// the mutations every deployment has.
const (
	ActionUserLogin      = "user.login"
	ActionUserRegister   = "user.register"
	ActionUserUpdate     = "user.update"
	ActionJobCreate      = "job.create"
	ActionJobCancel      = "job.cancel"
	ActionJobDelete      = "job.delete"
	ActionTemplateCreate = "template.create"
	ActionTemplateUpdate = "template.update"
	ActionTemplateDelete = "template.delete"
	ActionCacheFlush     = "cache.flush"
	ActionAPIKeyCreate   = "apikey.create"
)

type AuditRepository interface {
	Create(ctx context.Context, e *Entry) error
	Find(ctx context.Context, pagination *query.Pagination) ([]*Entry, error)
	Count(ctx context.Context) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error)
}

type AuditService struct {
	repo      AuditRepository
	idService *id.IDService
}

func NewService(repo AuditRepository, idService *id.IDService) *AuditService {
	return &AuditService{
		repo:      repo,
		idService: idService,
	}
}

// Record appends an entry to the audit trail. Recording failures are logged
// and swallowed so an audit hiccup never fails the mutation it describes.
func (s *AuditService) Record(ctx context.Context, actorID, action, target, detail string) {
	publicId, err := s.idService.GenerateAuditID()
	if err != nil {
		log.WithError(err).Error("audit id generation failed")
		return
	}
	entry := &Entry{
		ID:        publicId,
		ActorID:   actorID,
		Action:    action,
		Target:    target,
		Detail:    detail,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.WithError(err).WithField("action", action).Error("audit record failed")
	}
}

// List returns one page of the trail, newest first.
func (s *AuditService) List(ctx context.Context, pagination *query.Pagination) (*Page, error) {
	entries, err := s.repo.Find(ctx, pagination)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Page{
		Entries:  functional.Deref(entries),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.Limit,
	}, nil
}

// Prune drops entries older than the retention window.
func (s *AuditService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	return s.repo.DeleteOlderThan(ctx, cutoff)
}
