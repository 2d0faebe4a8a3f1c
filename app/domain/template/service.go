package template

import (
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/net/context"

	"docurio.ai/docurio-client/app/domain/shared/id"
	"docurio.ai/docurio-client/app/utils/functional"
)

// ErrInvalidTemplate rejects create and update requests that are missing
// required fields.
var ErrInvalidTemplate = errors.New("template requires a name and a source format")

type TemplateRepository interface {
	Create(ctx context.Context, t *Template) error
	FindByPublicID(ctx context.Context, publicID string) (*Template, error)
	FindAll(ctx context.Context) ([]*Template, error)
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, publicID string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type TemplateService struct {
	repo      TemplateRepository
	idService *id.IDService
}

func NewService(repo TemplateRepository, idService *id.IDService) *TemplateService {
	return &TemplateService{
		repo:      repo,
		idService: idService,
	}
}

// Create registers a new conversion profile and returns it with its public
// ID and timestamps filled in.
func (s *TemplateService) Create(ctx context.Context, t *Template) (*Template, error) {
	if t.Name == "" || t.SourceFormat == "" {
		return nil, ErrInvalidTemplate
	}
	publicId, err := s.idService.GenerateTemplateID()
	if err != nil {
		return nil, err
	}
	t.ID = publicId
	now := time.Now().Unix()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) FindByPublicID(ctx context.Context, publicID string) (*Template, error) {
	return s.repo.FindByPublicID(ctx, publicID)
}

// List returns every profile. The catalog is small enough that the endpoint
// does not paginate.
func (s *TemplateService) List(ctx context.Context) (*List, error) {
	templates, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return &List{
		Templates: functional.Deref(templates),
	}, nil
}

// Patch carries the editable profile fields. Nil leaves a field as is.
type Patch struct {
	Name        *string
	Description *string
	Rules       json.RawMessage
}

// Update applies a patch and returns the updated profile, or nil when no
// profile has the given ID.
func (s *TemplateService) Update(ctx context.Context, publicID string, patch Patch) (*Template, error) {
	t, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, ErrInvalidTemplate
		}
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Rules != nil {
		t.Rules = patch.Rules
	}
	t.UpdatedAt = time.Now().Unix()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a profile. It reports false when no profile has the given
// ID. Jobs that already referenced the profile keep their recorded settings.
func (s *TemplateService) Delete(ctx context.Context, publicID string) (bool, error) {
	return s.repo.Delete(ctx, publicID)
}

func (s *TemplateService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
