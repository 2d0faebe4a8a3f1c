package templaterepo

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "docurio.ai/docurio-client/app/domain/template"
	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
)

type TemplateGormRepository struct {
	db *gorm.DB
}

func NewTemplateGormRepository(db *gorm.DB) domain.TemplateRepository {
	return &TemplateGormRepository{
		db: db,
	}
}

func (r *TemplateGormRepository) Create(ctx context.Context, t *domain.Template) error {
	model := dbschema.NewSchemaTemplate(t)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	t.CreatedAt = model.CreatedAt.Unix()
	t.UpdatedAt = model.UpdatedAt.Unix()
	return nil
}

func (r *TemplateGormRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Template, error) {
	var model dbschema.Template
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *TemplateGormRepository) FindAll(ctx context.Context) ([]*domain.Template, error) {
	var models []dbschema.Template
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	templates := make([]*domain.Template, 0, len(models))
	for i := range models {
		templates = append(templates, models[i].EtoD())
	}
	return templates, nil
}

func (r *TemplateGormRepository) Update(ctx context.Context, t *domain.Template) error {
	return r.db.WithContext(ctx).Model(&dbschema.Template{}).
		Where("public_id = ?", t.ID).
		Updates(map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
			"rules":       datatypes.JSON(t.Rules),
		}).Error
}

func (r *TemplateGormRepository) Delete(ctx context.Context, publicID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("public_id = ?", publicID).Delete(&dbschema.Template{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *TemplateGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbschema.Template{}).Count(&count).Error
	return count, err
}
