package auditrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) domain.AuditRepository {
	return &AuditGormRepository{
		db: db,
	}
}

func (r *AuditGormRepository) Create(ctx context.Context, e *domain.Entry) error {
	model := dbschema.NewSchemaAuditEntry(e)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	e.CreatedAt = model.CreatedAt.Unix()
	return nil
}

func (r *AuditGormRepository) Find(ctx context.Context, pagination *query.Pagination) ([]*domain.Entry, error) {
	tx := r.db.WithContext(ctx).Order("id DESC")
	if pagination != nil {
		tx = tx.Offset(pagination.Offset()).Limit(pagination.Limit)
	}
	var models []dbschema.AuditEntry
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	entries := make([]*domain.Entry, 0, len(models))
	for i := range models {
		entries = append(entries, models[i].EtoD())
	}
	return entries, nil
}

func (r *AuditGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbschema.AuditEntry{}).Count(&count).Error
	return count, err
}

func (r *AuditGormRepository) DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", time.Unix(cutoff, 0).UTC()).
		Delete(&dbschema.AuditEntry{})
	return result.RowsAffected, result.Error
}
