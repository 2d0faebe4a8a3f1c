package apikeyrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "docurio.ai/docurio-client/app/domain/apikey"
	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
)

type ApiKeyGormRepository struct {
	db *gorm.DB
}

func NewApiKeyGormRepository(db *gorm.DB) domain.ApiKeyRepository {
	return &ApiKeyGormRepository{
		db: db,
	}
}

func (r *ApiKeyGormRepository) Create(ctx context.Context, k *domain.ApiKey) error {
	model := dbschema.NewSchemaApiKey(k)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	k.CreatedAt = model.CreatedAt.Unix()
	return nil
}

func (r *ApiKeyGormRepository) Update(ctx context.Context, k *domain.ApiKey) error {
	return r.db.WithContext(ctx).Model(&dbschema.ApiKey{}).
		Where("public_id = ?", k.PublicID).
		Updates(map[string]interface{}{
			"description":  k.Description,
			"enabled":      k.Enabled,
			"expires_at":   k.ExpiresAt,
			"last_used_at": k.LastUsedAt,
		}).Error
}

func (r *ApiKeyGormRepository) DeleteByPublicID(ctx context.Context, publicID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("public_id = ?", publicID).Delete(&dbschema.ApiKey{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ApiKeyGormRepository) FindOneByFilter(ctx context.Context, filter domain.ApiKeyFilter) (*domain.ApiKey, error) {
	var model dbschema.ApiKey
	err := r.applyFilter(r.db.WithContext(ctx), filter).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *ApiKeyGormRepository) FindByFilter(ctx context.Context, filter domain.ApiKeyFilter, pagination *query.Pagination) ([]*domain.ApiKey, error) {
	tx := r.applyFilter(r.db.WithContext(ctx), filter).Order("id DESC")
	if pagination != nil {
		tx = tx.Offset(pagination.Offset()).Limit(pagination.Limit)
	}
	var models []dbschema.ApiKey
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	keys := make([]*domain.ApiKey, 0, len(models))
	for i := range models {
		keys = append(keys, models[i].EtoD())
	}
	return keys, nil
}

func (r *ApiKeyGormRepository) Count(ctx context.Context, filter domain.ApiKeyFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&dbschema.ApiKey{}), filter).Count(&count).Error
	return count, err
}

func (r *ApiKeyGormRepository) applyFilter(tx *gorm.DB, filter domain.ApiKeyFilter) *gorm.DB {
	if filter.PublicID != nil {
		tx = tx.Where("public_id = ?", *filter.PublicID)
	}
	if filter.KeyHash != nil {
		tx = tx.Where("key_hash = ?", *filter.KeyHash)
	}
	if filter.OwnerPublicID != nil {
		tx = tx.Where("owner_public_id = ?", *filter.OwnerPublicID)
	}
	if filter.ApikeyType != nil {
		tx = tx.Where("apikey_type = ?", string(*filter.ApikeyType))
	}
	return tx
}
