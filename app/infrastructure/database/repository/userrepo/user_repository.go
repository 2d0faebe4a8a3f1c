package userrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) domain.UserRepository {
	return &UserGormRepository{
		db: db,
	}
}

func (r *UserGormRepository) Create(ctx context.Context, u *domain.User, passwordHash string) error {
	model := dbschema.NewSchemaUser(u, passwordHash)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	u.CreatedAt = model.CreatedAt.Unix()
	return nil
}

func (r *UserGormRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.User, error) {
	var model dbschema.User
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *UserGormRepository) FindByFilter(ctx context.Context, filter domain.UserFilter, pagination *query.Pagination) ([]*domain.User, error) {
	tx := r.applyFilter(r.db.WithContext(ctx), filter).Order("id DESC")
	if pagination != nil {
		tx = tx.Offset(pagination.Offset()).Limit(pagination.Limit)
	}
	var models []dbschema.User
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(models))
	for i := range models {
		users = append(users, models[i].EtoD())
	}
	return users, nil
}

func (r *UserGormRepository) CountByFilter(ctx context.Context, filter domain.UserFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&dbschema.User{}), filter).Count(&count).Error
	return count, err
}

func (r *UserGormRepository) Update(ctx context.Context, u *domain.User) error {
	result := r.db.WithContext(ctx).Model(&dbschema.User{}).
		Where("public_id = ?", u.ID).
		Updates(map[string]interface{}{
			"name":    u.Name,
			"role":    string(u.Role),
			"plan":    u.Plan,
			"enabled": u.Enabled,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %s not found", u.ID)
	}
	return nil
}

func (r *UserGormRepository) PasswordHashByEmail(ctx context.Context, email string) (string, error) {
	var model dbschema.User
	err := r.db.WithContext(ctx).Select("password_hash").Where("email = ?", email).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return model.PasswordHash, nil
}

func (r *UserGormRepository) applyFilter(tx *gorm.DB, filter domain.UserFilter) *gorm.DB {
	if filter.Email != nil {
		tx = tx.Where("email = ?", *filter.Email)
	}
	if filter.Role != nil {
		tx = tx.Where("role = ?", string(*filter.Role))
	}
	if filter.Guest != nil {
		tx = tx.Where("guest = ?", *filter.Guest)
	}
	if filter.Enabled != nil {
		tx = tx.Where("enabled = ?", *filter.Enabled)
	}
	return tx
}
