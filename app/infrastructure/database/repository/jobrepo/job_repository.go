package jobrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
)

type JobGormRepository struct {
	db *gorm.DB
}

func NewJobGormRepository(db *gorm.DB) domain.JobRepository {
	return &JobGormRepository{
		db: db,
	}
}

func (r *JobGormRepository) Create(ctx context.Context, ownerID string, j *domain.Job) error {
	model := dbschema.NewSchemaJob(ownerID, j)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	j.CreatedAt = model.CreatedAt.Unix()
	j.UpdatedAt = model.UpdatedAt.Unix()
	return nil
}

func (r *JobGormRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Job, string, error) {
	var model dbschema.Job
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return model.EtoD(), model.OwnerPublicID, nil
}

func (r *JobGormRepository) FindByFilter(ctx context.Context, filter domain.JobFilter, pagination *query.Pagination) ([]*domain.Job, error) {
	tx := r.applyFilter(r.db.WithContext(ctx), filter).Order("id DESC")
	if pagination != nil {
		tx = tx.Offset(pagination.Offset()).Limit(pagination.Limit)
	}
	var models []dbschema.Job
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	jobs := make([]*domain.Job, 0, len(models))
	for i := range models {
		jobs = append(jobs, models[i].EtoD())
	}
	return jobs, nil
}

func (r *JobGormRepository) CountByFilter(ctx context.Context, filter domain.JobFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&dbschema.Job{}), filter).Count(&count).Error
	return count, err
}

func (r *JobGormRepository) Update(ctx context.Context, j *domain.Job) error {
	return r.db.WithContext(ctx).Model(&dbschema.Job{}).
		Where("public_id = ?", j.ID).
		Updates(map[string]interface{}{
			"status":       string(j.Status),
			"progress":     j.Progress,
			"error":        j.Error,
			"completed_at": j.CompletedAt,
		}).Error
}

func (r *JobGormRepository) Delete(ctx context.Context, publicID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("public_id = ?", publicID).Delete(&dbschema.Job{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	err := r.db.WithContext(ctx).Where("job_public_id = ?", publicID).Delete(&dbschema.JobResult{}).Error
	return true, err
}

func (r *JobGormRepository) SaveResult(ctx context.Context, res *domain.Result) error {
	warnings, err := json.Marshal(res.Warnings)
	if err != nil {
		return err
	}
	model := &dbschema.JobResult{
		JobPublicID: res.JobID,
		ContentType: res.ContentType,
		Artifact:    res.Artifact,
		Report:      datatypes.JSON(res.Report),
		Warnings:    datatypes.JSON(warnings),
		GeneratedAt: res.GeneratedAt,
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *JobGormRepository) ResultByJobID(ctx context.Context, jobID string) (*domain.Result, error) {
	var model dbschema.JobResult
	err := r.db.WithContext(ctx).Where("job_public_id = ?", jobID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	res := &domain.Result{
		JobID:       model.JobPublicID,
		ContentType: model.ContentType,
		Artifact:    model.Artifact,
		Report:      json.RawMessage(model.Report),
		GeneratedAt: model.GeneratedAt,
	}
	if len(model.Warnings) > 0 {
		if err := json.Unmarshal(model.Warnings, &res.Warnings); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (r *JobGormRepository) applyFilter(tx *gorm.DB, filter domain.JobFilter) *gorm.DB {
	if filter.OwnerID != nil {
		tx = tx.Where("owner_public_id = ?", *filter.OwnerID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		tx = tx.Where("status IN ?", statuses)
	}
	if filter.CreatedAfter != nil {
		tx = tx.Where("created_at >= ?", time.Unix(*filter.CreatedAfter, 0).UTC())
	}
	return tx
}
