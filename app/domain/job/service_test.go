package job_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/domain/shared/id"
	"docurio.ai/docurio-client/app/domain/template"
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/infrastructure/database"
	"docurio.ai/docurio-client/app/infrastructure/database/repository/jobrepo"
	"docurio.ai/docurio-client/app/infrastructure/database/repository/templaterepo"
	"docurio.ai/docurio-client/app/utils/clock"
	"docurio.ai/docurio-client/config/environment_variables"
)

var serviceEpoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// The in-memory database lives exactly as long as its connection.
	sqlDB.SetMaxOpenConns(1)
	for _, model := range database.SchemaRegistry {
		require.NoError(t, db.AutoMigrate(model))
	}
	return db
}

type jobServiceFixture struct {
	svc       *job.JobService
	templates *template.TemplateService
	clk       *clock.Manual
}

func newJobService(t *testing.T) *jobServiceFixture {
	t.Helper()
	db := newTestDB(t)
	ids := id.NewIDService()
	templates := template.NewService(templaterepo.NewTemplateGormRepository(db), ids)
	clk := clock.NewManual(serviceEpoch)
	return &jobServiceFixture{
		svc:       job.NewService(jobrepo.NewJobGormRepository(db), templates, ids, clk),
		templates: templates,
		clk:       clk,
	}
}

func registeredOwner() *user.User {
	return &user.User{ID: "user_0dc4a1", Email: "owner@example.com", Role: user.RoleUser, Enabled: true}
}

func guestOwner() *user.User {
	return &user.User{ID: "guest_9b21f7", Guest: true, Enabled: true}
}

func conversionSpec(filenames ...string) job.CreateSpec {
	return job.CreateSpec{
		Kind:         job.JobKindConversion,
		Filenames:    filenames,
		TargetFormat: "pdf",
	}
}

func TestCreatePendingJob(t *testing.T) {
	f := newJobService(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, registeredOwner(), conversionSpec("report.docx", "annex.docx"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "job_"))
	assert.Equal(t, job.JobKindConversion, created.Kind)
	assert.Equal(t, job.JobStatusPending, created.Status)
	assert.Equal(t, "report.docx", created.Filename)
	assert.Equal(t, "pdf", created.TargetFormat)
	assert.Equal(t, 0, created.Progress)
	assert.Nil(t, created.CompletedAt)
}

func TestCreateRejectsInvalidSpecs(t *testing.T) {
	f := newJobService(t)
	ctx := context.Background()
	owner := registeredOwner()

	cases := map[string]job.CreateSpec{
		"unknown kind": {Kind: "ocr", Filenames: []string{"scan.png"}},
		"no files":     {Kind: job.JobKindValidation},
		"conversion without target": {
			Kind:      job.JobKindConversion,
			Filenames: []string{"report.docx"},
		},
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, owner, spec)
			assert.ErrorIs(t, err, job.ErrInvalidSpec)
		})
	}

	_, err := f.svc.Create(ctx, owner, job.CreateSpec{
		Kind:       job.JobKindValidation,
		Filenames:  []string{"invoice.pdf"},
		TemplateID: "tpl_missing",
	})
	assert.ErrorIs(t, err, job.ErrUnknownTemplate)
}

func TestCreateInheritsTemplateTarget(t *testing.T) {
	f := newJobService(t)
	ctx := context.Background()

	tpl, err := f.templates.Create(ctx, &template.Template{
		Name:         "Contract to PDF",
		SourceFormat: "docx",
		TargetFormat: "pdf",
	})
	require.NoError(t, err)

	created, err := f.svc.Create(ctx, registeredOwner(), job.CreateSpec{
		Kind:       job.JobKindConversion,
		Filenames:  []string{"contract.docx"},
		TemplateID: tpl.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "pdf", created.TargetFormat)
	assert.Equal(t, tpl.ID, created.TemplateID)
}

func TestGuestDailyQuota(t *testing.T) {
	f := newJobService(t)
	ctx := context.Background()
	guest := guestOwner()

	old := environment_variables.EnvironmentVariables.GUEST_DAILY_JOB_LIMIT
	environment_variables.EnvironmentVariables.GUEST_DAILY_JOB_LIMIT = 2
	t.Cleanup(func() { environment_variables.EnvironmentVariables.GUEST_DAILY_JOB_LIMIT = old })

	for i := 0; i < 2; i++ {
		_, err := f.svc.Create(ctx, guest, conversionSpec("doc.docx"))
		require.NoError(t, err)
	}
	_, err := f.svc.Create(ctx, guest, conversionSpec("doc.docx"))
	assert.ErrorIs(t, err, job.ErrQuotaExhausted)

	used, limit, resetsAt, err := f.svc.GuestQuota(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), used)
	assert.Equal(t, 2, limit)
	midnight := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, midnight.Add(24*time.Hour).Unix(), resetsAt)

	// Registered users are never throttled.
	_, err = f.svc.Create(ctx, registeredOwner(), conversionSpec("doc.docx"))
	assert.NoError(t, err)
}

func TestAdvanceRunsConversionToCompletion(t *testing.T) {
	f := newJobService(t)
	ctx := context.Background()
	owner := registeredOwner()

	created, err := f.svc.Create(ctx, owner, conversionSpec("report.docx"))
	require.NoError(t, err)

	_, err = f.svc.Result(ctx, owner.ID, created.ID)
	assert.ErrorIs(t, err, job.ErrResultNotReady)

	changed, err := f.svc.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	current, err := f.svc.FindByPublicID(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, job.JobStatusProcessing, current.Status)
	assert.Equal(t, 20, current.Progress)

	_, err = f.svc.Advance(ctx)
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx)
	require.NoError(t, err)

	current, err = f.svc.FindByPublicID(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, job.JobStatusCompleted, current.Status)
	assert.Equal(t, 100, current.Progress)
	require.NotNil(t, current.CompletedAt)

	result, err := f.svc.Result(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, created.ID, result.JobID)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.NotEmpty(t, result.Artifact)

	// Once every job is terminal the worker has nothing left to do.
	changed, err = f.svc.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}

func TestAdvanceProducesValidationReport(t *testing.T) {
	f := newJobService(t)
	ctx := context.Background()
	owner := registeredOwner()

	created, err := f.svc.Create(ctx, owner, job.CreateSpec{
		Kind:      job.JobKindValidation,
		Filenames: []string{"invoice.pdf"},
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = f.svc.Advance(ctx)
		require.NoError(t, err)
	}

	result, err := f.svc.Result(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "application/json", result.ContentType)
	assert.Contains(t, string(result.Report), `"valid":true`)
	assert.NotEmpty(t, result.Warnings)
}

func TestAdvanceFailsCorruptedDocument(t *testing.T) {
	f := newJobService(t)
	ctx := context.Background()
	owner := registeredOwner()

	created, err := f.svc.Create(ctx, owner, conversionSpec("corrupted-scan.docx"))
	require.NoError(t, err)

	_, err = f.svc.Advance(ctx)
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx)
	require.NoError(t, err)

	current, err := f.svc.FindByPublicID(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, job.JobStatusFailed, current.Status)
	require.NotNil(t, current.Error)
	assert.Contains(t, *current.Error, "corrupted")

	_, err = f.svc.Result(ctx, owner.ID, created.ID)
	assert.ErrorIs(t, err, job.ErrResultNotReady)
}

func TestCancel(t *testing.T) {
	f := newJobService(t)
	ctx := context.Background()
	owner := registeredOwner()

	created, err := f.svc.Create(ctx, owner, conversionSpec("report.docx"))
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, job.JobStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CompletedAt)
	assert.Equal(t, serviceEpoch.Unix(), *cancelled.CompletedAt)

	_, err = f.svc.Cancel(ctx, owner.ID, created.ID)
	assert.ErrorIs(t, err, job.ErrNotCancellable)
}

func TestDeleteRequiresTerminalStatus(t *testing.T) {
	f := newJobService(t)
	ctx := context.Background()
	owner := registeredOwner()

	created, err := f.svc.Create(ctx, owner, conversionSpec("report.docx"))
	require.NoError(t, err)

	_, err = f.svc.Delete(ctx, owner.ID, created.ID)
	assert.ErrorIs(t, err, job.ErrNotDeletable)

	_, err = f.svc.Cancel(ctx, owner.ID, created.ID)
	require.NoError(t, err)

	deleted, err := f.svc.Delete(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := f.svc.FindByPublicID(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	deleted, err = f.svc.Delete(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListPagesNewestFirst(t *testing.T) {
	f := newJobService(t)
	ctx := context.Background()
	owner := registeredOwner()

	var ids []string
	for _, name := range []string{"a.docx", "b.docx", "c.docx"} {
		created, err := f.svc.Create(ctx, owner, conversionSpec(name))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	page, err := f.svc.List(ctx, owner.ID, &query.Pagination{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Jobs, 2)
	assert.Equal(t, ids[2], page.Jobs[0].ID)
	assert.Equal(t, ids[1], page.Jobs[1].ID)
	assert.Equal(t, 2, page.ActiveCount())

	page, err = f.svc.List(ctx, owner.ID, &query.Pagination{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Jobs, 1)
	assert.Equal(t, ids[0], page.Jobs[0].ID)
}

func TestJobsAreScopedToTheirOwner(t *testing.T) {
	f := newJobService(t)
	ctx := context.Background()
	owner := registeredOwner()
	stranger := guestOwner()

	created, err := f.svc.Create(ctx, owner, conversionSpec("report.docx"))
	require.NoError(t, err)

	found, err := f.svc.FindByPublicID(ctx, stranger.ID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	cancelled, err := f.svc.Cancel(ctx, stranger.ID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, cancelled)

	page, err := f.svc.List(ctx, stranger.ID, &query.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Jobs)
	assert.Equal(t, int64(0), page.Total)
}
