package auditrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/infrastructure/database"
	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
	"docurio.ai/docurio-client/app/infrastructure/database/repository/auditrepo"
)

func newRepo(t *testing.T) (audit.AuditRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	for _, model := range database.SchemaRegistry {
		require.NoError(t, db.AutoMigrate(model))
	}
	return auditrepo.NewAuditGormRepository(db), db
}

func TestEntryRoundTrip(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	entry := &audit.Entry{
		ID:      "audit_1",
		ActorID: "user_1",
		Action:  audit.ActionJobCreate,
		Target:  "job_1",
		Detail:  "conversion",
	}
	require.NoError(t, repo.Create(ctx, entry))
	assert.NotZero(t, entry.CreatedAt)

	entries, err := repo.Find(ctx, &query.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "audit_1", entries[0].ID)
	assert.Equal(t, "user_1", entries[0].ActorID)
	assert.Equal(t, audit.ActionJobCreate, entries[0].Action)
	assert.Equal(t, "job_1", entries[0].Target)
	assert.Equal(t, "conversion", entries[0].Detail)
}

func TestDeleteOlderThan(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()

	// Backdate one row past the retention window.
	stale := dbschema.AuditEntry{
		BaseModel: dbschema.BaseModel{CreatedAt: time.Now().Add(-40 * 24 * time.Hour)},
		PublicID:  "audit_stale",
		Action:    audit.ActionUserLogin,
	}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, repo.Create(ctx, &audit.Entry{ID: "audit_fresh", Action: audit.ActionUserLogin}))

	cutoff := time.Now().Add(-30 * 24 * time.Hour).Unix()
	deleted, err := repo.DeleteOlderThan(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	entries, err := repo.Find(ctx, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "audit_fresh", entries[0].ID)
}
