package cache

import (
	"context"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"docurio.ai/docurio-client/app/utils/clock"
	"docurio.ai/docurio-client/app/utils/logger"
	"docurio.ai/docurio-client/config/environment_variables"
)

var _ EntryStore = (*GormEntryStore)(nil)

type cacheEntryRow struct {
	Key       string `gorm:"primaryKey;column:key;size:512"`
	Value     string
	ExpiresAt int64 `gorm:"index"`
}

func (cacheEntryRow) TableName() string {
	return "cache_entry"
}

// GormEntryStore persists entries in a relational database. With the sqlite
// driver it is the on-disk tier that survives restarts on a single machine;
// with postgres it can be shared the same way the Redis tier is.
type GormEntryStore struct {
	db  *gorm.DB
	clk clock.Clock
}

// NewGormEntryStore opens the database named by CACHE_DSN. dialect selects
// the driver, "sqlite" or "postgres".
func NewGormEntryStore(dialect string) *GormEntryStore {
	dsn := environment_variables.EnvironmentVariables.CACHE_DSN
	var dialector gorm.Dialector
	if dialect == "postgres" {
		dialector = postgres.Open(dsn)
	} else {
		if dsn == "" {
			dsn = "docurio-cache.db"
		}
		dialector = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		logger.GetLogger().
			WithField("error_code", "cc3b39f6-6a5c-4cb4-96fb-8a86c0e6e791").
			Fatalf("unable to open cache database: %v", err)
		return nil
	}
	if err := db.AutoMigrate(&cacheEntryRow{}); err != nil {
		logger.GetLogger().
			WithField("error_code", "0e2a9d0f-4a86-4f11-b2f4-3fd0b5a6c9bd").
			Fatalf("failed to auto migrate cache schema: %v", err)
		return nil
	}
	return &GormEntryStore{db: db, clk: clock.System()}
}

func (g *GormEntryStore) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	row := cacheEntryRow{Key: key, Value: value}
	if expiration > 0 {
		row.ExpiresAt = g.clk.Now().Add(expiration).Unix()
	}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
	}).Create(&row).Error
}

func (g *GormEntryStore) Get(ctx context.Context, key string) (string, error) {
	var row cacheEntryRow
	err := g.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if row.ExpiresAt != 0 && g.clk.Now().Unix() > row.ExpiresAt {
		g.db.WithContext(ctx).Delete(&cacheEntryRow{}, "key = ?", key)
		return "", ErrNotFound
	}
	return row.Value, nil
}

func (g *GormEntryStore) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Delete(&cacheEntryRow{}, "key = ?", key).Error
}

// DeletePattern supports trailing-star patterns. Keys never contain LIKE
// metacharacters, so the prefix can be used in the LIKE clause directly.
func (g *GormEntryStore) DeletePattern(ctx context.Context, pattern string) error {
	prefix, wildcard := strings.CutSuffix(pattern, "*")
	if !wildcard {
		return g.Delete(ctx, pattern)
	}
	return g.db.WithContext(ctx).Delete(&cacheEntryRow{}, "key LIKE ?", prefix+"%").Error
}

func (g *GormEntryStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := g.Get(ctx, key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (g *GormEntryStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (g *GormEntryStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
