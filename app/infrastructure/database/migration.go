package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"gorm.io/gorm"

	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
	"docurio.ai/docurio-client/app/utils/logger"
)

type SchemaVersion struct {
	Migrations []int64 `json:"migrations"`
}

func NewSchemaVersion() SchemaVersion {
	sv := SchemaVersion{
		Migrations: []int64{
			1,
			0,
		},
	}
	slices.Sort(sv.Migrations)
	return sv
}

// DBMigrator applies the versioned SQL files under migrationsqls on top of
// the auto-migrated schema. It only runs against postgres; the sqlite stub
// schema is fully described by AutoMigrate.
type DBMigrator struct {
	db *gorm.DB
}

func NewDBMigrator(db *gorm.DB) *DBMigrator {
	return &DBMigrator{
		db: db,
	}
}

func (d *DBMigrator) initialize() error {
	db := d.db
	var record dbschema.DatabaseMigration

	result := db.Limit(1).Find(&record)
	if result.Error != nil {
		return fmt.Errorf("failed to query migration records: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		initialRecord := dbschema.DatabaseMigration{Version: 0}
		if err := db.Create(&initialRecord).Error; err != nil {
			return fmt.Errorf("failed to insert initial migration record: %w", err)
		}
	}
	return nil
}

func (d *DBMigrator) lockVersion(ctx context.Context, tx *gorm.DB) (dbschema.DatabaseMigration, error) {
	var m dbschema.DatabaseMigration

	if err := tx.WithContext(ctx).
		Raw("SELECT id, version FROM database_migration ORDER BY id LIMIT 1").
		Scan(&m).Error; err != nil {
		return m, err
	}

	if m.ID == 0 {
		return m, fmt.Errorf("no row found in database_migration")
	}

	if err := tx.WithContext(ctx).
		Raw("SELECT id, version FROM database_migration WHERE id = ? FOR UPDATE", m.ID).
		Scan(&m).Error; err != nil {
		return m, err
	}

	return m, nil
}

func (d *DBMigrator) Migrate() (err error) {
	if err = d.initialize(); err != nil {
		return err
	}
	if d.db.Dialector.Name() != "postgres" {
		logger.GetLogger().Debug("sqlite database, skipping versioned migrations")
		return nil
	}
	migrations := NewSchemaVersion().Migrations
	ctx := context.Background()
	tx := d.db.WithContext(ctx).Begin()
	// select for update
	currentVersion, err := d.lockVersion(ctx, tx)
	if err != nil {
		tx.Rollback()
		return err
	}
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return fmt.Errorf("863e65e1-5eaa-4a4c-b91a-0994f40577cf")
	}
	migrationSqlFolder := filepath.Join(filepath.Dir(filename), "migrationsqls")

	updated := false
	for _, migrationVersion := range migrations {
		if currentVersion.Version >= migrationVersion {
			continue
		}
		sqlFile := filepath.Join(migrationSqlFolder, fmt.Sprintf("%d.sql", migrationVersion))
		content, err := os.ReadFile(sqlFile)
		if err != nil {
			tx.Rollback()
			return err
		}

		sqlCommands := strings.Split(string(content), ";")
		for _, command := range sqlCommands {
			if strings.TrimSpace(command) == "" {
				continue
			}
			if err := tx.Exec(command).Error; err != nil {
				tx.Rollback()
				return err
			}
		}
		updated = true
	}
	if updated {
		currentVersion.Version = migrations[len(migrations)-1]
		if err := tx.Save(&currentVersion).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}
