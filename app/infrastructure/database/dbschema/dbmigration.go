package dbschema

import (
	"docurio.ai/docurio-client/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(DatabaseMigration{})
}

// DatabaseMigration is the single row the versioned migrator locks and bumps.
// Version is the highest migrationsqls file applied so far.
type DatabaseMigration struct {
	BaseModel
	Version int64 `gorm:"not null;uniqueIndex"`
}
