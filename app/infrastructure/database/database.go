package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"docurio.ai/docurio-client/app/utils/logger"
	"docurio.ai/docurio-client/config/environment_variables"
)

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

var DB *gorm.DB

// NewDB opens the platform database. Postgres is used when a write DSN is
// configured, with an optional read replica behind dbresolver; otherwise the
// server runs on a local sqlite file, which is all the stub deployment
// needs.
func NewDB() (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	}

	var db *gorm.DB
	var err error
	if dsn := environment_variables.EnvironmentVariables.DB_POSTGRESQL_WRITE_DSN; dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
		if err != nil {
			logger.GetLogger().
				WithField("error_code", "c488fffe-88b0-45ab-8f10-ae01ff10ec98").
				Fatalf("unable to connect to database: %v", err)
			return nil, err
		}
		if readDsn := environment_variables.EnvironmentVariables.DB_POSTGRESQL_READ1_DSN; readDsn != "" {
			err = db.Use(dbresolver.Register(dbresolver.Config{
				Replicas: []gorm.Dialector{postgres.Open(readDsn)},
				Policy:   dbresolver.RandomPolicy{},
			}))
			if err != nil {
				logger.GetLogger().
					WithField("error_code", "6b9de549-942b-4776-aa54-9800fb10079f").
					Fatalf("unable to setup replica: %v", err)
				return nil, err
			}
		}
	} else {
		path := environment_variables.EnvironmentVariables.DB_SQLITE_PATH
		if path == "" {
			path = "docurio.db"
		}
		db, err = gorm.Open(sqlite.Open(path), gormConfig)
		if err != nil {
			logger.GetLogger().
				WithField("error_code", "e3f2b7d8-6a11-4a0e-9c41-2f6d5e8a9b30").
				Fatalf("unable to open sqlite database: %v", err)
			return nil, err
		}
	}

	for _, model := range SchemaRegistry {
		err = db.AutoMigrate(model)
		if err != nil {
			logger.GetLogger().
				WithField("error_code", "20e6e2f0-942b-4c1a-b0be-5c6ef6305b58").
				Fatalf("failed to auto migrate schema: %T, error: %v", model, err)
			return nil, err
		}
	}

	DB = db
	return DB, nil
}
