package main

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gen"
	"gorm.io/gorm"

	"docurio.ai/docurio-client/cmd/codegen/gorm/models/apikey"
	"docurio.ai/docurio-client/cmd/codegen/gorm/models/audit"
	"docurio.ai/docurio-client/cmd/codegen/gorm/models/job"
	"docurio.ai/docurio-client/cmd/codegen/gorm/models/template"
	"docurio.ai/docurio-client/cmd/codegen/gorm/models/user"
	"docurio.ai/docurio-client/config/environment_variables"
)

func main() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
	var dialector gorm.Dialector
	if dsn := environment_variables.EnvironmentVariables.DB_POSTGRESQL_WRITE_DSN; dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		path := environment_variables.EnvironmentVariables.DB_SQLITE_PATH
		if path == "" {
			path = "docurio.db"
		}
		dialector = sqlite.Open(path)
	}
	db, err := gorm.Open(dialector)
	if err != nil {
		panic(err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:       "./app/infrastructure/database/gormgen",
		Mode:          gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable: true,
	})

	g.UseDB(db)
	user.RegisterUser(g)
	job.RegisterJob(g)
	template.RegisterTemplate(g)
	apikey.RegisterApiKey(g)
	audit.RegisterAuditEntry(g)
	g.Execute()
}
