package apikey

import (
	"gorm.io/gen"

	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
)

func RegisterApiKey(g *gen.Generator) {
	g.ApplyBasic(dbschema.ApiKey{})
}
