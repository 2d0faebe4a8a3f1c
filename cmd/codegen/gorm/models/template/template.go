package template

import (
	"gorm.io/gen"

	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
)

func RegisterTemplate(g *gen.Generator) {
	g.ApplyBasic(dbschema.Template{})
}
