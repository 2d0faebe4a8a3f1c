package user

import (
	"gorm.io/gen"

	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
)

func RegisterUser(g *gen.Generator) {
	g.ApplyBasic(dbschema.User{})
}
