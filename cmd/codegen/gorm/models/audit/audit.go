package audit

import (
	"gorm.io/gen"

	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
)

func RegisterAuditEntry(g *gen.Generator) {
	g.ApplyBasic(dbschema.AuditEntry{})
}
