package job

import (
	"gorm.io/gen"

	"docurio.ai/docurio-client/app/infrastructure/database/dbschema"
)

// Querier carries the raw SQL the generated job helpers expose.
type Querier interface {
	// SELECT * FROM @@table WHERE status IN ('pending','processing') ORDER BY id
	FindActive() ([]*gen.T, error)
}

func RegisterJob(g *gen.Generator) {
	g.ApplyBasic(dbschema.Job{}, dbschema.JobResult{})
	g.ApplyInterface(func(Querier) {}, dbschema.Job{})
}
