package routes

import (
	"github.com/google/wire"

	"docurio.ai/docurio-client/app/interfaces/http/routes/v1"
	"docurio.ai/docurio-client/app/interfaces/http/routes/v1/admin"
	"docurio.ai/docurio-client/app/interfaces/http/routes/v1/auth"
	"docurio.ai/docurio-client/app/interfaces/http/routes/v1/jobs"
	"docurio.ai/docurio-client/app/interfaces/http/routes/v1/templates"
	"docurio.ai/docurio-client/app/interfaces/http/routes/v1/usage"
)

var RouteProvider = wire.NewSet(
	auth.NewOIDCHandler,
	auth.NewAuthRoute,
	jobs.NewJobsRoute,
	templates.NewTemplatesRoute,
	usage.NewUsageRoute,
	admin.NewUsersRoute,
	admin.NewStatsRoute,
	admin.NewAuditRoute,
	admin.NewApiKeysRoute,
	admin.NewCacheRoute,
	admin.NewAdminRoute,
	v1.NewV1Route,
)
