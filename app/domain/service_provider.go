package domain

import (
	"github.com/google/wire"

	"docurio.ai/docurio-client/app/domain/apikey"
	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/auth"
	"docurio.ai/docurio-client/app/domain/cron"
	"docurio.ai/docurio-client/app/domain/healthcheck"
	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/domain/shared/id"
	"docurio.ai/docurio-client/app/domain/stats"
	"docurio.ai/docurio-client/app/domain/template"
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/utils/clock"
)

var ServiceProvider = wire.NewSet(
	clock.System,
	id.NewIDService,
	auth.NewAuthService,
	apikey.NewService,
	user.NewService,
	job.NewService,
	template.NewService,
	audit.NewService,
	stats.NewService,
	cron.NewService,
	healthcheck.NewService,
	wire.Bind(new(cron.JobAdvancer), new(*job.JobService)),
	wire.Bind(new(cron.AuditPruner), new(*audit.AuditService)),
)
