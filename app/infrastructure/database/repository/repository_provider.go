package repository

import (
	"github.com/google/wire"

	"docurio.ai/docurio-client/app/infrastructure/database/repository/apikeyrepo"
	"docurio.ai/docurio-client/app/infrastructure/database/repository/auditrepo"
	"docurio.ai/docurio-client/app/infrastructure/database/repository/jobrepo"
	"docurio.ai/docurio-client/app/infrastructure/database/repository/templaterepo"
	"docurio.ai/docurio-client/app/infrastructure/database/repository/userrepo"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	jobrepo.NewJobGormRepository,
	templaterepo.NewTemplateGormRepository,
	apikeyrepo.NewApiKeyGormRepository,
	auditrepo.NewAuditGormRepository,
)
