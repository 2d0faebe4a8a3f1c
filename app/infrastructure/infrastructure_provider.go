package infrastructure

import (
	"github.com/google/wire"

	"docurio.ai/docurio-client/app/infrastructure/cache"
	"docurio.ai/docurio-client/app/infrastructure/database"
)

var InfrastructureProvider = wire.NewSet(
	database.NewDB,
	cache.NewRedisEntryStore,
)
