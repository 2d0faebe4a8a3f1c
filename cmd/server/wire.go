//go:build wireinject

package main

import (
	"github.com/google/wire"

	"docurio.ai/docurio-client/app/domain"
	"docurio.ai/docurio-client/app/infrastructure"
	"docurio.ai/docurio-client/app/infrastructure/database/repository"
	"docurio.ai/docurio-client/app/interfaces/http"
	"docurio.ai/docurio-client/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		repository.RepositoryProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(DataInitializer), "*"),
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
