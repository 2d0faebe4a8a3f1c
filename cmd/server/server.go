package main

import (
	"context"
	"time"

	"github.com/mileusna/crontab"

	"docurio.ai/docurio-client/app/domain/cron"
	"docurio.ai/docurio-client/app/domain/healthcheck"
	"docurio.ai/docurio-client/app/interfaces/http"
	"docurio.ai/docurio-client/app/utils/logger"
	"docurio.ai/docurio-client/config"
	"docurio.ai/docurio-client/config/environment_variables"
)

// workerInterval paces the simulated job lifecycle. Short enough that a
// polling client sees progress within a couple of ticks.
const workerInterval = 2 * time.Second

type Application struct {
	HttpServer         *http.HttpServer
	CronService        *cron.CronService
	HealthcheckService *healthcheck.HealthcheckCrontabService
	DataInitializer    *DataInitializer
}

func (application *Application) Start() {
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

// @title Docurio API
// @version 1.0
// @description Document validation and batch conversion platform.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	if err := application.DataInitializer.Install(ctx); err != nil {
		panic(err)
	}

	ctab := crontab.New()
	application.CronService.Start(ctx, ctab)
	application.HealthcheckService.Start(ctx, ctab)
	go application.CronService.RunWorkerLoop(ctx, workerInterval)

	logger.GetLogger().Infof("docurio server %s starting", config.Version)
	application.Start()
}
