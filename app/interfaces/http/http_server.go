package http

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/gin-gonic/gin"
	_ "github.com/grafana/pyroscope-go/godeltaprof/http/pprof"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"docurio.ai/docurio-client/app/domain/healthcheck"
	"docurio.ai/docurio-client/app/interfaces/http/middleware"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
	v1 "docurio.ai/docurio-client/app/interfaces/http/routes/v1"
	"docurio.ai/docurio-client/app/utils/logger"
	"docurio.ai/docurio-client/config/environment_variables"
	_ "docurio.ai/docurio-client/docs"
)

type HttpServer struct {
	engine             *gin.Engine
	v1Route            *v1.V1Route
	healthcheckService *healthcheck.HealthcheckCrontabService
}

func NewHttpServer(v1Route *v1.V1Route, healthcheckService *healthcheck.HealthcheckCrontabService) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:             gin.New(),
		v1Route:            v1Route,
		healthcheckService: healthcheckService,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.LoggerMiddleware(logger.GetLogger()))
	server.engine.Use(middleware.CORS())
	server.engine.GET("/health-check", server.HealthCheck)
	server.engine.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	// The pprof packages register on the default mux, delta profiles included.
	server.engine.Any("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	return &server
}

// @Summary Liveness probe
// @Description Answers from the most recent scheduled database probe without touching dependencies.
// @Tags system
// @Produce json
// @Success 200 {string} string "ok"
// @Failure 503 {object} responses.ErrorResponse "A dependency is unreachable"
// @Router /health-check [get]
func (httpServer *HttpServer) HealthCheck(c *gin.Context) {
	if !httpServer.healthcheckService.Healthy() {
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Code:  "2e9a1f2f-3b8f-4f5c-9f7e-83b7d9c4a1aa",
			Error: "database unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, "ok")
}

func (httpServer *HttpServer) Run() error {
	port := environment_variables.EnvironmentVariables.API_PORT
	if port == 0 {
		port = 8080
	}
	httpServer.v1Route.RegisterRouter(httpServer.engine.Group("/"))
	if err := httpServer.engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		return err
	}
	return nil
}
