package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/app/interfaces/http/routes/v1/admin"
	"docurio.ai/docurio-client/app/interfaces/http/routes/v1/auth"
	"docurio.ai/docurio-client/app/interfaces/http/routes/v1/jobs"
	"docurio.ai/docurio-client/app/interfaces/http/routes/v1/templates"
	"docurio.ai/docurio-client/app/interfaces/http/routes/v1/usage"
	"docurio.ai/docurio-client/config"
)

type V1Route struct {
	authRoute      *auth.AuthRoute
	jobsRoute      *jobs.JobsRoute
	templatesRoute *templates.TemplatesRoute
	usageRoute     *usage.UsageRoute
	adminRoute     *admin.AdminRoute
}

func NewV1Route(
	authRoute *auth.AuthRoute,
	jobsRoute *jobs.JobsRoute,
	templatesRoute *templates.TemplatesRoute,
	usageRoute *usage.UsageRoute,
	adminRoute *admin.AdminRoute,
) *V1Route {
	return &V1Route{
		authRoute,
		jobsRoute,
		templatesRoute,
		usageRoute,
		adminRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Route.authRoute.RegisterRouter(v1Router)
	v1Route.jobsRoute.RegisterRouter(v1Router)
	v1Route.templatesRoute.RegisterRouter(v1Router)
	v1Route.usageRoute.RegisterRouter(v1Router)
	v1Route.adminRoute.RegisterRouter(v1Router)
}

// GetVersion godoc
// @Summary     Get API build version
// @Description Returns the current build version of the API server.
// @Tags        system
// @Produce     json
// @Success     200 {object} map[string]string "version info"
// @Router      /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": config.Version,
	})
}
