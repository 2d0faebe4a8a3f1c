package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/app/domain/stats"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
)

type StatsRoute struct {
	statsService *stats.StatsService
}

func NewStatsRoute(statsService *stats.StatsService) *StatsRoute {
	return &StatsRoute{statsService: statsService}
}

func (statsRoute *StatsRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/stats", statsRoute.GetStats)
}

// @Summary Get platform statistics
// @Description Returns the aggregate counters the admin dashboard renders.
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} stats.Overview "Platform aggregates"
// @Router /v1/admin/stats [get]
func (statsRoute *StatsRoute) GetStats(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	overview, err := statsRoute.statsService.Overview(ctx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "09fd7a3f-5b4e-4f1c-b6d8-9e41dbfa6a97",
			Error: err.Error(),
		})
		return
	}
	reqCtx.JSON(http.StatusOK, overview)
}
