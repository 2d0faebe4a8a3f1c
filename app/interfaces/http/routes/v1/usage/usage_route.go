package usage

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/app/domain/auth"
	"docurio.ai/docurio-client/app/domain/guest"
	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
)

type UsageRoute struct {
	authService *auth.AuthService
	jobService  *job.JobService
}

func NewUsageRoute(authService *auth.AuthService, jobService *job.JobService) *UsageRoute {
	return &UsageRoute{
		authService: authService,
		jobService:  jobService,
	}
}

func (usageRoute *UsageRoute) RegisterRouter(router gin.IRouter) {
	usageRouter := router.Group("/usage",
		usageRoute.authService.AppUserAuthMiddleware(),
		usageRoute.authService.RegisteredUserMiddleware(),
	)
	usageRouter.GET("/guest", usageRoute.GetGuestUsage)
}

// @Summary Get the free-tier allowance
// @Description Reports how much of today's guest job quota the caller used. Registered accounts report a zero limit, meaning unlimited.
// @Tags Usage
// @Security BearerAuth
// @Produce json
// @Success 200 {object} guest.Usage "Quota usage"
// @Router /v1/usage/guest [get]
func (usageRoute *UsageRoute) GetGuestUsage(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	owner, ok := auth.GetUserFromContext(reqCtx)
	if !ok {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code: "23d19b69-5e2a-4f23-a9ed-82c3f8b19f63",
		})
		return
	}
	if !owner.Guest {
		reqCtx.JSON(http.StatusOK, guest.Usage{})
		return
	}
	used, limit, resetsAt, err := usageRoute.jobService.GuestQuota(ctx, owner.ID)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "1d1b3b0a-8a3c-49a5-90d9-3cf1c194f8d4",
			Error: err.Error(),
		})
		return
	}
	reqCtx.JSON(http.StatusOK, guest.Usage{
		Used:     int(used),
		Limit:    limit,
		ResetsAt: resetsAt,
	})
}
