package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
)

type AuditRoute struct {
	auditService *audit.AuditService
}

func NewAuditRoute(auditService *audit.AuditService) *AuditRoute {
	return &AuditRoute{auditService: auditService}
}

func (auditRoute *AuditRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/audit-logs", auditRoute.ListAuditLogs)
}

// @Summary List audit entries
// @Description Returns one page of the administrative audit trail, newest first.
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, capped at 100"
// @Success 200 {object} audit.Page "One page of the trail"
// @Router /v1/admin/audit-logs [get]
func (auditRoute *AuditRoute) ListAuditLogs(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	pagination, err := query.GetPaginationFromQuery(reqCtx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "ab215f23-80a2-4e29-a40a-6a5350fa84ba",
			Error: err.Error(),
		})
		return
	}
	page, err := auditRoute.auditService.List(ctx, pagination)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "96e000f5-cc43-4a27-b33f-68a77a34ec7a",
			Error: err.Error(),
		})
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}
