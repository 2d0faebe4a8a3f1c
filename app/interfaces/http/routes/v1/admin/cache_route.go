package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/auth"
	"docurio.ai/docurio-client/app/domain/resource"
	"docurio.ai/docurio-client/app/infrastructure/cache"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
	"docurio.ai/docurio-client/app/utils/logger"
)

// CacheRoute exposes administrative cache operations. Flushing the shared
// tier forces every client process to refetch on its next read.
type CacheRoute struct {
	entryStore   *cache.RedisEntryStore
	auditService *audit.AuditService
}

func NewCacheRoute(entryStore *cache.RedisEntryStore, auditService *audit.AuditService) *CacheRoute {
	return &CacheRoute{
		entryStore:   entryStore,
		auditService: auditService,
	}
}

func (cacheRoute *CacheRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/cache/invalidate", cacheRoute.InvalidateCache)
}

// CacheInvalidateResponse represents the result of a cache invalidation request.
type CacheInvalidateResponse struct {
	Object  string `json:"object"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// @Summary Flush the shared cache
// @Description Removes every entry in the shared cache namespace.
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} CacheInvalidateResponse "Flush acknowledgement"
// @Router /v1/admin/cache/invalidate [post]
func (cacheRoute *CacheRoute) InvalidateCache(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	if err := cacheRoute.entryStore.DeletePattern(ctx, resource.KeyVersion+":*"); err != nil {
		logger.GetLogger().Errorf("admin cache: failed to flush cache: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "a75f8d47-9b63-4106-97fd-a021e5952480",
			Error: "failed to invalidate cache",
		})
		return
	}
	if actor, ok := auth.GetUserFromContext(reqCtx); ok {
		cacheRoute.auditService.Record(ctx, actor.ID, audit.ActionCacheFlush, "", "")
	}

	reqCtx.JSON(http.StatusOK, CacheInvalidateResponse{
		Object:  "cache.invalidation",
		Status:  "ok",
		Message: "cache invalidated",
	})
}
