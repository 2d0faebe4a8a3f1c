package admin

import (
	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/app/domain/auth"
)

// AdminRoute groups the operator console endpoints behind the admin
// credential chain.
type AdminRoute struct {
	authService  *auth.AuthService
	usersRoute   *UsersRoute
	statsRoute   *StatsRoute
	auditRoute   *AuditRoute
	apiKeysRoute *ApiKeysRoute
	cacheRoute   *CacheRoute
}

func NewAdminRoute(
	authService *auth.AuthService,
	usersRoute *UsersRoute,
	statsRoute *StatsRoute,
	auditRoute *AuditRoute,
	apiKeysRoute *ApiKeysRoute,
	cacheRoute *CacheRoute,
) *AdminRoute {
	return &AdminRoute{
		authService:  authService,
		usersRoute:   usersRoute,
		statsRoute:   statsRoute,
		auditRoute:   auditRoute,
		apiKeysRoute: apiKeysRoute,
		cacheRoute:   cacheRoute,
	}
}

func (adminRoute *AdminRoute) RegisterRouter(router gin.IRouter) {
	adminRouter := router.Group("/admin",
		adminRoute.authService.AdminUserAuthMiddleware(),
		adminRoute.authService.RegisteredUserMiddleware(),
		adminRoute.authService.AdminOnlyMiddleware(),
	)
	adminRoute.usersRoute.RegisterRouter(adminRouter)
	adminRoute.statsRoute.RegisterRouter(adminRouter)
	adminRoute.auditRoute.RegisterRouter(adminRouter)
	adminRoute.apiKeysRoute.RegisterRouter(adminRouter)
	adminRoute.cacheRoute.RegisterRouter(adminRouter)
}
