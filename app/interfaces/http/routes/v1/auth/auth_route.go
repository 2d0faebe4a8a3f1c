package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/auth"
	"docurio.ai/docurio-client/app/domain/session"
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
)

type AuthRoute struct {
	authService  *auth.AuthService
	userService  *user.UserService
	auditService *audit.AuditService
	oidc         *OIDCHandler
}

func NewAuthRoute(
	authService *auth.AuthService,
	userService *user.UserService,
	auditService *audit.AuditService,
	oidc *OIDCHandler,
) *AuthRoute {
	return &AuthRoute{
		authService:  authService,
		userService:  userService,
		auditService: auditService,
		oidc:         oidc,
	}
}

func (authRoute *AuthRoute) RegisterRouter(router gin.IRouter) {
	authRouter := router.Group("/auth")
	authRouter.POST("/login", authRoute.Login)
	authRouter.POST("/guest-login", authRoute.GuestLogin)
	authRouter.POST("/refresh", authRoute.Refresh)
	authRouter.POST("/logout", authRoute.Logout)
	authRouter.POST("/oidc", authRoute.SignInWithOIDC)
	authRouter.GET("/oidc/start", authRoute.OIDCStart)
	authRouter.POST("/oidc/callback", authRoute.OIDCCallback)
	authRouter.GET("/me",
		authRoute.authService.AppUserAuthMiddleware(),
		authRoute.authService.RegisteredUserMiddleware(),
		authRoute.GetMe,
	)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SessionResponse is the token pair plus the identity it belongs to.
type SessionResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	ExpiresIn    int64             `json:"expires_in"`
	User         *session.Identity `json:"user,omitempty"`
}

type LogoutResponse struct {
	Object string `json:"object"`
	Status string `json:"status"`
}

func identityOf(u *user.User) *session.Identity {
	return &session.Identity{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		IsAdmin:  u.IsAdmin(),
		PlanTier: u.Plan,
		Guest:    u.Guest,
	}
}

// issueSession mints a fresh token pair for the user, refreshes the cookie,
// and writes the session response.
func (authRoute *AuthRoute) issueSession(reqCtx *gin.Context, u *user.User) {
	accessToken, expiresIn, err := authRoute.authService.CreateAccessToken(u)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "aae72d62-3ad6-4469-8f4a-89b933493abf",
			Error: err.Error(),
		})
		return
	}
	refreshToken, err := authRoute.authService.CreateRefreshToken(u)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "ec8d82cd-829c-41b8-887b-0bf096f9db70",
			Error: err.Error(),
		})
		return
	}

	http.SetCookie(reqCtx.Writer, &http.Cookie{
		Name:     auth.RefreshTokenKey,
		Value:    refreshToken,
		Expires:  time.Now().Add(auth.RefreshTokenTTL),
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	})

	reqCtx.JSON(http.StatusOK, SessionResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         identityOf(u),
	})
}

// @Summary Sign in with email and password
// @Description Exchanges account credentials for a token pair.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Account credentials"
// @Success 200 {object} SessionResponse "Session tokens"
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Router /v1/auth/login [post]
func (authRoute *AuthRoute) Login(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var req LoginRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "9d6ba53c-2d69-4a7e-bd77-1c1a5e1f4f42",
			Error: err.Error(),
		})
		return
	}
	userEntity, err := authRoute.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "5a9f7a83-6c2e-4f53-8a5f-0f2e9adcb7d4",
			Error: err.Error(),
		})
		return
	}
	if userEntity == nil {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code:  "e8745a31-9f26-4f2e-b1c3-4a2d6f5b2c18",
			Error: "invalid email or password",
		})
		return
	}
	authRoute.auditService.Record(ctx, userEntity.ID, audit.ActionUserLogin, userEntity.ID, "password login")
	authRoute.issueSession(reqCtx, userEntity)
}

// @Summary Start a guest session
// @Description Creates a throwaway guest account, or revives the one named by a still-valid refresh cookie, and returns its token pair.
// @Tags Authentication
// @Produce json
// @Success 200 {object} SessionResponse "Session tokens"
// @Router /v1/auth/guest-login [post]
func (authRoute *AuthRoute) GuestLogin(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	// A returning guest keeps their account as long as the refresh cookie
	// lives.
	if cookie, err := reqCtx.Cookie(auth.RefreshTokenKey); err == nil {
		if claims, ok := auth.ParseJwtClaim(cookie); ok {
			existing, err := authRoute.userService.FindByPublicID(ctx, claims.Subject)
			if err == nil && existing != nil && existing.Enabled && existing.Guest {
				authRoute.issueSession(reqCtx, existing)
				return
			}
		}
	}

	guest, err := authRoute.userService.RegisterGuest(ctx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "8a20b9c8-24dd-48fd-a0e6-c332b067f76d",
			Error: err.Error(),
		})
		return
	}
	authRoute.auditService.Record(ctx, guest.ID, audit.ActionUserRegister, guest.ID, "guest registration")
	authRoute.issueSession(reqCtx, guest)
}

// @Summary Refresh the session
// @Description Exchanges a valid refresh token, from the body or cookie, for a fresh token pair. Both tokens rotate.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body RefreshRequest false "Refresh token; the cookie is used when absent"
// @Success 200 {object} SessionResponse "Session tokens"
// @Failure 401 {object} responses.ErrorResponse "Expired or invalid refresh token"
// @Router /v1/auth/refresh [post]
func (authRoute *AuthRoute) Refresh(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var req RefreshRequest
	_ = reqCtx.ShouldBindJSON(&req)

	refreshTokenString := req.RefreshToken
	if refreshTokenString == "" {
		cookie, err := reqCtx.Cookie(auth.RefreshTokenKey)
		if err != nil {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "b7a561eb-8905-4e75-8c76-19ef2ff225f1",
				Error: "missing refresh token",
			})
			return
		}
		refreshTokenString = cookie
	}

	claims, ok := auth.ParseJwtClaim(refreshTokenString)
	if !ok {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code: "3b50fabc-0e15-4846-9322-de48d8a9ff38",
		})
		return
	}
	userEntity, err := authRoute.userService.FindByPublicID(ctx, claims.Subject)
	if err != nil || userEntity == nil || !userEntity.Enabled {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code: "e296a2c6-f6bf-4ccf-a4e8-76c65fa7d551",
		})
		return
	}
	authRoute.issueSession(reqCtx, userEntity)
}

// @Summary Sign out
// @Description Expires the refresh cookie. Access tokens simply age out.
// @Tags Authentication
// @Produce json
// @Success 200 {object} LogoutResponse "Session ended"
// @Router /v1/auth/logout [post]
func (authRoute *AuthRoute) Logout(reqCtx *gin.Context) {
	http.SetCookie(reqCtx.Writer, &http.Cookie{
		Name:     auth.RefreshTokenKey,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	})
	reqCtx.JSON(http.StatusOK, LogoutResponse{
		Object: "session.logout",
		Status: "ok",
	})
}

// @Summary Get the signed-in identity
// @Description Returns the profile of the account behind the bearer credential.
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} session.Identity "The caller's identity"
// @Failure 401 {object} responses.ErrorResponse "Missing or invalid credential"
// @Router /v1/auth/me [get]
func (authRoute *AuthRoute) GetMe(reqCtx *gin.Context) {
	userEntity, ok := auth.GetUserFromContext(reqCtx)
	if !ok {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code: "1e2507a8-cbfa-4f1a-acd9-89c219d96b09",
		})
		return
	}
	reqCtx.JSON(http.StatusOK, identityOf(userEntity))
}
