package auth

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/net/context"
	"golang.org/x/oauth2"

	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/auth"
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
	"docurio.ai/docurio-client/app/utils/stringutils"
	"docurio.ai/docurio-client/config/environment_variables"
)

// OIDCHandler wraps the identity provider client. Discovery is deferred to
// the first request so the server still boots when the issuer is unset or
// unreachable.
type OIDCHandler struct {
	mu           sync.Mutex
	provider     *oidc.Provider
	oAuth2Config *oauth2.Config
}

func NewOIDCHandler() *OIDCHandler {
	return &OIDCHandler{}
}

// IDTokenClaims is the subset of the provider's ID token we care about.
type IDTokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Sub   string `json:"sub"`
}

func (h *OIDCHandler) init(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.provider != nil {
		return nil
	}
	issuerURL := environment_variables.EnvironmentVariables.OIDC_ISSUER_URL
	if issuerURL == "" {
		return fmt.Errorf("oidc is not configured")
	}
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return err
	}
	h.provider = provider
	h.oAuth2Config = &oauth2.Config{
		ClientID:     environment_variables.EnvironmentVariables.OIDC_CLIENT_ID,
		ClientSecret: environment_variables.EnvironmentVariables.OIDC_CLIENT_SECRET,
		RedirectURL:  environment_variables.EnvironmentVariables.OIDC_REDIRECT_URL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	return nil
}

// AuthCodeURL returns the provider's consent page URL for the given state.
func (h *OIDCHandler) AuthCodeURL(ctx context.Context, state string) (string, error) {
	if err := h.init(ctx); err != nil {
		return "", err
	}
	return h.oAuth2Config.AuthCodeURL(state), nil
}

// Exchange swaps an authorization code for the raw ID token inside the
// provider's token response.
func (h *OIDCHandler) Exchange(ctx context.Context, code string) (string, error) {
	if err := h.init(ctx); err != nil {
		return "", err
	}
	token, err := h.oAuth2Config.Exchange(ctx, code)
	if err != nil {
		return "", err
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return "", fmt.Errorf("token response carried no id_token")
	}
	return rawIDToken, nil
}

// Verify checks the ID token's signature and audience against the provider
// and extracts the profile claims.
func (h *OIDCHandler) Verify(ctx context.Context, rawIDToken string) (*IDTokenClaims, error) {
	if err := h.init(ctx); err != nil {
		return nil, err
	}
	verifier := h.provider.Verifier(&oidc.Config{
		ClientID: environment_variables.EnvironmentVariables.OIDC_CLIENT_ID,
	})
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}
	var claims IDTokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("id_token carried no email claim")
	}
	return &claims, nil
}

type OIDCSignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type OIDCCallbackRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state" binding:"required"`
}

// userForClaims finds the account behind verified provider claims, creating
// it on first sign-in.
func (authRoute *AuthRoute) userForClaims(ctx context.Context, claims *IDTokenClaims) (*user.User, error) {
	existing, err := authRoute.userService.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.Enabled {
			return nil, nil
		}
		return existing, nil
	}
	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	created, err := authRoute.userService.RegisterUser(ctx, &user.User{
		Name:  name,
		Email: claims.Email,
	}, "")
	if err != nil {
		return nil, err
	}
	authRoute.auditService.Record(ctx, created.ID, audit.ActionUserRegister, created.ID, "oidc registration")
	return created, nil
}

// @Summary Sign in with an identity provider token
// @Description Verifies an OpenID Connect ID token and exchanges it for a session, creating the account on first sign-in.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body OIDCSignInRequest true "ID token from the provider"
// @Success 200 {object} SessionResponse "Session tokens"
// @Failure 401 {object} responses.ErrorResponse "Token verification failed"
// @Failure 503 {object} responses.ErrorResponse "No identity provider configured"
// @Router /v1/auth/oidc [post]
func (authRoute *AuthRoute) SignInWithOIDC(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var req OIDCSignInRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "0c1e36d1-9bd9-4f54-87a0-4c7073b24d2f",
			Error: err.Error(),
		})
		return
	}
	claims, err := authRoute.oidc.Verify(ctx, req.IDToken)
	if err != nil {
		if authRoute.oidc.provider == nil {
			reqCtx.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
				Code:  "38c2431b-4956-49fb-9777-9865d74f1a5e",
				Error: "oidc is not configured",
			})
			return
		}
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code:  "62c2bd1e-1072-4ae5-87a2-39d7ba2822bf",
			Error: err.Error(),
		})
		return
	}
	userEntity, err := authRoute.userForClaims(ctx, claims)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "bd67c747-60a4-4c38-ba1c-a4a89faba2a0",
			Error: err.Error(),
		})
		return
	}
	if userEntity == nil {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code:  "3c6a7a5a-79b6-49d5-9c9f-6a3d2ce7f9b1",
			Error: "account is disabled",
		})
		return
	}
	authRoute.auditService.Record(ctx, userEntity.ID, audit.ActionUserLogin, userEntity.ID, "oidc login")
	authRoute.issueSession(reqCtx, userEntity)
}

// @Summary Start the browser sign-in flow
// @Description Redirects to the identity provider's consent page with a single-use state cookie.
// @Tags Authentication
// @Success 302 "Redirect to the provider"
// @Failure 503 {object} responses.ErrorResponse "No identity provider configured"
// @Router /v1/auth/oidc/start [get]
func (authRoute *AuthRoute) OIDCStart(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	state, err := stringutils.RandomString(16)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "05c1cea5-6331-4c24-b74a-d565e2a4ca54",
			Error: err.Error(),
		})
		return
	}
	authCodeURL, err := authRoute.oidc.AuthCodeURL(ctx, state)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Code:  "37bd26a4-c6ee-4dd0-a6a1-b1c2b1f3f280",
			Error: "oidc is not configured",
		})
		return
	}
	reqCtx.SetCookie(auth.OAuthStateKey, state, 300, "/", "", true, true)
	reqCtx.Redirect(http.StatusFound, authCodeURL)
}

// @Summary Finish the browser sign-in flow
// @Description Exchanges the provider's authorization code for a session. The state must match the cookie set by the start endpoint.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body OIDCCallbackRequest true "Authorization code and state"
// @Success 200 {object} SessionResponse "Session tokens"
// @Failure 401 {object} responses.ErrorResponse "State mismatch or exchange failure"
// @Router /v1/auth/oidc/callback [post]
func (authRoute *AuthRoute) OIDCCallback(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var req OIDCCallbackRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "3972354f-7b0a-4a3d-867e-e36f88053560",
			Error: err.Error(),
		})
		return
	}
	stateCookie, err := reqCtx.Cookie(auth.OAuthStateKey)
	if err != nil || stateCookie != req.State {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code:  "0b38d0a9-3ff7-4d57-94b6-2aa2780b6ae7",
			Error: "state mismatch",
		})
		return
	}
	reqCtx.SetCookie(auth.OAuthStateKey, "", -1, "/", "", true, true)

	rawIDToken, err := authRoute.oidc.Exchange(ctx, req.Code)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code:  "e028b203-4788-4196-a047-7a419e63da16",
			Error: err.Error(),
		})
		return
	}
	claims, err := authRoute.oidc.Verify(ctx, rawIDToken)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code:  "0a2be06e-96aa-49ae-bc99-e19a35e49432",
			Error: err.Error(),
		})
		return
	}
	userEntity, err := authRoute.userForClaims(ctx, claims)
	if err != nil || userEntity == nil {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code:  "29b7c1d1-4b24-4e56-92d6-155d7faee01e",
			Error: "account could not be signed in",
		})
		return
	}
	authRoute.auditService.Record(ctx, userEntity.ID, audit.ActionUserLogin, userEntity.ID, "oidc login")
	authRoute.issueSession(reqCtx, userEntity)
}
