package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"docurio.ai/docurio-client/app/domain/apikey"
	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/auth"
	"docurio.ai/docurio-client/app/domain/session"
	"docurio.ai/docurio-client/app/domain/shared/id"
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/infrastructure/database"
	"docurio.ai/docurio-client/app/infrastructure/database/repository/apikeyrepo"
	"docurio.ai/docurio-client/app/infrastructure/database/repository/auditrepo"
	"docurio.ai/docurio-client/app/infrastructure/database/repository/userrepo"
	authroute "docurio.ai/docurio-client/app/interfaces/http/routes/v1/auth"
	"docurio.ai/docurio-client/config/environment_variables"
)

type authHarness struct {
	engine *gin.Engine
	users  *user.UserService
}

func newAuthHarness(t *testing.T) *authHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	environment_variables.EnvironmentVariables.JWT_SECRET = []byte("route-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	for _, model := range database.SchemaRegistry {
		require.NoError(t, db.AutoMigrate(model))
	}

	ids := id.NewIDService()
	userService := user.NewService(userrepo.NewUserGormRepository(db), ids)
	apiKeyService := apikey.NewService(apikeyrepo.NewApiKeyGormRepository(db), ids)
	authService := auth.NewAuthService(userService, apiKeyService)
	auditService := audit.NewService(auditrepo.NewAuditGormRepository(db), ids)

	engine := gin.New()
	route := authroute.NewAuthRoute(authService, userService, auditService, authroute.NewOIDCHandler())
	route.RegisterRouter(engine.Group("/v1"))
	return &authHarness{engine: engine, users: userService}
}

func (h *authHarness) register(t *testing.T, email, password string) *user.User {
	t.Helper()
	registered, err := h.users.RegisterUser(context.Background(), &user.User{
		Name:  "Ada",
		Email: email,
	}, password)
	require.NoError(t, err)
	return registered
}

func (h *authHarness) do(t *testing.T, method, path string, body any, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if decorate != nil {
		decorate(req)
	}
	resp := httptest.NewRecorder()
	h.engine.ServeHTTP(resp, req)
	return resp
}

func decodeSession(t *testing.T, resp *httptest.ResponseRecorder) authroute.SessionResponse {
	t.Helper()
	var out authroute.SessionResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func refreshCookie(resp *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range resp.Result().Cookies() {
		if c.Name == auth.RefreshTokenKey {
			return c
		}
	}
	return nil
}

func TestLoginIssuesSession(t *testing.T) {
	h := newAuthHarness(t)
	registered := h.register(t, "ada@example.com", "hunter22")

	resp := h.do(t, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "ada@example.com",
		"password": "hunter22",
	}, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	out := decodeSession(t, resp)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, int64(auth.AccessTokenTTL.Seconds()), out.ExpiresIn)
	require.NotNil(t, out.User)
	assert.Equal(t, registered.ID, out.User.UserID)
	assert.Equal(t, "ada@example.com", out.User.Email)
	assert.False(t, out.User.Guest)

	claims, ok := auth.ParseJwtClaim(out.AccessToken)
	require.True(t, ok)
	assert.Equal(t, registered.ID, claims.Subject)

	cookie := refreshCookie(resp)
	require.NotNil(t, cookie)
	assert.Equal(t, out.RefreshToken, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newAuthHarness(t)
	h.register(t, "ada@example.com", "hunter22")

	resp := h.do(t, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "ada@example.com",
		"password": "nope",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = h.do(t, http.MethodPost, "/v1/auth/login", gin.H{"email": "ada@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGuestLoginCreatesAndRevives(t *testing.T) {
	h := newAuthHarness(t)

	resp := h.do(t, http.MethodPost, "/v1/auth/guest-login", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	first := decodeSession(t, resp)
	require.NotNil(t, first.User)
	assert.True(t, first.User.Guest)
	assert.True(t, strings.HasPrefix(first.User.UserID, "guest_"))

	// The refresh cookie revives the same guest account.
	resp = h.do(t, http.MethodPost, "/v1/auth/guest-login", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: auth.RefreshTokenKey, Value: first.RefreshToken})
	})
	require.Equal(t, http.StatusOK, resp.Code)
	revived := decodeSession(t, resp)
	assert.Equal(t, first.User.UserID, revived.User.UserID)

	// Without the cookie a fresh account is minted.
	resp = h.do(t, http.MethodPost, "/v1/auth/guest-login", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	second := decodeSession(t, resp)
	assert.NotEqual(t, first.User.UserID, second.User.UserID)
}

func TestRefreshRotatesTokens(t *testing.T) {
	h := newAuthHarness(t)
	registered := h.register(t, "ada@example.com", "hunter22")

	login := decodeSession(t, h.do(t, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "ada@example.com",
		"password": "hunter22",
	}, nil))

	resp := h.do(t, http.MethodPost, "/v1/auth/refresh", gin.H{
		"refresh_token": login.RefreshToken,
	}, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	refreshed := decodeSession(t, resp)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, registered.ID, refreshed.User.UserID)

	// The cookie alone is enough.
	resp = h.do(t, http.MethodPost, "/v1/auth/refresh", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: auth.RefreshTokenKey, Value: login.RefreshToken})
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = h.do(t, http.MethodPost, "/v1/auth/refresh", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = h.do(t, http.MethodPost, "/v1/auth/refresh", gin.H{
		"refresh_token": "not-a-token",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRefreshRejectsDisabledAccounts(t *testing.T) {
	h := newAuthHarness(t)
	registered := h.register(t, "ada@example.com", "hunter22")

	login := decodeSession(t, h.do(t, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "ada@example.com",
		"password": "hunter22",
	}, nil))

	disabled := false
	_, err := h.users.Update(context.Background(), registered.ID, user.Patch{Enabled: &disabled})
	require.NoError(t, err)

	resp := h.do(t, http.MethodPost, "/v1/auth/refresh", gin.H{
		"refresh_token": login.RefreshToken,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetMe(t *testing.T) {
	h := newAuthHarness(t)
	registered := h.register(t, "ada@example.com", "hunter22")

	login := decodeSession(t, h.do(t, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "ada@example.com",
		"password": "hunter22",
	}, nil))

	resp := h.do(t, http.MethodGet, "/v1/auth/me", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	})
	require.Equal(t, http.StatusOK, resp.Code)
	var identity session.Identity
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &identity))
	assert.Equal(t, registered.ID, identity.UserID)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.False(t, identity.IsAdmin)

	resp = h.do(t, http.MethodGet, "/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = h.do(t, http.MethodGet, "/v1/auth/me", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer garbage")
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogoutExpiresCookie(t *testing.T) {
	h := newAuthHarness(t)

	resp := h.do(t, http.MethodPost, "/v1/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var out authroute.LogoutResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, "session.logout", out.Object)
	assert.Equal(t, "ok", out.Status)

	cookie := refreshCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Unix() <= 0)
}
