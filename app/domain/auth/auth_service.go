package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"docurio.ai/docurio-client/app/domain/apikey"
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/interfaces/http/requests"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
)

type AuthService struct {
	userService   *user.UserService
	apiKeyService *apikey.ApiKeyService
}

func NewAuthService(
	userService *user.UserService,
	apiKeyService *apikey.ApiKeyService,
) *AuthService {
	return &AuthService{
		userService:   userService,
		apiKeyService: apiKeyService,
	}
}

type UserContextKey string

const (
	UserContextKeyEntity UserContextKey = "UserContextKeyEntity"
	UserContextKeyID     UserContextKey = "UserContextKeyID"
)

// CreateAccessToken mints a short-lived token for the user and returns it
// with its lifetime in seconds.
func (s *AuthService) CreateAccessToken(u *user.User) (string, int64, error) {
	now := time.Now()
	token, err := CreateJwtSignedString(UserClaim{
		Email: u.Email,
		Name:  u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ID:        u.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	if err != nil {
		return "", 0, err
	}
	return token, int64(AccessTokenTTL / time.Second), nil
}

// CreateRefreshToken mints the long-lived token that rides in the refresh
// cookie.
func (s *AuthService) CreateRefreshToken(u *user.User) (string, error) {
	now := time.Now()
	return CreateJwtSignedString(UserClaim{
		Email: u.Email,
		Name:  u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ID:        u.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
}

// JWTAuthMiddleware records the caller's identity when a valid token is
// present and lets the request through either way. Routes that serve both
// anonymous and signed-in callers use this.
func (s *AuthService) JWTAuthMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		userId, ok := s.getUserPublicIDFromJWT(reqCtx)
		if ok {
			SetUserIDToContext(reqCtx, userId)
		}
		reqCtx.Next()
	}
}

// AppUserAuthMiddleware admits callers holding a valid token or a user API
// key.
func (s *AuthService) AppUserAuthMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		userId, ok := s.getUserPublicIDFromJWT(reqCtx)
		if ok {
			SetUserIDToContext(reqCtx, userId)
			reqCtx.Next()
			return
		}
		userId, ok = s.getUserIDFromApikey(reqCtx, apikey.ApikeyTypeUser)
		if ok {
			SetUserIDToContext(reqCtx, userId)
			reqCtx.Next()
			return
		}

		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code: "b490ddc6-315a-4115-a1c2-2b85ca768726",
		})
	}
}

// AdminUserAuthMiddleware admits callers holding a valid token or an admin
// API key. The role check happens after the entity loads, in
// AdminOnlyMiddleware.
func (s *AuthService) AdminUserAuthMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		userId, ok := s.getUserPublicIDFromJWT(reqCtx)
		if ok {
			SetUserIDToContext(reqCtx, userId)
			reqCtx.Next()
			return
		}
		userId, ok = s.getUserIDFromApikey(reqCtx, apikey.ApikeyTypeAdmin)
		if ok {
			SetUserIDToContext(reqCtx, userId)
			reqCtx.Next()
			return
		}

		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code: "c2c9e7f1-5f2a-4cf0-8f3a-5b52a1c8d90e",
		})
	}
}

// RegisteredUserMiddleware loads the account named by the authenticated
// public ID into the request context. Disabled and deleted accounts are
// rejected here.
func (s *AuthService) RegisteredUserMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		ctx := reqCtx.Request.Context()
		userPublicId, ok := GetUserIDFromContext(reqCtx)
		if !ok || userPublicId == "" {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "00b597a4-70a8-45bb-9f4b-049dd82a5037",
			})
			return
		}
		userEntity, err := s.userService.FindByPublicID(ctx, userPublicId)
		if err != nil {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "c04d2221-4d12-4af1-9003-a5366324ffe2",
			})
			return
		}
		if userEntity == nil || !userEntity.Enabled {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "d106c741-bb4c-40bc-ba2f-208a076129ca",
			})
			return
		}
		SetUserToContext(reqCtx, userEntity)
		reqCtx.Next()
	}
}

// AdminOnlyMiddleware rejects non-admin accounts. It must run after
// RegisteredUserMiddleware.
func (s *AuthService) AdminOnlyMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		userEntity, ok := GetUserFromContext(reqCtx)
		if !ok {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "88e7c4a3-07c7-4f0d-9a61-1fd7e25cbf3c",
			})
			return
		}
		if !userEntity.IsAdmin() {
			reqCtx.AbortWithStatusJSON(http.StatusForbidden, responses.ErrorResponse{
				Code:  "1b1b8a52-f0ad-4b19-a43c-5d8e3f9d7f11",
				Error: "admin role required",
			})
			return
		}
		reqCtx.Next()
	}
}

func (s *AuthService) getUserPublicIDFromJWT(reqCtx *gin.Context) (string, bool) {
	tokenString, ok := requests.GetTokenFromBearer(reqCtx)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(tokenString, apikey.ApikeyPrefix) {
		return "", false
	}
	claims, ok := ParseJwtClaim(tokenString)
	if !ok {
		return "", false
	}
	return claims.Subject, true
}

func (s *AuthService) getUserIDFromApikey(reqCtx *gin.Context, keyType apikey.ApikeyType) (string, bool) {
	tokenString, ok := requests.GetTokenFromBearer(reqCtx)
	if !ok {
		return "", false
	}
	if !strings.HasPrefix(tokenString, apikey.ApikeyPrefix) {
		return "", false
	}
	ctx := reqCtx.Request.Context()
	apikeyEntity, err := s.apiKeyService.FindByKey(ctx, tokenString)
	if err != nil || apikeyEntity == nil {
		return "", false
	}
	if apikeyEntity.ApikeyType != keyType {
		return "", false
	}
	s.apiKeyService.TouchLastUsed(ctx, apikeyEntity)
	return apikeyEntity.OwnerPublicID, true
}

func GetUserFromContext(reqCtx *gin.Context) (*user.User, bool) {
	v, ok := reqCtx.Get(string(UserContextKeyEntity))
	if !ok {
		return nil, false
	}
	return v.(*user.User), true
}

func SetUserToContext(reqCtx *gin.Context, u *user.User) {
	reqCtx.Set(string(UserContextKeyEntity), u)
}

func GetUserIDFromContext(reqCtx *gin.Context) (string, bool) {
	userId, ok := reqCtx.Get(string(UserContextKeyID))
	if !ok {
		return "", false
	}
	v, ok := userId.(string)
	if !ok {
		return "", false
	}
	return v, true
}

func SetUserIDToContext(reqCtx *gin.Context, v string) {
	reqCtx.Set(string(UserContextKeyID), v)
}
