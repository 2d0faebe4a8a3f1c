package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/app/domain/apikey"
	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/auth"
	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
	"docurio.ai/docurio-client/app/utils/functional"
)

type ApiKeysRoute struct {
	apiKeyService *apikey.ApiKeyService
	auditService  *audit.AuditService
}

func NewApiKeysRoute(apiKeyService *apikey.ApiKeyService, auditService *audit.AuditService) *ApiKeysRoute {
	return &ApiKeysRoute{
		apiKeyService: apiKeyService,
		auditService:  auditService,
	}
}

func (apiKeysRoute *ApiKeysRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/api-keys", apiKeysRoute.CreateApiKey)
	router.GET("/api-keys", apiKeysRoute.ListApiKeys)
	router.DELETE("/api-keys/:key_id", apiKeysRoute.RevokeApiKey)
}

type CreateApiKeyRequest struct {
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"omitempty,oneof=user admin"`
	ExpiresAt   *int64 `json:"expires_at,omitempty"`
}

// ApiKeyResponse renders a key record. Key carries the plaintext secret and
// is only set on the create response.
type ApiKeyResponse struct {
	ID          string `json:"id"`
	Object      string `json:"object"`
	Key         string `json:"key,omitempty"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Enabled     bool   `json:"enabled"`
	ExpiresAt   *int64 `json:"expires_at,omitempty"`
	CreatedAt   int64  `json:"created_at"`
	LastUsedAt  *int64 `json:"last_used_at,omitempty"`
}

type ApiKeyListResponse struct {
	Object string           `json:"object"`
	Data   []ApiKeyResponse `json:"data"`
	Total  int64            `json:"total"`
}

type RevokeApiKeyResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Revoked bool   `json:"revoked"`
}

func apiKeyResponseOf(k *apikey.ApiKey) ApiKeyResponse {
	return ApiKeyResponse{
		ID:          k.PublicID,
		Object:      "apikey",
		Description: k.Description,
		Type:        string(k.ApikeyType),
		Enabled:     k.Enabled,
		ExpiresAt:   k.ExpiresAt,
		CreatedAt:   k.CreatedAt,
		LastUsedAt:  k.LastUsedAt,
	}
}

// @Summary Create an API key
// @Description Mints a long-lived bearer key. The plaintext secret appears once, in this response.
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateApiKeyRequest true "Key description and type"
// @Success 200 {object} ApiKeyResponse "The new key with its secret"
// @Router /v1/admin/api-keys [post]
func (apiKeysRoute *ApiKeysRoute) CreateApiKey(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	actor, ok := auth.GetUserFromContext(reqCtx)
	if !ok {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code: "41b2fc11-bb63-43de-b532-f1e9ee3b8f2a",
		})
		return
	}
	var req CreateApiKeyRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "5b20e6d9-3c78-45ba-8e4f-e12e21c16a5f",
			Error: err.Error(),
		})
		return
	}
	keyType := apikey.ApikeyType(req.Type)
	if keyType == "" {
		keyType = apikey.ApikeyTypeUser
	}
	plaintext, keyHash, err := apiKeysRoute.apiKeyService.GenerateKeyAndHash(ctx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "9f2f9bb7-3876-40fa-bc74-24225c2fbbbf",
			Error: err.Error(),
		})
		return
	}
	created, err := apiKeysRoute.apiKeyService.CreateApiKey(ctx, &apikey.ApiKey{
		KeyHash:       keyHash,
		Description:   req.Description,
		ApikeyType:    keyType,
		OwnerPublicID: actor.ID,
		ExpiresAt:     req.ExpiresAt,
	})
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "f3d9f47e-61ee-47e9-a9d2-158b05a146b5",
			Error: err.Error(),
		})
		return
	}
	apiKeysRoute.auditService.Record(ctx, actor.ID, audit.ActionAPIKeyCreate, created.PublicID, req.Description)

	response := apiKeyResponseOf(created)
	response.Key = plaintext
	reqCtx.JSON(http.StatusOK, response)
}

// @Summary List API keys
// @Description Returns one page of key records. Secrets are never shown again.
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, capped at 100"
// @Success 200 {object} ApiKeyListResponse "One page of keys"
// @Router /v1/admin/api-keys [get]
func (apiKeysRoute *ApiKeysRoute) ListApiKeys(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	pagination, err := query.GetPaginationFromQuery(reqCtx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "7a3b79e5-d2b2-47f4-89e0-7e01e38a2f23",
			Error: err.Error(),
		})
		return
	}
	keys, err := apiKeysRoute.apiKeyService.Find(ctx, apikey.ApiKeyFilter{}, pagination)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "3f6bfa3d-48f0-4a05-ac38-9c9b9bb1b6ad",
			Error: err.Error(),
		})
		return
	}
	total, err := apiKeysRoute.apiKeyService.Count(ctx, apikey.ApiKeyFilter{})
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "b2c90adb-9ef6-4c4a-8f02-e4a67c4b42f7",
			Error: err.Error(),
		})
		return
	}
	reqCtx.JSON(http.StatusOK, ApiKeyListResponse{
		Object: "list",
		Data:   functional.Map(keys, apiKeyResponseOf),
		Total:  total,
	})
}

// @Summary Revoke an API key
// @Description Disables a key so it can no longer authenticate. The record stays for the audit trail.
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param key_id path string true "Key ID"
// @Success 200 {object} RevokeApiKeyResponse "Revocation acknowledgement"
// @Failure 404 {object} responses.ErrorResponse "No such key"
// @Router /v1/admin/api-keys/{key_id} [delete]
func (apiKeysRoute *ApiKeysRoute) RevokeApiKey(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	keyID := reqCtx.Param("key_id")
	revoked, err := apiKeysRoute.apiKeyService.Revoke(ctx, keyID)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "cf7ad6cd-93ea-44fb-8b9c-32e4c1059a63",
			Error: err.Error(),
		})
		return
	}
	if !revoked {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "26b6b5a5-4c6c-4f30-8d9c-1ba3da22742c",
			Error: "api key not found",
		})
		return
	}
	reqCtx.JSON(http.StatusOK, RevokeApiKeyResponse{
		ID:      keyID,
		Object:  "apikey.revoked",
		Revoked: true,
	})
}
