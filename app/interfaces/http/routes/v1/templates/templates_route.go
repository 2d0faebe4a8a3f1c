package templates

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/auth"
	"docurio.ai/docurio-client/app/domain/mutation"
	"docurio.ai/docurio-client/app/domain/template"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
)

// TemplatesRoute serves the conversion profile catalog. Any signed-in user
// can read it; changing it takes an admin credential.
type TemplatesRoute struct {
	authService     *auth.AuthService
	templateService *template.TemplateService
	auditService    *audit.AuditService
}

func NewTemplatesRoute(
	authService *auth.AuthService,
	templateService *template.TemplateService,
	auditService *audit.AuditService,
) *TemplatesRoute {
	return &TemplatesRoute{
		authService:     authService,
		templateService: templateService,
		auditService:    auditService,
	}
}

func (templatesRoute *TemplatesRoute) RegisterRouter(router gin.IRouter) {
	readRouter := router.Group("/templates",
		templatesRoute.authService.AppUserAuthMiddleware(),
		templatesRoute.authService.RegisteredUserMiddleware(),
	)
	readRouter.GET("", templatesRoute.ListTemplates)
	readRouter.GET("/:template_id", templatesRoute.GetTemplate)

	writeRouter := router.Group("/templates",
		templatesRoute.authService.AdminUserAuthMiddleware(),
		templatesRoute.authService.RegisteredUserMiddleware(),
		templatesRoute.authService.AdminOnlyMiddleware(),
	)
	writeRouter.POST("", templatesRoute.CreateTemplate)
	writeRouter.PATCH("/:template_id", templatesRoute.UpdateTemplate)
	writeRouter.DELETE("/:template_id", templatesRoute.DeleteTemplate)
}

type DeleteTemplateResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

func writeTemplateNotFound(reqCtx *gin.Context) {
	reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
		Code:  "fb3de5a8-5b5f-4d2a-b1cd-96b19e92161a",
		Error: "template not found",
	})
}

// @Summary List templates
// @Description Returns the full conversion profile catalog.
// @Tags Templates
// @Security BearerAuth
// @Produce json
// @Success 200 {object} template.List "All profiles"
// @Router /v1/templates [get]
func (templatesRoute *TemplatesRoute) ListTemplates(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	list, err := templatesRoute.templateService.List(ctx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "6be00cfa-5202-4b58-9ee4-cda80c408730",
			Error: err.Error(),
		})
		return
	}
	reqCtx.JSON(http.StatusOK, list)
}

// @Summary Get a template
// @Description Returns one conversion profile by id.
// @Tags Templates
// @Security BearerAuth
// @Produce json
// @Param template_id path string true "Template ID"
// @Success 200 {object} template.Template "The profile"
// @Failure 404 {object} responses.ErrorResponse "No such profile"
// @Router /v1/templates/{template_id} [get]
func (templatesRoute *TemplatesRoute) GetTemplate(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	found, err := templatesRoute.templateService.FindByPublicID(ctx, reqCtx.Param("template_id"))
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "a0487c21-47a1-45f6-9d33-17a2a4f5a7cb",
			Error: err.Error(),
		})
		return
	}
	if found == nil {
		writeTemplateNotFound(reqCtx)
		return
	}
	reqCtx.JSON(http.StatusOK, found)
}

// @Summary Create a template
// @Description Registers a new conversion profile in the catalog.
// @Tags Templates
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body mutation.CreateTemplatePayload true "Profile definition"
// @Success 200 {object} template.Template "The created profile"
// @Failure 400 {object} responses.ErrorResponse "Missing required fields"
// @Router /v1/templates [post]
func (templatesRoute *TemplatesRoute) CreateTemplate(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	actor, _ := auth.GetUserFromContext(reqCtx)
	var payload mutation.CreateTemplatePayload
	if err := reqCtx.ShouldBindJSON(&payload); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "374c46dd-733c-4d2c-816b-35e82ed93c77",
			Error: err.Error(),
		})
		return
	}
	created, err := templatesRoute.templateService.Create(ctx, &template.Template{
		Name:         payload.Name,
		Description:  payload.Description,
		SourceFormat: payload.SourceFormat,
		TargetFormat: payload.TargetFormat,
		Rules:        payload.Rules,
	})
	if err != nil {
		if errors.Is(err, template.ErrInvalidTemplate) {
			reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "d78f49a7-32b4-47f6-8dff-42dc91961914",
				Error: err.Error(),
			})
			return
		}
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "907e79ce-43c8-4d52-a35a-a13e17a72cf3",
			Error: err.Error(),
		})
		return
	}
	if actor != nil {
		templatesRoute.auditService.Record(ctx, actor.ID, audit.ActionTemplateCreate, created.ID, created.Name)
	}
	reqCtx.JSON(http.StatusOK, created)
}

// @Summary Update a template
// @Description Changes the editable fields of a conversion profile.
// @Tags Templates
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param template_id path string true "Template ID"
// @Param request body mutation.UpdateTemplatePayload true "Fields to change"
// @Success 200 {object} template.Template "The updated profile"
// @Failure 404 {object} responses.ErrorResponse "No such profile"
// @Router /v1/templates/{template_id} [patch]
func (templatesRoute *TemplatesRoute) UpdateTemplate(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	actor, _ := auth.GetUserFromContext(reqCtx)
	var payload mutation.UpdateTemplatePayload
	if err := reqCtx.ShouldBindJSON(&payload); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "e422b710-6a64-41a6-9f29-41e4b1f94584",
			Error: err.Error(),
		})
		return
	}
	updated, err := templatesRoute.templateService.Update(ctx, reqCtx.Param("template_id"), template.Patch{
		Name:        payload.Name,
		Description: payload.Description,
		Rules:       payload.Rules,
	})
	if err != nil {
		if errors.Is(err, template.ErrInvalidTemplate) {
			reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "42e53b44-4e18-4ed3-8408-460e57e35a9e",
				Error: err.Error(),
			})
			return
		}
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "5acde608-5a0b-43a4-bd05-3e7b903d02a4",
			Error: err.Error(),
		})
		return
	}
	if updated == nil {
		writeTemplateNotFound(reqCtx)
		return
	}
	if actor != nil {
		templatesRoute.auditService.Record(ctx, actor.ID, audit.ActionTemplateUpdate, updated.ID, "")
	}
	reqCtx.JSON(http.StatusOK, updated)
}

// @Summary Delete a template
// @Description Removes a conversion profile. Jobs that used it keep their recorded settings.
// @Tags Templates
// @Security BearerAuth
// @Produce json
// @Param template_id path string true "Template ID"
// @Success 200 {object} DeleteTemplateResponse "Deletion acknowledgement"
// @Failure 404 {object} responses.ErrorResponse "No such profile"
// @Router /v1/templates/{template_id} [delete]
func (templatesRoute *TemplatesRoute) DeleteTemplate(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	actor, _ := auth.GetUserFromContext(reqCtx)
	templateID := reqCtx.Param("template_id")
	deleted, err := templatesRoute.templateService.Delete(ctx, templateID)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "44c54ce3-b430-4d49-9f5e-02eb9f7a39b1",
			Error: err.Error(),
		})
		return
	}
	if !deleted {
		writeTemplateNotFound(reqCtx)
		return
	}
	if actor != nil {
		templatesRoute.auditService.Record(ctx, actor.ID, audit.ActionTemplateDelete, templateID, "")
	}
	reqCtx.JSON(http.StatusOK, DeleteTemplateResponse{
		ID:      templateID,
		Object:  "template.deleted",
		Deleted: true,
	})
}
