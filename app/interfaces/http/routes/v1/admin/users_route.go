package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/auth"
	"docurio.ai/docurio-client/app/domain/mutation"
	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
)

type UsersRoute struct {
	userService  *user.UserService
	auditService *audit.AuditService
}

func NewUsersRoute(userService *user.UserService, auditService *audit.AuditService) *UsersRoute {
	return &UsersRoute{
		userService:  userService,
		auditService: auditService,
	}
}

func (usersRoute *UsersRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/users", usersRoute.ListUsers)
	router.GET("/users/:user_id", usersRoute.GetUser)
	router.PATCH("/users/:user_id", usersRoute.UpdateUser)
}

func writeUserNotFound(reqCtx *gin.Context) {
	reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
		Code:  "41a24a4f-0c1e-4c85-a9ad-3c1e95b27c4a",
		Error: "user not found",
	})
}

// @Summary List accounts
// @Description Returns one page of all accounts, newest first.
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, capped at 100"
// @Success 200 {object} user.Page "One page of accounts"
// @Router /v1/admin/users [get]
func (usersRoute *UsersRoute) ListUsers(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	pagination, err := query.GetPaginationFromQuery(reqCtx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "c86b1cb2-2aac-4a2a-aee2-54a5a16ea558",
			Error: err.Error(),
		})
		return
	}
	page, err := usersRoute.userService.List(ctx, user.UserFilter{}, pagination)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "8472b22a-3bc5-48af-96b4-7dbe7e28f6b0",
			Error: err.Error(),
		})
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}

// @Summary Get an account
// @Description Returns one account by id.
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} user.User "The account"
// @Failure 404 {object} responses.ErrorResponse "No such account"
// @Router /v1/admin/users/{user_id} [get]
func (usersRoute *UsersRoute) GetUser(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	found, err := usersRoute.userService.FindByPublicID(ctx, reqCtx.Param("user_id"))
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "68f7be4c-1a2f-47dd-a1cc-c5ccf39ba26b",
			Error: err.Error(),
		})
		return
	}
	if found == nil {
		writeUserNotFound(reqCtx)
		return
	}
	reqCtx.JSON(http.StatusOK, found)
}

// @Summary Update an account
// @Description Changes an account's role, plan, or enabled flag.
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param request body mutation.UpdateUserPayload true "Fields to change"
// @Success 200 {object} user.User "The updated account"
// @Failure 404 {object} responses.ErrorResponse "No such account"
// @Router /v1/admin/users/{user_id} [patch]
func (usersRoute *UsersRoute) UpdateUser(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	actor, _ := auth.GetUserFromContext(reqCtx)
	var payload mutation.UpdateUserPayload
	if err := reqCtx.ShouldBindJSON(&payload); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "4ff8a3ae-7c65-4f2f-81fd-5e678819fb9d",
			Error: err.Error(),
		})
		return
	}
	updated, err := usersRoute.userService.Update(ctx, reqCtx.Param("user_id"), user.Patch{
		IsAdmin: payload.IsAdmin,
		Plan:    payload.Plan,
		Enabled: payload.Enabled,
	})
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "c1a07b0e-b6ec-4f2b-a2e4-1d0ff6a8c461",
			Error: err.Error(),
		})
		return
	}
	if updated == nil {
		writeUserNotFound(reqCtx)
		return
	}
	if actor != nil {
		usersRoute.auditService.Record(ctx, actor.ID, audit.ActionUserUpdate, updated.ID, "")
	}
	reqCtx.JSON(http.StatusOK, updated)
}
