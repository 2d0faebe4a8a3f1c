package jobs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/auth"
	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/domain/mutation"
	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/interfaces/http/responses"
)

type JobsRoute struct {
	authService  *auth.AuthService
	jobService   *job.JobService
	auditService *audit.AuditService
}

func NewJobsRoute(
	authService *auth.AuthService,
	jobService *job.JobService,
	auditService *audit.AuditService,
) *JobsRoute {
	return &JobsRoute{
		authService:  authService,
		jobService:   jobService,
		auditService: auditService,
	}
}

func (jobsRoute *JobsRoute) RegisterRouter(router gin.IRouter) {
	jobsRouter := router.Group("/jobs",
		jobsRoute.authService.AppUserAuthMiddleware(),
		jobsRoute.authService.RegisteredUserMiddleware(),
	)
	jobsRouter.POST("", jobsRoute.CreateJob)
	jobsRouter.GET("", jobsRoute.ListJobs)
	jobsRouter.GET("/:job_id", jobsRoute.GetJob)
	jobsRouter.GET("/:job_id/result", jobsRoute.GetJobResult)
	jobsRouter.POST("/:job_id/cancel", jobsRoute.CancelJob)
	jobsRouter.DELETE("/:job_id", jobsRoute.DeleteJob)
}

type DeleteJobResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// writeServiceError maps the job service's sentinel errors onto HTTP
// statuses. Anything unrecognized is a 500.
func writeServiceError(reqCtx *gin.Context, err error) {
	switch {
	case errors.Is(err, job.ErrInvalidSpec):
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "d7a63d25-2e8a-44ba-a4d3-94c0b811ba5c",
			Error: err.Error(),
		})
	case errors.Is(err, job.ErrUnknownTemplate):
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "21655a48-aee8-43b9-a87f-c681e61e5a96",
			Error: err.Error(),
		})
	case errors.Is(err, job.ErrQuotaExhausted):
		reqCtx.AbortWithStatusJSON(http.StatusTooManyRequests, responses.ErrorResponse{
			Code:  "8b4be6a3-46c5-41ae-92dc-44e4ab17f92f",
			Error: err.Error(),
		})
	case errors.Is(err, job.ErrNotCancellable):
		reqCtx.AbortWithStatusJSON(http.StatusConflict, responses.ErrorResponse{
			Code:  "0d88cf23-bb49-4d9a-9f07-9c5884e33db5",
			Error: err.Error(),
		})
	case errors.Is(err, job.ErrNotDeletable):
		reqCtx.AbortWithStatusJSON(http.StatusConflict, responses.ErrorResponse{
			Code:  "3a1ad6bc-52ce-4b50-bd59-f11040be4a9a",
			Error: err.Error(),
		})
	case errors.Is(err, job.ErrResultNotReady):
		reqCtx.AbortWithStatusJSON(http.StatusConflict, responses.ErrorResponse{
			Code:  "5f62ed28-3d0f-4e55-8f2e-0be20e52d4c4",
			Error: err.Error(),
		})
	default:
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "ccebf485-8aee-4bf7-99c4-a3ba54695a8b",
			Error: err.Error(),
		})
	}
}

func writeJobNotFound(reqCtx *gin.Context) {
	reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
		Code:  "cfeb4323-301e-4a49-a3a8-a9b376f32e9e",
		Error: "job not found",
	})
}

// @Summary Submit a job
// @Description Queues a validation or conversion job for the caller. Guests are capped by the daily quota.
// @Tags Jobs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body mutation.CreateJobPayload true "Job submission"
// @Success 200 {object} job.Job "The queued job"
// @Failure 400 {object} responses.ErrorResponse "Invalid submission"
// @Failure 429 {object} responses.ErrorResponse "Guest quota exhausted"
// @Router /v1/jobs [post]
func (jobsRoute *JobsRoute) CreateJob(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	owner, ok := auth.GetUserFromContext(reqCtx)
	if !ok {
		writeJobNotFound(reqCtx)
		return
	}
	var payload mutation.CreateJobPayload
	if err := reqCtx.ShouldBindJSON(&payload); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "0268800a-9f1f-4bf1-b224-19a878b46e9d",
			Error: err.Error(),
		})
		return
	}
	spec := job.CreateSpec{
		Kind:         payload.Kind,
		TargetFormat: payload.TargetFormat,
		TemplateID:   payload.TemplateID,
	}
	for _, f := range payload.Files {
		spec.Filenames = append(spec.Filenames, f.Name)
	}
	created, err := jobsRoute.jobService.Create(ctx, owner, spec)
	if err != nil {
		writeServiceError(reqCtx, err)
		return
	}
	jobsRoute.auditService.Record(ctx, owner.ID, audit.ActionJobCreate, created.ID, string(created.Kind))
	reqCtx.JSON(http.StatusOK, created)
}

// @Summary List jobs
// @Description Returns one page of the caller's jobs, newest first.
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, capped at 100"
// @Success 200 {object} job.Page "One page of jobs"
// @Router /v1/jobs [get]
func (jobsRoute *JobsRoute) ListJobs(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	owner, ok := auth.GetUserFromContext(reqCtx)
	if !ok {
		writeJobNotFound(reqCtx)
		return
	}
	pagination, err := query.GetPaginationFromQuery(reqCtx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "ff986a79-29ed-4b5a-a136-3355de0a7b35",
			Error: err.Error(),
		})
		return
	}
	page, err := jobsRoute.jobService.List(ctx, owner.ID, pagination)
	if err != nil {
		writeServiceError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}

// @Summary Get a job
// @Description Returns one of the caller's jobs by id.
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} job.Job "The job"
// @Failure 404 {object} responses.ErrorResponse "No such job"
// @Router /v1/jobs/{job_id} [get]
func (jobsRoute *JobsRoute) GetJob(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	owner, ok := auth.GetUserFromContext(reqCtx)
	if !ok {
		writeJobNotFound(reqCtx)
		return
	}
	found, err := jobsRoute.jobService.FindByPublicID(ctx, owner.ID, reqCtx.Param("job_id"))
	if err != nil {
		writeServiceError(reqCtx, err)
		return
	}
	if found == nil {
		writeJobNotFound(reqCtx)
		return
	}
	reqCtx.JSON(http.StatusOK, found)
}

// @Summary Get a job result
// @Description Returns the artifact or report of a completed job.
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} job.Result "The result"
// @Failure 404 {object} responses.ErrorResponse "No such job"
// @Failure 409 {object} responses.ErrorResponse "Job has not completed"
// @Router /v1/jobs/{job_id}/result [get]
func (jobsRoute *JobsRoute) GetJobResult(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	owner, ok := auth.GetUserFromContext(reqCtx)
	if !ok {
		writeJobNotFound(reqCtx)
		return
	}
	result, err := jobsRoute.jobService.Result(ctx, owner.ID, reqCtx.Param("job_id"))
	if err != nil {
		writeServiceError(reqCtx, err)
		return
	}
	if result == nil {
		writeJobNotFound(reqCtx)
		return
	}
	reqCtx.JSON(http.StatusOK, result)
}

// @Summary Cancel a job
// @Description Stops a pending or processing job.
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} job.Job "The cancelled job"
// @Failure 404 {object} responses.ErrorResponse "No such job"
// @Failure 409 {object} responses.ErrorResponse "Job already finished"
// @Router /v1/jobs/{job_id}/cancel [post]
func (jobsRoute *JobsRoute) CancelJob(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	owner, ok := auth.GetUserFromContext(reqCtx)
	if !ok {
		writeJobNotFound(reqCtx)
		return
	}
	cancelled, err := jobsRoute.jobService.Cancel(ctx, owner.ID, reqCtx.Param("job_id"))
	if err != nil {
		writeServiceError(reqCtx, err)
		return
	}
	if cancelled == nil {
		writeJobNotFound(reqCtx)
		return
	}
	jobsRoute.auditService.Record(ctx, owner.ID, audit.ActionJobCancel, cancelled.ID, "")
	reqCtx.JSON(http.StatusOK, cancelled)
}

// @Summary Delete a job
// @Description Removes a finished job and its result. Running jobs must be cancelled first.
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} DeleteJobResponse "Deletion acknowledgement"
// @Failure 404 {object} responses.ErrorResponse "No such job"
// @Failure 409 {object} responses.ErrorResponse "Job is still running"
// @Router /v1/jobs/{job_id} [delete]
func (jobsRoute *JobsRoute) DeleteJob(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	owner, ok := auth.GetUserFromContext(reqCtx)
	if !ok {
		writeJobNotFound(reqCtx)
		return
	}
	jobID := reqCtx.Param("job_id")
	deleted, err := jobsRoute.jobService.Delete(ctx, owner.ID, jobID)
	if err != nil {
		writeServiceError(reqCtx, err)
		return
	}
	if !deleted {
		writeJobNotFound(reqCtx)
		return
	}
	jobsRoute.auditService.Record(ctx, owner.ID, audit.ActionJobDelete, jobID, "")
	reqCtx.JSON(http.StatusOK, DeleteJobResponse{
		ID:      jobID,
		Object:  "job.deleted",
		Deleted: true,
	})
}
