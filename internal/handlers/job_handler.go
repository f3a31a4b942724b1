package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"jobboard/dto"
	"jobboard/internal/middleware"
	"jobboard/internal/query"
	"jobboard/services"
)

type JobHandler struct {
	svc *services.JobService
}

func NewJobHandler(svc *services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func opCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), 5*time.Second)
}

// List godoc
// @Summary      Search job postings
// @Description  Filtered, paginated listing of active jobs
// @Tags         jobs
// @Produce      json
// @Param        search    query  string  false  "Full-text search term"
// @Param        location  query  string  false  "Location substring"
// @Param        type      query  string  false  "Employment type"
// @Param        remote    query  bool    false  "Remote only / on-site only"
// @Param        page      query  int     false  "Page number (default 1)"
// @Param        limit     query  int     false  "Page size (default 10)"
// @Success      200  {object}  dto.JobListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	f := query.Filters{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		Type:     c.Query("type"),
		Remote:   c.Query("remote"),
		Page:     int64(c.QueryInt("page")),
		Limit:    int64(c.QueryInt("limit")),
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	resp, err := h.svc.Search(ctx, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Get godoc
// @Summary      Get a job posting
// @Tags         jobs
// @Produce      json
// @Param        id  path  string  true  "Job ID (hex)"
// @Success      200  {object}  dto.JobResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Message: "invalid job id"})
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	resp, err := h.svc.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Create godoc
// @Summary      Create a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        data  body  dto.CreateJobDTO  true  "Job payload"
// @Success      201  {object}  dto.JobResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateJobDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	resp, err := h.svc.Create(ctx, middleware.ViewerFromLocals(c), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary      Update a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "Job ID (hex)"
// @Param        data  body  dto.UpdateJobDTO  true  "Changed fields"
// @Success      200  {object}  dto.JobResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Message: "invalid job id"})
	}

	var body dto.UpdateJobDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	resp, err := h.svc.Update(ctx, middleware.ViewerFromLocals(c), id, body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Delete a job posting
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Job ID (hex)"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Message: "invalid job id"})
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	if err := h.svc.Delete(ctx, middleware.ViewerFromLocals(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "job deleted"})
}

// Apply godoc
// @Summary      Apply to a job posting
// @Description  Idempotent per applicant; a repeat call reports
// @Description  alreadyApplied instead of adding a duplicate entry.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Job ID (hex)"
// @Success      200  {object}  dto.ApplyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/apply [post]
func (h *JobHandler) Apply(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Message: "invalid job id"})
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	already, err := h.svc.Apply(ctx, middleware.ViewerFromLocals(c), id)
	if err != nil {
		return respondError(c, err)
	}
	if already {
		return c.JSON(dto.ApplyResponse{
			Message:        "you have already applied to this job",
			AlreadyApplied: true,
		})
	}
	return c.JSON(dto.ApplyResponse{Message: "application submitted"})
}

// MyPosted godoc
// @Summary      Jobs posted by the caller
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.PostedJobResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/jobs/my/posted [get]
func (h *JobHandler) MyPosted(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()

	resp, err := h.svc.MyPosted(ctx, middleware.ViewerFromLocals(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// MyApplications godoc
// @Summary      Jobs the caller has applied to
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.JobResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/jobs/my/applications [get]
func (h *JobHandler) MyApplications(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()

	resp, err := h.svc.MyApplications(ctx, middleware.ViewerFromLocals(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
