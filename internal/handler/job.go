package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/choreosync/api/internal/middleware"
	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/service"
	"github.com/choreosync/api/pkg/response"
)

type JobHandler struct {
	service *service.JobService
}

func NewJobHandler(svc *service.JobService) *JobHandler {
	return &JobHandler{service: svc}
}

// Analyze handles POST /api/songs/:songId/analyze
// @Summary      Start analysis
// @Tags         Jobs
// @Produce      json
// @Param        songId path string true "Song ID"
// @Success      202 {object} model.JobStartResponse
// @Failure      409 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs/{songId}/analyze [post]
func (h *JobHandler) Analyze(c *fiber.Ctx) error {
	result, err := h.service.RequestAnalysis(c.Context(), middleware.GetUserID(c), c.Params("songId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.Accepted(c, result)
}

// Generate handles POST /api/songs/:songId/generate
// @Summary      Start cut generation
// @Description  Compose the cut plan and dispatch it to the render worker
// @Tags         Jobs
// @Produce      json
// @Param        songId path string true "Song ID"
// @Success      202 {object} model.JobStartResponse
// @Failure      409 {object} response.ErrorResponse
// @Failure      412 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs/{songId}/generate [post]
func (h *JobHandler) Generate(c *fiber.Ctx) error {
	result, err := h.service.RequestGeneration(c.Context(), middleware.GetUserID(c), c.Params("songId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.Accepted(c, result)
}

// Status handles GET /api/songs/:songId/jobs/:kind
func (h *JobHandler) Status(c *fiber.Ctx) error {
	kind := model.JobKind(c.Params("kind"))
	if kind != model.JobKindAnalysis && kind != model.JobKindGeneration {
		return response.ValidationError(c, "kind must be analysis or generation", nil)
	}

	result, err := h.service.GetJobStatus(c.Context(), middleware.GetUserID(c), c.Params("songId"), kind)
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, result)
}
