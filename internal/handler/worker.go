package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/choreosync/api/internal/middleware"
	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/service"
	"github.com/choreosync/api/pkg/response"
)

// WorkerHandler receives the workers' calls: the authoritative result writes on
// /internal/worker and the advisory webhook.
type WorkerHandler struct {
	jobs      *service.JobService
	webhooks  *service.WebhookService
	validator *validator.Validate
}

func NewWorkerHandler(jobs *service.JobService, webhooks *service.WebhookService, v *validator.Validate) *WorkerHandler {
	return &WorkerHandler{
		jobs:      jobs,
		webhooks:  webhooks,
		validator: v,
	}
}

// AnalysisResult handles POST /internal/worker/songs/:songId/analysis
func (h *WorkerHandler) AnalysisResult(c *fiber.Ctx) error {
	var req model.AnalysisResultRequest
	if ok, err := parseAndValidate(c, h.validator, &req); !ok {
		return err
	}

	_, err := h.jobs.RecordAnalysisResult(c.Context(), c.Params("songId"), &req)
	return h.writeResult(c, err)
}

// CutResult handles POST /internal/worker/songs/:songId/cut
func (h *WorkerHandler) CutResult(c *fiber.Ctx) error {
	var req model.CutResultRequest
	if ok, err := parseAndValidate(c, h.validator, &req); !ok {
		return err
	}

	_, err := h.jobs.RecordCutResult(c.Context(), c.Params("songId"), &req)
	return h.writeResult(c, err)
}

// writeResult reports stale writes as not applied so workers do not retry them
func (h *WorkerHandler) writeResult(c *fiber.Ctx, err error) error {
	switch {
	case err == nil:
		return response.OK(c, model.WorkerWriteResponse{Applied: true})
	case errors.Is(err, service.ErrStaleJob):
		return response.OK(c, model.WorkerWriteResponse{Applied: false})
	}
	return handleServiceError(c, err)
}

// Webhook handles POST /api/webhook/worker
func (h *WorkerHandler) Webhook(c *fiber.Ctx) error {
	if err := h.webhooks.Authorize(c.Get(middleware.SecretHeader)); err != nil {
		return handleServiceError(c, err)
	}

	var req model.WebhookRequest
	if ok, err := parseAndValidate(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.webhooks.Handle(c.Context(), c.Get(middleware.SecretHeader), &req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, result)
}
