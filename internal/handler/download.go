package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/choreosync/api/internal/middleware"
	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/service"
	"github.com/choreosync/api/pkg/response"
)

type DownloadHandler struct {
	service   *service.DownloadService
	validator *validator.Validate
}

func NewDownloadHandler(svc *service.DownloadService, v *validator.Validate) *DownloadHandler {
	return &DownloadHandler{
		service:   svc,
		validator: v,
	}
}

// Get handles GET /api/songs/:songId/download?type=cut|original
func (h *DownloadHandler) Get(c *fiber.Ctx) error {
	fileType := c.Query("type", service.DownloadCut)
	if fileType != service.DownloadCut && fileType != service.DownloadOriginal {
		return response.ValidationError(c, "type must be cut or original", nil)
	}

	result, err := h.service.GetDownload(c.Context(), middleware.GetUserID(c), c.Params("songId"), fileType)
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, result)
}

// Batch handles POST /api/downloads/batch
func (h *DownloadHandler) Batch(c *fiber.Ctx) error {
	var req model.BatchDownloadRequest
	if ok, err := parseAndValidate(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.service.BatchDownload(c.Context(), middleware.GetUserID(c), req.SongIDs)
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, result)
}
