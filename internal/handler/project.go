package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/choreosync/api/internal/middleware"
	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/service"
	"github.com/choreosync/api/pkg/response"
)

type ProjectHandler struct {
	service   *service.ProjectService
	validator *validator.Validate
}

func NewProjectHandler(svc *service.ProjectService, v *validator.Validate) *ProjectHandler {
	return &ProjectHandler{
		service:   svc,
		validator: v,
	}
}

// Create handles POST /api/projects
// @Summary      Create a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Param        request body model.ProjectRequest true "Project"
// @Success      201 {object} model.Project
// @Failure      400 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req model.ProjectRequest
	if ok, err := parseAndValidate(c, h.validator, &req); !ok {
		return err
	}

	project, err := h.service.Create(c.Context(), middleware.GetUserID(c), req.Name)
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.Created(c, project)
}

// List handles GET /api/projects
// @Summary      List projects
// @Tags         Projects
// @Produce      json
// @Success      200 {object} map[string][]model.Project
// @Security     BearerAuth
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.service.List(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, fiber.Map{"projects": projects})
}

// Get handles GET /api/projects/:projectId
// @Summary      Get a project
// @Tags         Projects
// @Produce      json
// @Param        projectId path string true "Project ID"
// @Success      200 {object} model.Project
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/projects/{projectId} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	project, err := h.service.Get(c.Context(), middleware.GetUserID(c), c.Params("projectId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, project)
}

// Rename handles PUT /api/projects/:projectId
func (h *ProjectHandler) Rename(c *fiber.Ctx) error {
	var req model.ProjectRequest
	if ok, err := parseAndValidate(c, h.validator, &req); !ok {
		return err
	}

	project, err := h.service.Rename(c.Context(), middleware.GetUserID(c), c.Params("projectId"), req.Name)
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, project)
}

// Songs handles GET /api/projects/:projectId/songs
// @Summary      List project songs
// @Tags         Projects
// @Produce      json
// @Param        projectId path string true "Project ID"
// @Success      200 {object} map[string][]model.Song
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/projects/{projectId}/songs [get]
func (h *ProjectHandler) Songs(c *fiber.Ctx) error {
	songs, err := h.service.Songs(c.Context(), middleware.GetUserID(c), c.Params("projectId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, fiber.Map{"songs": songs})
}

// Delete handles DELETE /api/projects/:projectId
// @Summary      Delete a project
// @Description  Delete the project, its songs and their stored files
// @Tags         Projects
// @Param        projectId path string true "Project ID"
// @Success      204
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/projects/{projectId} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), middleware.GetUserID(c), c.Params("projectId")); err != nil {
		return handleServiceError(c, err)
	}
	return response.NoContent(c)
}
