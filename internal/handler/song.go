package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/choreosync/api/internal/middleware"
	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/service"
	"github.com/choreosync/api/pkg/response"
)

const maxUploadSize = 50 * 1024 * 1024 // 50MB

var validAudioTypes = map[string]bool{
	"audio/wav":   true,
	"audio/x-wav": true,
	"audio/wave":  true,
	"audio/mpeg":  true,
	"audio/mp3":   true,
	"audio/mp4":   true,
	"audio/x-m4a": true,
	"audio/aac":   true,
	"audio/x-aac": true,
	"audio/flac":  true,
}

type SongHandler struct {
	service   *service.SongService
	validator *validator.Validate
}

func NewSongHandler(svc *service.SongService, v *validator.Validate) *SongHandler {
	return &SongHandler{
		service:   svc,
		validator: v,
	}
}

// Upload handles POST /api/songs
// @Summary      Upload a song
// @Description  Store the original track and create a song with pending jobs
// @Tags         Songs
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Audio file (WAV, MP3, M4A, AAC, FLAC)"
// @Param        projectId formData string false "Project ID"
// @Success      201 {object} model.Song
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs [post]
func (h *SongHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.ValidationError(c, "File is required", nil)
	}

	if file.Size > maxUploadSize {
		return response.ValidationError(c, "File size exceeds 50MB limit", map[string]interface{}{
			"maxSize":  maxUploadSize,
			"fileSize": file.Size,
		})
	}

	contentType := file.Header.Get("Content-Type")
	if !validAudioTypes[contentType] {
		return response.ValidationError(c, "Invalid file type. Supported: WAV, MP3, M4A, AAC, FLAC", map[string]interface{}{
			"contentType": contentType,
		})
	}

	f, err := file.Open()
	if err != nil {
		return response.ServiceError(c, "Failed to open file")
	}
	defer f.Close()

	song, err := h.service.Create(c.Context(), &service.NewSong{
		UserID:      middleware.GetUserID(c),
		ProjectID:   c.FormValue("projectId"),
		Filename:    file.Filename,
		ContentType: contentType,
		Body:        f,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Created(c, song)
}

// List handles GET /api/songs
// @Summary      List songs
// @Tags         Songs
// @Produce      json
// @Success      200 {object} map[string][]model.Song
// @Security     BearerAuth
// @Router       /api/songs [get]
func (h *SongHandler) List(c *fiber.Ctx) error {
	songs, err := h.service.List(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, fiber.Map{"songs": songs})
}

// Get handles GET /api/songs/:songId
// @Summary      Get a song
// @Tags         Songs
// @Produce      json
// @Param        songId path string true "Song ID"
// @Success      200 {object} model.Song
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs/{songId} [get]
func (h *SongHandler) Get(c *fiber.Ctx) error {
	song, err := h.service.Get(c.Context(), middleware.GetUserID(c), c.Params("songId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, song)
}

// Delete handles DELETE /api/songs/:songId
// @Summary      Delete a song
// @Description  Remove the song and its stored files. Refused while a job is running.
// @Tags         Songs
// @Param        songId path string true "Song ID"
// @Success      204
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs/{songId} [delete]
func (h *SongHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), middleware.GetUserID(c), c.Params("songId")); err != nil {
		return handleServiceError(c, err)
	}
	return response.NoContent(c)
}

// RequireOwner lets the request through only when the caller owns :songId
func (h *SongHandler) RequireOwner(c *fiber.Ctx) error {
	if _, err := h.service.Get(c.Context(), middleware.GetUserID(c), c.Params("songId")); err != nil {
		return handleServiceError(c, err)
	}
	return c.Next()
}

// SetTarget handles PUT /api/songs/:songId/target
// @Summary      Set routine type and target duration
// @Tags         Songs
// @Accept       json
// @Produce      json
// @Param        songId path string true "Song ID"
// @Param        request body model.SetTargetRequest true "Routine"
// @Success      200 {object} model.Song
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs/{songId}/target [put]
func (h *SongHandler) SetTarget(c *fiber.Ctx) error {
	var req model.SetTargetRequest
	if ok, err := parseAndValidate(c, h.validator, &req); !ok {
		return err
	}

	song, err := h.service.SetTarget(c.Context(), middleware.GetUserID(c), c.Params("songId"), &req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, song)
}

// SetTags handles PUT /api/songs/:songId/tags
// @Summary      Edit section tags
// @Description  Apply tag edits in order. A null tag clears the section.
// @Tags         Songs
// @Accept       json
// @Produce      json
// @Param        songId path string true "Song ID"
// @Param        request body model.SetTagsRequest true "Tag edits"
// @Success      200 {object} model.Song
// @Failure      400 {object} response.ErrorResponse
// @Failure      412 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs/{songId}/tags [put]
func (h *SongHandler) SetTags(c *fiber.Ctx) error {
	var req model.SetTagsRequest
	if ok, err := parseAndValidate(c, h.validator, &req); !ok {
		return err
	}

	song, err := h.service.SetTags(c.Context(), middleware.GetUserID(c), c.Params("songId"), req.Tags)
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, song)
}

// Preview handles POST /api/songs/:songId/preview
// @Summary      Preview the cut plan
// @Description  Compose the plan a generation would use, with optional overrides. Nothing is stored on the song.
// @Tags         Songs
// @Accept       json
// @Produce      json
// @Param        songId path string true "Song ID"
// @Param        request body model.PreviewRequest false "Overrides"
// @Success      200 {object} model.CutPlan
// @Failure      412 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs/{songId}/preview [post]
func (h *SongHandler) Preview(c *fiber.Ctx) error {
	var req model.PreviewRequest
	if len(c.Body()) > 0 {
		if ok, err := parseAndValidate(c, h.validator, &req); !ok {
			return err
		}
	}

	plan, err := h.service.Preview(c.Context(), middleware.GetUserID(c), c.Params("songId"), &req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return response.OK(c, plan)
}
