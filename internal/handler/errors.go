package handler

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/choreosync/api/internal/cutplan"
	"github.com/choreosync/api/internal/service"
	"github.com/choreosync/api/internal/store"
	"github.com/choreosync/api/pkg/response"
)

func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}

// parseAndValidate reads the JSON body into req and runs struct validation.
// On failure the error response has already been written and ok is false.
func parseAndValidate(c *fiber.Ctx, v *validator.Validate, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, response.ValidationError(c, "Invalid request body", nil)
	}
	if err := v.Struct(req); err != nil {
		return false, response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}
	return true, nil
}

// handleServiceError maps service and engine errors to the response envelope
func handleServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSongNotFound):
		return response.NotFound(c, "Song not found")
	case errors.Is(err, service.ErrProjectNotFound):
		return response.NotFound(c, "Project not found")
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, cutplan.ErrInvalidTarget):
		return response.ValidationError(c, err.Error(), nil)
	case errors.Is(err, cutplan.ErrMalformedAnalysis),
		errors.Is(err, cutplan.ErrEmptySelection),
		errors.Is(err, cutplan.ErrInsufficientBeatGrid):
		return response.CutPlanFailed(c, "Cut plan could not be composed", fiber.Map{"reason": err.Error()})
	case errors.Is(err, service.ErrPreconditionNotMet):
		return response.PreconditionFailed(c, err.Error())
	case errors.Is(err, service.ErrAlreadyInFlight):
		return response.Conflict(c, "A job of this kind is already running")
	case errors.Is(err, service.ErrSongBusy):
		return response.Conflict(c, "Song has a running job")
	case errors.Is(err, store.ErrConflict):
		return response.Conflict(c, "Song is being modified, retry")
	case errors.Is(err, service.ErrUnauthorized):
		return response.Unauthorized(c, "Invalid webhook secret")
	case errors.Is(err, service.ErrWorkerDispatchFailed):
		return response.WorkerError(c, err.Error())
	case errors.Is(err, service.ErrStorageUnavailable):
		return response.Unavailable(c, "File storage is not configured")
	case errors.Is(err, service.ErrFileNotAvailable):
		return response.NotFound(c, err.Error())
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return response.ServiceError(c, "Internal server error")
}
