package handlers

import (
	"errors"

	"github.com/TonyDastan/workwave/internal/core/services"
	"github.com/TonyDastan/workwave/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

// respondError translates a service error kind into an HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		code = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrAuthorization):
		code = fiber.StatusForbidden
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidState):
		code = fiber.StatusBadRequest
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error()})
}
