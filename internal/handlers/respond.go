package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobboard/dto"
	"jobboard/internal/authz"
	"jobboard/services"
)

// respondError maps the service error taxonomy to HTTP statuses.
// Not-found is reported before forbidden because the service checks
// existence before ownership.
func respondError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Message: "validation failed", Fields: ve.Fields})
	case errors.Is(err, services.ErrJobNotFound), errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).
			JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, authz.ErrForbiddenRole), errors.Is(err, authz.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).
			JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).
			JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).
			JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).
		JSON(dto.ErrorResponse{Message: "server error"})
}
