package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/internal/domain"
)

// respondError traduce errores de dominio a respuestas HTTP:
//
//	ValidationError / ErrInvalidInput → 400 VALIDATION
//	ErrNotFound                       → 404 NOT_FOUND
//	ErrConflict                       → 409 CONFLICT
//	ErrExpired                        → 410 EXPIRED
//	resto                             → 500 INTERNAL
func respondError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: verr.Message, Field: verr.Field,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrExpired):
		return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{Code: "EXPIRED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
}

// pathID copia el parámetro :id. fiber reutiliza el buffer de la petición, y el
// id puede quedar guardado en sesión (tokens de borrado).
func pathID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}
