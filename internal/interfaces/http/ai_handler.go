package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/internal/application/usecase"
)

// AIHandler maneja la sugerencia de datos de ítem asistida por IA.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Enrich godoc
// @Summary      Sugerir categoría, valor y descripción con IA
// @Description  Analiza el nombre de un ítem y devuelve la sugerencia del modelo sin aplicarla.
// @Description  Si el servicio falla, tarda demasiado o responde algo inválido, devuelve 204.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnrichRequest  true  "name (obligatorio)"
// @Success      200   {object}  dto.PredictionDTO
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/enrich [post]
func (h *AIHandler) Enrich(c *fiber.Ctx) error {
	var req dto.EnrichRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "name es obligatorio", Field: "name",
		})
	}

	p := h.uc.Enrich(c.Context(), req.Name)
	if p == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(dto.NewPredictionDTO(p))
}
