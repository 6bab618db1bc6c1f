package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/neuhauss/example-gemini/internal/application/analytics"
)

// DashboardHandler maneja el resumen del inventario.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve unidades y valor total más la serie por categoría.
// GET /api/stats
//
// Respuesta: DashboardSummaryDTO (item_count, total_units, total_value,
// total_value_formatted, total_value_compact, by_category[]).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetSummary())
}
