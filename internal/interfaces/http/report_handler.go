package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/neuhauss/example-gemini/internal/application/usecase"
)

// ReportHandler descarga del reporte PDF.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventoryPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        search    query  string  false  "Término de búsqueda"
// @Param        category  query  string  false  "Categoría o 'all'"
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.InventoryReport(c.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
