package ports

import (
	"context"
	"time"

	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// ReportData contenido del reporte de inventario.
type ReportData struct {
	Title       string
	Filter      string // descripción legible del filtro aplicado; vacío = sin filtro
	GeneratedAt time.Time
	Items       []entity.InventoryItem
	Summary     *dto.DashboardSummaryDTO
}

// ReportGenerator puerto de salida hacia el generador de documentos (PDF).
type ReportGenerator interface {
	InventoryReport(ctx context.Context, data ReportData) ([]byte, error)
}
