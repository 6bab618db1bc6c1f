// Package analytics contiene el motor de consultas sobre la colección (filtro,
// agregados por categoría, totales) y el resumen del dashboard.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
	"github.com/neuhauss/example-gemini/pkg/money"
)

// ItemLister fuente de la colección (el store).
type ItemLister interface {
	List() []entity.InventoryItem
}

// DashboardUseCase genera el resumen de totales y la serie por categoría.
// Todo se calcula en memoria sobre una copia de la colección.
type DashboardUseCase struct {
	items ItemLister
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(items ItemLister) *DashboardUseCase {
	return &DashboardUseCase{items: items, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO de la colección actual.
func (uc *DashboardUseCase) GetSummary() *dto.DashboardSummaryDTO {
	return Summarize(uc.items.List(), uc.now())
}

// Summarize arma el resumen para items; útil también desde el CLI y el reporte.
func Summarize(items []entity.InventoryItem, at time.Time) *dto.DashboardSummaryDTO {
	totals := ComputeTotals(items)
	groups := AggregateByCategory(items)

	hundred := decimal.NewFromInt(100)
	series := make([]dto.CategoryValueDTO, 0, len(groups))
	for _, g := range groups {
		share := decimal.Zero
		if totals.TotalValue.IsPositive() {
			share = g.TotalValue.Mul(hundred).Div(totals.TotalValue).Round(1)
		}
		series = append(series, dto.CategoryValueDTO{
			Category:       string(g.Category),
			TotalValue:     g.TotalValue,
			ValueFormatted: money.FormatBRL(g.TotalValue),
			ValueCompact:   money.FormatCompact(g.TotalValue),
			Share:          share,
		})
	}

	return &dto.DashboardSummaryDTO{
		ItemCount:           len(items),
		TotalUnits:          totals.TotalUnits,
		TotalValue:          totals.TotalValue,
		TotalValueFormatted: money.FormatBRL(totals.TotalValue),
		TotalValueCompact:   money.FormatCompact(totals.TotalValue),
		Currency:            money.Currency.String(),
		ByCategory:          series,
		GeneratedAt:         at.UTC(),
	}
}
