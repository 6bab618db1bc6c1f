package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/stats.
// Totales de la colección y la serie por categoría para el gráfico.
type DashboardSummaryDTO struct {
	ItemCount  int             `json:"item_count"`
	TotalUnits int             `json:"total_units"`
	TotalValue decimal.Decimal `json:"total_value"`

	// Textos ya formateados en BRL para la UI
	TotalValueFormatted string `json:"total_value_formatted"` // "R$ 14.200,00"
	TotalValueCompact   string `json:"total_value_compact"`   // "R$ 14 mil"
	Currency            string `json:"currency"`

	// Ordenado de mayor a menor valor; solo categorías con ítems
	ByCategory []CategoryValueDTO `json:"by_category"`

	GeneratedAt time.Time `json:"generated_at"`
}

// CategoryValueDTO un punto del gráfico de valor por categoría.
type CategoryValueDTO struct {
	Category       string          `json:"category"`
	TotalValue     decimal.Decimal `json:"total_value"`
	ValueFormatted string          `json:"value_formatted"`
	ValueCompact   string          `json:"value_compact"`
	Share          decimal.Decimal `json:"share"` // porcentaje del valor total, 1 decimal
}
