package dto

import (
	"github.com/shopspring/decimal"

	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// EnrichRequest entrada de POST /api/ai/enrich.
type EnrichRequest struct {
	Name string `json:"name"`
}

// PredictionDTO sugerencia del modelo. No se aplica a ningún ítem por sí sola.
type PredictionDTO struct {
	Category       string          `json:"category"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Description    string          `json:"description"`
}

// NewPredictionDTO devuelve nil si p es nil.
func NewPredictionDTO(p *entity.AIPrediction) *PredictionDTO {
	if p == nil {
		return nil
	}
	return &PredictionDTO{
		Category:       p.Category,
		EstimatedValue: p.EstimatedValue,
		Description:    p.Description,
	}
}
