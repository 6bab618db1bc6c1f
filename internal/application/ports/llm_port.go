package ports

import (
	"context"

	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// LLMService define el puerto de salida hacia el servicio de IA generativa.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz;
// la aplicación solo conoce este contrato.
type LLMService interface {
	// SuggestItemDetails pide categoría, valor unitario estimado y descripción
	// para un ítem a partir de su nombre. La respuesta del modelo es no confiable:
	// el adaptador la valida y devuelve error si no cumple el esquema.
	// El contexto debe llevar un timeout.
	SuggestItemDetails(ctx context.Context, itemName string) (*entity.AIPrediction, error)
}
