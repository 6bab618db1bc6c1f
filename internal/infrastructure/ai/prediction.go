package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// maxResponseBytes límite de lectura del cuerpo HTTP del proveedor.
const maxResponseBytes = 64 * 1024

// systemPrompt rol del modelo. Los textos deben salir en portugués (PT-BR).
const systemPrompt = "You are an expert inventory assistant. Always respond in Portuguese (PT-BR) for text fields."

// userPrompt texto del usuario para un ítem.
func userPrompt(itemName string) string {
	return fmt.Sprintf("Generate inventory details for an item named: %q", itemName)
}

// categoryList categorías sugeridas separadas por coma.
func categoryList() string {
	cats := entity.KnownCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Descripciones de cada campo del esquema; las comparten ambos proveedores.
const (
	valueFieldDesc       = "Estimated average value in BRL (Brazilian Real) for a single unit of this item."
	descriptionFieldDesc = "A short, professional description of the item (max 20 words) in Portuguese."
)

func categoryFieldDesc() string {
	return fmt.Sprintf("The most fitting category from this list: %s. If unsure, use '%s'.", categoryList(), entity.CategoryOther)
}

// predictionPayload es el JSON que esperamos recibir del modelo.
type predictionPayload struct {
	Category       *string      `json:"category"`
	EstimatedValue *json.Number `json:"estimatedValue"`
	Description    *string      `json:"description"`
}

var errSchemaMismatch = errors.New("AI: la respuesta no cumple el esquema")

// parsePrediction valida el JSON devuelto por el modelo contra el esquema
// {category: string, estimatedValue: number, description: string}.
func parsePrediction(raw string) (*entity.AIPrediction, error) {
	clean := extractJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("%w: no se encontró JSON (respuesta: %s)", errSchemaMismatch, raw)
	}

	dec := json.NewDecoder(strings.NewReader(clean))
	dec.UseNumber()
	var p predictionPayload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v (JSON extraído: %s)", errSchemaMismatch, err, clean)
	}
	if p.Category == nil || p.EstimatedValue == nil || p.Description == nil {
		return nil, fmt.Errorf("%w: faltan campos obligatorios", errSchemaMismatch)
	}

	category := strings.TrimSpace(*p.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: categoría vacía", errSchemaMismatch)
	}
	value, err := decimal.NewFromString(p.EstimatedValue.String())
	if err != nil {
		return nil, fmt.Errorf("%w: estimatedValue %q: %v", errSchemaMismatch, p.EstimatedValue.String(), err)
	}
	if value.IsNegative() {
		return nil, fmt.Errorf("%w: estimatedValue negativo", errSchemaMismatch)
	}

	return &entity.AIPrediction{
		Category:       category,
		EstimatedValue: value.Round(2),
		Description:    strings.TrimSpace(*p.Description),
	}, nil
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el objeto JSON de un texto libre:
//  1. Eliminar bloques de código markdown (```json … ```).
//  2. Capturar con regex el bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
