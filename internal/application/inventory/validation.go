package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/neuhauss/example-gemini/internal/domain"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// NormalizeDraft recorta espacios del nombre y la descripción, normaliza la
// categoría y lleva el valor a su forma canónica.
func NormalizeDraft(d entity.ItemDraft) entity.ItemDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = entity.NormalizeCategory(string(d.Category))
	d.Value = CanonicalValue(d.Value)
	return d
}

// CanonicalValue reconstruye el decimal desde su representación textual, la
// misma que usa el blob. Así un ítem en memoria y su versión releída del blob
// son idénticos campo a campo.
func CanonicalValue(v decimal.Decimal) decimal.Decimal {
	return decimal.RequireFromString(v.String())
}

// ValidateDraft aplica las reglas de frontera: nombre no vacío, cantidad >= 1
// y valor unitario >= 0. Devuelve un *domain.ValidationError en el primer fallo.
func ValidateDraft(d entity.ItemDraft) error {
	if strings.TrimSpace(d.Name) == "" {
		return domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if d.Quantity < 1 {
		return domain.NewValidationError("quantity", "la cantidad debe ser mayor o igual a 1")
	}
	if d.Value.LessThan(decimal.Zero) {
		return domain.NewValidationError("value", "el valor unitario no puede ser negativo")
	}
	return nil
}
