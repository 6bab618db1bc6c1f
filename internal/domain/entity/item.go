package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un ítem registrado en el inventario.
// ID y CreatedAt los asigna exclusivamente el store al crear el ítem.
type InventoryItem struct {
	ID          string
	Name        string
	Category    Category
	Quantity    int
	Value       decimal.Decimal // valor unitario
	Description string
	CreatedAt   int64 // epoch en milisegundos
}

// Draft devuelve los campos editables del ítem.
func (i InventoryItem) Draft() ItemDraft {
	return ItemDraft{
		Name:        i.Name,
		Category:    i.Category,
		Quantity:    i.Quantity,
		Value:       i.Value,
		Description: i.Description,
	}
}

// TotalValue valor unitario × cantidad.
func (i InventoryItem) TotalValue() decimal.Decimal {
	return i.Value.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CreatedTime CreatedAt como time.Time (UTC).
func (i InventoryItem) CreatedTime() time.Time {
	return time.UnixMilli(i.CreatedAt).UTC()
}

// ItemDraft carga útil de alta/edición: un ítem sin ID ni CreatedAt.
type ItemDraft struct {
	Name        string
	Category    Category
	Quantity    int
	Value       decimal.Decimal
	Description string
}

// NewDraft devuelve un borrador con los valores por defecto del formulario.
func NewDraft() ItemDraft {
	return ItemDraft{
		Category: CategoryOther,
		Quantity: 1,
		Value:    decimal.Zero,
	}
}

// WithPrediction copia categoría, valor y descripción sugeridos por la IA.
// Nombre y cantidad se conservan.
func (d ItemDraft) WithPrediction(p AIPrediction) ItemDraft {
	d.Category = NormalizeCategory(p.Category)
	d.Value = p.EstimatedValue
	d.Description = p.Description
	return d
}
