package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// ItemRequest entrada de alta/edición de un ítem.
// Los campos omitidos toman los valores por defecto del formulario
// (categoría Other, cantidad 1, valor 0).
type ItemRequest struct {
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Quantity    *int             `json:"quantity"`
	Value       *decimal.Decimal `json:"value"`
	Description string           `json:"description"`
}

// ToDraft convierte la petición en un borrador de dominio.
func (r ItemRequest) ToDraft() entity.ItemDraft {
	d := entity.NewDraft()
	d.Name = r.Name
	d.Description = r.Description
	if r.Category != "" {
		d.Category = entity.Category(r.Category)
	}
	if r.Quantity != nil {
		d.Quantity = *r.Quantity
	}
	if r.Value != nil {
		d.Value = *r.Value
	}
	return d
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewItemResponse mapea la entidad a su representación de salida.
func NewItemResponse(it entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Category:    string(it.Category),
		Quantity:    it.Quantity,
		Value:       it.Value,
		TotalValue:  it.TotalValue(),
		Description: it.Description,
		CreatedAt:   it.CreatedTime(),
	}
}

// ItemListResponse resultado de un listado filtrado.
type ItemListResponse struct {
	Items    []ItemResponse `json:"items"`
	Count    int            `json:"count"`
	Search   string         `json:"search"`
	Category string         `json:"category"`
}

// CategoriesResponse categorías sugeridas y el centinela de filtro.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	All        string   `json:"all"`
}

// DeleteTicketResponse token de confirmación devuelto por POST /items/:id/delete-request.
type DeleteTicketResponse struct {
	Token     string    `json:"token"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	ExpiresAt time.Time `json:"expires_at"`
}
