package inventory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// blobItem es el formato persistido: arreglo JSON con claves camelCase y
// números planos, compatible con el valor que guardaba el cliente web.
type blobItem struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Quantity    int         `json:"quantity"`
	Value       json.Number `json:"value"`
	Description string      `json:"description"`
	CreatedAt   int64       `json:"createdAt"`
}

// EncodeItems serializa la colección al formato del blob.
func EncodeItems(items []entity.InventoryItem) (string, error) {
	out := make([]blobItem, 0, len(items))
	for _, it := range items {
		out = append(out, blobItem{
			ID:          it.ID,
			Name:        it.Name,
			Category:    string(it.Category),
			Quantity:    it.Quantity,
			Value:       json.Number(it.Value.String()),
			Description: it.Description,
			CreatedAt:   it.CreatedAt,
		})
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("codificar ítems: %w", err)
	}
	return string(raw), nil
}

// DecodeItems interpreta el blob. Un valor "null" o que no sea un arreglo es un error.
// Si hay IDs repetidos se conserva la primera aparición.
func DecodeItems(raw string) ([]entity.InventoryItem, error) {
	var in []blobItem
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, fmt.Errorf("decodificar ítems: %w", err)
	}
	if in == nil {
		return nil, errors.New("decodificar ítems: el blob no contiene un arreglo")
	}

	seen := make(map[string]struct{}, len(in))
	items := make([]entity.InventoryItem, 0, len(in))
	for i, b := range in {
		if b.ID == "" {
			return nil, fmt.Errorf("decodificar ítems: posición %d sin id", i)
		}
		if _, dup := seen[b.ID]; dup {
			continue
		}
		seen[b.ID] = struct{}{}

		value := decimal.Zero
		if b.Value != "" {
			v, err := decimal.NewFromString(b.Value.String())
			if err != nil {
				return nil, fmt.Errorf("decodificar ítems: valor de %q: %w", b.ID, err)
			}
			value = v
		}
		items = append(items, entity.InventoryItem{
			ID:          b.ID,
			Name:        b.Name,
			Category:    entity.Category(b.Category),
			Quantity:    b.Quantity,
			Value:       value,
			Description: b.Description,
			CreatedAt:   b.CreatedAt,
		})
	}
	return items, nil
}
