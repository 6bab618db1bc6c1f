package inventory

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// SeedFunc produce la colección inicial cuando no hay datos persistidos.
type SeedFunc func(now time.Time) []entity.InventoryItem

// DefaultSeed colección de demostración usada cuando el blob no existe o es ilegible.
func DefaultSeed(now time.Time) []entity.InventoryItem {
	ms := now.UnixMilli()
	return []entity.InventoryItem{
		{
			ID:          "1",
			Name:        "MacBook Pro M3",
			Category:    entity.CategoryElectronics,
			Quantity:    1,
			Value:       decimal.RequireFromString("12500"),
			Description: "Notebook principal de trabalho.",
			CreatedAt:   ms,
		},
		{
			ID:          "2",
			Name:        "Cadeira Ergonômica",
			Category:    entity.CategoryFurniture,
			Quantity:    2,
			Value:       decimal.RequireFromString("850"),
			Description: "Cadeiras para o escritório home office.",
			CreatedAt:   ms - 100000,
		},
	}
}

type seedFile struct {
	Items []seedRecord `yaml:"items"`
}

type seedRecord struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Quantity    int    `yaml:"quantity"`
	Value       string `yaml:"value"`
	Description string `yaml:"description"`
}

// LoadSeedFile lee una colección semilla desde YAML:
//
//	items:
//	  - name: Furadeira
//	    category: Tools
//	    quantity: 1
//	    value: 320.90
//
// Los registros sin id reciben su posición (1, 2, ...). CreatedAt se escalona
// 100 s hacia atrás por registro para mantener el orden del archivo.
func LoadSeedFile(path string) (SeedFunc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer semilla: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsear semilla %s: %w", path, err)
	}

	drafts := make([]entity.InventoryItem, 0, len(f.Items))
	seen := make(map[string]struct{}, len(f.Items))
	for i, r := range f.Items {
		value := decimal.Zero
		if strings.TrimSpace(r.Value) != "" {
			v, err := decimal.NewFromString(strings.TrimSpace(r.Value))
			if err != nil {
				return nil, fmt.Errorf("semilla: valor del registro %d: %w", i+1, err)
			}
			value = v
		}
		qty := r.Quantity
		if qty == 0 {
			qty = 1
		}
		d := NormalizeDraft(entity.ItemDraft{
			Name:        r.Name,
			Category:    entity.Category(r.Category),
			Quantity:    qty,
			Value:       value,
			Description: r.Description,
		})
		if err := ValidateDraft(d); err != nil {
			return nil, fmt.Errorf("semilla: registro %d: %w", i+1, err)
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("semilla: id repetido %q", id)
		}
		seen[id] = struct{}{}
		drafts = append(drafts, entity.InventoryItem{
			ID:          id,
			Name:        d.Name,
			Category:    d.Category,
			Quantity:    d.Quantity,
			Value:       d.Value,
			Description: d.Description,
		})
	}

	return func(now time.Time) []entity.InventoryItem {
		ms := now.UnixMilli()
		out := make([]entity.InventoryItem, len(drafts))
		for i, it := range drafts {
			it.CreatedAt = ms - int64(i)*100000
			out[i] = it
		}
		return out
	}, nil
}
