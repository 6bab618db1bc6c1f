package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// CategoryTotal valor acumulado (valor unitario × cantidad) de una categoría.
type CategoryTotal struct {
	Category   entity.Category
	TotalValue decimal.Decimal
}

// Totals agregados globales de la colección.
type Totals struct {
	TotalUnits int
	TotalValue decimal.Decimal
}

// Filter devuelve los ítems cuyo nombre o descripción contienen term (sin
// distinguir mayúsculas) y cuya categoría coincide exactamente con category.
// category == entity.CategoryAll acepta todas; term vacío acepta todos.
// Conserva el orden de entrada.
func Filter(items []entity.InventoryItem, term, category string) []entity.InventoryItem {
	needle := strings.ToLower(term)
	out := make([]entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if category != entity.CategoryAll && string(it.Category) != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(it.Name), needle) &&
			!strings.Contains(strings.ToLower(it.Description), needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// AggregateByCategory suma valor × cantidad por categoría y ordena de mayor a
// menor. Las categorías sin ítems no aparecen; en empate se respeta el orden
// de primera aparición.
func AggregateByCategory(items []entity.InventoryItem) []CategoryTotal {
	index := make(map[entity.Category]int)
	out := make([]CategoryTotal, 0)
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(out)
			index[it.Category] = i
			out = append(out, CategoryTotal{Category: it.Category, TotalValue: decimal.Zero})
		}
		out[i].TotalValue = out[i].TotalValue.Add(it.TotalValue())
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].TotalValue.GreaterThan(out[b].TotalValue)
	})
	return out
}

// ComputeTotals unidades totales y valor total de la colección.
func ComputeTotals(items []entity.InventoryItem) Totals {
	t := Totals{TotalValue: decimal.Zero}
	for _, it := range items {
		t.TotalUnits += it.Quantity
		t.TotalValue = t.TotalValue.Add(it.TotalValue())
	}
	return t
}
