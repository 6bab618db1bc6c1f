package entity

import "strings"

// Category etiqueta de categoría de un ítem. Es una cadena abierta: las
// constantes son solo sugerencias y cualquier otro texto se conserva tal cual.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFurniture   Category = "Furniture"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryTools       Category = "Tools"
	CategoryOther       Category = "Other"
)

// CategoryAll centinela de filtro que acepta cualquier categoría.
const CategoryAll = "all"

// KnownCategories devuelve las categorías sugeridas en orden de presentación.
func KnownCategories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryFurniture,
		CategoryClothing,
		CategoryBooks,
		CategoryTools,
		CategoryOther,
	}
}

// IsKnown indica si la categoría pertenece al conjunto sugerido.
func (c Category) IsKnown() bool {
	for _, k := range KnownCategories() {
		if c == k {
			return true
		}
	}
	return false
}

// NormalizeCategory recorta espacios; una categoría vacía pasa a ser Other.
// Las categorías desconocidas no se modifican.
func NormalizeCategory(raw string) Category {
	c := strings.TrimSpace(raw)
	if c == "" {
		return CategoryOther
	}
	return Category(c)
}
