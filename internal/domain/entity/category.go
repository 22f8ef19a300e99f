package entity

import "github.com/jhoicas/Almacen-api/internal/domain"

// Category categoría de producto (catálogo cerrado). El valor en el wire es
// el string en mayúsculas; cualquier string externo entra por ParseCategory.
type Category string

// Categorías disponibles.
const (
	CategoryTecnologia   Category = "TECNOLOGIA"
	CategoryOficina      Category = "OFICINA"
	CategoryConsumibles  Category = "CONSUMIBLES"
	CategoryEquipamiento Category = "EQUIPAMIENTO"
	CategoryOtros        Category = "OTROS"
)

// categoryPrefixes prefijo de 2 letras para la generación de códigos.
var categoryPrefixes = map[Category]string{
	CategoryTecnologia:   "TE",
	CategoryOficina:      "OF",
	CategoryConsumibles:  "CO",
	CategoryEquipamiento: "EQ",
	CategoryOtros:        "OT",
}

// Categories devuelve el catálogo completo en orden estable.
func Categories() []Category {
	return []Category{
		CategoryTecnologia, CategoryOficina, CategoryConsumibles,
		CategoryEquipamiento, CategoryOtros,
	}
}

// ParseCategory valida y convierte un string externo a Category.
// Es el único punto de entrada para categorías provenientes de requests.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryPrefixes[c]; !ok {
		return "", domain.NewInvalidCategory(s)
	}
	return c, nil
}

// Prefix devuelve el prefijo de código de la categoría.
func (c Category) Prefix() string {
	return categoryPrefixes[c]
}

// Valid indica si la categoría pertenece al catálogo.
func (c Category) Valid() bool {
	_, ok := categoryPrefixes[c]
	return ok
}

// String implementa fmt.Stringer.
func (c Category) String() string { return string(c) }
