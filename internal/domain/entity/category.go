package entity

import "time"

// UncategorizedName nombre con el que se agrupan en reportes los productos sin categoría.
const UncategorizedName = "Sin categoría"

// Category agrupa productos para el reporte de ventas. Se cargan como datos semilla.
type Category struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryLabel nombre a mostrar para una categoría; nil o sin nombre cae en UncategorizedName.
func CategoryLabel(c *Category) string {
	if c == nil || c.Name == "" {
		return UncategorizedName
	}
	return c.Name
}
