package entity

import "time"

// Warehouse bodega o sucursal que guarda stock. Una bodega deshabilitada conserva su
// stock e historial pero no recibe nuevas líneas de carrito ni compras.
type Warehouse struct {
	ID         string
	CompanyID  string
	Name       string
	Address    string
	DisabledAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Enabled indica si la bodega acepta ventas y compras.
func (w *Warehouse) Enabled() bool {
	return w.DisabledAt == nil
}

// SetEnabled habilita o deshabilita la bodega; deshabilitar una ya deshabilitada conserva la fecha original.
func (w *Warehouse) SetEnabled(enabled bool, now time.Time) {
	switch {
	case enabled:
		w.DisabledAt = nil
	case w.DisabledAt == nil:
		w.DisabledAt = &now
	}
}
