package inventory

import (
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// NextStock devuelve el stock resultante de aplicar una entrada o salida de qty unidades.
// Una salida que deje el stock en negativo retorna domain.ErrInsufficientStock.
func NextStock(current int, movementType string, qty int) (int, error) {
	if qty <= 0 {
		return current, domain.ErrInvalidInput
	}
	switch movementType {
	case entity.AdjustmentEntrada, entity.MovementTypeIN:
		return current + qty, nil
	case entity.AdjustmentSalida, entity.MovementTypeOUT:
		if current < qty {
			return current, domain.ErrInsufficientStock
		}
		return current - qty, nil
	}
	return current, domain.ErrInvalidInput
}
