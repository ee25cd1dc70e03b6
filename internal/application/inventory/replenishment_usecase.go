package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de stock bajo.
type ReplenishmentUseCase struct {
	reportRepo          repository.ReportRepository
	defaultReorderPoint int
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
// defaultReorderPoint se usa para productos sin punto de reorden propio.
func NewReplenishmentUseCase(reportRepo repository.ReportRepository, defaultReorderPoint int) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{reportRepo: reportRepo, defaultReorderPoint: defaultReorderPoint}
}

// LowStock devuelve los productos-en-bodega con stock en o por debajo del punto de reorden,
// con la cantidad sugerida para volver a 1.5× el punto de reorden.
// warehouseID puede ser vacío para considerar todas las bodegas de la empresa.
func (uc *ReplenishmentUseCase) LowStock(ctx context.Context, companyID, warehouseID string) ([]dto.LowStockItemDTO, error) {
	rawItems, err := uc.reportRepo.LowStock(ctx, companyID, warehouseID, uc.defaultReorderPoint)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItemDTO, 0, len(rawItems))
	for _, it := range rawItems {
		ideal := (it.ReorderPoint*3 + 1) / 2
		suggested := ideal - it.Quantity
		if suggested < 0 {
			suggested = 0
		}
		items = append(items, dto.LowStockItemDTO{
			ProductID:         it.ProductID,
			SKU:               it.SKU,
			ProductName:       it.ProductName,
			WarehouseID:       it.WarehouseID,
			WarehouseName:     it.WarehouseName,
			Quantity:          it.Quantity,
			ReorderPoint:      it.ReorderPoint,
			SuggestedOrderQty: suggested,
		})
	}

	// Mayor déficit primero; empate por SKU para un orden estable.
	sort.SliceStable(items, func(i, j int) bool {
		defI := items[i].ReorderPoint - items[i].Quantity
		defJ := items[j].ReorderPoint - items[j].Quantity
		if defI != defJ {
			return defI > defJ
		}
		return items[i].SKU < items[j].SKU
	})
	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}
