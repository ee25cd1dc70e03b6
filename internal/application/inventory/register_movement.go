package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// MovementInput datos de un cambio de stock originado por un documento (ajuste, compra, pedido).
type MovementInput struct {
	SourceType  string
	SourceID    string
	UserID      string
	ProductID   string
	WarehouseID string
	Quantity    int
	// UnitCost en una entrada recalcula el costo promedio ponderado del producto.
	// nil registra la entrada al costo actual sin tocarlo.
	UnitCost *decimal.Decimal
	Now      time.Time
}

// RegisterINInTx suma stock usando los repositorios de la transacción del caller.
// Bloquea la fila de stock (SELECT FOR UPDATE) y guarda el movimiento en el kardex.
func RegisterINInTx(ctx context.Context, repos repository.TxRepositories, in MovementInput) error {
	stock, product, err := lockStock(ctx, repos, in)
	if err != nil {
		return err
	}
	next, err := inventory.NextStock(stock.Quantity, entity.MovementTypeIN, in.Quantity)
	if err != nil {
		return err
	}
	unitCost := product.Cost
	if in.UnitCost != nil {
		unitCost = *in.UnitCost
		newCost := inventory.CostCalculator(stock.Quantity, product.Cost, in.Quantity, unitCost)
		if err := repos.Products.UpdateCost(ctx, product.ID, newCost); err != nil {
			return err
		}
	}
	return applyStock(ctx, repos, stock, next, entity.MovementTypeIN, in.Quantity, unitCost, in)
}

// RegisterOUTInTx resta stock usando los repositorios de la transacción del caller.
// Retorna domain.ErrInsufficientStock si la bodega no cubre la cantidad; la salida se valoriza al costo promedio.
func RegisterOUTInTx(ctx context.Context, repos repository.TxRepositories, in MovementInput) error {
	stock, product, err := lockStock(ctx, repos, in)
	if err != nil {
		return err
	}
	next, err := inventory.NextStock(stock.Quantity, entity.MovementTypeOUT, in.Quantity)
	if err != nil {
		return err
	}
	return applyStock(ctx, repos, stock, next, entity.MovementTypeOUT, -in.Quantity, product.Cost, in)
}

func lockStock(ctx context.Context, repos repository.TxRepositories, in MovementInput) (*entity.Stock, *entity.Product, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	product, err := repos.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	stock, err := repos.Stock.GetForUpdate(ctx, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, nil, err
	}
	return stock, product, nil
}

func applyStock(
	ctx context.Context,
	repos repository.TxRepositories,
	stock *entity.Stock,
	next int,
	movementType string,
	signedQty int,
	unitCost decimal.Decimal,
	in MovementInput,
) error {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	before := stock.Quantity
	stock.Quantity = next
	stock.UpdatedAt = now
	if err := repos.Stock.Upsert(ctx, stock); err != nil {
		return err
	}
	return repos.Movements.Create(ctx, &entity.InventoryMovement{
		ID:          uuid.New().String(),
		SourceType:  in.SourceType,
		SourceID:    in.SourceID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Type:        movementType,
		Quantity:    signedQty,
		StockBefore: before,
		StockAfter:  next,
		UnitCost:    unitCost,
		TotalCost:   unitCost.Mul(decimal.NewFromInt(int64(signedQty))),
		Date:        now,
		CreatedBy:   in.UserID,
	})
}
