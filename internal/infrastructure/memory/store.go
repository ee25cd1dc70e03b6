// Package memory implementa los repositorios en memoria para desarrollo (STORAGE=memory) y tests.
// Los datos se pierden al reiniciar el proceso.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type stockKey struct {
	productID   string
	warehouseID string
}

type state struct {
	products        map[string]entity.Product
	warehouses      map[string]entity.Warehouse
	categories      map[string]entity.Category
	suppliers       map[string]entity.Supplier
	promotions      map[string]entity.Promotion
	stock           map[stockKey]entity.Stock
	movements       []entity.InventoryMovement
	carts           map[string]entity.Cart
	cartLines       []entity.CartLine
	orders          map[string]entity.Order
	salesNotes      map[string]entity.SalesNote
	salesDetails    []entity.SalesNoteDetail
	purchaseNotes   map[string]entity.PurchaseNote
	purchaseDetails []entity.PurchaseNoteDetail
	adjustments     map[string]entity.Adjustment
	adjDetails      []entity.AdjustmentDetail
}

func newState() *state {
	return &state{
		products:      map[string]entity.Product{},
		warehouses:    map[string]entity.Warehouse{},
		categories:    map[string]entity.Category{},
		suppliers:     map[string]entity.Supplier{},
		promotions:    map[string]entity.Promotion{},
		stock:         map[stockKey]entity.Stock{},
		carts:         map[string]entity.Cart{},
		orders:        map[string]entity.Order{},
		salesNotes:    map[string]entity.SalesNote{},
		purchaseNotes: map[string]entity.PurchaseNote{},
		adjustments:   map[string]entity.Adjustment{},
	}
}

func (s *state) clone() *state {
	return &state{
		products:        maps.Clone(s.products),
		warehouses:      maps.Clone(s.warehouses),
		categories:      maps.Clone(s.categories),
		suppliers:       maps.Clone(s.suppliers),
		promotions:      maps.Clone(s.promotions),
		stock:           maps.Clone(s.stock),
		movements:       slices.Clone(s.movements),
		carts:           maps.Clone(s.carts),
		cartLines:       slices.Clone(s.cartLines),
		orders:          maps.Clone(s.orders),
		salesNotes:      maps.Clone(s.salesNotes),
		salesDetails:    slices.Clone(s.salesDetails),
		purchaseNotes:   maps.Clone(s.purchaseNotes),
		purchaseDetails: slices.Clone(s.purchaseDetails),
		adjustments:     maps.Clone(s.adjustments),
		adjDetails:      slices.Clone(s.adjDetails),
	}
}

// Store guarda todo el estado detrás de un único mutex.
// Una transacción retiene el mutex de principio a fin, así las transacciones quedan serializadas
// y un error restaura la copia tomada al inicio.
type Store struct {
	mu   sync.Mutex
	data *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: newState()}
}

// view es el acceso de un repositorio al store. inTx indica que el mutex ya lo tiene la transacción.
type view struct {
	s    *Store
	inTx bool
}

func (v view) lock() func() {
	if v.inTx {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

// Run ejecuta fn con repositorios atados a la transacción. Si fn falla el estado vuelve al de antes.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(ctx, s.repositories(view{s: s, inTx: true})); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) repositories(v view) repository.TxRepositories {
	return repository.TxRepositories{
		Carts:         &CartRepo{v},
		CartLines:     &CartLineRepo{v},
		Orders:        &OrderRepo{v},
		SalesNotes:    &SalesNoteRepo{v},
		PurchaseNotes: &PurchaseNoteRepo{v},
		Adjustments:   &AdjustmentRepo{v},
		Stock:         &StockRepo{v},
		Movements:     &InventoryMovementRepo{v},
		Products:      &ProductRepo{v},
	}
}

// Repositorios fuera de transacción.

func (s *Store) Products() *ProductRepo { return &ProductRepo{view{s: s}} }
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{view{s: s}} }
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{view{s: s}} }
func (s *Store) Promotions() *PromotionRepo { return &PromotionRepo{view{s: s}} }
func (s *Store) Stock() *StockRepo { return &StockRepo{view{s: s}} }
func (s *Store) Movements() *InventoryMovementRepo { return &InventoryMovementRepo{view{s: s}} }
func (s *Store) Carts() *CartRepo { return &CartRepo{view{s: s}} }
func (s *Store) CartLines() *CartLineRepo { return &CartLineRepo{view{s: s}} }
func (s *Store) Orders() *OrderRepo { return &OrderRepo{view{s: s}} }
func (s *Store) SalesNotes() *SalesNoteRepo { return &SalesNoteRepo{view{s: s}} }
func (s *Store) PurchaseNotes() *PurchaseNoteRepo { return &PurchaseNoteRepo{view{s: s}} }
func (s *Store) Adjustments() *AdjustmentRepo { return &AdjustmentRepo{view{s: s}} }
func (s *Store) Reports() *ReportRepo { return &ReportRepo{view{s: s}} }

// PutCategory registra una categoría (no hay caso de uso de categorías: se cargan como datos semilla).
func (s *Store) PutCategory(c entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.categories[c.ID] = c
}

// CountOrders cantidad de pedidos guardados.
func (s *Store) CountOrders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.orders)
}
