package repository

// TxRepositories agrupa los repositorios atados a una misma transacción.
type TxRepositories struct {
	Carts         CartRepository
	CartLines     CartLineRepository
	Orders        OrderRepository
	SalesNotes    SalesNoteRepository
	PurchaseNotes PurchaseNoteRepository
	Adjustments   AdjustmentRepository
	Stock         StockRepository
	Movements     InventoryMovementRepository
	Products      ProductRepository
}
