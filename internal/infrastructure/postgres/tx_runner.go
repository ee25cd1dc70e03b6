package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var tracer = otel.Tracer("tienda-api/postgres")

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// Los invariantes se protegen con SELECT ... FOR UPDATE sobre carrito, pedido, nota, ajuste y stock.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Serialización fallida y deadlock se reportan como domain.ErrConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) (err error) {
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(attribute.String("tx.isolation", string(pgx.ReadCommitted))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, newTxRepositories(tx)); err != nil {
		// contexto nuevo: el rollback debe completarse aunque ctx esté cancelado
		_ = tx.Rollback(context.Background())
		if isConcurrencyError(err) {
			return domain.ErrConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}

func newTxRepositories(q Querier) repository.TxRepositories {
	return repository.TxRepositories{
		Carts:         NewCartRepository(q),
		CartLines:     NewCartLineRepository(q),
		Orders:        NewOrderRepository(q),
		SalesNotes:    NewSalesNoteRepository(q),
		PurchaseNotes: NewPurchaseNoteRepository(q),
		Adjustments:   NewAdjustmentRepository(q),
		Stock:         NewStockRepository(q),
		Movements:     NewInventoryMovementRepository(q),
		Products:      NewProductRepository(q),
	}
}
