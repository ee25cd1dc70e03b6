package ports

import (
	"context"
	"errors"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error
}

// RunWithRetry ejecuta fn en una transacción y la reintenta una vez si termina en domain.ErrConflict
// (carrera con otra petición). El segundo conflicto se devuelve al caller.
func RunWithRetry(ctx context.Context, runner TxRunner, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	err := runner.Run(ctx, fn)
	if errors.Is(err, domain.ErrConflict) {
		err = runner.Run(ctx, fn)
	}
	return err
}
