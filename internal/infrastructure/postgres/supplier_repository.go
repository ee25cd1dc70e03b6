package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores sobre PostgreSQL. Ambas variantes comparten la tabla suppliers;
// la columna kind indica qué grupo de columnas está poblado.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor persona o empresa.
func (r *SupplierRepo) Create(ctx context.Context, s entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, company_id, kind, email, phone, first_name, last_name, document, legal_name, trade_name, nit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	var err error
	switch v := s.(type) {
	case entity.PersonSupplier:
		_, err = r.q.Exec(ctx, query, v.ID, v.CompanyID, v.Kind(), v.Email, v.Phone,
			v.FirstName, v.LastName, v.Document, nil, nil, nil, v.CreatedAt)
	case entity.CompanySupplier:
		_, err = r.q.Exec(ctx, query, v.ID, v.CompanyID, v.Kind(), v.Email, v.Phone,
			nil, nil, nil, v.LegalName, nullable(v.TradeName), v.NIT, v.CreatedAt)
	default:
		return fmt.Errorf("insert supplier: tipo %T no soportado", s)
	}
	return wrapErr("insert supplier", err)
}

// GetByID obtiene un proveedor con su variante concreta. (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (entity.Supplier, error) {
	var (
		base                          entity.SupplierBase
		kind                          string
		firstName, lastName, document *string
		legalName, tradeName, nit     *string
		createdAt                     time.Time
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, kind, email, phone, first_name, last_name, document, legal_name, trade_name, nit, created_at
		FROM suppliers WHERE id = $1`, id).Scan(
		&base.ID, &base.CompanyID, &kind, &base.Email, &base.Phone,
		&firstName, &lastName, &document, &legalName, &tradeName, &nit, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	base.CreatedAt = createdAt
	switch kind {
	case entity.SupplierKindPerson:
		return entity.PersonSupplier{SupplierBase: base, FirstName: deref(firstName), LastName: deref(lastName), Document: deref(document)}, nil
	case entity.SupplierKindCompany:
		return entity.CompanySupplier{SupplierBase: base, LegalName: deref(legalName), TradeName: deref(tradeName), NIT: deref(nit)}, nil
	}
	return nil, fmt.Errorf("get supplier: kind desconocido %q", kind)
}
