package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
	_ repository.PromotionRepository = (*PromotionRepo)(nil)
)

// ProductRepo productos en memoria. El SKU es único por empresa.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.v.lock()()
	d := r.v.s.data
	for _, existing := range d.products {
		if existing.CompanyID == p.CompanyID && strings.EqualFold(existing.SKU, p.SKU) {
			return domain.ErrDuplicate
		}
	}
	if _, ok := d.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	d.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.v.lock()()
	p, ok := r.v.s.data.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.v.lock()()
	d := r.v.s.data
	current, ok := d.products[p.ID]
	if !ok {
		return nil
	}
	p.Cost = current.Cost
	d.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) UpdateCost(_ context.Context, productID string, cost decimal.Decimal) error {
	defer r.v.lock()()
	d := r.v.s.data
	p, ok := d.products[productID]
	if !ok {
		return nil
	}
	p.Cost = cost
	p.UpdatedAt = time.Now()
	d.products[productID] = p
	return nil
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	defer r.v.lock()()
	var list []*entity.Product
	for _, p := range r.v.s.data.products {
		if p.CompanyID == companyID {
			list = append(list, &p)
		}
	}
	slices.SortFunc(list, func(a, b *entity.Product) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return page(list, limit, offset), nil
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ v view }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	defer r.v.lock()()
	if _, ok := r.v.s.data.warehouses[w.ID]; ok {
		return domain.ErrDuplicate
	}
	r.v.s.data.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	defer r.v.lock()()
	w, ok := r.v.s.data.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	defer r.v.lock()()
	if _, ok := r.v.s.data.warehouses[w.ID]; ok {
		r.v.s.data.warehouses[w.ID] = *w
	}
	return nil
}

func (r *WarehouseRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	defer r.v.lock()()
	var list []*entity.Warehouse
	for _, w := range r.v.s.data.warehouses {
		if w.CompanyID == companyID {
			list = append(list, &w)
		}
	}
	slices.SortFunc(list, func(a, b *entity.Warehouse) int { return strings.Compare(a.Name, b.Name) })
	return page(list, limit, offset), nil
}

// SupplierRepo proveedores en memoria; guarda la variante concreta.
type SupplierRepo struct{ v view }

func (r *SupplierRepo) Create(_ context.Context, s entity.Supplier) error {
	defer r.v.lock()()
	if _, ok := r.v.s.data.suppliers[s.SupplierID()]; ok {
		return domain.ErrDuplicate
	}
	r.v.s.data.suppliers[s.SupplierID()] = s
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (entity.Supplier, error) {
	defer r.v.lock()()
	s, ok := r.v.s.data.suppliers[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

// PromotionRepo promociones en memoria.
type PromotionRepo struct{ v view }

func (r *PromotionRepo) Create(_ context.Context, p *entity.Promotion) error {
	defer r.v.lock()()
	r.v.s.data.promotions[p.ID] = *p
	return nil
}

func (r *PromotionRepo) GetByID(_ context.Context, id string) (*entity.Promotion, error) {
	defer r.v.lock()()
	p, ok := r.v.s.data.promotions[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PromotionRepo) ListByProduct(_ context.Context, companyID, productID string) ([]*entity.Promotion, error) {
	defer r.v.lock()()
	var list []*entity.Promotion
	for _, p := range r.v.s.data.promotions {
		if p.CompanyID == companyID && p.ProductID == productID {
			list = append(list, &p)
		}
	}
	slices.SortFunc(list, func(a, b *entity.Promotion) int { return b.StartDate.Compare(a.StartDate) })
	return list, nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
