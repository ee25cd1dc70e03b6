package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository        = (*OrderRepo)(nil)
	_ repository.SalesNoteRepository    = (*SalesNoteRepo)(nil)
	_ repository.PurchaseNoteRepository = (*PurchaseNoteRepo)(nil)
)

// OrderRepo pedidos en memoria.
type OrderRepo struct{ v view }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	defer r.v.lock()()
	if _, ok := r.v.s.data.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	r.v.s.data.orders[o.ID] = *o
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	defer r.v.lock()()
	o, ok := r.v.s.data.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	defer r.v.lock()()
	if _, ok := r.v.s.data.orders[o.ID]; ok {
		r.v.s.data.orders[o.ID] = *o
	}
	return nil
}

// SalesNoteRepo notas de venta y detalles en memoria.
type SalesNoteRepo struct{ v view }

func (r *SalesNoteRepo) Create(_ context.Context, n *entity.SalesNote) error {
	defer r.v.lock()()
	d := r.v.s.data
	if _, ok := d.salesNotes[n.ID]; ok {
		return domain.ErrDuplicate
	}
	if n.OrderID != nil {
		for _, existing := range d.salesNotes {
			if existing.OrderID != nil && *existing.OrderID == *n.OrderID {
				return domain.ErrDuplicate
			}
		}
	}
	d.salesNotes[n.ID] = *n
	return nil
}

func (r *SalesNoteRepo) GetByID(_ context.Context, id string) (*entity.SalesNote, error) {
	defer r.v.lock()()
	n, ok := r.v.s.data.salesNotes[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *SalesNoteRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesNote, error) {
	return r.GetByID(ctx, id)
}

func (r *SalesNoteRepo) GetByOrderID(_ context.Context, orderID string) (*entity.SalesNote, error) {
	defer r.v.lock()()
	for _, n := range r.v.s.data.salesNotes {
		if n.OrderID != nil && *n.OrderID == orderID {
			return &n, nil
		}
	}
	return nil, nil
}

func (r *SalesNoteRepo) Update(_ context.Context, n *entity.SalesNote) error {
	defer r.v.lock()()
	current, ok := r.v.s.data.salesNotes[n.ID]
	if !ok {
		return nil
	}
	current.Total = n.Total
	current.Status = n.Status
	current.UpdatedAt = n.UpdatedAt
	r.v.s.data.salesNotes[n.ID] = current
	return nil
}

func (r *SalesNoteRepo) CreateDetail(_ context.Context, d *entity.SalesNoteDetail) error {
	defer r.v.lock()()
	if _, ok := r.v.s.data.salesNotes[d.NoteID]; !ok {
		return domain.ErrNotFound
	}
	r.v.s.data.salesDetails = append(r.v.s.data.salesDetails, *d)
	return nil
}

func (r *SalesNoteRepo) ListDetails(_ context.Context, noteID string) ([]*entity.SalesNoteDetail, error) {
	defer r.v.lock()()
	var list []*entity.SalesNoteDetail
	for _, d := range r.v.s.data.salesDetails {
		if d.NoteID == noteID {
			list = append(list, &d)
		}
	}
	return list, nil
}

// PurchaseNoteRepo notas de compra y detalles en memoria.
type PurchaseNoteRepo struct{ v view }

func (r *PurchaseNoteRepo) Create(_ context.Context, n *entity.PurchaseNote) error {
	defer r.v.lock()()
	if _, ok := r.v.s.data.purchaseNotes[n.ID]; ok {
		return domain.ErrDuplicate
	}
	r.v.s.data.purchaseNotes[n.ID] = *n
	return nil
}

func (r *PurchaseNoteRepo) GetByID(_ context.Context, id string) (*entity.PurchaseNote, error) {
	defer r.v.lock()()
	n, ok := r.v.s.data.purchaseNotes[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *PurchaseNoteRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseNote, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseNoteRepo) Update(_ context.Context, n *entity.PurchaseNote) error {
	defer r.v.lock()()
	current, ok := r.v.s.data.purchaseNotes[n.ID]
	if !ok {
		return nil
	}
	current.Total = n.Total
	current.Status = n.Status
	current.ReceivedAt = n.ReceivedAt
	current.UpdatedAt = n.UpdatedAt
	r.v.s.data.purchaseNotes[n.ID] = current
	return nil
}

func (r *PurchaseNoteRepo) CreateDetail(_ context.Context, d *entity.PurchaseNoteDetail) error {
	defer r.v.lock()()
	if _, ok := r.v.s.data.purchaseNotes[d.NoteID]; !ok {
		return domain.ErrNotFound
	}
	r.v.s.data.purchaseDetails = append(r.v.s.data.purchaseDetails, *d)
	return nil
}

func (r *PurchaseNoteRepo) GetDetail(_ context.Context, id string) (*entity.PurchaseNoteDetail, error) {
	defer r.v.lock()()
	if i := slices.IndexFunc(r.v.s.data.purchaseDetails, func(d entity.PurchaseNoteDetail) bool { return d.ID == id }); i >= 0 {
		d := r.v.s.data.purchaseDetails[i]
		return &d, nil
	}
	return nil, nil
}

func (r *PurchaseNoteRepo) UpdateDetail(_ context.Context, d *entity.PurchaseNoteDetail) error {
	defer r.v.lock()()
	if i := slices.IndexFunc(r.v.s.data.purchaseDetails, func(x entity.PurchaseNoteDetail) bool { return x.ID == d.ID }); i >= 0 {
		r.v.s.data.purchaseDetails[i] = *d
	}
	return nil
}

func (r *PurchaseNoteRepo) ListDetails(_ context.Context, noteID string) ([]*entity.PurchaseNoteDetail, error) {
	defer r.v.lock()()
	var list []*entity.PurchaseNoteDetail
	for _, d := range r.v.s.data.purchaseDetails {
		if d.NoteID == noteID {
			list = append(list, &d)
		}
	}
	return list, nil
}
