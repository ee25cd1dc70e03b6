package memory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo ajustes y detalles en memoria. Los detalles se listan en orden de inserción.
type AdjustmentRepo struct{ v view }

func (r *AdjustmentRepo) Create(_ context.Context, a *entity.Adjustment) error {
	defer r.v.lock()()
	if _, ok := r.v.s.data.adjustments[a.ID]; ok {
		return domain.ErrDuplicate
	}
	r.v.s.data.adjustments[a.ID] = *a
	return nil
}

func (r *AdjustmentRepo) GetByID(_ context.Context, id string) (*entity.Adjustment, error) {
	defer r.v.lock()()
	a, ok := r.v.s.data.adjustments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AdjustmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Adjustment, error) {
	return r.GetByID(ctx, id)
}

func (r *AdjustmentRepo) Update(_ context.Context, a *entity.Adjustment) error {
	defer r.v.lock()()
	if _, ok := r.v.s.data.adjustments[a.ID]; ok {
		r.v.s.data.adjustments[a.ID] = *a
	}
	return nil
}

func (r *AdjustmentRepo) CreateDetail(_ context.Context, d *entity.AdjustmentDetail) error {
	defer r.v.lock()()
	if _, ok := r.v.s.data.adjustments[d.AdjustmentID]; !ok {
		return domain.ErrNotFound
	}
	r.v.s.data.adjDetails = append(r.v.s.data.adjDetails, *d)
	return nil
}

func (r *AdjustmentRepo) ListDetails(_ context.Context, adjustmentID string) ([]*entity.AdjustmentDetail, error) {
	defer r.v.lock()()
	var list []*entity.AdjustmentDetail
	for _, d := range r.v.s.data.adjDetails {
		if d.AdjustmentID == adjustmentID {
			list = append(list, &d)
		}
	}
	return list, nil
}
