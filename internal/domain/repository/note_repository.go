package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// SalesNoteRepository persistencia de notas de venta y sus detalles.
type SalesNoteRepository interface {
	Create(ctx context.Context, note *entity.SalesNote) error
	GetByID(ctx context.Context, id string) (*entity.SalesNote, error)
	GetForUpdate(ctx context.Context, id string) (*entity.SalesNote, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.SalesNote, error)
	Update(ctx context.Context, note *entity.SalesNote) error
	CreateDetail(ctx context.Context, detail *entity.SalesNoteDetail) error
	ListDetails(ctx context.Context, noteID string) ([]*entity.SalesNoteDetail, error)
}

// PurchaseNoteRepository persistencia de notas de compra y sus detalles.
type PurchaseNoteRepository interface {
	Create(ctx context.Context, note *entity.PurchaseNote) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseNote, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseNote, error)
	Update(ctx context.Context, note *entity.PurchaseNote) error
	CreateDetail(ctx context.Context, detail *entity.PurchaseNoteDetail) error
	GetDetail(ctx context.Context, id string) (*entity.PurchaseNoteDetail, error)
	UpdateDetail(ctx context.Context, detail *entity.PurchaseNoteDetail) error
	ListDetails(ctx context.Context, noteID string) ([]*entity.PurchaseNoteDetail, error)
}
