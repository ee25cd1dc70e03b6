package ports

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
)

// PDFGenerator genera la representación PDF de los reportes.
type PDFGenerator interface {
	SalesNotePDF(ctx context.Context, note *dto.SalesNoteResponse) ([]byte, error)
	LowStockPDF(ctx context.Context, companyID string, items []dto.LowStockItemDTO) ([]byte, error)
	SalesByCategoryPDF(ctx context.Context, report *dto.SalesByCategoryResponse) ([]byte, error)
}
