package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	appinventory "github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/notes"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ReportUseCase agregados de solo lectura (ventas por categoría, stock bajo) y su versión PDF.
type ReportUseCase struct {
	reportRepo    repository.ReportRepository
	replenishment *appinventory.ReplenishmentUseCase
	notes         *notes.NotesUseCase
	pdf           ports.PDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	replenishment *appinventory.ReplenishmentUseCase,
	notesUC *notes.NotesUseCase,
	pdf ports.PDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:    reportRepo,
		replenishment: replenishment,
		notes:         notesUC,
		pdf:           pdf,
	}
}

// SalesByCategory suma los detalles de notas de venta completadas entre from y to (inclusive) por categoría.
func (uc *ReportUseCase) SalesByCategory(ctx context.Context, companyID string, from, to time.Time) (*dto.SalesByCategoryResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.reportRepo.SalesByCategory(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.SalesByCategoryResponse{
		CompanyID:  companyID,
		From:       from,
		To:         to,
		Categories: make([]dto.CategorySalesDTO, 0, len(rows)),
		GrandTotal: decimal.Zero,
	}
	for _, r := range rows {
		resp.Categories = append(resp.Categories, dto.CategorySalesDTO{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Units:        r.Units,
			Total:        r.Total,
		})
		resp.GrandTotal = resp.GrandTotal.Add(r.Total)
	}
	return resp, nil
}

// SalesByCategoryPDF genera el PDF del reporte de ventas por categoría.
func (uc *ReportUseCase) SalesByCategoryPDF(ctx context.Context, companyID string, from, to time.Time) ([]byte, error) {
	report, err := uc.SalesByCategory(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.SalesByCategoryPDF(ctx, report)
}

// LowStockPDF genera el PDF de productos con stock bajo.
func (uc *ReportUseCase) LowStockPDF(ctx context.Context, companyID, warehouseID string) ([]byte, error) {
	items, err := uc.replenishment.LowStock(ctx, companyID, warehouseID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.LowStockPDF(ctx, companyID, items)
}

// SalesNotePDF genera el PDF de una nota de venta.
func (uc *ReportUseCase) SalesNotePDF(ctx context.Context, companyID, noteID string) ([]byte, error) {
	note, err := uc.notes.GetSalesNote(ctx, companyID, noteID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.SalesNotePDF(ctx, note)
}
