package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/nit"
)

// SupplierUseCase alta y consulta de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor persona o empresa. El NIT de empresa se valida con su dígito de
// verificación y se guarda en la forma 900123456-8.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	base := entity.SupplierBase{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: time.Now(),
	}
	var s entity.Supplier
	switch in.Kind {
	case entity.SupplierKindPerson:
		if in.FirstName == "" || in.Document == "" {
			return nil, domain.ErrInvalidInput
		}
		s = entity.PersonSupplier{SupplierBase: base, FirstName: in.FirstName, LastName: in.LastName, Document: in.Document}
	case entity.SupplierKindCompany:
		if in.LegalName == "" {
			return nil, domain.ErrInvalidInput
		}
		normalized, err := nit.Normalize(in.NIT)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		s = entity.CompanySupplier{SupplierBase: base, LegalName: in.LegalName, TradeName: in.TradeName, NIT: normalized}
	default:
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor de la empresa.
func (uc *SupplierUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.SupplierCompanyID() != companyID {
		return nil, domain.ErrForbidden
	}
	return toSupplierResponse(s), nil
}

func toSupplierResponse(s entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{ID: s.SupplierID(), Kind: s.Kind(), DisplayName: s.DisplayName()}
}
