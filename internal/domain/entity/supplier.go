package entity

import (
	"strings"
	"time"
)

// Tipos de proveedor.
const (
	SupplierKindPerson  = "person"
	SupplierKindCompany = "company"
)

// Supplier es un proveedor: persona natural o empresa.
type Supplier interface {
	SupplierID() string
	SupplierCompanyID() string
	Kind() string
	DisplayName() string
}

// SupplierBase campos comunes a ambas variantes.
type SupplierBase struct {
	ID        string
	CompanyID string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// SupplierID devuelve el ID del proveedor.
func (b SupplierBase) SupplierID() string { return b.ID }

// SupplierCompanyID devuelve la empresa (tenant) dueña del registro.
func (b SupplierBase) SupplierCompanyID() string { return b.CompanyID }

// PersonSupplier proveedor persona natural.
type PersonSupplier struct {
	SupplierBase
	FirstName string
	LastName  string
	Document  string // cédula
}

func (PersonSupplier) Kind() string { return SupplierKindPerson }

// DisplayName "Nombre Apellido".
func (p PersonSupplier) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// CompanySupplier proveedor persona jurídica.
type CompanySupplier struct {
	SupplierBase
	LegalName string
	TradeName string
	NIT       string
}

func (CompanySupplier) Kind() string { return SupplierKindCompany }

// DisplayName nombre comercial si existe, si no la razón social.
func (c CompanySupplier) DisplayName() string {
	if c.TradeName != "" {
		return c.TradeName
	}
	return c.LegalName
}
