package dto

// CreateSupplierRequest body para POST /api/suppliers. Kind decide qué campos aplican.
type CreateSupplierRequest struct {
	Kind  string `json:"kind"` // person | company
	Email string `json:"email"`
	Phone string `json:"phone"`
	// person
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Document  string `json:"document,omitempty"`
	// company
	LegalName string `json:"legal_name,omitempty"`
	TradeName string `json:"trade_name,omitempty"`
	NIT       string `json:"nit,omitempty"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
}
