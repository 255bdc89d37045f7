package partner

import (
	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/partner"
)

// CreateCustomerRequest is the input for registering a customer
type CreateCustomerRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// UpdateCustomerContactRequest is the input for changing contact details
type UpdateCustomerContactRequest struct {
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

// CustomerResponse is a customer as returned to callers
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
}

// CreateBrandRequest is the input for registering a brand. Code is optional;
// when zero the next free code is assigned.
type CreateBrandRequest struct {
	Name              string `json:"name"`
	Code              int    `json:"code,omitempty"`
	VATClassification string `json:"vat_classification,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// BrandResponse is a brand as returned to callers
type BrandResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Code              int       `json:"code"`
	VATClassification string    `json:"vat_classification"`
	ChargesVAT        bool      `json:"charges_vat"`
	Notes             string    `json:"notes,omitempty"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		ContactName: c.ContactName,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		Status:      string(c.Status),
		Notes:       c.Notes,
	}
}

// ToBrandResponse converts a domain brand to a response DTO
func ToBrandResponse(b *partner.Brand) BrandResponse {
	return BrandResponse{
		ID:                b.ID,
		Name:              b.Name,
		Code:              b.Code,
		VATClassification: string(b.VATClassification),
		ChargesVAT:        b.ChargesVAT(),
		Notes:             b.Notes,
	}
}
