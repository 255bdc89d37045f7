package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/partner"
	"github.com/stocktier/backend/internal/domain/shared"
)

// CustomerService handles customer registration and lifecycle
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomer registers a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name)
	if err != nil {
		return nil, err
	}
	customer.UpdateContact(req.ContactName, req.Phone, req.Email, req.Address)
	customer.Notes = req.Notes

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetCustomer returns one customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// ListCustomers returns customers matching the filter
func (s *CustomerService) ListCustomers(ctx context.Context, filter shared.Filter) ([]CustomerResponse, int64, error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out, total, nil
}

// UpdateContact changes a customer's contact details
func (s *CustomerService) UpdateContact(ctx context.Context, id uuid.UUID, req UpdateCustomerContactRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.UpdateContact(req.ContactName, req.Phone, req.Email, req.Address)
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// DeactivateCustomer marks a customer inactive. Historical transactions and
// price records stay linked.
func (s *CustomerService) DeactivateCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Deactivate()
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// ActivateCustomer reinstates an inactive customer
func (s *CustomerService) ActivateCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Activate()
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}
