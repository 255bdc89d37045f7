package partner

import (
	"strings"

	"github.com/stocktier/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer is a buying partner. Tier assignments and special prices reference
// customers by ID from the pricing context.
type Customer struct {
	shared.BaseAggregateRoot
	Name        string         `gorm:"type:varchar(200);not null;uniqueIndex"`
	ContactName string         `gorm:"type:varchar(100)"`
	Phone       string         `gorm:"type:varchar(50);index"`
	Email       string         `gorm:"type:varchar(200);index"`
	Address     string         `gorm:"type:text"`
	Status      CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(name string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "name",
			"reason": "customer name is required",
		})
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Status:            CustomerStatusActive,
	}, nil
}

// UpdateContact updates the customer's contact details
func (c *Customer) UpdateContact(contactName, phone, email, address string) {
	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.IncrementVersion()
}

// Deactivate marks the customer inactive. Historical transactions keep
// referencing it.
func (c *Customer) Deactivate() {
	if c.Status == CustomerStatusInactive {
		return
	}
	c.Status = CustomerStatusInactive
	c.IncrementVersion()
}

// Activate re-enables the customer
func (c *Customer) Activate() {
	if c.Status == CustomerStatusActive {
		return
	}
	c.Status = CustomerStatusActive
	c.IncrementVersion()
}

// IsActive reports whether the customer can take part in new transactions
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}
