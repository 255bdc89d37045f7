package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/stocktier/backend/internal/application/partner"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest is the request body for registering a customer
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	ContactName string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=30"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address" binding:"omitempty,max=500"`
	Notes       string `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateCustomerContactRequest is the request body for changing contact
// details
type UpdateCustomerContactRequest struct {
	ContactName string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=30"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address" binding:"omitempty,max=500"`
}

// Create registers a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	customer, err := h.customerService.CreateCustomer(c.Request.Context(), partnerapp.CreateCustomerRequest{
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Notes:       req.Notes,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, customer)
}

// Get returns one customer by id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, customer)
}

// List returns customers
func (h *CustomerHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters = map[string]interface{}{"status": status}
	}
	customers, total, err := h.customerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// UpdateContact changes a customer's contact details
func (h *CustomerHandler) UpdateContact(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateCustomerContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	customer, err := h.customerService.UpdateContact(c.Request.Context(), id, partnerapp.UpdateCustomerContactRequest{
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, customer)
}

// Deactivate marks a customer inactive
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	customer, err := h.customerService.DeactivateCustomer(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, customer)
}

// Activate marks a customer active again
func (h *CustomerHandler) Activate(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	customer, err := h.customerService.ActivateCustomer(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, customer)
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id/contact", h.UpdateContact)
		customers.POST("/:id/deactivate", h.Deactivate)
		customers.POST("/:id/activate", h.Activate)
	}
}

// BrandHandler handles brand endpoints
type BrandHandler struct {
	BaseHandler
	brandService *partnerapp.BrandService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandService *partnerapp.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// CreateBrandRequest is the request body for registering a brand
type CreateBrandRequest struct {
	Name              string `json:"name" binding:"required,max=200"`
	Code              int    `json:"code" binding:"omitempty,min=1,max=899"`
	VATClassification string `json:"vat_classification" binding:"omitempty,oneof=VAT NON_VAT"`
	Notes             string `json:"notes" binding:"omitempty,max=2000"`
}

// Create registers a new brand. When no code is given the next free one is
// assigned.
func (h *BrandHandler) Create(c *gin.Context) {
	var req CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	brand, err := h.brandService.CreateBrand(c.Request.Context(), partnerapp.CreateBrandRequest{
		Name:              req.Name,
		Code:              req.Code,
		VATClassification: req.VATClassification,
		Notes:             req.Notes,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, brand)
}

// Get returns one brand by id
func (h *BrandHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	brand, err := h.brandService.GetBrand(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, brand)
}

// List returns all brands ordered by code
func (h *BrandHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	brands, err := h.brandService.ListBrands(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, brands)
}

// RegisterRoutes registers all brand routes
func (h *BrandHandler) RegisterRoutes(rg *gin.RouterGroup) {
	brands := rg.Group("/brands")
	{
		brands.POST("", h.Create)
		brands.GET("", h.List)
		brands.GET("/:id", h.Get)
	}
}
