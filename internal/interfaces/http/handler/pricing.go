package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pricingapp "github.com/stocktier/backend/internal/application/pricing"
)

// PricingHandler handles price resolution, tier price maintenance, the
// special-price approval workflow, and customer tier assignments
type PricingHandler struct {
	BaseHandler
	pricingService *pricingapp.PricingService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(pricingService *pricingapp.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// ResolveQuoteRequest is the request body for resolving an effective price
type ResolveQuoteRequest struct {
	ItemID     string  `json:"item_id" binding:"required,uuid"`
	CustomerID *string `json:"customer_id" binding:"omitempty,uuid"`
	TargetTier string  `json:"target_tier" binding:"omitempty,tier"`
}

// SetTierPriceRequest is the request body for setting one tier price
type SetTierPriceRequest struct {
	Tier      string  `json:"tier" binding:"required,tier"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
}

// CreateSpecialPriceRequest is the request body for proposing a
// customer-specific price
type CreateSpecialPriceRequest struct {
	CustomerID string  `json:"customer_id" binding:"required,uuid"`
	ItemID     string  `json:"item_id" binding:"required,uuid"`
	UnitPrice  float64 `json:"unit_price" binding:"required,gt=0"`
}

// EvaluateSpecialPriceRequest is the request body for previewing the
// approval decision on a proposed special price
type EvaluateSpecialPriceRequest struct {
	CustomerID string  `json:"customer_id" binding:"required,uuid"`
	ItemID     string  `json:"item_id" binding:"required,uuid"`
	UnitPrice  float64 `json:"unit_price" binding:"required,gt=0"`
}

// AssignCustomerTierRequest is the request body for setting a customer's
// default tier for one brand
type AssignCustomerTierRequest struct {
	BrandID string `json:"brand_id" binding:"required,uuid"`
	Tier    string `json:"tier" binding:"required,tier"`
}

// ResolveQuote resolves the effective unit price of an item for the actor
func (h *PricingHandler) ResolveQuote(c *gin.Context) {
	var req ResolveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	itemID, _ := uuid.Parse(req.ItemID)

	appReq := pricingapp.ResolvePriceRequest{
		ItemID:     itemID,
		ActorTier:  h.actorTier(c),
		TargetTier: req.TargetTier,
	}
	if req.CustomerID != nil {
		id, _ := uuid.Parse(*req.CustomerID)
		appReq.CustomerID = &id
	}

	quote, err := h.pricingService.ResolvePrice(c.Request.Context(), appReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, quote)
}

// SetTierPrice creates or updates one tier price of an item and returns the
// full price list with any hierarchy violations
func (h *PricingHandler) SetTierPrice(c *gin.Context) {
	itemID, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	var req SetTierPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	list, err := h.pricingService.SetTierPrice(c.Request.Context(), pricingapp.SetTierPriceRequest{
		ItemID:    itemID,
		Tier:      req.Tier,
		UnitPrice: decimal.NewFromFloat(req.UnitPrice),
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, list)
}

// ListTierPrices returns the tier price list of one item
func (h *PricingHandler) ListTierPrices(c *gin.Context) {
	itemID, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	list, err := h.pricingService.ListTierPrices(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, list)
}

// DeleteTierPrice removes one tier price
func (h *PricingHandler) DeleteTierPrice(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	if err := h.pricingService.DeleteTierPrice(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// CreateSpecialPrice proposes a customer-specific price. Prices within the
// auto-approval band are approved in the same call.
func (h *PricingHandler) CreateSpecialPrice(c *gin.Context) {
	actor, ok := h.actorID(c)
	if !ok {
		return
	}
	var req CreateSpecialPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	customerID, _ := uuid.Parse(req.CustomerID)
	itemID, _ := uuid.Parse(req.ItemID)

	sp, err := h.pricingService.CreateSpecialPrice(c.Request.Context(), pricingapp.CreateSpecialPriceRequest{
		CustomerID:  customerID,
		ItemID:      itemID,
		UnitPrice:   decimal.NewFromFloat(req.UnitPrice),
		RequestedBy: actor,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, sp)
}

// EvaluateSpecialPrice previews the approval decision a proposal would get,
// without creating it. Nothing is persisted.
func (h *PricingHandler) EvaluateSpecialPrice(c *gin.Context) {
	var req EvaluateSpecialPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	customerID, _ := uuid.Parse(req.CustomerID)
	itemID, _ := uuid.Parse(req.ItemID)

	decision, err := h.pricingService.EvaluateSpecialPrice(c.Request.Context(), pricingapp.EvaluateSpecialPriceRequest{
		CustomerID: customerID,
		ItemID:     itemID,
		UnitPrice:  decimal.NewFromFloat(req.UnitPrice),
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, decision)
}

// ApproveSpecialPrice approves a pending special price
func (h *PricingHandler) ApproveSpecialPrice(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	actor, ok := h.actorID(c)
	if !ok {
		return
	}
	sp, err := h.pricingService.ApproveSpecialPrice(c.Request.Context(), id, actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, sp)
}

// RejectSpecialPrice rejects and removes a pending special price
func (h *PricingHandler) RejectSpecialPrice(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	if err := h.pricingService.RejectSpecialPrice(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListPendingApprovals returns special prices awaiting approval, oldest
// first
func (h *PricingHandler) ListPendingApprovals(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	pending, err := h.pricingService.ListPendingApprovals(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, pending)
}

// AssignCustomerTier sets a customer's default tier for one brand
func (h *PricingHandler) AssignCustomerTier(c *gin.Context) {
	customerID, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	var req AssignCustomerTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	brandID, _ := uuid.Parse(req.BrandID)

	assignment, err := h.pricingService.AssignCustomerTier(c.Request.Context(), pricingapp.AssignCustomerTierRequest{
		CustomerID: customerID,
		BrandID:    brandID,
		Tier:       req.Tier,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, assignment)
}

// GetCustomerTiers returns a customer's tier assignments across brands
func (h *PricingHandler) GetCustomerTiers(c *gin.Context) {
	customerID, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	tiers, err := h.pricingService.GetCustomerTiers(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, tiers)
}

// RegisterRoutes registers all pricing routes
func (h *PricingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pricing := rg.Group("/pricing")
	{
		pricing.POST("/quotes", h.ResolveQuote)
		pricing.GET("/items/:id/tiers", h.ListTierPrices)
		pricing.PUT("/items/:id/tiers", h.SetTierPrice)
		pricing.DELETE("/tiers/:id", h.DeleteTierPrice)
		pricing.POST("/special-prices", h.CreateSpecialPrice)
		pricing.POST("/special-prices/evaluate", h.EvaluateSpecialPrice)
		pricing.GET("/special-prices/pending", h.ListPendingApprovals)
		pricing.POST("/special-prices/:id/approve", h.ApproveSpecialPrice)
		pricing.POST("/special-prices/:id/reject", h.RejectSpecialPrice)
		pricing.GET("/customers/:id/tiers", h.GetCustomerTiers)
		pricing.PUT("/customers/:id/tiers", h.AssignCustomerTier)
	}
}
