package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/stocktier/backend/internal/application/inventory"
)

// ItemHandler handles item catalog and stock read endpoints
type ItemHandler struct {
	BaseHandler
	itemService *inventoryapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *inventoryapp.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// CreateItemRequest is the request body for registering an item
type CreateItemRequest struct {
	BrandID        string  `json:"brand_id" binding:"required,uuid"`
	Name           string  `json:"name" binding:"required,max=200"`
	UnitOfMeasure  string  `json:"unit_of_measure" binding:"omitempty,max=20"`
	ThresholdValue float64 `json:"threshold_value" binding:"omitempty,gte=0"`
}

// UpdateThresholdRequest is the request body for changing an item's
// low-stock threshold
type UpdateThresholdRequest struct {
	ThresholdValue float64 `json:"threshold_value" binding:"gte=0"`
}

// Create registers a new item under a brand
func (h *ItemHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	brandID, _ := uuid.Parse(req.BrandID)

	item, err := h.itemService.CreateItem(c.Request.Context(), inventoryapp.CreateItemRequest{
		BrandID:        brandID,
		Name:           req.Name,
		UnitOfMeasure:  req.UnitOfMeasure,
		ThresholdValue: decimal.NewFromFloat(req.ThresholdValue),
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, item)
}

// Get returns one item by id
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, item)
}

// GetBySKU returns one item by its SKU
func (h *ItemHandler) GetBySKU(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		h.BadRequest(c, "sku is required")
		return
	}
	item, err := h.itemService.GetItemBySKU(c.Request.Context(), sku)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, item)
}

// List returns items, optionally restricted to one brand
func (h *ItemHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	var brandID *uuid.UUID
	if raw := c.Query("brand_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "invalid brand_id: must be a uuid")
			return
		}
		brandID = &id
	}

	items, total, err := h.itemService.ListItems(c.Request.Context(), brandID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// ListBelowThreshold returns items whose stock has fallen below their
// low-stock threshold
func (h *ItemHandler) ListBelowThreshold(c *gin.Context) {
	items, err := h.itemService.ListBelowThreshold(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, items)
}

// ListBatches returns the batches of one item, oldest first
func (h *ItemHandler) ListBatches(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	activeOnly := c.Query("active") == "true"

	batches, err := h.itemService.ListBatches(c.Request.Context(), id, activeOnly)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, batches)
}

// UpdateThreshold changes an item's low-stock threshold
func (h *ItemHandler) UpdateThreshold(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.UpdateThreshold(c.Request.Context(), id, decimal.NewFromFloat(req.ThresholdValue))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, item)
}

// RegisterRoutes registers all item routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/alerts/below-threshold", h.ListBelowThreshold)
		items.GET("/sku/:sku", h.GetBySKU)
		items.GET("/:id", h.Get)
		items.GET("/:id/batches", h.ListBatches)
		items.PUT("/:id/threshold", h.UpdateThreshold)
	}
}
