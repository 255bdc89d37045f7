package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/stocktier/backend/internal/application/inventory"
)

// TransactionHandler handles ledger transaction endpoints
type TransactionHandler struct {
	BaseHandler
	ledgerService *inventoryapp.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(ledgerService *inventoryapp.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// TransactionLineRequest is one requested line of a new transaction
type TransactionLineRequest struct {
	ItemID         string   `json:"item_id" binding:"required,uuid"`
	QuantityChange float64  `json:"quantity_change" binding:"required"`
	BatchID        *string  `json:"batch_id" binding:"omitempty,uuid"`
	PricingTier    string   `json:"pricing_tier" binding:"omitempty,tier"`
	UnitPrice      *float64 `json:"unit_price" binding:"omitempty,gte=0"`
}

// CreateTransactionRequest is the request body for creating a transaction
type CreateTransactionRequest struct {
	Type       string                   `json:"type" binding:"required"`
	CustomerID *string                  `json:"customer_id" binding:"omitempty,uuid"`
	DueDate    *time.Time               `json:"due_date"`
	Priority   string                   `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	Notes      string                   `json:"notes" binding:"omitempty,max=2000"`
	Items      []TransactionLineRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiveLineRequest is one received lot
type ReceiveLineRequest struct {
	ItemID     string     `json:"item_id" binding:"required,uuid"`
	Quantity   float64    `json:"quantity" binding:"required,gt=0"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// ReceiveStockRequest is the request body for receiving stock into new batches
type ReceiveStockRequest struct {
	Notes string               `json:"notes" binding:"omitempty,max=2000"`
	Lines []ReceiveLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// Create creates a transaction in pending state
func (h *TransactionHandler) Create(c *gin.Context) {
	actor, ok := h.actorID(c)
	if !ok {
		return
	}
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := inventoryapp.CreateTransactionRequest{
		Type:      req.Type,
		ActorTier: h.actorTier(c),
		CreatedBy: actor,
		DueDate:   req.DueDate,
		Priority:  req.Priority,
		Notes:     req.Notes,
		Items:     make([]inventoryapp.TransactionLineRequest, len(req.Items)),
	}
	if req.CustomerID != nil {
		id, _ := uuid.Parse(*req.CustomerID)
		appReq.CustomerID = &id
	}
	for i, line := range req.Items {
		itemID, _ := uuid.Parse(line.ItemID)
		appLine := inventoryapp.TransactionLineRequest{
			ItemID:         itemID,
			QuantityChange: decimal.NewFromFloat(line.QuantityChange),
			PricingTier:    line.PricingTier,
		}
		if line.BatchID != nil {
			batchID, _ := uuid.Parse(*line.BatchID)
			appLine.BatchID = &batchID
		}
		if line.UnitPrice != nil {
			price := decimal.NewFromFloat(*line.UnitPrice)
			appLine.UnitPrice = &price
		}
		appReq.Items[i] = appLine
	}

	tx, err := h.ledgerService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, tx)
}

// Receive creates and completes a receive transaction, opening one batch
// per line
func (h *TransactionHandler) Receive(c *gin.Context) {
	actor, ok := h.actorID(c)
	if !ok {
		return
	}
	var req ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := inventoryapp.ReceiveStockRequest{
		CreatedBy: actor,
		Notes:     req.Notes,
		Lines:     make([]inventoryapp.ReceiveStockLine, len(req.Lines)),
	}
	for i, line := range req.Lines {
		itemID, _ := uuid.Parse(line.ItemID)
		appReq.Lines[i] = inventoryapp.ReceiveStockLine{
			ItemID:     itemID,
			Quantity:   decimal.NewFromFloat(line.Quantity),
			ExpiryDate: line.ExpiryDate,
		}
	}

	tx, err := h.ledgerService.Receive(c.Request.Context(), appReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, tx)
}

// Complete applies a pending transaction to stock
func (h *TransactionHandler) Complete(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	tx, err := h.ledgerService.Complete(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, tx)
}

// Cancel cancels a pending transaction without touching stock
func (h *TransactionHandler) Cancel(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	tx, err := h.ledgerService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, tx)
}

// Delete removes a pending transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ledgerService.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// CheckSufficiency reports, without side effects, whether a pending
// transaction could complete against current stock
func (h *TransactionHandler) CheckSufficiency(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	shortfalls, err := h.ledgerService.CheckSufficiency(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, gin.H{
		"sufficient": len(shortfalls) == 0,
		"shortfalls": shortfalls,
	})
}

// Get returns one transaction by id
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	tx, err := h.ledgerService.Get(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, tx)
}

// GetByReference returns one transaction by its reference number
func (h *TransactionHandler) GetByReference(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		h.BadRequest(c, "reference is required")
		return
	}
	tx, err := h.ledgerService.GetByReference(c.Request.Context(), reference)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, tx)
}

// List returns transactions filtered by status and customer
func (h *TransactionHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	var customerID *uuid.UUID
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "invalid customer_id: must be a uuid")
			return
		}
		customerID = &id
	}

	txs, total, err := h.ledgerService.List(c.Request.Context(), c.Query("status"), customerID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, txs, total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers all transaction routes
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	txs := rg.Group("/transactions")
	{
		txs.POST("", h.Create)
		txs.POST("/receive", h.Receive)
		txs.GET("", h.List)
		txs.GET("/reference/:reference", h.GetByReference)
		txs.GET("/:id", h.Get)
		txs.GET("/:id/sufficiency", h.CheckSufficiency)
		txs.POST("/:id/complete", h.Complete)
		txs.POST("/:id/cancel", h.Cancel)
		txs.DELETE("/:id", h.Delete)
	}
}
