package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stocktier/backend/internal/domain/shared"
	"github.com/stocktier/backend/internal/infrastructure/logger"
	"github.com/stocktier/backend/internal/interfaces/http/dto"
)

// Actor headers set by the API gateway after authentication. The actor's
// tier caps which pricing tiers a request may address.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorTier = "X-Actor-Tier"
)

// BaseHandler provides the response helpers shared by all handlers
type BaseHandler struct{}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response for malformed input
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.CodeValidationError, message))
}

// Error maps a service error to its HTTP response. Domain errors keep their
// code and details; anything else becomes an opaque 500.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponseWithDetails(domainErr.Code, domainErr.Message, domainErr.Details))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.CodeInternalError, "internal server error"))
}

// parseIDParam binds and parses the :id path parameter
func (h *BaseHandler) parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "invalid id: must be a uuid")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "invalid id: must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}

// actorID reads the authenticated actor from the request headers
func (h *BaseHandler) actorID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(HeaderActorID)
	if raw == "" {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.CodeValidationError, "missing "+HeaderActorID+" header"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.CodeValidationError, "malformed "+HeaderActorID+" header"))
		return uuid.Nil, false
	}
	c.Request = c.Request.WithContext(logger.WithActorID(c.Request.Context(), raw))
	return id, true
}

// actorTier reads the actor's own pricing tier from the request headers.
// Empty is allowed; the pricing rules then treat the actor as end-customer.
func (h *BaseHandler) actorTier(c *gin.Context) string {
	return c.GetHeader(HeaderActorTier)
}

// bindListFilter binds the common list query parameters into a Filter
func (h *BaseHandler) bindListFilter(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "invalid list parameters: "+err.Error())
		return shared.Filter{}, false
	}
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter, true
}
