package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/pricing"
)

// ResolvePriceRequest is the input for resolving the effective price of an
// item for an actor. TargetTier is optional; when empty the customer's
// default tier for the item's brand is used.
type ResolvePriceRequest struct {
	ItemID     uuid.UUID  `json:"item_id"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	ActorTier  string     `json:"actor_tier"`
	TargetTier string     `json:"target_tier,omitempty"`
}

// QuoteResponse is a resolved price as returned to callers
type QuoteResponse struct {
	ItemID        uuid.UUID       `json:"item_id"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Source        string          `json:"source"`
	Tier          string          `json:"tier,omitempty"`
	FellBackToSRP bool            `json:"fell_back_to_srp"`
}

// SetTierPriceRequest is the input for creating or updating one tier price
type SetTierPriceRequest struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Tier      string          `json:"tier"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// TierPriceResponse is one tier price as returned to callers
type TierPriceResponse struct {
	ID        uuid.UUID       `json:"id"`
	ItemID    uuid.UUID       `json:"item_id"`
	Tier      string          `json:"tier"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MonotonicityViolationResponse flags a pair of tiers whose prices are
// inverted relative to the hierarchy. Violations are reported, never
// corrected.
type MonotonicityViolationResponse struct {
	HigherTier  string          `json:"higher_tier"`
	HigherPrice decimal.Decimal `json:"higher_price"`
	LowerTier   string          `json:"lower_tier"`
	LowerPrice  decimal.Decimal `json:"lower_price"`
}

// TierPriceListResponse is the price list of one item together with any
// hierarchy violations
type TierPriceListResponse struct {
	ItemID     uuid.UUID                       `json:"item_id"`
	Prices     []TierPriceResponse             `json:"prices"`
	Violations []MonotonicityViolationResponse `json:"violations,omitempty"`
}

// CreateSpecialPriceRequest is the input for proposing a customer-specific
// price
type CreateSpecialPriceRequest struct {
	CustomerID  uuid.UUID       `json:"customer_id"`
	ItemID      uuid.UUID       `json:"item_id"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	RequestedBy uuid.UUID       `json:"requested_by"`
}

// EvaluateSpecialPriceRequest is the input for checking what a proposed
// special price would take, without persisting anything
type EvaluateSpecialPriceRequest struct {
	CustomerID uuid.UUID       `json:"customer_id"`
	ItemID     uuid.UUID       `json:"item_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// ApprovalDecisionResponse reports whether a proposed special price needs a
// manager's approval and why
type ApprovalDecisionResponse struct {
	RequiresApproval bool            `json:"requires_approval"`
	DeviationPct     decimal.Decimal `json:"deviation_pct"`
	Reason           string          `json:"reason,omitempty"`
}

// SpecialPriceResponse is a special price as returned to callers
type SpecialPriceResponse struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	ItemID       uuid.UUID       `json:"item_id"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Approved     bool            `json:"approved"`
	ApprovedBy   *uuid.UUID      `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	RequestedBy  uuid.UUID       `json:"requested_by"`
	DeviationPct decimal.Decimal `json:"deviation_pct"`
	Reason       string          `json:"reason,omitempty"`
}

// AssignCustomerTierRequest is the input for setting a customer's default
// tier for one brand
type AssignCustomerTierRequest struct {
	CustomerID uuid.UUID `json:"customer_id"`
	BrandID    uuid.UUID `json:"brand_id"`
	Tier       string    `json:"tier"`
}

// CustomerTierResponse is one customer-brand tier assignment
type CustomerTierResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	BrandID    uuid.UUID `json:"brand_id"`
	Tier       string    `json:"tier"`
}

// ToQuoteResponse converts a domain quote to a response DTO
func ToQuoteResponse(quote *pricing.Quote) QuoteResponse {
	return QuoteResponse{
		ItemID:        quote.ItemID,
		UnitPrice:     quote.UnitPrice,
		Source:        string(quote.Source),
		Tier:          string(quote.Tier),
		FellBackToSRP: quote.FellBackToSRP,
	}
}

// ToTierPriceResponse converts a domain tier price to a response DTO
func ToTierPriceResponse(price *pricing.TierPrice) TierPriceResponse {
	return TierPriceResponse{
		ID:        price.ID,
		ItemID:    price.ItemID,
		Tier:      string(price.Tier),
		UnitPrice: price.UnitPrice,
		UpdatedAt: price.UpdatedAt,
	}
}

// ToViolationResponses converts monotonicity violations to response DTOs
func ToViolationResponses(violations []pricing.MonotonicityViolation) []MonotonicityViolationResponse {
	if len(violations) == 0 {
		return nil
	}
	out := make([]MonotonicityViolationResponse, len(violations))
	for i, v := range violations {
		out[i] = MonotonicityViolationResponse{
			HigherTier:  string(v.HigherTier),
			HigherPrice: v.HigherPrice,
			LowerTier:   string(v.LowerTier),
			LowerPrice:  v.LowerPrice,
		}
	}
	return out
}

// ToSpecialPriceResponse converts a domain special price to a response DTO
func ToSpecialPriceResponse(sp *pricing.SpecialPrice) SpecialPriceResponse {
	return SpecialPriceResponse{
		ID:          sp.ID,
		CustomerID:  sp.CustomerID,
		ItemID:      sp.ItemID,
		UnitPrice:   sp.UnitPrice,
		Approved:    sp.Approved,
		ApprovedBy:  sp.ApprovedBy,
		ApprovedAt:  sp.ApprovedAt,
		RequestedBy: sp.RequestedBy,
	}
}

// ToCustomerTierResponse converts a domain tier assignment to a response DTO
func ToCustomerTierResponse(assignment *pricing.CustomerBrandTier) CustomerTierResponse {
	return CustomerTierResponse{
		ID:         assignment.ID,
		CustomerID: assignment.CustomerID,
		BrandID:    assignment.BrandID,
		Tier:       string(assignment.Tier),
	}
}
