package pricing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/inventory"
	"github.com/stocktier/backend/internal/domain/pricing"
	"github.com/stocktier/backend/internal/domain/shared"
)

// PricingService coordinates tier price maintenance, price resolution, and
// the special-price approval workflow.
type PricingService struct {
	tierPriceRepo    pricing.TierPriceRepository
	specialPriceRepo pricing.SpecialPriceRepository
	customerTierRepo pricing.CustomerBrandTierRepository
	itemRepo         inventory.ItemRepository
	hierarchy        *pricing.Hierarchy
	resolver         *pricing.PriceResolver
	policy           *pricing.ApprovalPolicy
	eventPublisher   shared.EventPublisher
}

// NewPricingService creates a new PricingService
func NewPricingService(
	tierPriceRepo pricing.TierPriceRepository,
	specialPriceRepo pricing.SpecialPriceRepository,
	customerTierRepo pricing.CustomerBrandTierRepository,
	itemRepo inventory.ItemRepository,
) *PricingService {
	hierarchy := pricing.NewHierarchy()
	return &PricingService{
		tierPriceRepo:    tierPriceRepo,
		specialPriceRepo: specialPriceRepo,
		customerTierRepo: customerTierRepo,
		itemRepo:         itemRepo,
		hierarchy:        hierarchy,
		resolver:         pricing.NewPriceResolver(hierarchy),
		policy:           pricing.NewApprovalPolicy(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PricingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ResolvePrice returns the effective unit price of an item for the actor.
// An approved special price for the customer wins over everything else; a
// requested tier without a configured price falls back to SRP; an item with
// no applicable pricing is a hard error, never a silent default.
func (s *PricingService) ResolvePrice(ctx context.Context, req ResolvePriceRequest) (*QuoteResponse, error) {
	actorTier, err := pricing.ParseTier(req.ActorTier)
	if err != nil {
		return nil, err
	}

	var targetTier pricing.Tier
	if req.TargetTier != "" {
		targetTier, err = pricing.ParseTier(req.TargetTier)
		if err != nil {
			return nil, err
		}
	} else if req.CustomerID != nil {
		targetTier, err = s.defaultTierFor(ctx, *req.CustomerID, req.ItemID)
		if err != nil {
			return nil, err
		}
	}

	tierPrices, err := s.tierPriceRepo.FindByItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	var special *pricing.SpecialPrice
	if req.CustomerID != nil {
		special, err = s.specialPriceRepo.FindByCustomerAndItem(ctx, *req.CustomerID, req.ItemID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	quote, err := s.resolver.Resolve(req.ItemID, actorTier, targetTier, tierPrices, special)
	if err != nil {
		return nil, err
	}

	resp := ToQuoteResponse(quote)
	return &resp, nil
}

// SetTierPrice creates or updates the price of one (item, tier) pair and
// returns the item's full price list, re-checked for hierarchy violations.
func (s *PricingService) SetTierPrice(ctx context.Context, req SetTierPriceRequest) (*TierPriceListResponse, error) {
	tier, err := pricing.ParseTier(req.Tier)
	if err != nil {
		return nil, err
	}
	if _, err := s.itemRepo.FindByID(ctx, req.ItemID); err != nil {
		return nil, err
	}

	existing, err := s.tierPriceRepo.FindByItemAndTier(ctx, req.ItemID, tier)
	switch {
	case err == nil:
		if err := existing.UpdatePrice(req.UnitPrice); err != nil {
			return nil, err
		}
		if err := s.tierPriceRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		price, err := pricing.NewTierPrice(req.ItemID, tier, req.UnitPrice)
		if err != nil {
			return nil, err
		}
		if err := s.tierPriceRepo.Save(ctx, price); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.ListTierPrices(ctx, req.ItemID)
}

// ListTierPrices returns the configured prices of an item with any
// monotonicity violations flagged.
func (s *PricingService) ListTierPrices(ctx context.Context, itemID uuid.UUID) (*TierPriceListResponse, error) {
	prices, err := s.tierPriceRepo.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	out := make([]TierPriceResponse, len(prices))
	for i := range prices {
		out[i] = ToTierPriceResponse(&prices[i])
	}
	return &TierPriceListResponse{
		ItemID:     itemID,
		Prices:     out,
		Violations: ToViolationResponses(pricing.CheckMonotonicity(s.hierarchy, prices)),
	}, nil
}

// DeleteTierPrice removes one tier price
func (s *PricingService) DeleteTierPrice(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tierPriceRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.tierPriceRepo.Delete(ctx, id)
}

// CreateSpecialPrice proposes a customer-specific price. The approval policy
// compares it against the customer's current effective price; a proposal the
// policy waves through is approved immediately, everything else stays
// unapproved until a manager decides.
func (s *PricingService) CreateSpecialPrice(ctx context.Context, req CreateSpecialPriceRequest) (*SpecialPriceResponse, error) {
	if existing, err := s.specialPriceRepo.FindByCustomerAndItem(ctx, req.CustomerID, req.ItemID); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists.WithDetails(map[string]interface{}{
			"customer_id": req.CustomerID.String(),
			"item_id":     req.ItemID.String(),
		})
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	decision, err := s.evaluateProposal(ctx, req.CustomerID, req.ItemID, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	sp, err := pricing.NewSpecialPrice(req.CustomerID, req.ItemID, req.RequestedBy, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if !decision.Required {
		if err := sp.Approve(req.RequestedBy); err != nil {
			return nil, err
		}
	}
	if err := s.specialPriceRepo.Save(ctx, sp); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, sp.GetDomainEvents())
	sp.ClearDomainEvents()

	resp := ToSpecialPriceResponse(sp)
	resp.DeviationPct = decision.DeviationPct
	resp.Reason = decision.Reason
	return &resp, nil
}

// ApproveSpecialPrice makes a proposed price effective for resolution
func (s *PricingService) ApproveSpecialPrice(ctx context.Context, id, approverID uuid.UUID) (*SpecialPriceResponse, error) {
	sp, err := s.specialPriceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	expected := sp.GetVersion()
	if err := sp.Approve(approverID); err != nil {
		return nil, err
	}
	if err := s.specialPriceRepo.SaveWithLock(ctx, sp, expected); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, sp.GetDomainEvents())
	sp.ClearDomainEvents()

	resp := ToSpecialPriceResponse(sp)
	return &resp, nil
}

// RejectSpecialPrice discards an unapproved proposal. An approved price can
// no longer be rejected.
func (s *PricingService) RejectSpecialPrice(ctx context.Context, id uuid.UUID) error {
	sp, err := s.specialPriceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := sp.Reject(); err != nil {
		return err
	}
	return s.specialPriceRepo.Delete(ctx, id)
}

// ListPendingApprovals returns special prices awaiting a manager decision
func (s *PricingService) ListPendingApprovals(ctx context.Context, filter shared.Filter) ([]SpecialPriceResponse, error) {
	pending, err := s.specialPriceRepo.FindPendingApproval(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]SpecialPriceResponse, len(pending))
	for i := range pending {
		out[i] = ToSpecialPriceResponse(&pending[i])
	}
	return out, nil
}

// AssignCustomerTier sets or changes the customer's default tier for a brand
func (s *PricingService) AssignCustomerTier(ctx context.Context, req AssignCustomerTierRequest) (*CustomerTierResponse, error) {
	tier, err := pricing.ParseTier(req.Tier)
	if err != nil {
		return nil, err
	}

	assignment, err := s.customerTierRepo.FindByCustomerAndBrand(ctx, req.CustomerID, req.BrandID)
	switch {
	case err == nil:
		if err := assignment.ChangeTier(tier); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		assignment, err = pricing.NewCustomerBrandTier(req.CustomerID, req.BrandID, tier)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	if err := s.customerTierRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	resp := ToCustomerTierResponse(assignment)
	return &resp, nil
}

// GetCustomerTiers returns a customer's tier assignments across brands
func (s *PricingService) GetCustomerTiers(ctx context.Context, customerID uuid.UUID) ([]CustomerTierResponse, error) {
	assignments, err := s.customerTierRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerTierResponse, len(assignments))
	for i := range assignments {
		out[i] = ToCustomerTierResponse(&assignments[i])
	}
	return out, nil
}

// EvaluateSpecialPrice reports whether a proposed special price would need
// approval, without creating the proposal. Sales tooling calls this before
// quoting a discount to a customer.
func (s *PricingService) EvaluateSpecialPrice(ctx context.Context, req EvaluateSpecialPriceRequest) (*ApprovalDecisionResponse, error) {
	decision, err := s.evaluateProposal(ctx, req.CustomerID, req.ItemID, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	return &ApprovalDecisionResponse{
		RequiresApproval: decision.Required,
		DeviationPct:     decision.DeviationPct,
		Reason:           decision.Reason,
	}, nil
}

// evaluateProposal computes the approval decision for a proposed special
// price against the customer's current effective price. An item with no
// pricing at all yields a nil current price, which always requires approval.
func (s *PricingService) evaluateProposal(ctx context.Context, customerID, itemID uuid.UUID, proposed decimal.Decimal) (pricing.ApprovalDecision, error) {
	targetTier, err := s.defaultTierFor(ctx, customerID, itemID)
	if err != nil {
		return pricing.ApprovalDecision{}, err
	}

	tierPrices, err := s.tierPriceRepo.FindByItem(ctx, itemID)
	if err != nil {
		return pricing.ApprovalDecision{}, err
	}

	// Resolve as a distributor so every configured tier is visible.
	quote, err := s.resolver.Resolve(itemID, pricing.TierRD, targetTier, tierPrices, nil)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.CodeNoPricingConfigured {
			return s.policy.Evaluate(nil, proposed), nil
		}
		return pricing.ApprovalDecision{}, err
	}
	return s.policy.Evaluate(&quote.UnitPrice, proposed), nil
}

// defaultTierFor looks up the customer's assigned tier for the item's brand.
// No assignment means no default; the empty tier lets the resolver pick.
func (s *PricingService) defaultTierFor(ctx context.Context, customerID, itemID uuid.UUID) (pricing.Tier, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return "", err
	}
	assignment, err := s.customerTierRepo.FindByCustomerAndBrand(ctx, customerID, item.BrandID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return assignment.Tier, nil
}

func (s *PricingService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Publish events (errors are logged by the event bus, not propagated)
	_ = s.eventPublisher.Publish(ctx, events...)
}
