package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceSource identifies where a resolved price came from.
type PriceSource string

const (
	PriceSourceTiered  PriceSource = "TIERED"
	PriceSourceSpecial PriceSource = "SPECIAL"
)

// Quote is the outcome of a price resolution.
type Quote struct {
	ItemID    uuid.UUID       `json:"item_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Source    PriceSource     `json:"source"`
	// Tier is the tier that supplied the price; empty for a special price.
	Tier Tier `json:"tier,omitempty"`
	// FellBackToSRP is set when the requested tier had no configured price
	// and the SRP price was used instead.
	FellBackToSRP bool `json:"fell_back_to_srp,omitempty"`
}

// PriceResolver determines the price an actor may charge for an item.
// It is a pure read-only service: all records are loaded by the caller.
type PriceResolver struct {
	hierarchy *Hierarchy
}

// NewPriceResolver creates a new PriceResolver
func NewPriceResolver(hierarchy *Hierarchy) *PriceResolver {
	return &PriceResolver{hierarchy: hierarchy}
}

// Resolve picks the effective price for an item.
//
// An approved special price always wins, regardless of the actor's tier.
// Otherwise the requested tier's price is used, falling back to SRP when the
// requested tier has no configured price. targetTier may be empty, in which
// case the cheapest-cost tier the actor may sell at that has a configured
// price is chosen. Missing pricing is a hard error, never a default.
func (r *PriceResolver) Resolve(itemID uuid.UUID, actorTier, targetTier Tier, tierPrices []TierPrice, special *SpecialPrice) (*Quote, error) {
	if !actorTier.IsValid() {
		return nil, NewInvalidTierError(string(actorTier))
	}
	if targetTier != "" {
		allowed, err := r.hierarchy.IsAllowed(actorTier, targetTier)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, NewTierNotAllowedError(actorTier, targetTier)
		}
	}

	if special != nil && special.Approved {
		return &Quote{
			ItemID:    itemID,
			UnitPrice: special.UnitPrice,
			Source:    PriceSourceSpecial,
		}, nil
	}

	byTier := make(map[Tier]decimal.Decimal, len(tierPrices))
	for _, p := range tierPrices {
		byTier[p.Tier] = p.UnitPrice
	}

	if targetTier != "" {
		if price, ok := byTier[targetTier]; ok {
			return &Quote{ItemID: itemID, UnitPrice: price, Source: PriceSourceTiered, Tier: targetTier}, nil
		}
		if price, ok := byTier[TierSRP]; ok {
			return &Quote{ItemID: itemID, UnitPrice: price, Source: PriceSourceTiered, Tier: TierSRP, FellBackToSRP: true}, nil
		}
		return nil, NewNoPricingConfiguredError(itemID)
	}

	allowed, err := r.hierarchy.AllowedTiers(actorTier)
	if err != nil {
		return nil, err
	}
	for _, t := range allowed {
		if price, ok := byTier[t]; ok {
			return &Quote{ItemID: itemID, UnitPrice: price, Source: PriceSourceTiered, Tier: t}, nil
		}
	}
	return nil, NewNoPricingConfiguredError(itemID)
}
