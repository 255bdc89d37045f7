package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/shared"
)

// NewTierNotAllowedError creates an error for an actor requesting a tier at or
// above their own cost tier.
func NewTierNotAllowedError(actorTier, targetTier Tier) *shared.DomainError {
	return &shared.DomainError{
		Code: shared.CodeTierNotAllowed,
		Message: fmt.Sprintf("Actor at tier %s may not sell at tier %s: target tier must be strictly below the actor's cost tier",
			actorTier, targetTier),
		Details: map[string]interface{}{
			"actor_tier":  string(actorTier),
			"target_tier": string(targetTier),
		},
	}
}

// NewNoPricingConfiguredError creates an error for an item with neither an
// approved special price nor any tier price. Missing pricing is a hard error,
// never substituted with a default.
func NewNoPricingConfiguredError(itemID uuid.UUID) *shared.DomainError {
	return &shared.DomainError{
		Code:    shared.CodeNoPricingConfigured,
		Message: fmt.Sprintf("No pricing configured for item %s", itemID),
		Details: map[string]interface{}{"item_id": itemID.String()},
	}
}
