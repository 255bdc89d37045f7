package pricing

import (
	"fmt"

	"github.com/stocktier/backend/internal/domain/shared"
)

// Tier represents a rung in the distributor pricing hierarchy.
// Lower level means higher cost tier; SRP is the retail ceiling.
type Tier string

const (
	TierRD    Tier = "RD"     // Regional Distributor
	TierPD    Tier = "PD"     // Provincial Distributor
	TierDD    Tier = "DD"     // District Distributor
	TierCD    Tier = "CD"     // City Distributor
	TierRS    Tier = "RS"     // Reseller
	TierSubRS Tier = "SUB-RS" // Sub-Reseller
	TierSRP   Tier = "SRP"    // Suggested Retail Price
)

// tierLevels defines the strict total order of the hierarchy.
var tierLevels = map[Tier]int{
	TierRD:    0,
	TierPD:    1,
	TierDD:    2,
	TierCD:    3,
	TierRS:    4,
	TierSubRS: 5,
	TierSRP:   6,
}

// Level returns the tier's position in the hierarchy, or -1 for an unknown tier.
func (t Tier) Level() int {
	level, ok := tierLevels[t]
	if !ok {
		return -1
	}
	return level
}

// IsValid reports whether the tier is part of the hierarchy.
func (t Tier) IsValid() bool {
	_, ok := tierLevels[t]
	return ok
}

func (t Tier) String() string {
	return string(t)
}

// ParseTier converts a string into a Tier, rejecting unknown values.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", NewInvalidTierError(s)
	}
	return t, nil
}

// Hierarchy is the immutable ordered table of pricing tiers. It is built once
// at startup and injected into the services that consult it.
type Hierarchy struct {
	ordered []Tier
}

// NewHierarchy creates the hierarchy in its canonical cost order.
func NewHierarchy() *Hierarchy {
	ordered := make([]Tier, len(tierLevels))
	for tier, level := range tierLevels {
		ordered[level] = tier
	}
	return &Hierarchy{ordered: ordered}
}

// Tiers returns all tiers from the most expensive cost tier down to SRP.
func (h *Hierarchy) Tiers() []Tier {
	out := make([]Tier, len(h.ordered))
	copy(out, h.ordered)
	return out
}

// AllowedTiers returns the tiers an actor may sell at: exactly the tiers with
// a level strictly greater than the actor's own cost tier, in ascending order.
func (h *Hierarchy) AllowedTiers(actorTier Tier) ([]Tier, error) {
	level := actorTier.Level()
	if level < 0 {
		return nil, NewInvalidTierError(string(actorTier))
	}
	allowed := make([]Tier, 0, len(h.ordered)-level-1)
	for _, t := range h.ordered[level+1:] {
		allowed = append(allowed, t)
	}
	return allowed, nil
}

// IsAllowed reports whether an actor at actorTier may sell at targetTier.
func (h *Hierarchy) IsAllowed(actorTier, targetTier Tier) (bool, error) {
	actorLevel := actorTier.Level()
	if actorLevel < 0 {
		return false, NewInvalidTierError(string(actorTier))
	}
	targetLevel := targetTier.Level()
	if targetLevel < 0 {
		return false, NewInvalidTierError(string(targetTier))
	}
	return targetLevel > actorLevel, nil
}

// NewInvalidTierError creates an error for a tier outside the hierarchy.
func NewInvalidTierError(tier string) *shared.DomainError {
	return &shared.DomainError{
		Code:    shared.CodeInvalidTier,
		Message: fmt.Sprintf("Tier %q is not part of the pricing hierarchy", tier),
		Details: map[string]interface{}{"tier": tier},
	}
}
