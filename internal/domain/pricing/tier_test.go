package pricing

import (
	"testing"

	"github.com/stocktier/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTier_Level(t *testing.T) {
	tests := []struct {
		tier  Tier
		level int
	}{
		{TierRD, 0},
		{TierPD, 1},
		{TierDD, 2},
		{TierCD, 3},
		{TierRS, 4},
		{TierSubRS, 5},
		{TierSRP, 6},
		{Tier("WHOLESALE"), -1},
		{Tier(""), -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			assert.Equal(t, tt.level, tt.tier.Level())
		})
	}
}

func TestParseTier(t *testing.T) {
	t.Run("parses every known tier", func(t *testing.T) {
		for _, s := range []string{"RD", "PD", "DD", "CD", "RS", "SUB-RS", "SRP"} {
			tier, err := ParseTier(s)
			require.NoError(t, err)
			assert.Equal(t, s, tier.String())
		}
	})

	t.Run("rejects unknown tier", func(t *testing.T) {
		_, err := ParseTier("rd")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidTier, domainErr.Code)
		assert.Equal(t, "rd", domainErr.Details["tier"])
	})
}

func TestHierarchy_AllowedTiers(t *testing.T) {
	h := NewHierarchy()

	tests := []struct {
		actor   Tier
		allowed []Tier
	}{
		{TierRD, []Tier{TierPD, TierDD, TierCD, TierRS, TierSubRS, TierSRP}},
		{TierPD, []Tier{TierDD, TierCD, TierRS, TierSubRS, TierSRP}},
		{TierRS, []Tier{TierSubRS, TierSRP}},
		{TierSubRS, []Tier{TierSRP}},
		{TierSRP, []Tier{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.actor), func(t *testing.T) {
			allowed, err := h.AllowedTiers(tt.actor)

			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}

	t.Run("rejects unknown actor tier", func(t *testing.T) {
		_, err := h.AllowedTiers(Tier("DEALER"))

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidTier, domainErr.Code)
	})
}

func TestHierarchy_IsAllowed(t *testing.T) {
	h := NewHierarchy()

	t.Run("allows strictly lower tiers only", func(t *testing.T) {
		allowed, err := h.IsAllowed(TierPD, TierDD)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = h.IsAllowed(TierPD, TierSRP)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("rejects the actor's own tier", func(t *testing.T) {
		allowed, err := h.IsAllowed(TierPD, TierPD)

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("rejects tiers above the actor", func(t *testing.T) {
		allowed, err := h.IsAllowed(TierDD, TierRD)

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("errors on unknown target tier", func(t *testing.T) {
		_, err := h.IsAllowed(TierPD, Tier("VIP"))

		require.Error(t, err)
	})
}

func TestHierarchy_Tiers(t *testing.T) {
	h := NewHierarchy()

	tiers := h.Tiers()

	require.Len(t, tiers, 7)
	assert.Equal(t, TierRD, tiers[0])
	assert.Equal(t, TierSRP, tiers[6])
	for i := 1; i < len(tiers); i++ {
		assert.Greater(t, tiers[i].Level(), tiers[i-1].Level())
	}
}
