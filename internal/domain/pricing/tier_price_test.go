package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTierPrice(t *testing.T) {
	t.Run("creates tier price", func(t *testing.T) {
		itemID := uuid.New()

		p, err := NewTierPrice(itemID, TierDD, decimal.NewFromInt(80))

		require.NoError(t, err)
		assert.Equal(t, itemID, p.ItemID)
		assert.Equal(t, TierDD, p.Tier)
	})

	t.Run("rejects unknown tier", func(t *testing.T) {
		_, err := NewTierPrice(uuid.New(), Tier("GOLD"), decimal.NewFromInt(80))

		require.Error(t, err)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		_, err := NewTierPrice(uuid.New(), TierDD, decimal.NewFromInt(-5))

		require.Error(t, err)
	})
}

func TestCheckMonotonicity(t *testing.T) {
	h := NewHierarchy()
	itemID := uuid.New()

	t.Run("well-ordered prices pass", func(t *testing.T) {
		prices := []TierPrice{
			mustTierPrice(t, itemID, TierRD, 100),
			mustTierPrice(t, itemID, TierDD, 80),
			mustTierPrice(t, itemID, TierSRP, 60),
		}

		assert.Empty(t, CheckMonotonicity(h, prices))
	})

	t.Run("flags a cheaper tier priced above a more expensive one", func(t *testing.T) {
		prices := []TierPrice{
			mustTierPrice(t, itemID, TierRD, 90),
			mustTierPrice(t, itemID, TierDD, 80),
			mustTierPrice(t, itemID, TierSRP, 100),
		}

		violations := CheckMonotonicity(h, prices)

		require.Len(t, violations, 1)
		assert.Equal(t, TierDD, violations[0].HigherTier)
		assert.Equal(t, TierSRP, violations[0].LowerTier)
	})

	t.Run("skips unconfigured tiers", func(t *testing.T) {
		prices := []TierPrice{
			mustTierPrice(t, itemID, TierRD, 100),
			mustTierPrice(t, itemID, TierSubRS, 70),
		}

		assert.Empty(t, CheckMonotonicity(h, prices))
	})

	t.Run("equal adjacent prices are allowed", func(t *testing.T) {
		prices := []TierPrice{
			mustTierPrice(t, itemID, TierRS, 90),
			mustTierPrice(t, itemID, TierSubRS, 90),
		}

		assert.Empty(t, CheckMonotonicity(h, prices))
	})
}
