package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultDeviationThresholdPct is the percentage deviation from the current
// effective price beyond which a proposed special price needs approval.
var DefaultDeviationThresholdPct = decimal.NewFromInt(10)

// ApprovalDecision is the outcome of evaluating a proposed special price.
type ApprovalDecision struct {
	Required     bool            `json:"required"`
	DeviationPct decimal.Decimal `json:"deviation_pct"`
	Reason       string          `json:"reason,omitempty"`
}

// ApprovalPolicy decides whether a proposed customer price needs manager
// approval. It is a pure decision function; the approval itself is a state
// transition on SpecialPrice.
type ApprovalPolicy struct {
	thresholdPct decimal.Decimal
}

// NewApprovalPolicy creates a policy with the default deviation threshold.
func NewApprovalPolicy() *ApprovalPolicy {
	return &ApprovalPolicy{thresholdPct: DefaultDeviationThresholdPct}
}

// NewApprovalPolicyWithThreshold creates a policy with a custom threshold.
func NewApprovalPolicyWithThreshold(thresholdPct decimal.Decimal) *ApprovalPolicy {
	return &ApprovalPolicy{thresholdPct: thresholdPct}
}

// Evaluate compares a proposed price against the current effective price.
// currentPrice is nil when the item has no pricing configured at all; a nil
// or zero current price gives no baseline to deviate from, so approval is
// always required.
func (p *ApprovalPolicy) Evaluate(currentPrice *decimal.Decimal, proposedPrice decimal.Decimal) ApprovalDecision {
	if currentPrice == nil || currentPrice.IsZero() {
		return ApprovalDecision{
			Required:     true,
			DeviationPct: decimal.Zero,
			Reason:       "no current pricing exists; a new special price always requires approval",
		}
	}

	deviationPct := proposedPrice.Sub(*currentPrice).Abs().
		Div(*currentPrice).
		Mul(decimal.NewFromInt(100))

	switch {
	case deviationPct.GreaterThan(p.thresholdPct):
		return ApprovalDecision{
			Required:     true,
			DeviationPct: deviationPct,
			Reason: fmt.Sprintf("deviation %s%% exceeds the %s%% threshold",
				deviationPct.StringFixed(2), p.thresholdPct),
		}
	case proposedPrice.LessThan(*currentPrice):
		return ApprovalDecision{
			Required:     true,
			DeviationPct: deviationPct,
			Reason:       "proposed price is below the current effective price",
		}
	default:
		return ApprovalDecision{Required: false, DeviationPct: deviationPct}
	}
}
