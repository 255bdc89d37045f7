package partner

import (
	"fmt"
	"strings"

	"github.com/stocktier/backend/internal/domain/shared"
)

// VATClassification describes how a brand's items are invoiced
type VATClassification string

const (
	VATClassificationVAT    VATClassification = "VAT"
	VATClassificationNonVAT VATClassification = "NON_VAT"
	VATClassificationBoth   VATClassification = "BOTH"
)

// skuPrefixBase offsets brand codes so every SKU prefix is three digits
const skuPrefixBase = 100

// Brand groups items under one supplier label. Each brand owns a numeric
// code used as the SKU prefix of its items.
type Brand struct {
	shared.BaseAggregateRoot
	Name              string            `gorm:"type:varchar(200);not null;uniqueIndex"`
	Code              int               `gorm:"not null;uniqueIndex"`
	VATClassification VATClassification `gorm:"type:varchar(20);not null;default:'VAT'"`
	Notes             string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a new brand
func NewBrand(name string, code int, classification VATClassification) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "name",
			"reason": "brand name is required",
		})
	}
	if code <= 0 {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "code",
			"reason": "brand code must be positive",
		})
	}
	switch classification {
	case VATClassificationVAT, VATClassificationNonVAT, VATClassificationBoth:
	case "":
		classification = VATClassificationVAT
	default:
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "vat_classification",
			"reason": fmt.Sprintf("unknown VAT classification %q", classification),
		})
	}
	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		VATClassification: classification,
	}, nil
}

// FormatSKU builds the SKU for the brand's nth item, e.g. brand code 5 and
// sequence 12 yields "105-012".
func (b *Brand) FormatSKU(sequence int) string {
	return fmt.Sprintf("%d-%03d", b.Code+skuPrefixBase, sequence)
}

// ChargesVAT reports whether the brand's items carry VAT on dispatch
func (b *Brand) ChargesVAT() bool {
	return b.VATClassification == VATClassificationVAT || b.VATClassification == VATClassificationBoth
}
