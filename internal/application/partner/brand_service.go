package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/partner"
	"github.com/stocktier/backend/internal/domain/shared"
)

// BrandService handles brand registration. Brand codes anchor SKU assignment
// and must stay unique.
type BrandService struct {
	brandRepo partner.BrandRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo partner.BrandRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo}
}

// CreateBrand registers a brand. A zero code requests automatic assignment
// of the next free code.
func (s *BrandService) CreateBrand(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	code := req.Code
	if code == 0 {
		next, err := s.brandRepo.NextCode(ctx)
		if err != nil {
			return nil, err
		}
		code = next
	}

	brand, err := partner.NewBrand(req.Name, code, partner.VATClassification(req.VATClassification))
	if err != nil {
		return nil, err
	}
	brand.Notes = req.Notes

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand)
	return &resp, nil
}

// GetBrand returns one brand by ID
func (s *BrandService) GetBrand(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand)
	return &resp, nil
}

// ListBrands returns brands matching the filter
func (s *BrandService) ListBrands(ctx context.Context, filter shared.Filter) ([]BrandResponse, error) {
	brands, err := s.brandRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]BrandResponse, len(brands))
	for i := range brands {
		out[i] = ToBrandResponse(&brands[i])
	}
	return out, nil
}
