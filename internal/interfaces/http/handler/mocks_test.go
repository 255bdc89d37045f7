package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stocktier/backend/internal/domain/inventory"
	"github.com/stocktier/backend/internal/domain/partner"
	"github.com/stocktier/backend/internal/domain/pricing"
	"github.com/stocktier/backend/internal/domain/shared"
	"github.com/stocktier/backend/internal/interfaces/http/dto"
	"github.com/stocktier/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterCustomValidations(); err != nil {
		panic(err)
	}
}

// newTestRouter wires a handler into a fresh engine under /api/v1
func newTestRouter(registrars ...router.RouteRegistrar) *gin.Engine {
	engine := gin.New()
	r := router.NewRouter(engine)
	for _, registrar := range registrars {
		r.Register(registrar)
	}
	r.Setup()
	return engine
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// Mock repositories backed by maps

type mockItemRepository struct {
	items map[uuid.UUID]*inventory.Item
}

func newMockItemRepository() *mockItemRepository {
	return &mockItemRepository{items: make(map[uuid.UUID]*inventory.Item)}
}

func (m *mockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	if item, ok := m.items[id]; ok {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	for _, item := range m.items {
		if item.SKU == sku {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockItemRepository) FindByBrand(ctx context.Context, brandID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	var out []inventory.Item
	for _, item := range m.items {
		if item.BrandID == brandID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	var out []inventory.Item
	for _, item := range m.items {
		out = append(out, *item)
	}
	return out, nil
}

func (m *mockItemRepository) FindBelowThreshold(ctx context.Context) ([]inventory.Item, error) {
	var out []inventory.Item
	for _, item := range m.items {
		if item.IsBelowThreshold() {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockItemRepository) CountByBrand(ctx context.Context, brandID uuid.UUID) (int64, error) {
	var n int64
	for _, item := range m.items {
		if item.BrandID == brandID {
			n++
		}
	}
	return n, nil
}

func (m *mockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(m.items)), nil
}

func (m *mockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepository) SaveWithLock(ctx context.Context, item *inventory.Item, expectedVersion int) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

type mockItemBatchRepository struct {
	batches map[uuid.UUID]*inventory.ItemBatch
}

func newMockItemBatchRepository() *mockItemBatchRepository {
	return &mockItemBatchRepository{batches: make(map[uuid.UUID]*inventory.ItemBatch)}
}

func (m *mockItemBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ItemBatch, error) {
	if batch, ok := m.batches[id]; ok {
		return batch, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockItemBatchRepository) FindActiveByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.ItemBatch, error) {
	var out []inventory.ItemBatch
	for _, batch := range m.batches {
		if batch.ItemID == itemID && batch.RemainingQuantity.IsPositive() {
			out = append(out, *batch)
		}
	}
	return out, nil
}

func (m *mockItemBatchRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.ItemBatch, error) {
	var out []inventory.ItemBatch
	for _, batch := range m.batches {
		if batch.ItemID == itemID {
			out = append(out, *batch)
		}
	}
	return out, nil
}

func (m *mockItemBatchRepository) Save(ctx context.Context, batch *inventory.ItemBatch) error {
	m.batches[batch.ID] = batch
	return nil
}

func (m *mockItemBatchRepository) SaveAll(ctx context.Context, batches []*inventory.ItemBatch) error {
	for _, batch := range batches {
		m.batches[batch.ID] = batch
	}
	return nil
}

func (m *mockItemBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.batches, id)
	return nil
}

type mockTransactionRepository struct {
	transactions map[uuid.UUID]*inventory.Transaction
	nextSeq      int
}

func newMockTransactionRepository() *mockTransactionRepository {
	return &mockTransactionRepository{
		transactions: make(map[uuid.UUID]*inventory.Transaction),
		nextSeq:      1,
	}
}

func (m *mockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Transaction, error) {
	if tx, ok := m.transactions[id]; ok {
		return tx, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockTransactionRepository) FindByReference(ctx context.Context, referenceNumber string) (*inventory.Transaction, error) {
	for _, tx := range m.transactions {
		if tx.ReferenceNumber == referenceNumber {
			return tx, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockTransactionRepository) FindByStatus(ctx context.Context, status inventory.TransactionStatus, filter shared.Filter) ([]inventory.Transaction, error) {
	var out []inventory.Transaction
	for _, tx := range m.transactions {
		if tx.Status == status {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (m *mockTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]inventory.Transaction, error) {
	var out []inventory.Transaction
	for _, tx := range m.transactions {
		if tx.CustomerID != nil && *tx.CustomerID == customerID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (m *mockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Transaction, error) {
	var out []inventory.Transaction
	for _, tx := range m.transactions {
		out = append(out, *tx)
	}
	return out, nil
}

func (m *mockTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(m.transactions)), nil
}

func (m *mockTransactionRepository) NextReferenceSequence(ctx context.Context, year int) (int, error) {
	seq := m.nextSeq
	m.nextSeq++
	return seq, nil
}

func (m *mockTransactionRepository) Save(ctx context.Context, tx *inventory.Transaction) error {
	m.transactions[tx.ID] = tx
	return nil
}

func (m *mockTransactionRepository) SaveWithLock(ctx context.Context, tx *inventory.Transaction, expectedVersion int) error {
	m.transactions[tx.ID] = tx
	return nil
}

func (m *mockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.transactions, id)
	return nil
}

type mockBrandRepository struct {
	brands map[uuid.UUID]*partner.Brand
}

func newMockBrandRepository() *mockBrandRepository {
	return &mockBrandRepository{brands: make(map[uuid.UUID]*partner.Brand)}
}

func (m *mockBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Brand, error) {
	if brand, ok := m.brands[id]; ok {
		return brand, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockBrandRepository) FindByCode(ctx context.Context, code int) (*partner.Brand, error) {
	for _, brand := range m.brands {
		if brand.Code == code {
			return brand, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Brand, error) {
	var out []partner.Brand
	for _, brand := range m.brands {
		out = append(out, *brand)
	}
	return out, nil
}

func (m *mockBrandRepository) NextCode(ctx context.Context) (int, error) {
	max := 0
	for _, brand := range m.brands {
		if brand.Code > max {
			max = brand.Code
		}
	}
	return max + 1, nil
}

func (m *mockBrandRepository) Save(ctx context.Context, brand *partner.Brand) error {
	m.brands[brand.ID] = brand
	return nil
}

func (m *mockBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.brands, id)
	return nil
}

type mockTierPriceRepository struct {
	prices map[uuid.UUID]*pricing.TierPrice
}

func newMockTierPriceRepository() *mockTierPriceRepository {
	return &mockTierPriceRepository{prices: make(map[uuid.UUID]*pricing.TierPrice)}
}

func (m *mockTierPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.TierPrice, error) {
	if price, ok := m.prices[id]; ok {
		return price, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockTierPriceRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]pricing.TierPrice, error) {
	var out []pricing.TierPrice
	for _, price := range m.prices {
		if price.ItemID == itemID {
			out = append(out, *price)
		}
	}
	return out, nil
}

func (m *mockTierPriceRepository) FindByItemAndTier(ctx context.Context, itemID uuid.UUID, tier pricing.Tier) (*pricing.TierPrice, error) {
	for _, price := range m.prices {
		if price.ItemID == itemID && price.Tier == tier {
			return price, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockTierPriceRepository) Save(ctx context.Context, price *pricing.TierPrice) error {
	m.prices[price.ID] = price
	return nil
}

func (m *mockTierPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.prices, id)
	return nil
}

type mockSpecialPriceRepository struct {
	prices map[uuid.UUID]*pricing.SpecialPrice
}

func newMockSpecialPriceRepository() *mockSpecialPriceRepository {
	return &mockSpecialPriceRepository{prices: make(map[uuid.UUID]*pricing.SpecialPrice)}
}

func (m *mockSpecialPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.SpecialPrice, error) {
	if price, ok := m.prices[id]; ok {
		return price, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockSpecialPriceRepository) FindByCustomerAndItem(ctx context.Context, customerID, itemID uuid.UUID) (*pricing.SpecialPrice, error) {
	for _, price := range m.prices {
		if price.CustomerID == customerID && price.ItemID == itemID {
			return price, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockSpecialPriceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]pricing.SpecialPrice, error) {
	var out []pricing.SpecialPrice
	for _, price := range m.prices {
		if price.CustomerID == customerID {
			out = append(out, *price)
		}
	}
	return out, nil
}

func (m *mockSpecialPriceRepository) FindPendingApproval(ctx context.Context, filter shared.Filter) ([]pricing.SpecialPrice, error) {
	var out []pricing.SpecialPrice
	for _, price := range m.prices {
		if !price.Approved {
			out = append(out, *price)
		}
	}
	return out, nil
}

func (m *mockSpecialPriceRepository) Save(ctx context.Context, price *pricing.SpecialPrice) error {
	m.prices[price.ID] = price
	return nil
}

func (m *mockSpecialPriceRepository) SaveWithLock(ctx context.Context, price *pricing.SpecialPrice, expectedVersion int) error {
	m.prices[price.ID] = price
	return nil
}

func (m *mockSpecialPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.prices, id)
	return nil
}

type mockCustomerTierRepository struct {
	assignments map[uuid.UUID]*pricing.CustomerBrandTier
}

func newMockCustomerTierRepository() *mockCustomerTierRepository {
	return &mockCustomerTierRepository{assignments: make(map[uuid.UUID]*pricing.CustomerBrandTier)}
}

func (m *mockCustomerTierRepository) FindByCustomerAndBrand(ctx context.Context, customerID, brandID uuid.UUID) (*pricing.CustomerBrandTier, error) {
	for _, a := range m.assignments {
		if a.CustomerID == customerID && a.BrandID == brandID {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockCustomerTierRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]pricing.CustomerBrandTier, error) {
	var out []pricing.CustomerBrandTier
	for _, a := range m.assignments {
		if a.CustomerID == customerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockCustomerTierRepository) Save(ctx context.Context, assignment *pricing.CustomerBrandTier) error {
	m.assignments[assignment.ID] = assignment
	return nil
}

func (m *mockCustomerTierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.assignments, id)
	return nil
}
