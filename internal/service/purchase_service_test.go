package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teapos/internal/dto"
	"teapos/internal/model"
	"teapos/internal/service"
)

type purchaseFixture struct {
	svc       service.PurchaseService
	purchases *stubPurchaseRepo
	suppliers *stubSupplierRepo
	items     *stubItemRepo
	stock     *stubStockRepo
	cashbook  *stubCashbookRepo
	shopID    uuid.UUID
	teaLeaves uuid.UUID // tracked, stock 5
	cups      uuid.UUID // untracked consumable
}

func buildPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()
	f := &purchaseFixture{
		purchases: newStubPurchaseRepo(),
		suppliers: newStubSupplierRepo(),
		items:     newStubItemRepo(),
		stock:     &stubStockRepo{},
		cashbook:  &stubCashbookRepo{},
		shopID:    uuid.New(),
	}
	ctx := context.Background()

	leaves := &model.Item{Name: "Assam Leaves", Price: decimal.NewFromInt(50), StockQty: 5, TrackStock: true, Active: true}
	require.NoError(t, f.items.Create(ctx, leaves))
	f.teaLeaves = leaves.ID

	cups := &model.Item{Name: "Paper Cups", Price: decimal.NewFromInt(2), Active: true}
	require.NoError(t, f.items.Create(ctx, cups))
	f.cups = cups.ID

	f.svc = service.NewPurchaseService(f.purchases, f.suppliers, f.items, f.stock, f.cashbook, nil)
	return f
}

func TestCreatePurchaseMovesStockAndCash(t *testing.T) {
	f := buildPurchaseFixture(t)

	sup, err := f.svc.CreateSupplier(context.Background(), dto.CreateSupplierRequest{Name: "Darjeeling Traders"})
	require.NoError(t, err)

	resp, err := f.svc.Create(context.Background(), dto.CreatePurchaseRequest{
		ShopID:     f.shopID.String(),
		SupplierID: &sup.ID,
		Note:       "weekly restock",
		Items: []dto.PurchaseLineRequest{
			{ItemID: f.teaLeaves.String(), Quantity: 10, UnitCost: decimal.NewFromInt(30)},
			{ItemID: f.cups.String(), Quantity: 100, UnitCost: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(400)), "10×30 + 100×1")
	require.Len(t, resp.Items, 2)

	// Only the tracked line moves stock, and it moves in.
	require.Len(t, f.stock.movements, 1)
	mov := f.stock.movements[0]
	assert.Equal(t, f.teaLeaves, mov.ItemID)
	assert.Equal(t, "purchase", mov.Type)
	assert.Equal(t, 10, mov.Quantity)
	assert.Equal(t, 5, mov.StockBefore)
	assert.Equal(t, 15, mov.StockAfter)

	it, _ := f.items.FindByID(context.Background(), f.teaLeaves)
	assert.Equal(t, 15, it.StockQty)

	// One OUT PURCHASE entry for the invoice total.
	require.Len(t, f.cashbook.entries, 1)
	entry := f.cashbook.entries[0]
	assert.Equal(t, model.CashOut, entry.Direction)
	assert.Equal(t, model.CategoryPurchase, entry.Category)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(400)))
	assert.Contains(t, entry.Description, "weekly restock")
}

func TestCreatePurchaseUnknownSupplierRejected(t *testing.T) {
	f := buildPurchaseFixture(t)
	ghost := uuid.New().String()

	_, err := f.svc.Create(context.Background(), dto.CreatePurchaseRequest{
		ShopID:     f.shopID.String(),
		SupplierID: &ghost,
		Items:      []dto.PurchaseLineRequest{{ItemID: f.cups.String(), Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
	})
	assert.ErrorContains(t, err, "supplier not found")
	assert.Empty(t, f.cashbook.entries)
}

func TestCreatePurchaseUnknownItemRejected(t *testing.T) {
	f := buildPurchaseFixture(t)

	_, err := f.svc.Create(context.Background(), dto.CreatePurchaseRequest{
		ShopID: f.shopID.String(),
		Items:  []dto.PurchaseLineRequest{{ItemID: uuid.New().String(), Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
	})
	assert.ErrorContains(t, err, "not found")
	assert.Empty(t, f.stock.movements)
}

func TestDeactivateSupplier(t *testing.T) {
	f := buildPurchaseFixture(t)

	sup, err := f.svc.CreateSupplier(context.Background(), dto.CreateSupplierRequest{Name: "Darjeeling Traders"})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeactivateSupplier(context.Background(), mustID(t, sup.ID)))

	suppliers, err := f.svc.ListSuppliers(context.Background())
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.False(t, suppliers[0].Active)
}
