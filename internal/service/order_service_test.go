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

type orderFixture struct {
	svc       service.OrderService
	orders    *stubOrderRepo
	items     *stubItemRepo
	stock     *stubStockRepo
	cashbook  *stubCashbookRepo
	shopID    uuid.UUID
	userID    uuid.UUID
	masala    uuid.UUID // tracked, stock 10, price 20
	greenTea  uuid.UUID // made to order, untracked, price 15
	inactive  uuid.UUID
}

func buildOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		orders:   newStubOrderRepo(),
		items:    newStubItemRepo(),
		stock:    &stubStockRepo{},
		cashbook: &stubCashbookRepo{},
		shopID:   uuid.New(),
		userID:   uuid.New(),
	}
	ctx := context.Background()

	masala := &model.Item{Name: "Masala Chai", Price: decimal.NewFromInt(20), StockQty: 10, TrackStock: true, Active: true}
	require.NoError(t, f.items.Create(ctx, masala))
	f.masala = masala.ID

	green := &model.Item{Name: "Green Tea", Price: decimal.NewFromInt(15), TrackStock: false, Active: true}
	require.NoError(t, f.items.Create(ctx, green))
	f.greenTea = green.ID

	old := &model.Item{Name: "Discontinued Blend", Price: decimal.NewFromInt(30), Active: false}
	require.NoError(t, f.items.Create(ctx, old))
	f.inactive = old.ID

	f.svc = service.NewOrderService(f.orders, f.items, f.stock, f.cashbook, nil)
	return f
}

func (f *orderFixture) openOrder(t *testing.T, lines ...dto.OrderLineRequest) *dto.OrderResponse {
	t.Helper()
	resp, err := f.svc.Open(context.Background(), f.userID, dto.OpenOrderRequest{
		ShopID: f.shopID.String(),
		Items:  lines,
	})
	require.NoError(t, err)
	return resp
}

func TestOpenOrderSnapshotsPrices(t *testing.T) {
	f := buildOrderFixture(t)

	resp := f.openOrder(t,
		dto.OrderLineRequest{ItemID: f.masala.String(), Quantity: 2},
		dto.OrderLineRequest{ItemID: f.greenTea.String(), Quantity: 1},
	)

	assert.Equal(t, model.OrderOpen, resp.Status)
	assert.Equal(t, 1, resp.OrderNumber)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(55)), "2×20 + 1×15")
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Masala Chai", resp.Items[0].ItemName)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(20)))

	// Opening a tab moves no money and no stock.
	assert.Empty(t, f.cashbook.entries)
	assert.Empty(t, f.stock.movements)
	it, _ := f.items.FindByID(context.Background(), f.masala)
	assert.Equal(t, 10, it.StockQty)
}

func TestOpenOrderRejectsInactiveItem(t *testing.T) {
	f := buildOrderFixture(t)

	_, err := f.svc.Open(context.Background(), f.userID, dto.OpenOrderRequest{
		ShopID: f.shopID.String(),
		Items:  []dto.OrderLineRequest{{ItemID: f.inactive.String(), Quantity: 1}},
	})
	assert.ErrorContains(t, err, "inactive")
}

func TestAddItemsRecalculatesTotal(t *testing.T) {
	f := buildOrderFixture(t)
	resp := f.openOrder(t, dto.OrderLineRequest{ItemID: f.masala.String(), Quantity: 1})

	id := uuid.MustParse(resp.ID)
	updated, err := f.svc.AddItems(context.Background(), id, dto.AddOrderItemsRequest{
		Items: []dto.OrderLineRequest{{ItemID: f.greenTea.String(), Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(50)), "20 + 2×15")
	assert.Len(t, updated.Items, 2)
}

func TestCloseOrderWritesLedgerAndStock(t *testing.T) {
	f := buildOrderFixture(t)
	resp := f.openOrder(t,
		dto.OrderLineRequest{ItemID: f.masala.String(), Quantity: 3},
		dto.OrderLineRequest{ItemID: f.greenTea.String(), Quantity: 1},
	)
	id := uuid.MustParse(resp.ID)

	closed, err := f.svc.Close(context.Background(), id, dto.CloseOrderRequest{PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.Equal(t, model.OrderClosed, closed.Status)
	require.NotNil(t, closed.PaymentMethod)
	assert.Equal(t, "cash", *closed.PaymentMethod)
	assert.NotNil(t, closed.ClosedAt)

	// Exactly one IN SALES entry for the full total.
	require.Len(t, f.cashbook.entries, 1)
	entry := f.cashbook.entries[0]
	assert.Equal(t, model.CashIn, entry.Direction)
	assert.Equal(t, model.CategorySales, entry.Category)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(75)), "3×20 + 1×15")
	require.NotNil(t, entry.ReferenceID)
	assert.Equal(t, id, *entry.ReferenceID)

	// Only the tracked line moves stock.
	require.Len(t, f.stock.movements, 1)
	mov := f.stock.movements[0]
	assert.Equal(t, f.masala, mov.ItemID)
	assert.Equal(t, "sale", mov.Type)
	assert.Equal(t, -3, mov.Quantity)
	assert.Equal(t, 10, mov.StockBefore)
	assert.Equal(t, 7, mov.StockAfter)

	it, _ := f.items.FindByID(context.Background(), f.masala)
	assert.Equal(t, 7, it.StockQty)
}

func TestCloseEmptyOrderRejected(t *testing.T) {
	f := buildOrderFixture(t)
	resp := f.openOrder(t)

	_, err := f.svc.Close(context.Background(), uuid.MustParse(resp.ID), dto.CloseOrderRequest{PaymentMethod: "cash"})
	assert.ErrorContains(t, err, "empty order")
	assert.Empty(t, f.cashbook.entries)
}

func TestCloseTwiceRejected(t *testing.T) {
	f := buildOrderFixture(t)
	resp := f.openOrder(t, dto.OrderLineRequest{ItemID: f.masala.String(), Quantity: 1})
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Close(context.Background(), id, dto.CloseOrderRequest{PaymentMethod: "cash"})
	require.NoError(t, err)

	_, err = f.svc.Close(context.Background(), id, dto.CloseOrderRequest{PaymentMethod: "card"})
	assert.ErrorContains(t, err, "already CLOSED")
	assert.Len(t, f.cashbook.entries, 1, "no second ledger entry")
}

func TestCancelOpenOrderMovesNothing(t *testing.T) {
	f := buildOrderFixture(t)
	resp := f.openOrder(t, dto.OrderLineRequest{ItemID: f.masala.String(), Quantity: 2})
	id := uuid.MustParse(resp.ID)

	err := f.svc.Cancel(context.Background(), id, dto.CancelOrderRequest{Reason: "customer left"})
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, got.Status)
	assert.Empty(t, f.cashbook.entries)
	assert.Empty(t, f.stock.movements)
}

func TestCancelClosedOrderCompensates(t *testing.T) {
	f := buildOrderFixture(t)
	resp := f.openOrder(t,
		dto.OrderLineRequest{ItemID: f.masala.String(), Quantity: 2},
		dto.OrderLineRequest{ItemID: f.greenTea.String(), Quantity: 1},
	)
	id := uuid.MustParse(resp.ID)
	_, err := f.svc.Close(context.Background(), id, dto.CloseOrderRequest{PaymentMethod: "upi"})
	require.NoError(t, err)

	err = f.svc.Cancel(context.Background(), id, dto.CancelOrderRequest{Reason: "wrong table"})
	require.NoError(t, err)

	// Ledger is append-only: the sale entry stays, an inverse OUT lands.
	require.Len(t, f.cashbook.entries, 2)
	inverse := f.cashbook.entries[1]
	assert.Equal(t, model.CashOut, inverse.Direction)
	assert.Equal(t, model.CategorySales, inverse.Category)
	assert.True(t, inverse.Amount.Equal(decimal.NewFromInt(55)))
	assert.Contains(t, inverse.Description, "wrong table")

	// Stock restored via a restore movement, not by editing the sale one.
	require.Len(t, f.stock.movements, 2)
	restore := f.stock.movements[1]
	assert.Equal(t, "restore_cancel", restore.Type)
	assert.Equal(t, 2, restore.Quantity)

	it, _ := f.items.FindByID(context.Background(), f.masala)
	assert.Equal(t, 10, it.StockQty)
}

func TestCancelCancelledOrderRejected(t *testing.T) {
	f := buildOrderFixture(t)
	resp := f.openOrder(t, dto.OrderLineRequest{ItemID: f.greenTea.String(), Quantity: 1})
	id := uuid.MustParse(resp.ID)

	require.NoError(t, f.svc.Cancel(context.Background(), id, dto.CancelOrderRequest{Reason: "typo"}))
	err := f.svc.Cancel(context.Background(), id, dto.CancelOrderRequest{Reason: "again"})
	assert.ErrorContains(t, err, "already cancelled")
}

func TestSyncBatchAppliesAndDeduplicates(t *testing.T) {
	f := buildOrderFixture(t)
	clientRef := uuid.New().String()
	req := dto.SyncOrdersRequest{Orders: []dto.SyncOrderRequest{{
		ClientRef:     clientRef,
		ShopID:        f.shopID.String(),
		PaymentMethod: "cash",
		Items:         []dto.OrderLineRequest{{ItemID: f.masala.String(), Quantity: 2}},
	}}}

	results, err := f.svc.SyncBatch(context.Background(), f.userID, req)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "applied", results[0].Status)
	appliedID := results[0].OrderID

	// The offline order lands CLOSED with full close-time side effects.
	got, err := f.svc.Get(context.Background(), uuid.MustParse(appliedID))
	require.NoError(t, err)
	assert.Equal(t, model.OrderClosed, got.Status)
	require.Len(t, f.cashbook.entries, 1)
	require.Len(t, f.stock.movements, 1)

	// A device resending its journal must not double-count anything.
	results, err = f.svc.SyncBatch(context.Background(), f.userID, req)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "duplicate", results[0].Status)
	assert.Equal(t, appliedID, results[0].OrderID)
	assert.Len(t, f.cashbook.entries, 1)
	assert.Len(t, f.stock.movements, 1)

	it, _ := f.items.FindByID(context.Background(), f.masala)
	assert.Equal(t, 8, it.StockQty)
}

func TestSyncBatchReportsPerOrderErrors(t *testing.T) {
	f := buildOrderFixture(t)
	good := uuid.New().String()
	bad := uuid.New().String()

	results, err := f.svc.SyncBatch(context.Background(), f.userID, dto.SyncOrdersRequest{Orders: []dto.SyncOrderRequest{
		{
			ClientRef:     bad,
			ShopID:        f.shopID.String(),
			PaymentMethod: "cash",
			Items:         []dto.OrderLineRequest{{ItemID: uuid.New().String(), Quantity: 1}},
		},
		{
			ClientRef:     good,
			ShopID:        f.shopID.String(),
			PaymentMethod: "card",
			Items:         []dto.OrderLineRequest{{ItemID: f.greenTea.String(), Quantity: 1}},
		},
	}})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "error", results[0].Status)
	assert.Contains(t, results[0].Error, "not found")
	assert.Equal(t, "applied", results[1].Status)
}
