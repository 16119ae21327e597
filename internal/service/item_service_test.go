package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teapos/internal/dto"
	"teapos/internal/service"
)

func buildItemSvc() (service.ItemService, *stubItemRepo, *stubStockRepo) {
	items := newStubItemRepo()
	stock := &stubStockRepo{}
	return service.NewItemService(items, stock, nil), items, stock
}

func TestCreateItemDefaultsCategory(t *testing.T) {
	svc, _, _ := buildItemSvc()

	resp, err := svc.Create(context.Background(), dto.CreateItemRequest{
		Name:  "Lemon Tea",
		Price: decimal.NewFromInt(18),
	})
	require.NoError(t, err)
	assert.Equal(t, "general", resp.Category)
	assert.True(t, resp.Active)
	assert.Nil(t, resp.ShopID)
}

func TestAdjustStockRecordsMovement(t *testing.T) {
	svc, _, stock := buildItemSvc()

	created, err := svc.Create(context.Background(), dto.CreateItemRequest{
		Name:       "Tea Bags",
		Price:      decimal.NewFromInt(5),
		TrackStock: true,
		StockQty:   20,
	})
	require.NoError(t, err)

	resp, err := svc.AdjustStock(context.Background(), mustID(t, created.ID), dto.AdjustStockRequest{
		Delta: -4,
		Note:  "spoiled batch",
	})
	require.NoError(t, err)
	assert.Equal(t, 16, resp.StockQty)

	require.Len(t, stock.movements, 1)
	mov := stock.movements[0]
	assert.Equal(t, "adjustment", mov.Type)
	assert.Equal(t, -4, mov.Quantity)
	assert.Equal(t, 20, mov.StockBefore)
	assert.Equal(t, 16, mov.StockAfter)
	assert.Equal(t, "spoiled batch", mov.Note)
}

func TestAdjustStockRejectsUntrackedItem(t *testing.T) {
	svc, _, _ := buildItemSvc()

	created, err := svc.Create(context.Background(), dto.CreateItemRequest{
		Name:  "Green Tea",
		Price: decimal.NewFromInt(15),
	})
	require.NoError(t, err)

	_, err = svc.AdjustStock(context.Background(), mustID(t, created.ID), dto.AdjustStockRequest{
		Delta: 5,
		Note:  "recount",
	})
	assert.ErrorContains(t, err, "does not track stock")
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	svc, _, stock := buildItemSvc()

	created, err := svc.Create(context.Background(), dto.CreateItemRequest{
		Name:       "Tea Bags",
		Price:      decimal.NewFromInt(5),
		TrackStock: true,
		StockQty:   3,
	})
	require.NoError(t, err)

	_, err = svc.AdjustStock(context.Background(), mustID(t, created.ID), dto.AdjustStockRequest{
		Delta: -10,
		Note:  "recount",
	})
	assert.ErrorContains(t, err, "negative stock")
	assert.Empty(t, stock.movements)
}

func TestUpdateItemKeepsUnsetFields(t *testing.T) {
	svc, _, _ := buildItemSvc()

	created, err := svc.Create(context.Background(), dto.CreateItemRequest{
		Name:     "Masala Chai",
		Category: "chai",
		Price:    decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(22)
	resp, err := svc.Update(context.Background(), mustID(t, created.ID), dto.UpdateItemRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(newPrice))
	assert.Equal(t, "Masala Chai", resp.Name)
	assert.Equal(t, "chai", resp.Category)
}
