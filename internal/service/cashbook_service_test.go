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

func TestAddManualEntry(t *testing.T) {
	repo := &stubCashbookRepo{}
	svc := service.NewCashbookService(repo, nil)
	shopID := uuid.New()

	resp, err := svc.AddManualEntry(context.Background(), dto.ManualEntryRequest{
		ShopID:      shopID.String(),
		Direction:   model.CashOut,
		Category:    model.CategoryOther,
		Amount:      decimal.NewFromInt(120),
		Description: "milk delivery",
		EntryDate:   "2025-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CashOut, resp.Direction)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, "2025-03-10T00:00:00Z", resp.EntryDate)
	assert.Nil(t, resp.ReferenceID)

	require.Len(t, repo.entries, 1)
	assert.Equal(t, shopID, repo.entries[0].ShopID)
}

func TestAddManualEntryBadDate(t *testing.T) {
	svc := service.NewCashbookService(&stubCashbookRepo{}, nil)

	_, err := svc.AddManualEntry(context.Background(), dto.ManualEntryRequest{
		ShopID:      uuid.New().String(),
		Direction:   model.CashIn,
		Category:    model.CategoryOther,
		Amount:      decimal.NewFromInt(10),
		Description: "till top-up",
		EntryDate:   "10-03-2025",
	})
	assert.ErrorContains(t, err, "invalid entry_date")
}
