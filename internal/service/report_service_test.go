package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"teapos/internal/dto"
	"teapos/internal/model"
	"teapos/internal/service"
)

type reportFixture struct {
	svc      service.ReportService
	cashbook *stubCashbookRepo
	shops    *stubShopRepo
	expenses *stubExpenseRepo
	shopID   uuid.UUID
}

func buildReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	f := &reportFixture{
		cashbook: &stubCashbookRepo{},
		shops:    newStubShopRepo(),
		expenses: newStubExpenseRepo(),
		shopID:   uuid.New(),
	}
	require.NoError(t, f.shops.Create(context.Background(), &model.Shop{ID: f.shopID, Name: "High Street", Active: true}))

	payrollSvc := service.NewPayrollService(
		newStubEmployeeRepo(), newStubAttendanceRepo(), newStubAdvanceRepo(),
		newStubClosedDayRepo(), newStubSalaryRepo(), f.cashbook, nil,
	)
	expenseSvc := service.NewExpenseService(f.expenses, nil)
	f.svc = service.NewReportService(f.cashbook, f.shops, payrollSvc, expenseSvc)
	return f
}

func (f *reportFixture) seedEntry(t *testing.T, direction, category string, amount int64, day time.Time) {
	t.Helper()
	require.NoError(t, f.cashbook.Create(context.Background(), &model.CashbookEntry{
		ShopID:      f.shopID,
		Direction:   direction,
		Category:    category,
		Amount:      decimal.NewFromInt(amount),
		Description: category,
		EntryDate:   day,
	}))
}

func TestSummaryNetFormula(t *testing.T) {
	f := buildReportFixture(t)
	march10 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f.seedEntry(t, model.CashIn, model.CategorySales, 1000, march10)
	f.seedEntry(t, model.CashIn, model.CategorySales, 500, march10.AddDate(0, 0, 1))
	f.seedEntry(t, model.CashOut, model.CategoryPurchase, 200, march10)
	// Outside the window: must not count.
	f.seedEntry(t, model.CashIn, model.CategorySales, 9999, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC))

	summary, err := f.svc.Summary(context.Background(), dto.ReportFilter{
		ShopID: f.shopID.String(),
		From:   "2025-03-01",
		To:     "2025-03-31",
	})
	require.NoError(t, err)
	assert.True(t, summary.TotalIn.Equal(decimal.NewFromInt(1500)), "got %s", summary.TotalIn)
	assert.True(t, summary.TotalOut.Equal(decimal.NewFromInt(200)))
	assert.True(t, summary.Salary.IsZero())
	assert.True(t, summary.FixedExpenses.IsZero())
	assert.True(t, summary.Net.Equal(decimal.NewFromInt(1300)))
}

func TestSummaryProratesFixedExpenses(t *testing.T) {
	f := buildReportFixture(t)
	f.seedEntry(t, model.CashIn, model.CategorySales, 1000, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	// Rent existed before the window, so all 31 days of March charge.
	require.NoError(t, f.expenses.Create(context.Background(), &model.FixedExpense{
		Name:          "Rent",
		MonthlyAmount: decimal.NewFromInt(3100),
		Active:        true,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	summary, err := f.svc.Summary(context.Background(), dto.ReportFilter{
		ShopID: f.shopID.String(),
		From:   "2025-03-01",
		To:     "2025-03-31",
	})
	require.NoError(t, err)
	assert.True(t, summary.FixedExpenses.Equal(decimal.NewFromInt(3100)), "got %s", summary.FixedExpenses)
	assert.True(t, summary.Net.Equal(decimal.NewFromInt(-2100)), "got %s", summary.Net)
}

func TestBreakdownGroupsLedger(t *testing.T) {
	f := buildReportFixture(t)
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f.seedEntry(t, model.CashIn, model.CategorySales, 1000, day)
	f.seedEntry(t, model.CashIn, model.CategorySales, 500, day)
	f.seedEntry(t, model.CashOut, model.CategoryAdvance, 300, day)

	rows, err := f.svc.Breakdown(context.Background(), dto.ReportFilter{
		ShopID: f.shopID.String(),
		From:   "2025-03-01",
		To:     "2025-03-31",
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Total.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, model.CashOut, rows[1].Direction)
}

func TestBreakdownXLSX(t *testing.T) {
	f := buildReportFixture(t)
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f.seedEntry(t, model.CashIn, model.CategorySales, 1500, day)

	raw, err := f.svc.BreakdownXLSX(context.Background(), dto.ReportFilter{
		ShopID: f.shopID.String(),
		From:   "2025-03-01",
		To:     "2025-03-31",
	})
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer wb.Close()

	got, err := wb.GetCellValue("Breakdown", "A2")
	require.NoError(t, err)
	assert.Equal(t, model.CategorySales, got)
	direction, _ := wb.GetCellValue("Breakdown", "C2")
	assert.Equal(t, model.CashIn, direction)
}

func TestAllShopsSummarySkipsInactive(t *testing.T) {
	f := buildReportFixture(t)
	require.NoError(t, f.shops.Create(context.Background(), &model.Shop{Name: "Closed Branch", Active: false}))
	f.seedEntry(t, model.CashIn, model.CategorySales, 1000, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	resp, err := f.svc.AllShopsSummary(context.Background(), "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.Len(t, resp.Shops, 1)
	assert.Equal(t, "High Street", resp.Shops[0].ShopName)
	assert.True(t, resp.Shops[0].Summary.TotalIn.Equal(decimal.NewFromInt(1000)))
}
