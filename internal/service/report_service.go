package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"teapos/internal/dto"
	"teapos/internal/repository"
)

type ReportService interface {
	// Summary is the four-component profit/loss view for a window:
	// Net = ledger IN − ledger OUT − projected salary − prorated fixed costs.
	Summary(ctx context.Context, filter dto.ReportFilter) (*dto.CashFlowSummary, error)
	// Breakdown pivots the ledger by (category, description, direction).
	Breakdown(ctx context.Context, filter dto.ReportFilter) ([]repository.BreakdownRow, error)
	// BreakdownXLSX renders the breakdown as an Excel workbook.
	BreakdownXLSX(ctx context.Context, filter dto.ReportFilter) ([]byte, error)
	// AllShopsSummary computes a Summary per active shop.
	AllShopsSummary(ctx context.Context, from, to string) (*dto.AllShopsSummaryResponse, error)
}

type reportService struct {
	cashRepo repository.CashbookRepository
	shopRepo repository.ShopRepository
	payroll  PayrollService
	expenses ExpenseService
}

func NewReportService(
	cashRepo repository.CashbookRepository,
	shopRepo repository.ShopRepository,
	payroll PayrollService,
	expenses ExpenseService,
) ReportService {
	return &reportService{
		cashRepo: cashRepo,
		shopRepo: shopRepo,
		payroll:  payroll,
		expenses: expenses,
	}
}

func (s *reportService) Summary(ctx context.Context, filter dto.ReportFilter) (*dto.CashFlowSummary, error) {
	start, end, err := parseWindow(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	var shopID *uuid.UUID
	if filter.ShopID != "" {
		sid, err := uuid.Parse(filter.ShopID)
		if err != nil {
			return nil, errors.New("invalid shop_id")
		}
		shopID = &sid
	}
	return s.summary(ctx, shopID, filter, start, end)
}

func (s *reportService) summary(ctx context.Context, shopID *uuid.UUID, filter dto.ReportFilter, start, end time.Time) (*dto.CashFlowSummary, error) {
	in, out, err := s.cashRepo.SumByDirection(ctx, shopID, start, end)
	if err != nil {
		return nil, err
	}

	salaryFilter := dto.ProjectedSalaryFilter{From: filter.From, To: filter.To}
	if shopID != nil {
		salaryFilter.ShopID = shopID.String()
	}
	salary, err := s.payroll.Projected(ctx, salaryFilter)
	if err != nil {
		return nil, err
	}

	fixed, err := s.expenses.Prorated(ctx, shopID, start, end)
	if err != nil {
		return nil, err
	}

	net := in.Sub(out).Sub(salary.Amount).Sub(fixed)
	return &dto.CashFlowSummary{
		From:          filter.From,
		To:            filter.To,
		TotalIn:       in,
		TotalOut:      out,
		Salary:        salary.Amount,
		FixedExpenses: fixed,
		Net:           net,
	}, nil
}

func (s *reportService) Breakdown(ctx context.Context, filter dto.ReportFilter) ([]repository.BreakdownRow, error) {
	start, end, err := parseWindow(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	var shopID *uuid.UUID
	if filter.ShopID != "" {
		sid, err := uuid.Parse(filter.ShopID)
		if err != nil {
			return nil, errors.New("invalid shop_id")
		}
		shopID = &sid
	}
	return s.cashRepo.Breakdown(ctx, shopID, start, end)
}

func (s *reportService) BreakdownXLSX(ctx context.Context, filter dto.ReportFilter) ([]byte, error) {
	rows, err := s.Breakdown(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Breakdown"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Category", "Description", "Direction", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "D1", headerStyle)
	}

	for i, row := range rows {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Category)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Description)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Direction)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Total.InexactFloat64())
	}
	f.SetColWidth(sheet, "A", "B", 28)
	f.SetColWidth(sheet, "C", "D", 14)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("report: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *reportService) AllShopsSummary(ctx context.Context, from, to string) (*dto.AllShopsSummaryResponse, error) {
	if _, _, err := parseWindow(from, to); err != nil {
		return nil, err
	}
	shops, err := s.shopRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	resp := &dto.AllShopsSummaryResponse{From: from, To: to}
	for i := range shops {
		shop := &shops[i]
		summary, err := s.Summary(ctx, dto.ReportFilter{
			ShopID: shop.ID.String(),
			From:   from,
			To:     to,
		})
		if err != nil {
			return nil, fmt.Errorf("summary for shop %s: %w", shop.Name, err)
		}
		resp.Shops = append(resp.Shops, dto.ShopSummary{
			ShopID:   shop.ID.String(),
			ShopName: shop.Name,
			Summary:  *summary,
		})
	}
	return resp, nil
}
