package dto

import "github.com/shopspring/decimal"

// ReportFilter is bound from the query string of the report endpoints.
type ReportFilter struct {
	ShopID string `form:"shop_id" validate:"omitempty,uuid"`
	From   string `form:"from" validate:"required,datetime=2006-01-02"`
	To     string `form:"to"   validate:"required,datetime=2006-01-02"`
}

// CashFlowSummary is the four-component profit/loss view.
// Net = TotalIn − TotalOut − Salary − FixedExpenses.
type CashFlowSummary struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	TotalIn       decimal.Decimal `json:"total_in"`
	TotalOut      decimal.Decimal `json:"total_out"`
	Salary        decimal.Decimal `json:"salary"`
	FixedExpenses decimal.Decimal `json:"fixed_expenses"`
	Net           decimal.Decimal `json:"net"`
}

// ShopSummary is one shop's line in the all-shops dashboard.
type ShopSummary struct {
	ShopID   string          `json:"shop_id"`
	ShopName string          `json:"shop_name"`
	Summary  CashFlowSummary `json:"summary"`
}

type AllShopsSummaryResponse struct {
	From  string        `json:"from"`
	To    string        `json:"to"`
	Shops []ShopSummary `json:"shops"`
}
