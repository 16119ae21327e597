package dto

import "github.com/shopspring/decimal"

// ProjectedSalaryFilter is bound from the query string of
// GET /v1/payroll/projected.
type ProjectedSalaryFilter struct {
	ShopID string `form:"shop_id" validate:"omitempty,uuid"`
	From   string `form:"from" validate:"required,datetime=2006-01-02"`
	To     string `form:"to"   validate:"required,datetime=2006-01-02"`
}

type ProjectedSalaryResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// PaySalaryRequest settles one employee for a period: gross minus pending
// advances, one immutable payment row, one cashbook SALARY entry.
type PaySalaryRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	From       string `json:"from"   validate:"required,datetime=2006-01-02"`
	To         string `json:"to"     validate:"required,datetime=2006-01-02"`
	Method     string `json:"method" validate:"omitempty,oneof=cash bank upi"`
}

type SalaryPaymentResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name,omitempty"`
	Gross            decimal.Decimal `json:"gross"`
	AdvanceDeduction decimal.Decimal `json:"advance_deduction"`
	Net              decimal.Decimal `json:"net"`
	PeriodStart      string          `json:"period_start"`
	PeriodEnd        string          `json:"period_end"`
	Method           string          `json:"method"`
	PaidAt           string          `json:"paid_at"`
}
