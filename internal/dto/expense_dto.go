package dto

import "github.com/shopspring/decimal"

type CreateFixedExpenseRequest struct {
	ShopID        *string         `json:"shop_id" validate:"omitempty,uuid"` // nil = chain-wide
	Name          string          `json:"name"    validate:"required,min=2"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount" validate:"required,gt=0"`
}

type UpdateFixedExpenseRequest struct {
	Name          string           `json:"name"`
	MonthlyAmount *decimal.Decimal `json:"monthly_amount" validate:"omitempty,gt=0"`
}

type FixedExpenseResponse struct {
	ID            string          `json:"id"`
	ShopID        *string         `json:"shop_id,omitempty"`
	Name          string          `json:"name"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	Active        bool            `json:"active"`
	CreatedAt     string          `json:"created_at"`
}
