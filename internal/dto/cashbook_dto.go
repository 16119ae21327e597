package dto

import "github.com/shopspring/decimal"

// CashbookFilter is bound from the query string of GET /v1/cashbook.
type CashbookFilter struct {
	ShopID    string `form:"shop_id"   validate:"omitempty,uuid"`
	Direction string `form:"direction"` // IN | OUT | all
	Category  string `form:"category"`
	From      string `form:"from"` // YYYY-MM-DD
	To        string `form:"to"`   // YYYY-MM-DD
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=500"`
}

// ManualEntryRequest records a hand-written ledger line (owner tops up the
// till, pays the milkman, etc.).
type ManualEntryRequest struct {
	ShopID      string          `json:"shop_id"     validate:"required,uuid"`
	Direction   string          `json:"direction"   validate:"required,oneof=IN OUT"`
	Category    string          `json:"category"    validate:"required,min=2"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,min=3"`
	EntryDate   string          `json:"entry_date"  validate:"omitempty,datetime=2006-01-02"`
}

type CashbookEntryResponse struct {
	ID          string          `json:"id"`
	ShopID      string          `json:"shop_id"`
	Direction   string          `json:"direction"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ReferenceID *string         `json:"reference_id,omitempty"`
	EntryDate   string          `json:"entry_date"`
}

type CashbookListResponse struct {
	Data  []CashbookEntryResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}
