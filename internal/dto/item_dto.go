package dto

import "github.com/shopspring/decimal"

// ItemFilter is bound from the query string of GET /v1/items.
type ItemFilter struct {
	ShopID   string `form:"shop_id"  validate:"omitempty,uuid"`
	Category string `form:"category"`
	Name     string `form:"name"`
	Active   string `form:"active"` // "" = active only | "false" = inactive | "all"
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateItemRequest struct {
	ShopID     *string         `json:"shop_id"     validate:"omitempty,uuid"` // nil = global item
	Name       string          `json:"name"        validate:"required,min=2"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"       validate:"required,min=0"`
	CostPrice  decimal.Decimal `json:"cost_price"  validate:"min=0"`
	TrackStock bool            `json:"track_stock"`
	StockQty   int             `json:"stock_qty"   validate:"min=0"`
}

type UpdateItemRequest struct {
	Name       string           `json:"name"`
	Category   string           `json:"category"`
	Price      *decimal.Decimal `json:"price"      validate:"omitempty,min=0"`
	CostPrice  *decimal.Decimal `json:"cost_price" validate:"omitempty,min=0"`
	TrackStock *bool            `json:"track_stock"`
}

type AdjustStockRequest struct {
	Delta int    `json:"delta" validate:"required"`
	Note  string `json:"note"  validate:"required,min=3"`
}

type ItemResponse struct {
	ID         string          `json:"id"`
	ShopID     *string         `json:"shop_id,omitempty"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	StockQty   int             `json:"stock_qty"`
	TrackStock bool            `json:"track_stock"`
	Active     bool            `json:"active"`
}

type ItemListResponse struct {
	Data  []ItemResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
