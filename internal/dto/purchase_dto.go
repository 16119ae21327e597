package dto

import "github.com/shopspring/decimal"

type CreateSupplierRequest struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type SupplierResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Active  bool    `json:"active"`
}

type PurchaseLineRequest struct {
	ItemID   string          `json:"item_id"   validate:"required,uuid"`
	Quantity int             `json:"quantity"  validate:"required,min=1"`
	UnitCost decimal.Decimal `json:"unit_cost" validate:"required,min=0"`
}

// CreatePurchaseRequest records inbound stock: purchase + stock movements +
// cashbook OUT entry, atomically.
type CreatePurchaseRequest struct {
	ShopID     string                `json:"shop_id"     validate:"required,uuid"`
	SupplierID *string               `json:"supplier_id" validate:"omitempty,uuid"`
	Note       string                `json:"note"`
	Items      []PurchaseLineRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseLineResponse struct {
	ItemID   string          `json:"item_id"`
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type PurchaseResponse struct {
	ID         string                 `json:"id"`
	ShopID     string                 `json:"shop_id"`
	SupplierID *string                `json:"supplier_id,omitempty"`
	Total      decimal.Decimal        `json:"total"`
	Note       string                 `json:"note,omitempty"`
	Items      []PurchaseLineResponse `json:"items"`
	CreatedAt  string                 `json:"created_at"`
}

type PurchaseListResponse struct {
	Data  []PurchaseResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
