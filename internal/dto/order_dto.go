package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// OrderFilter is bound from the query string of GET /v1/orders.
type OrderFilter struct {
	ShopID string `form:"shop_id" validate:"omitempty,uuid"`
	Date   string `form:"date"`                  // YYYY-MM-DD; empty = today
	Status string `form:"status,default=CLOSED"` // OPEN | CLOSED | CANCELLED | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderLineRequest struct {
	ItemID   string `json:"item_id"  validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// OpenOrderRequest starts a held order (a running table tab). Items are
// optional at open time and can be added later.
type OpenOrderRequest struct {
	ShopID     string             `json:"shop_id"     validate:"required,uuid"`
	TableLabel *string            `json:"table_label"`
	Items      []OrderLineRequest `json:"items"       validate:"dive"`
}

type AddOrderItemsRequest struct {
	Items []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

type CloseOrderRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash card upi credit"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// SyncOrderRequest is one complete order recorded offline on a cashier
// device. ClientRef deduplicates replays.
type SyncOrderRequest struct {
	ClientRef     string             `json:"client_ref"     validate:"required,uuid"`
	ShopID        string             `json:"shop_id"        validate:"required,uuid"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=cash card upi credit"`
	Items         []OrderLineRequest `json:"items"          validate:"required,min=1,dive"`
}

// SyncOrdersRequest holds a batch of offline orders to reconcile.
type SyncOrdersRequest struct {
	Orders []SyncOrderRequest `json:"orders" validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderLineResponse struct {
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   int                 `json:"order_number"`
	ShopID        string              `json:"shop_id"`
	TableLabel    *string             `json:"table_label,omitempty"`
	Status        string              `json:"status"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod *string             `json:"payment_method,omitempty"`
	Items         []OrderLineResponse `json:"items"`
	CreatedAt     string              `json:"created_at"`
	ClosedAt      *string             `json:"closed_at,omitempty"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// SyncOrderResult reports per-order outcomes of a batch sync.
type SyncOrderResult struct {
	ClientRef string `json:"client_ref"`
	Status    string `json:"status"` // applied | duplicate | error
	OrderID   string `json:"order_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
