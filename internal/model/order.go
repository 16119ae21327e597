package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. An OPEN order is a "held" order (a running table tab) that
// can accumulate items until it is closed or cancelled.
const (
	OrderOpen      = "OPEN"
	OrderClosed    = "CLOSED"
	OrderCancelled = "CANCELLED"
)

// Order is one customer order. Closing an order is the only way money and
// stock leave the system for a sale: the close writes the order, one SALES
// cashbook entry and one stock movement per tracked line in a single
// transaction.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNumber int       `gorm:"uniqueIndex;not null"`
	ShopID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID `gorm:"type:uuid;not null"`
	// TableLabel identifies a held order ("table 4", "parcel counter").
	TableLabel    *string
	Status        string          `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentMethod *string         `gorm:"type:varchar(20)"`
	// ClientRef is the device-generated id for orders created offline;
	// batch sync deduplicates on it.
	ClientRef *string `gorm:"uniqueIndex"`
	Synced    bool    `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	ClosedAt  *time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
	Shop  *Shop       `gorm:"foreignKey:ShopID"`
	User  *User       `gorm:"foreignKey:UserID"`
}

// OrderItem snapshots the item name and unit price at order time so later
// menu edits never alter a past bill.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName  string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int             `gorm:"not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time

	Item *Item `gorm:"foreignKey:ItemID"`
}
