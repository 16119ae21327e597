package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is inbound stock — the mirror image of a sale. Recording one
// writes the purchase, positive stock movements for tracked lines, and a
// cashbook OUT entry in a single transaction.
type Purchase struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID *uuid.UUID      `gorm:"type:uuid;index"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note       string
	Synced     bool `gorm:"not null;default:false;index"`
	CreatedAt  time.Time

	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID"`
	Supplier *Supplier      `gorm:"foreignKey:SupplierID"`
}

type PurchaseItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   int             `gorm:"not null"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Item *Item `gorm:"foreignKey:ItemID"`
}
