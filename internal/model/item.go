package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a menu item (tea, snacks, packaged goods).
// ShopID nil means the item is global — available in every shop.
// TrackStock=false is used for made-to-order items (a cup of tea has no
// countable stock); such items never produce stock movements.
type Item struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopID     *uuid.UUID `gorm:"type:uuid;index"`
	Name       string    `gorm:"index;not null"`
	Category   string    `gorm:"not null;default:'general'"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StockQty   int       `gorm:"not null;default:0"`
	TrackStock bool      `gorm:"not null;default:false"`
	Active     bool      `gorm:"not null;default:true"`
	Synced     bool      `gorm:"not null;default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Shop *Shop `gorm:"foreignKey:ShopID"`
}
