package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every change to an item's stock.
// Created automatically when an order closes, a purchase is received,
// a cancellation restores stock, or stock is adjusted by hand.
type StockMovement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ShopID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"not null"` // "sale" | "purchase" | "adjustment" | "restore_cancel"
	Quantity   int       `gorm:"not null"` // positive = in, negative = out
	StockBefore int      `gorm:"not null"`
	StockAfter  int      `gorm:"not null"`
	Note       string
	// ReferenceID links back to the order or purchase that caused the movement.
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	Synced      bool       `gorm:"not null;default:false;index"`
	CreatedAt   time.Time

	Item *Item `gorm:"foreignKey:ItemID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
