package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cashbook directions.
const (
	CashIn  = "IN"
	CashOut = "OUT"
)

// Cashbook categories written by the system. Manual entries may carry any
// category string; these constants are the ones services create themselves.
const (
	CategorySales    = "SALES"
	CategoryPurchase = "PURCHASE"
	CategorySalary   = "SALARY"
	CategoryAdvance  = "ADVANCE"
	CategoryExpense  = "EXPENSE"
	CategoryOther    = "OTHER"
)

// CashbookEntry is one cash movement in the append-only ledger — the
// canonical source of all cash-flow reporting. Entries are NEVER updated or
// deleted; corrections create inverse entries.
type CashbookEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Direction   string          `gorm:"type:varchar(5);not null"` // IN | OUT
	Category    string          `gorm:"type:varchar(30);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"not null"`
	// ReferenceID links to the originating order, purchase, advance or
	// salary payment when the entry was created by the system.
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	EntryDate   time.Time  `gorm:"not null;index"`
	Synced      bool       `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
}

// TableName keeps the table name singular-free ("cashbook_entries").
func (CashbookEntry) TableName() string { return "cashbook_entries" }
