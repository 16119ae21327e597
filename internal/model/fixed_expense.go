package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedExpense is a recurring monthly cost (rent, electricity minimum, wifi).
// ShopID nil attributes the cost to the whole chain. Reporting prorates the
// monthly amount day-by-day; an expense never applies to days before it was
// created.
type FixedExpense struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopID        *uuid.UUID      `gorm:"type:uuid;index"`
	Name          string          `gorm:"not null"`
	MonthlyAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active        bool            `gorm:"not null;default:true"`
	Synced        bool            `gorm:"not null;default:false;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
