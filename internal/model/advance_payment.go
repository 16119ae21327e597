package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvancePayment is a cash advance handed to an employee before payday.
// Recovered flips exactly once, when a salary payment deducts the advance;
// SalaryPaymentID then links to the recovering disbursement.
type AdvancePayment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShopID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note       string
	GivenAt    time.Time `gorm:"not null"`
	Recovered  bool      `gorm:"not null;default:false;index"`
	SalaryPaymentID *uuid.UUID `gorm:"type:uuid"`
	Synced     bool `gorm:"not null;default:false;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Employee *Employee `gorm:"foreignKey:EmployeeID"`
}
