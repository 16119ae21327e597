package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryPayment is one salary disbursement. Immutable once created — the
// gross/deduction/net split and the covered period are the audit trail for
// the cashbook SALARY entry written in the same transaction.
type SalaryPayment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShopID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Gross       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AdvanceDeduction decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Net         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PeriodStart time.Time       `gorm:"type:date;not null"`
	PeriodEnd   time.Time       `gorm:"type:date;not null"`
	Method      string          `gorm:"type:varchar(20);not null;default:'cash'"`
	PaidAt      time.Time       `gorm:"not null"`
	Synced      bool            `gorm:"not null;default:false;index"`
	CreatedAt   time.Time

	Employee *Employee `gorm:"foreignKey:EmployeeID"`
}
