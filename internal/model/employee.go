package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Salary types. Monthly staff have a fixed monthly rate; their effective
// hourly rate is derived from the scheduled shift span. Hourly and daily
// staff carry the rate per hour directly.
const (
	SalaryMonthly = "monthly"
	SalaryHourly  = "hourly"
	SalaryDaily   = "daily"
)

// Employee is a staff member of one shop. Employees are soft-terminated
// (TerminateDate set) rather than deleted so historical payroll stays intact.
type Employee struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"not null"`
	Phone      *string
	Email      *string
	SalaryType string          `gorm:"type:varchar(10);not null;default:'hourly'"`
	SalaryRate decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// ShiftStart / ShiftEnd are "HH:mm" wall-clock strings, e.g. "10:00".
	ShiftStart string  `gorm:"type:varchar(5);not null;default:'09:00'"`
	ShiftEnd   string  `gorm:"type:varchar(5);not null;default:'21:00'"`
	BreakHours float64 `gorm:"not null;default:0"`
	HireDate   time.Time  `gorm:"type:date;not null"`
	TerminateDate *time.Time `gorm:"type:date"`
	Synced     bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Shop *Shop `gorm:"foreignKey:ShopID"`
}

// Active reports whether the employee was employed at any point of [start, end].
func (e *Employee) Active(start, end time.Time) bool {
	if e.HireDate.After(end) {
		return false
	}
	if e.TerminateDate != nil && e.TerminateDate.Before(start) {
		return false
	}
	return true
}
