package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Attendance record types.
const (
	AttendanceWork  = "WORK"
	AttendanceBreak = "BREAK"
)

// Attendance is one check-in session. CheckOut stays nil while the session is
// open. The record snapshots the employee's pay parameters at check-in time so
// later rate edits never retroactively alter past pay.
// Invariant: CheckOut, when present, is never before CheckIn.
type Attendance struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShopID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type       string     `gorm:"type:varchar(10);not null;default:'WORK'"`
	CheckIn    time.Time  `gorm:"not null;index"`
	CheckOut   *time.Time

	// Snapshotted pay parameters.
	Rate       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SalaryType string          `gorm:"type:varchar(10);not null"`
	ShiftStart string          `gorm:"type:varchar(5);not null"`
	ShiftEnd   string          `gorm:"type:varchar(5);not null"`
	BreakHours float64         `gorm:"not null;default:0"`

	Synced    bool `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *Employee `gorm:"foreignKey:EmployeeID"`
}

// TableName overrides GORM's default pluralization ("attendances").
func (Attendance) TableName() string { return "attendance_records" }
