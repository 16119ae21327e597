package dto

import "github.com/shopspring/decimal"

// ─── Employees ───────────────────────────────────────────────────────────────

type CreateEmployeeRequest struct {
	ShopID     string          `json:"shop_id"     validate:"required,uuid"`
	Name       string          `json:"name"        validate:"required,min=2"`
	Phone      *string         `json:"phone"`
	Email      *string         `json:"email"       validate:"omitempty,email"`
	SalaryType string          `json:"salary_type" validate:"required,oneof=monthly hourly daily"`
	SalaryRate decimal.Decimal `json:"salary_rate" validate:"required,gt=0"`
	ShiftStart string          `json:"shift_start" validate:"required,datetime=15:04"`
	ShiftEnd   string          `json:"shift_end"   validate:"required,datetime=15:04"`
	BreakHours float64         `json:"break_hours" validate:"min=0,max=12"`
	HireDate   string          `json:"hire_date"   validate:"required,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	Name       string           `json:"name"`
	Phone      *string          `json:"phone"`
	Email      *string          `json:"email"       validate:"omitempty,email"`
	SalaryType string           `json:"salary_type" validate:"omitempty,oneof=monthly hourly daily"`
	SalaryRate *decimal.Decimal `json:"salary_rate" validate:"omitempty,gt=0"`
	ShiftStart string           `json:"shift_start" validate:"omitempty,datetime=15:04"`
	ShiftEnd   string           `json:"shift_end"   validate:"omitempty,datetime=15:04"`
	BreakHours *float64         `json:"break_hours" validate:"omitempty,min=0,max=12"`
}

type TerminateEmployeeRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type EmployeeResponse struct {
	ID         string          `json:"id"`
	ShopID     string          `json:"shop_id"`
	Name       string          `json:"name"`
	Phone      *string         `json:"phone,omitempty"`
	Email      *string         `json:"email,omitempty"`
	SalaryType string          `json:"salary_type"`
	SalaryRate decimal.Decimal `json:"salary_rate"`
	ShiftStart string          `json:"shift_start"`
	ShiftEnd   string          `json:"shift_end"`
	BreakHours float64         `json:"break_hours"`
	HireDate   string          `json:"hire_date"`
	TerminateDate *string      `json:"terminate_date,omitempty"`
}

// ─── Attendance ──────────────────────────────────────────────────────────────

type CheckInRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Type       string `json:"type"        validate:"omitempty,oneof=WORK BREAK"`
}

type AttendanceResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Type       string          `json:"type"`
	CheckIn    string          `json:"check_in"`
	CheckOut   *string         `json:"check_out,omitempty"`
	Rate       decimal.Decimal `json:"rate"`
	SalaryType string          `json:"salary_type"`
}

// AttendanceWindowFilter is bound from the query string of GET /v1/staff/attendance.
type AttendanceWindowFilter struct {
	ShopID     string `form:"shop_id"     validate:"omitempty,uuid"`
	EmployeeID string `form:"employee_id" validate:"omitempty,uuid"`
	From       string `form:"from" validate:"required,datetime=2006-01-02"`
	To         string `form:"to"   validate:"required,datetime=2006-01-02"`
}

// ─── Advances ────────────────────────────────────────────────────────────────

type CreateAdvanceRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required,uuid"`
	Amount     decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Note       string          `json:"note"`
}

type AdvanceResponse struct {
	ID        string          `json:"id"`
	EmployeeID string         `json:"employee_id"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	GivenAt   string          `json:"given_at"`
	Recovered bool            `json:"recovered"`
	SalaryPaymentID *string   `json:"salary_payment_id,omitempty"`
}

// ─── Closed days ─────────────────────────────────────────────────────────────

type CreateClosedDayRequest struct {
	ShopID    string `json:"shop_id"    validate:"required,uuid"`
	Date      string `json:"date"       validate:"required,datetime=2006-01-02"`
	PaySalary bool   `json:"pay_salary"`
	Reason    string `json:"reason"`
}

type ClosedDayResponse struct {
	ID        string `json:"id"`
	ShopID    string `json:"shop_id"`
	Date      string `json:"date"`
	PaySalary bool   `json:"pay_salary"`
	Reason    string `json:"reason,omitempty"`
}
