package payroll

import (
	"testing"
	"time"

	"teapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ts(day int, hour, min int) time.Time {
	return time.Date(2025, time.March, day, hour, min, 0, 0, time.UTC)
}

func hourlyEmployee(shopID uuid.UUID, rate string) model.Employee {
	return model.Employee{
		ID:         uuid.New(),
		ShopID:     shopID,
		Name:       "Asha",
		SalaryType: model.SalaryHourly,
		SalaryRate: d(rate),
		ShiftStart: "10:00",
		ShiftEnd:   "22:00",
		HireDate:   ts(1, 0, 0),
	}
}

func workRow(emp *model.Employee, in time.Time, out *time.Time) model.Attendance {
	return model.Attendance{
		ID:         uuid.New(),
		EmployeeID: emp.ID,
		ShopID:     emp.ShopID,
		Type:       model.AttendanceWork,
		CheckIn:    in,
		CheckOut:   out,
		Rate:       emp.SalaryRate,
		SalaryType: emp.SalaryType,
		ShiftStart: emp.ShiftStart,
		ShiftEnd:   emp.ShiftEnd,
		BreakHours: emp.BreakHours,
	}
}

func TestProjectedSalaryNoEmployees(t *testing.T) {
	got := ProjectedSalary(Input{
		Start: ts(1, 0, 0),
		End:   ts(31, 0, 0),
		Now:   ts(31, 12, 0),
	})
	assert.True(t, got.IsZero())
}

func TestSessionDurationNonNegative(t *testing.T) {
	emp := hourlyEmployee(uuid.New(), "100")
	out := ts(5, 18, 0)
	rec := workRow(&emp, ts(5, 10, 0), &out)
	require.GreaterOrEqual(t, sessionHours(&rec, ts(5, 20, 0)), 0.0)

	// Equal checkin/checkout yields exactly zero.
	same := ts(5, 10, 0)
	rec2 := workRow(&emp, ts(5, 10, 0), &same)
	assert.Equal(t, 0.0, sessionHours(&rec2, ts(5, 20, 0)))
}

func TestMonthlyDerivedHourlyRate(t *testing.T) {
	// Monthly 3000, shift 10:00-22:00, break 1h: net 11h, daily chunk 100,
	// derived hourly rate 100/11.
	rec := model.Attendance{
		Rate:       d("3000"),
		SalaryType: model.SalaryMonthly,
		ShiftStart: "10:00",
		ShiftEnd:   "22:00",
		BreakHours: 1,
	}
	rate := effectiveHourlyRate(&rec)
	want := d("100").Div(d("11"))
	assert.True(t, rate.Equal(want), "got %s want %s", rate, want)

	f, _ := rate.Float64()
	assert.InDelta(t, 9.0909, f, 0.001)
}

func TestMonthlyZeroShiftSpanRate(t *testing.T) {
	rec := model.Attendance{
		Rate:       d("3000"),
		SalaryType: model.SalaryMonthly,
		ShiftStart: "10:00",
		ShiftEnd:   "10:00",
	}
	assert.True(t, effectiveHourlyRate(&rec).IsZero())
}

func TestHourlyEmployeeSimpleDay(t *testing.T) {
	shop := uuid.New()
	emp := hourlyEmployee(shop, "50")
	out := ts(5, 18, 0)
	rows := []model.Attendance{workRow(&emp, ts(5, 10, 0), &out)} // 8h

	gross := EmployeeGross(&emp, rows, nil, ts(1, 0, 0), ts(31, 0, 0), ts(31, 12, 0))
	assert.True(t, gross.Equal(d("400")), "got %s", gross)
}

func TestBreakDeductedOncePerWorkedDay(t *testing.T) {
	shop := uuid.New()
	emp := hourlyEmployee(shop, "100")
	emp.BreakHours = 1

	// Two WORK sessions the same day: 4h + 4h, break deducted once.
	out1 := ts(5, 14, 0)
	out2 := ts(5, 22, 0)
	rows := []model.Attendance{
		workRow(&emp, ts(5, 10, 0), &out1),
		workRow(&emp, ts(5, 18, 0), &out2),
	}

	gross := EmployeeGross(&emp, rows, nil, ts(1, 0, 0), ts(31, 0, 0), ts(31, 23, 0))
	assert.True(t, gross.Equal(d("700")), "8h*100 - 1h*100 once, got %s", gross)
}

func TestMonthlyEmployeeNoBreakDeduction(t *testing.T) {
	shop := uuid.New()
	emp := model.Employee{
		ID: uuid.New(), ShopID: shop, Name: "Ravi",
		SalaryType: model.SalaryMonthly, SalaryRate: d("3000"),
		ShiftStart: "10:00", ShiftEnd: "22:00", BreakHours: 1,
		HireDate: ts(1, 0, 0),
	}
	out := ts(5, 21, 0)
	rows := []model.Attendance{workRow(&emp, ts(5, 10, 0), &out)} // 11h at 100/11

	gross := EmployeeGross(&emp, rows, nil, ts(1, 0, 0), ts(31, 0, 0), ts(31, 23, 0))
	want := d("100").Div(d("11")).Mul(d("11"))
	assert.True(t, gross.Equal(want), "monthly break is inside the derived rate, got %s want %s", gross, want)
}

func TestStaleOpenSessionClosedAtShiftEnd(t *testing.T) {
	shop := uuid.New()
	emp := hourlyEmployee(shop, "100")
	// Forgotten checkout on day 5; shift end 22:00 → 12h, never open-ended.
	rows := []model.Attendance{workRow(&emp, ts(5, 10, 0), nil)}

	gross := EmployeeGross(&emp, rows, nil, ts(1, 0, 0), ts(31, 0, 0), ts(20, 12, 0))
	assert.True(t, gross.Equal(d("1200")), "got %s", gross)
}

func TestOpenSessionStartedTodayRunsUntilNow(t *testing.T) {
	shop := uuid.New()
	emp := hourlyEmployee(shop, "100")
	rows := []model.Attendance{workRow(&emp, ts(5, 10, 0), nil)}

	gross := EmployeeGross(&emp, rows, nil, ts(1, 0, 0), ts(31, 0, 0), ts(5, 13, 0))
	assert.True(t, gross.Equal(d("300")), "3h so far today, got %s", gross)
}

func TestPaidClosedDay(t *testing.T) {
	shop := uuid.New()
	hourly := hourlyEmployee(shop, "50")
	monthly := model.Employee{
		ID: uuid.New(), ShopID: shop, Name: "Ravi",
		SalaryType: model.SalaryMonthly, SalaryRate: d("3000"),
		ShiftStart: "10:00", ShiftEnd: "22:00",
		HireDate: ts(1, 0, 0),
	}
	closed := []model.ShopClosedDay{{ShopID: shop, Date: ts(10, 0, 0), PaySalary: true}}

	// Neither worked on the closed day.
	g1 := EmployeeGross(&hourly, nil, closed, ts(1, 0, 0), ts(31, 0, 0), ts(31, 12, 0))
	assert.True(t, g1.Equal(d("400")), "hourly rate x 8, got %s", g1)

	g2 := EmployeeGross(&monthly, nil, closed, ts(1, 0, 0), ts(31, 0, 0), ts(31, 12, 0))
	assert.True(t, g2.Equal(d("100")), "monthly/30, got %s", g2)
}

func TestClosedDayNotPaidWhenWorked(t *testing.T) {
	shop := uuid.New()
	emp := hourlyEmployee(shop, "50")
	out := ts(10, 14, 0)
	rows := []model.Attendance{workRow(&emp, ts(10, 10, 0), &out)} // worked the closed day anyway
	closed := []model.ShopClosedDay{{ShopID: shop, Date: ts(10, 0, 0), PaySalary: true}}

	gross := EmployeeGross(&emp, rows, closed, ts(1, 0, 0), ts(31, 0, 0), ts(31, 12, 0))
	assert.True(t, gross.Equal(d("200")), "4h worked, no closed-day top-up, got %s", gross)
}

func TestUnrecoveredAdvanceReducesProjection(t *testing.T) {
	shop := uuid.New()
	emp := hourlyEmployee(shop, "50")
	out := ts(5, 18, 0)

	in := Input{
		Start: ts(1, 0, 0), End: ts(31, 0, 0), Now: ts(31, 12, 0),
		Employees: []model.Employee{emp},
		Attendance: map[string][]model.Attendance{
			emp.ID.String(): {workRow(&emp, ts(5, 10, 0), &out)}, // 8h * 50 = 400
		},
		Advances: []model.AdvancePayment{{EmployeeID: emp.ID, Amount: d("500")}},
	}
	got := ProjectedSalary(in)
	assert.True(t, got.Equal(d("-100")), "400 - 500 advance, got %s", got)
}

func TestEmploymentWindowClipping(t *testing.T) {
	shop := uuid.New()
	emp := hourlyEmployee(shop, "50")
	emp.HireDate = ts(10, 0, 0)
	term := ts(20, 0, 0)
	emp.TerminateDate = &term

	// Row before hire and row after termination are both excluded.
	outEarly := ts(5, 18, 0)
	outLate := ts(25, 18, 0)
	outIn := ts(15, 18, 0)
	in := Input{
		Start: ts(1, 0, 0), End: ts(31, 0, 0), Now: ts(31, 12, 0),
		Employees: []model.Employee{emp},
		Attendance: map[string][]model.Attendance{
			emp.ID.String(): {
				workRow(&emp, ts(5, 10, 0), &outEarly),
				workRow(&emp, ts(15, 10, 0), &outIn),
				workRow(&emp, ts(25, 10, 0), &outLate),
			},
		},
	}
	got := ProjectedSalary(in)
	assert.True(t, got.Equal(d("400")), "only the in-window 8h day counts, got %s", got)
}

func TestNoOverlapEmployeeSkipped(t *testing.T) {
	shop := uuid.New()
	emp := hourlyEmployee(shop, "50")
	emp.HireDate = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	in := Input{
		Start: ts(1, 0, 0), End: ts(31, 0, 0), Now: ts(31, 12, 0),
		Employees: []model.Employee{emp},
	}
	assert.True(t, ProjectedSalary(in).IsZero())
}
