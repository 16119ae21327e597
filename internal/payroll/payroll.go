// Package payroll implements the salary calculation engine: attendance-based
// gross pay, closed-day pay, break deduction and advance recovery. All
// functions are pure — callers load the rows, the engine only does arithmetic.
package payroll

import (
	"time"

	"teapos/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// daysPerMonth divides a monthly rate into a daily chunk.
	daysPerMonth = 30
	// closedDayHours is one paid day for hourly/daily staff on a paid
	// shop-closed day.
	closedDayHours = 8
)

var (
	decDaysPerMonth  = decimal.NewFromInt(daysPerMonth)
	decClosedDayHours = decimal.NewFromInt(closedDayHours)
)

// Input carries everything ProjectedSalary needs, pre-fetched by the caller.
// Attendance is keyed by employee id and must already be restricted to the
// reporting window. Advances must be the unrecovered ones only.
type Input struct {
	Start      time.Time
	End        time.Time
	Now        time.Time
	Employees  []model.Employee
	Attendance map[string][]model.Attendance
	ClosedDays []model.ShopClosedDay
	Advances   []model.AdvancePayment
}

// ProjectedSalary computes the total salary liability for the window minus
// pending advances. The result can be negative when advances exceed earned
// pay.
func ProjectedSalary(in Input) decimal.Decimal {
	total := decimal.Zero
	for i := range in.Employees {
		emp := &in.Employees[i]
		clipStart, clipEnd, ok := clipWindow(emp, in.Start, in.End)
		if !ok {
			continue
		}
		rows := in.Attendance[emp.ID.String()]
		total = total.Add(EmployeeGross(emp, rows, in.ClosedDays, clipStart, clipEnd, in.Now))
	}
	for _, adv := range in.Advances {
		total = total.Sub(adv.Amount)
	}
	return total
}

// EmployeeGross computes one employee's gross pay for the clipped window:
// attendance-derived pay, per-day break deduction, and paid closed days.
func EmployeeGross(emp *model.Employee, rows []model.Attendance, closedDays []model.ShopClosedDay, start, end, now time.Time) decimal.Decimal {
	salary := decimal.Zero

	// First WORK row per calendar day, for the break deduction and the
	// closed-day exclusion below.
	workedDays := make(map[string]*model.Attendance)

	// End is an inclusive date: a check-in any time on the end day counts.
	endOfWindow := dateOnly(end).Add(24 * time.Hour)

	for i := range rows {
		rec := &rows[i]
		if rec.CheckIn.Before(start) || !rec.CheckIn.Before(endOfWindow) {
			continue
		}

		hours := sessionHours(rec, now)
		rate := effectiveHourlyRate(rec)
		salary = salary.Add(rate.Mul(decimal.NewFromFloat(hours)))

		if rec.Type == model.AttendanceWork {
			day := rec.CheckIn.Format("2006-01-02")
			if _, seen := workedDays[day]; !seen {
				workedDays[day] = rec
			}
		}
	}

	// Break deduction: once per worked day, non-monthly types only. Monthly
	// staff already absorb the break inside the derived hourly rate.
	for _, rec := range workedDays {
		if rec.SalaryType == model.SalaryMonthly {
			continue
		}
		if rec.BreakHours > 0 {
			salary = salary.Sub(rec.Rate.Mul(decimal.NewFromFloat(rec.BreakHours)))
		}
	}

	// Paid closed days: one day's pay for every paid closed date inside the
	// window on which the employee has no WORK record.
	for _, cd := range closedDays {
		if !cd.PaySalary || cd.ShopID != emp.ShopID {
			continue
		}
		day := dateOnly(cd.Date)
		if day.Before(dateOnly(start)) || day.After(dateOnly(end)) {
			continue
		}
		if _, worked := workedDays[day.Format("2006-01-02")]; worked {
			continue
		}
		if emp.SalaryType == model.SalaryMonthly {
			salary = salary.Add(emp.SalaryRate.Div(decDaysPerMonth))
		} else {
			salary = salary.Add(emp.SalaryRate.Mul(decClosedDayHours))
		}
	}

	return salary
}

// sessionHours returns the fractional hours worked in one attendance session.
// Open sessions started today run until now; open sessions from a prior day
// (a forgotten checkout) are closed at the snapshotted shift end on the
// session's own day instead of running open-ended.
func sessionHours(rec *model.Attendance, now time.Time) float64 {
	var out time.Time
	switch {
	case rec.CheckOut != nil:
		out = *rec.CheckOut
	case sameDay(rec.CheckIn, now):
		out = now
	default:
		out = atClock(rec.CheckIn, rec.ShiftEnd)
	}
	if out.Before(rec.CheckIn) {
		return 0
	}
	return out.Sub(rec.CheckIn).Hours()
}

// effectiveHourlyRate resolves the snapshotted rate to an hourly figure.
// Monthly staff: (rate/30) spread over the net scheduled shift hours; a net
// span of zero or less yields a zero rate rather than dividing by zero.
func effectiveHourlyRate(rec *model.Attendance) decimal.Decimal {
	if rec.SalaryType != model.SalaryMonthly {
		return rec.Rate
	}
	net := shiftSpanHours(rec.ShiftStart, rec.ShiftEnd) - rec.BreakHours
	if net <= 0 {
		return decimal.Zero
	}
	daily := rec.Rate.Div(decDaysPerMonth)
	return daily.Div(decimal.NewFromFloat(net))
}

// clipWindow narrows [start, end] to the employee's employment window.
// ok is false when there is no overlap.
func clipWindow(emp *model.Employee, start, end time.Time) (time.Time, time.Time, bool) {
	if emp.HireDate.After(start) {
		start = emp.HireDate
	}
	if emp.TerminateDate != nil && emp.TerminateDate.Before(end) {
		end = *emp.TerminateDate
	}
	if start.After(end) {
		return start, end, false
	}
	return start, end, true
}

// shiftSpanHours parses two "HH:mm" strings and returns the span in hours.
func shiftSpanHours(startStr, endStr string) float64 {
	s, errS := parseClock(startStr)
	e, errE := parseClock(endStr)
	if errS != nil || errE != nil {
		return 0
	}
	return e.Sub(s).Hours()
}

// parseClock parses "HH:mm" onto a fixed reference date.
func parseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}

// atClock places an "HH:mm" wall-clock time on t's calendar day.
// A malformed clock string degenerates to midnight, yielding zero hours.
func atClock(t time.Time, clock string) time.Time {
	c, err := parseClock(clock)
	if err != nil {
		c = time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour(), c.Minute(), 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
