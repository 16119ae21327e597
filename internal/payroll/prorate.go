package payroll

import (
	"time"

	"teapos/internal/model"

	"github.com/shopspring/decimal"
)

// ProratedExpenses distributes each fixed monthly expense across the days of
// [start, end] inclusive, proportional to the number of days in each day's own
// calendar month. Day granularity blends the daily rate correctly when the
// window crosses a month boundary.
//
// An expense only applies from its creation day onward — it cannot be charged
// retroactively against income earned before it existed.
func ProratedExpenses(expenses []model.FixedExpense, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	from := dateOnly(start)
	to := dateOnly(end)
	if from.After(to) {
		return total
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		days := decimal.NewFromInt(int64(daysInMonth(day)))
		for i := range expenses {
			exp := &expenses[i]
			if dateOnly(exp.CreatedAt).After(day) {
				continue
			}
			total = total.Add(exp.MonthlyAmount.Div(days))
		}
	}
	return total
}

// daysInMonth returns the number of calendar days in t's month.
func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
