package payroll

import (
	"testing"
	"time"

	"teapos/internal/model"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProratedTenDaysOfThirtyDayMonth(t *testing.T) {
	// 3000/month created on day 1 of a 30-day month, 10-day window: 10 x 100.
	exp := []model.FixedExpense{{
		Name: "rent", MonthlyAmount: d("3000"),
		CreatedAt: day(2025, time.April, 1),
	}}
	got := ProratedExpenses(exp, day(2025, time.April, 1), day(2025, time.April, 10))
	assert.True(t, got.Equal(d("1000")), "got %s", got)
}

func TestProratedSkipsDaysBeforeCreation(t *testing.T) {
	exp := []model.FixedExpense{{
		Name: "wifi", MonthlyAmount: d("3000"),
		CreatedAt: day(2025, time.April, 6),
	}}
	// Window covers 1..10 but only days 6..10 are charged.
	got := ProratedExpenses(exp, day(2025, time.April, 1), day(2025, time.April, 10))
	assert.True(t, got.Equal(d("500")), "got %s", got)
}

func TestProratedBlendsAcrossMonthBoundary(t *testing.T) {
	// 310/month: 31-day March days cost 10, 30-day April days cost 310/30.
	exp := []model.FixedExpense{{
		Name: "rent", MonthlyAmount: d("310"),
		CreatedAt: day(2025, time.January, 1),
	}}
	got := ProratedExpenses(exp, day(2025, time.March, 30), day(2025, time.April, 2))
	want := d("20").Add(d("310").Div(d("30")).Mul(d("2")))
	assert.True(t, got.Equal(want), "got %s want %s", got, want)
}

func TestProratedInvertedWindowIsZero(t *testing.T) {
	exp := []model.FixedExpense{{Name: "rent", MonthlyAmount: d("3000"), CreatedAt: day(2025, time.April, 1)}}
	got := ProratedExpenses(exp, day(2025, time.April, 10), day(2025, time.April, 1))
	assert.True(t, got.IsZero())
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, daysInMonth(day(2025, time.March, 15)))
	assert.Equal(t, 30, daysInMonth(day(2025, time.April, 1)))
	assert.Equal(t, 28, daysInMonth(day(2025, time.February, 10)))
	assert.Equal(t, 29, daysInMonth(day(2024, time.February, 10)))
}
