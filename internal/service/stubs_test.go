package service_test

// In-memory repository stubs shared by the service tests. Transactions run
// with a nil *gorm.DB in unit test mode, so every Tx method ignores it.

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"teapos/internal/dto"
	"teapos/internal/model"
	"teapos/internal/repository"
)

func mustID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("bad uuid %q: %v", s, err)
	}
	return id
}

// ── Orders ────────────────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders    map[uuid.UUID]*model.Order
	clientIdx map[string]*model.Order
	seq       int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders:    make(map[uuid.UUID]*model.Order),
		clientIdx: make(map[string]*model.Order),
	}
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	r.orders[o.ID] = o
	if o.ClientRef != nil {
		r.clientIdx[*o.ClientRef] = o
	}
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubOrderRepo) FindByClientRef(_ context.Context, clientRef string) (*model.Order, error) {
	o, ok := r.clientIdx[clientRef]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubOrderRepo) AddItemsTx(_ *gorm.DB, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	o, ok := r.orders[items[0].OrderID]
	if !ok {
		return errors.New("order not found")
	}
	_ = o
	return nil
}

func (r *stubOrderRepo) UpdateTx(_ *gorm.DB, o *model.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) NextOrderNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── Items ─────────────────────────────────────────────────────────────────────

type stubItemRepo struct {
	items map[uuid.UUID]*model.Item
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (r *stubItemRepo) DB() *gorm.DB { return nil }

func (r *stubItemRepo) Create(_ context.Context, it *model.Item) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	r.items[it.ID] = it
	return nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *it
	return &cp, nil
}

func (r *stubItemRepo) List(_ context.Context, _ dto.ItemFilter) ([]model.Item, int64, error) {
	var out []model.Item
	for _, it := range r.items {
		out = append(out, *it)
	}
	return out, int64(len(out)), nil
}

func (r *stubItemRepo) Update(_ context.Context, it *model.Item) error {
	r.items[it.ID] = it
	return nil
}

func (r *stubItemRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if it, ok := r.items[id]; ok {
		it.Active = false
	}
	return nil
}

func (r *stubItemRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Item, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubItemRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	it, ok := r.items[id]
	if !ok {
		return errors.New("not found")
	}
	it.StockQty += delta
	return nil
}

var _ repository.ItemRepository = (*stubItemRepo)(nil)

// ── Stock movements ───────────────────────────────────────────────────────────

type stubStockRepo struct {
	movements []model.StockMovement
}

func (r *stubStockRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubStockRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubStockRepo) List(_ context.Context, _ repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

var _ repository.StockMovementRepository = (*stubStockRepo)(nil)

// ── Cashbook ──────────────────────────────────────────────────────────────────

type stubCashbookRepo struct {
	entries []model.CashbookEntry
}

func (r *stubCashbookRepo) DB() *gorm.DB { return nil }

func (r *stubCashbookRepo) Create(_ context.Context, e *model.CashbookEntry) error {
	return r.CreateTx(nil, e)
}

func (r *stubCashbookRepo) CreateTx(_ *gorm.DB, e *model.CashbookEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubCashbookRepo) List(_ context.Context, _ dto.CashbookFilter) ([]model.CashbookEntry, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

func (r *stubCashbookRepo) SumByDirection(_ context.Context, shopID *uuid.UUID, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	in, out := decimal.Zero, decimal.Zero
	for _, e := range r.entries {
		if shopID != nil && e.ShopID != *shopID {
			continue
		}
		if e.EntryDate.Before(start) || !e.EntryDate.Before(end.AddDate(0, 0, 1)) {
			continue
		}
		switch e.Direction {
		case model.CashIn:
			in = in.Add(e.Amount)
		case model.CashOut:
			out = out.Add(e.Amount)
		}
	}
	return in, out, nil
}

func (r *stubCashbookRepo) Breakdown(_ context.Context, shopID *uuid.UUID, start, end time.Time) ([]repository.BreakdownRow, error) {
	type key struct{ cat, desc, dir string }
	grouped := make(map[key]decimal.Decimal)
	var order []key
	for _, e := range r.entries {
		if shopID != nil && e.ShopID != *shopID {
			continue
		}
		if e.EntryDate.Before(start) || !e.EntryDate.Before(end.AddDate(0, 0, 1)) {
			continue
		}
		k := key{e.Category, e.Description, e.Direction}
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = grouped[k].Add(e.Amount)
	}
	rows := make([]repository.BreakdownRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, repository.BreakdownRow{
			Category:    k.cat,
			Description: k.desc,
			Direction:   k.dir,
			Total:       grouped[k],
		})
	}
	return rows, nil
}

var _ repository.CashbookRepository = (*stubCashbookRepo)(nil)

// ── Employees ─────────────────────────────────────────────────────────────────

type stubEmployeeRepo struct {
	employees map[uuid.UUID]*model.Employee
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[uuid.UUID]*model.Employee)}
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.employees[e.ID] = e
	return nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *e
	return &cp, nil
}

func (r *stubEmployeeRepo) List(_ context.Context, shopID *uuid.UUID) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range r.employees {
		if shopID != nil && e.ShopID != *shopID {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *model.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *stubEmployeeRepo) Terminate(_ context.Context, id uuid.UUID, date time.Time) error {
	e, ok := r.employees[id]
	if !ok {
		return errors.New("not found")
	}
	d := date
	e.TerminateDate = &d
	return nil
}

var _ repository.EmployeeRepository = (*stubEmployeeRepo)(nil)

// ── Attendance ────────────────────────────────────────────────────────────────

type stubAttendanceRepo struct {
	records map[uuid.UUID]*model.Attendance
}

func newStubAttendanceRepo() *stubAttendanceRepo {
	return &stubAttendanceRepo{records: make(map[uuid.UUID]*model.Attendance)}
}

func (r *stubAttendanceRepo) Create(_ context.Context, a *model.Attendance) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.records[a.ID] = a
	return nil
}

func (r *stubAttendanceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Attendance, error) {
	a, ok := r.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return a, nil
}

func (r *stubAttendanceRepo) FindOpenSession(_ context.Context, employeeID uuid.UUID) (*model.Attendance, error) {
	for _, a := range r.records {
		if a.EmployeeID == employeeID && a.CheckOut == nil {
			return a, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubAttendanceRepo) Update(_ context.Context, a *model.Attendance) error {
	r.records[a.ID] = a
	return nil
}

func (r *stubAttendanceRepo) ListForWindow(_ context.Context, shopID, employeeID *uuid.UUID, start, end time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, a := range r.records {
		if shopID != nil && a.ShopID != *shopID {
			continue
		}
		if employeeID != nil && a.EmployeeID != *employeeID {
			continue
		}
		if a.CheckIn.Before(start) || !a.CheckIn.Before(end.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

var _ repository.AttendanceRepository = (*stubAttendanceRepo)(nil)

// ── Advances ──────────────────────────────────────────────────────────────────

type stubAdvanceRepo struct {
	advances map[uuid.UUID]*model.AdvancePayment
}

func newStubAdvanceRepo() *stubAdvanceRepo {
	return &stubAdvanceRepo{advances: make(map[uuid.UUID]*model.AdvancePayment)}
}

func (r *stubAdvanceRepo) DB() *gorm.DB { return nil }

func (r *stubAdvanceRepo) CreateTx(_ *gorm.DB, a *model.AdvancePayment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.advances[a.ID] = a
	return nil
}

func (r *stubAdvanceRepo) ListUnrecovered(_ context.Context, shopID, employeeID *uuid.UUID) ([]model.AdvancePayment, error) {
	var out []model.AdvancePayment
	for _, a := range r.advances {
		if a.Recovered {
			continue
		}
		if shopID != nil && a.ShopID != *shopID {
			continue
		}
		if employeeID != nil && a.EmployeeID != *employeeID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAdvanceRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]model.AdvancePayment, error) {
	var out []model.AdvancePayment
	for _, a := range r.advances {
		if a.EmployeeID == employeeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAdvanceRepo) MarkRecoveredTx(_ *gorm.DB, advanceID, salaryPaymentID uuid.UUID) error {
	a, ok := r.advances[advanceID]
	if !ok || a.Recovered {
		return nil
	}
	a.Recovered = true
	sp := salaryPaymentID
	a.SalaryPaymentID = &sp
	return nil
}

var _ repository.AdvanceRepository = (*stubAdvanceRepo)(nil)

// ── Closed days ───────────────────────────────────────────────────────────────

type stubClosedDayRepo struct {
	days map[uuid.UUID]*model.ShopClosedDay
}

func newStubClosedDayRepo() *stubClosedDayRepo {
	return &stubClosedDayRepo{days: make(map[uuid.UUID]*model.ShopClosedDay)}
}

func (r *stubClosedDayRepo) Create(_ context.Context, d *model.ShopClosedDay) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.days[d.ID] = d
	return nil
}

func (r *stubClosedDayRepo) ListForWindow(_ context.Context, shopID *uuid.UUID, start, end time.Time) ([]model.ShopClosedDay, error) {
	var out []model.ShopClosedDay
	for _, d := range r.days {
		if shopID != nil && d.ShopID != *shopID {
			continue
		}
		if d.Date.Before(start) || !d.Date.Before(end.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubClosedDayRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.days, id)
	return nil
}

var _ repository.ClosedDayRepository = (*stubClosedDayRepo)(nil)

// ── Salary payments ───────────────────────────────────────────────────────────

type stubSalaryRepo struct {
	payments map[uuid.UUID]*model.SalaryPayment
}

func newStubSalaryRepo() *stubSalaryRepo {
	return &stubSalaryRepo{payments: make(map[uuid.UUID]*model.SalaryPayment)}
}

func (r *stubSalaryRepo) DB() *gorm.DB { return nil }

func (r *stubSalaryRepo) CreateTx(_ *gorm.DB, p *model.SalaryPayment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments[p.ID] = p
	return nil
}

func (r *stubSalaryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SalaryPayment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubSalaryRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]model.SalaryPayment, error) {
	var out []model.SalaryPayment
	for _, p := range r.payments {
		if p.EmployeeID == employeeID {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.SalaryPaymentRepository = (*stubSalaryRepo)(nil)

// ── Shops ─────────────────────────────────────────────────────────────────────

type stubShopRepo struct {
	shops map[uuid.UUID]*model.Shop
}

func newStubShopRepo() *stubShopRepo {
	return &stubShopRepo{shops: make(map[uuid.UUID]*model.Shop)}
}

func (r *stubShopRepo) Create(_ context.Context, s *model.Shop) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.shops[s.ID] = s
	return nil
}

func (r *stubShopRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubShopRepo) List(_ context.Context, includeInactive bool) ([]model.Shop, error) {
	var out []model.Shop
	for _, s := range r.shops {
		if !includeInactive && !s.Active {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubShopRepo) Update(_ context.Context, s *model.Shop) error {
	r.shops[s.ID] = s
	return nil
}

func (r *stubShopRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if s, ok := r.shops[id]; ok {
		s.Active = false
	}
	return nil
}

var _ repository.ShopRepository = (*stubShopRepo)(nil)

// ── Suppliers ─────────────────────────────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if s, ok := r.suppliers[id]; ok {
		s.Active = false
	}
	return nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// ── Purchases ─────────────────────────────────────────────────────────────────

type stubPurchaseRepo struct {
	purchases map[uuid.UUID]*model.Purchase
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[uuid.UUID]*model.Purchase)}
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Items {
		if p.Items[i].ID == uuid.Nil {
			p.Items[i].ID = uuid.New()
		}
		p.Items[i].PurchaseID = p.ID
	}
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubPurchaseRepo) List(_ context.Context, _ repository.PurchaseFilter) ([]model.Purchase, int64, error) {
	var out []model.Purchase
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// ── Fixed expenses ────────────────────────────────────────────────────────────

type stubExpenseRepo struct {
	expenses map[uuid.UUID]*model.FixedExpense
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{expenses: make(map[uuid.UUID]*model.FixedExpense)}
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.FixedExpense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.FixedExpense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return e, nil
}

func (r *stubExpenseRepo) ListActive(_ context.Context, shopID *uuid.UUID) ([]model.FixedExpense, error) {
	var out []model.FixedExpense
	for _, e := range r.expenses {
		if !e.Active {
			continue
		}
		if shopID != nil && e.ShopID != nil && *e.ShopID != *shopID {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubExpenseRepo) Update(_ context.Context, e *model.FixedExpense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *stubExpenseRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if e, ok := r.expenses[id]; ok {
		e.Active = false
	}
	return nil
}

var _ repository.FixedExpenseRepository = (*stubExpenseRepo)(nil)
