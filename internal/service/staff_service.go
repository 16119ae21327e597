package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teapos/internal/dto"
	"teapos/internal/model"
	"teapos/internal/repository"
	"teapos/internal/worker"
)

type StaffService interface {
	// Employees
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error)
	ListEmployees(ctx context.Context, shopID *uuid.UUID) ([]dto.EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	TerminateEmployee(ctx context.Context, id uuid.UUID, req dto.TerminateEmployeeRequest) error

	// Attendance
	CheckIn(ctx context.Context, req dto.CheckInRequest) (*dto.AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID uuid.UUID) (*dto.AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter dto.AttendanceWindowFilter) ([]dto.AttendanceResponse, error)

	// Advances
	CreateAdvance(ctx context.Context, req dto.CreateAdvanceRequest) (*dto.AdvanceResponse, error)
	ListAdvances(ctx context.Context, employeeID uuid.UUID) ([]dto.AdvanceResponse, error)

	// Closed days
	CreateClosedDay(ctx context.Context, req dto.CreateClosedDayRequest) (*dto.ClosedDayResponse, error)
	ListClosedDays(ctx context.Context, shopID *uuid.UUID, from, to time.Time) ([]dto.ClosedDayResponse, error)
	DeleteClosedDay(ctx context.Context, id uuid.UUID) error
}

type staffService struct {
	empRepo    repository.EmployeeRepository
	attRepo    repository.AttendanceRepository
	advRepo    repository.AdvanceRepository
	closedRepo repository.ClosedDayRepository
	cashRepo   repository.CashbookRepository
	dispatcher *worker.Dispatcher
}

func NewStaffService(
	empRepo repository.EmployeeRepository,
	attRepo repository.AttendanceRepository,
	advRepo repository.AdvanceRepository,
	closedRepo repository.ClosedDayRepository,
	cashRepo repository.CashbookRepository,
	dispatcher *worker.Dispatcher,
) StaffService {
	return &staffService{
		empRepo:    empRepo,
		attRepo:    attRepo,
		advRepo:    advRepo,
		closedRepo: closedRepo,
		cashRepo:   cashRepo,
		dispatcher: dispatcher,
	}
}

// ── Employees ─────────────────────────────────────────────────────────────────

func (s *staffService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, errors.New("invalid shop_id")
	}
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return nil, errors.New("invalid hire_date")
	}

	emp := &model.Employee{
		ShopID:     shopID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		SalaryType: req.SalaryType,
		SalaryRate: req.SalaryRate,
		ShiftStart: req.ShiftStart,
		ShiftEnd:   req.ShiftEnd,
		BreakHours: req.BreakHours,
		HireDate:   hireDate,
	}
	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "employees", emp.ID.String(), emp)
	return employeeToResponse(emp), nil
}

func (s *staffService) GetEmployee(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error) {
	emp, err := s.empRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("employee not found")
	}
	return employeeToResponse(emp), nil
}

func (s *staffService) ListEmployees(ctx context.Context, shopID *uuid.UUID) ([]dto.EmployeeResponse, error) {
	emps, err := s.empRepo.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EmployeeResponse, len(emps))
	for i := range emps {
		resp[i] = *employeeToResponse(&emps[i])
	}
	return resp, nil
}

// UpdateEmployee edits pay parameters going forward only: attendance rows
// snapshot the rate at check-in, so past pay never changes.
func (s *staffService) UpdateEmployee(ctx context.Context, id uuid.UUID, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	emp, err := s.empRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("employee not found")
	}
	if req.Name != "" {
		emp.Name = req.Name
	}
	if req.Phone != nil {
		emp.Phone = req.Phone
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.SalaryType != "" {
		emp.SalaryType = req.SalaryType
	}
	if req.SalaryRate != nil {
		emp.SalaryRate = *req.SalaryRate
	}
	if req.ShiftStart != "" {
		emp.ShiftStart = req.ShiftStart
	}
	if req.ShiftEnd != "" {
		emp.ShiftEnd = req.ShiftEnd
	}
	if req.BreakHours != nil {
		emp.BreakHours = *req.BreakHours
	}
	emp.Synced = false
	if err := s.empRepo.Update(ctx, emp); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "employees", emp.ID.String(), emp)
	return employeeToResponse(emp), nil
}

func (s *staffService) TerminateEmployee(ctx context.Context, id uuid.UUID, req dto.TerminateEmployeeRequest) error {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return errors.New("invalid date")
	}
	emp, err := s.empRepo.FindByID(ctx, id)
	if err != nil {
		return errors.New("employee not found")
	}
	if date.Before(emp.HireDate) {
		return errors.New("terminate date cannot precede hire date")
	}
	return s.empRepo.Terminate(ctx, id, date)
}

// ── Attendance ────────────────────────────────────────────────────────────────

// CheckIn opens a session and snapshots the employee's pay parameters.
// A second check-in while a session is open is rejected.
func (s *staffService) CheckIn(ctx context.Context, req dto.CheckInRequest) (*dto.AttendanceResponse, error) {
	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, errors.New("invalid employee_id")
	}
	emp, err := s.empRepo.FindByID(ctx, empID)
	if err != nil {
		return nil, errors.New("employee not found")
	}
	if emp.TerminateDate != nil && !emp.TerminateDate.After(time.Now()) {
		return nil, fmt.Errorf("%s is terminated and cannot check in", emp.Name)
	}
	if open, err := s.attRepo.FindOpenSession(ctx, empID); err == nil && open != nil {
		return nil, fmt.Errorf("%s already has an open session since %s", emp.Name, open.CheckIn.Format("15:04"))
	}

	recType := req.Type
	if recType == "" {
		recType = model.AttendanceWork
	}

	rec := &model.Attendance{
		EmployeeID: empID,
		ShopID:     emp.ShopID,
		Type:       recType,
		CheckIn:    time.Now(),
		Rate:       emp.SalaryRate,
		SalaryType: emp.SalaryType,
		ShiftStart: emp.ShiftStart,
		ShiftEnd:   emp.ShiftEnd,
		BreakHours: emp.BreakHours,
	}
	if err := s.attRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "attendance", rec.ID.String(), rec)
	return attendanceToResponse(rec), nil
}

func (s *staffService) CheckOut(ctx context.Context, employeeID uuid.UUID) (*dto.AttendanceResponse, error) {
	rec, err := s.attRepo.FindOpenSession(ctx, employeeID)
	if err != nil || rec == nil {
		return nil, errors.New("no open session for this employee")
	}
	now := time.Now()
	if now.Before(rec.CheckIn) {
		return nil, errors.New("checkout cannot precede checkin")
	}
	rec.CheckOut = &now
	rec.Synced = false
	if err := s.attRepo.Update(ctx, rec); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "attendance", rec.ID.String(), rec)
	return attendanceToResponse(rec), nil
}

func (s *staffService) ListAttendance(ctx context.Context, filter dto.AttendanceWindowFilter) ([]dto.AttendanceResponse, error) {
	start, err := time.Parse("2006-01-02", filter.From)
	if err != nil {
		return nil, errors.New("invalid from date")
	}
	end, err := time.Parse("2006-01-02", filter.To)
	if err != nil {
		return nil, errors.New("invalid to date")
	}

	var shopID, empID *uuid.UUID
	if filter.ShopID != "" {
		sid, err := uuid.Parse(filter.ShopID)
		if err != nil {
			return nil, errors.New("invalid shop_id")
		}
		shopID = &sid
	}
	if filter.EmployeeID != "" {
		eid, err := uuid.Parse(filter.EmployeeID)
		if err != nil {
			return nil, errors.New("invalid employee_id")
		}
		empID = &eid
	}

	rows, err := s.attRepo.ListForWindow(ctx, shopID, empID, start, end)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AttendanceResponse, len(rows))
	for i := range rows {
		resp[i] = *attendanceToResponse(&rows[i])
	}
	return resp, nil
}

// ── Advances ──────────────────────────────────────────────────────────────────

// CreateAdvance hands cash to an employee before payday. The advance and its
// OUT ledger entry land in one transaction, because the money leaves the till
// the moment the advance exists.
func (s *staffService) CreateAdvance(ctx context.Context, req dto.CreateAdvanceRequest) (*dto.AdvanceResponse, error) {
	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, errors.New("invalid employee_id")
	}
	emp, err := s.empRepo.FindByID(ctx, empID)
	if err != nil {
		return nil, errors.New("employee not found")
	}

	adv := &model.AdvancePayment{
		EmployeeID: empID,
		ShopID:     emp.ShopID,
		Amount:     req.Amount,
		Note:       req.Note,
		GivenAt:    time.Now(),
	}
	txErr := runTx(ctx, s.advRepo.DB(), func(tx *gorm.DB) error {
		if err := s.advRepo.CreateTx(tx, adv); err != nil {
			return err
		}
		entry := &model.CashbookEntry{
			ShopID:      emp.ShopID,
			Direction:   model.CashOut,
			Category:    model.CategoryAdvance,
			Amount:      req.Amount,
			Description: fmt.Sprintf("Advance to %s", emp.Name),
			ReferenceID: &adv.ID,
			EntryDate:   adv.GivenAt,
		}
		return s.cashRepo.CreateTx(tx, entry)
	})
	if txErr != nil {
		return nil, txErr
	}

	notifyMirror(ctx, s.dispatcher, "advances", adv.ID.String(), adv)
	return advanceToResponse(adv), nil
}

func (s *staffService) ListAdvances(ctx context.Context, employeeID uuid.UUID) ([]dto.AdvanceResponse, error) {
	advances, err := s.advRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AdvanceResponse, len(advances))
	for i := range advances {
		resp[i] = *advanceToResponse(&advances[i])
	}
	return resp, nil
}

// ── Closed days ───────────────────────────────────────────────────────────────

func (s *staffService) CreateClosedDay(ctx context.Context, req dto.CreateClosedDayRequest) (*dto.ClosedDayResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, errors.New("invalid shop_id")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.New("invalid date")
	}
	day := &model.ShopClosedDay{
		ShopID:    shopID,
		Date:      date,
		PaySalary: req.PaySalary,
		Reason:    req.Reason,
	}
	if err := s.closedRepo.Create(ctx, day); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "closed_days", day.ID.String(), day)
	return closedDayToResponse(day), nil
}

func (s *staffService) ListClosedDays(ctx context.Context, shopID *uuid.UUID, from, to time.Time) ([]dto.ClosedDayResponse, error) {
	days, err := s.closedRepo.ListForWindow(ctx, shopID, from, to)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClosedDayResponse, len(days))
	for i := range days {
		resp[i] = *closedDayToResponse(&days[i])
	}
	return resp, nil
}

func (s *staffService) DeleteClosedDay(ctx context.Context, id uuid.UUID) error {
	return s.closedRepo.Delete(ctx, id)
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func employeeToResponse(e *model.Employee) *dto.EmployeeResponse {
	resp := &dto.EmployeeResponse{
		ID:         e.ID.String(),
		ShopID:     e.ShopID.String(),
		Name:       e.Name,
		Phone:      e.Phone,
		Email:      e.Email,
		SalaryType: e.SalaryType,
		SalaryRate: e.SalaryRate,
		ShiftStart: e.ShiftStart,
		ShiftEnd:   e.ShiftEnd,
		BreakHours: e.BreakHours,
		HireDate:   e.HireDate.Format("2006-01-02"),
	}
	if e.TerminateDate != nil {
		td := e.TerminateDate.Format("2006-01-02")
		resp.TerminateDate = &td
	}
	return resp
}

func attendanceToResponse(a *model.Attendance) *dto.AttendanceResponse {
	resp := &dto.AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		Type:       a.Type,
		CheckIn:    a.CheckIn.Format(time.RFC3339),
		Rate:       a.Rate,
		SalaryType: a.SalaryType,
	}
	if a.CheckOut != nil {
		out := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &out
	}
	return resp
}

func advanceToResponse(a *model.AdvancePayment) *dto.AdvanceResponse {
	resp := &dto.AdvanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		Amount:     a.Amount,
		Note:       a.Note,
		GivenAt:    a.GivenAt.Format(time.RFC3339),
		Recovered:  a.Recovered,
	}
	if a.SalaryPaymentID != nil {
		sp := a.SalaryPaymentID.String()
		resp.SalaryPaymentID = &sp
	}
	return resp
}

func closedDayToResponse(d *model.ShopClosedDay) *dto.ClosedDayResponse {
	return &dto.ClosedDayResponse{
		ID:        d.ID.String(),
		ShopID:    d.ShopID.String(),
		Date:      d.Date.Format("2006-01-02"),
		PaySalary: d.PaySalary,
		Reason:    d.Reason,
	}
}
