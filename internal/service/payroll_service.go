package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"teapos/internal/dto"
	"teapos/internal/model"
	"teapos/internal/payroll"
	"teapos/internal/repository"
	"teapos/internal/worker"
)

type PayrollService interface {
	// Projected returns the salary liability for a window: attendance-based
	// gross pay plus paid closed days, minus unrecovered advances.
	Projected(ctx context.Context, filter dto.ProjectedSalaryFilter) (*dto.ProjectedSalaryResponse, error)
	// PaySalary settles one employee for a period in one transaction.
	PaySalary(ctx context.Context, req dto.PaySalaryRequest) (*dto.SalaryPaymentResponse, error)
	ListPayments(ctx context.Context, employeeID uuid.UUID) ([]dto.SalaryPaymentResponse, error)
}

type payrollService struct {
	empRepo    repository.EmployeeRepository
	attRepo    repository.AttendanceRepository
	advRepo    repository.AdvanceRepository
	closedRepo repository.ClosedDayRepository
	salaryRepo repository.SalaryPaymentRepository
	cashRepo   repository.CashbookRepository
	dispatcher *worker.Dispatcher
}

func NewPayrollService(
	empRepo repository.EmployeeRepository,
	attRepo repository.AttendanceRepository,
	advRepo repository.AdvanceRepository,
	closedRepo repository.ClosedDayRepository,
	salaryRepo repository.SalaryPaymentRepository,
	cashRepo repository.CashbookRepository,
	dispatcher *worker.Dispatcher,
) PayrollService {
	return &payrollService{
		empRepo:    empRepo,
		attRepo:    attRepo,
		advRepo:    advRepo,
		closedRepo: closedRepo,
		salaryRepo: salaryRepo,
		cashRepo:   cashRepo,
		dispatcher: dispatcher,
	}
}

func parseWindow(from, to string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from date")
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to date")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("window end precedes start")
	}
	return start, end, nil
}

func (s *payrollService) Projected(ctx context.Context, filter dto.ProjectedSalaryFilter) (*dto.ProjectedSalaryResponse, error) {
	start, end, err := parseWindow(filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	var shopID *uuid.UUID
	if filter.ShopID != "" {
		sid, err := uuid.Parse(filter.ShopID)
		if err != nil {
			return nil, errors.New("invalid shop_id")
		}
		shopID = &sid
	}

	in, err := s.loadInput(ctx, shopID, nil, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.ProjectedSalaryResponse{
		From:   filter.From,
		To:     filter.To,
		Amount: payroll.ProjectedSalary(*in),
	}, nil
}

// loadInput assembles the engine input from the repositories. employeeID,
// when set, restricts everything to one employee.
func (s *payrollService) loadInput(ctx context.Context, shopID, employeeID *uuid.UUID, start, end time.Time) (*payroll.Input, error) {
	var employees []model.Employee
	if employeeID != nil {
		emp, err := s.empRepo.FindByID(ctx, *employeeID)
		if err != nil {
			return nil, errors.New("employee not found")
		}
		employees = []model.Employee{*emp}
	} else {
		var err error
		employees, err = s.empRepo.List(ctx, shopID)
		if err != nil {
			return nil, err
		}
	}

	rows, err := s.attRepo.ListForWindow(ctx, shopID, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	attendance := make(map[string][]model.Attendance, len(employees))
	for _, rec := range rows {
		key := rec.EmployeeID.String()
		attendance[key] = append(attendance[key], rec)
	}

	closedDays, err := s.closedRepo.ListForWindow(ctx, shopID, start, end)
	if err != nil {
		return nil, err
	}
	advances, err := s.advRepo.ListUnrecovered(ctx, shopID, employeeID)
	if err != nil {
		return nil, err
	}

	return &payroll.Input{
		Start:      start,
		End:        end,
		Now:        time.Now(),
		Employees:  employees,
		Attendance: attendance,
		ClosedDays: closedDays,
		Advances:   advances,
	}, nil
}

// ── PaySalary ─────────────────────────────────────────────────────────────────
// Settlement transaction:
//  1. gross = engine result for the employee's clipped window
//  2. deduction = unrecovered advances, each flipped exactly once
//  3. one immutable SalaryPayment row
//  4. one cashbook OUT SALARY entry for the net amount
// All four land atomically; a crash mid-way leaves no advance half-recovered.

func (s *payrollService) PaySalary(ctx context.Context, req dto.PaySalaryRequest) (*dto.SalaryPaymentResponse, error) {
	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, errors.New("invalid employee_id")
	}
	start, end, err := parseWindow(req.From, req.To)
	if err != nil {
		return nil, err
	}
	emp, err := s.empRepo.FindByID(ctx, empID)
	if err != nil {
		return nil, errors.New("employee not found")
	}

	in, err := s.loadInput(ctx, nil, &empID, start, end)
	if err != nil {
		return nil, err
	}
	// Gross only — the deduction is applied below, advance by advance.
	gross := payroll.ProjectedSalary(payroll.Input{
		Start:      in.Start,
		End:        in.End,
		Now:        in.Now,
		Employees:  in.Employees,
		Attendance: in.Attendance,
		ClosedDays: in.ClosedDays,
	})

	advances, err := s.advRepo.ListUnrecovered(ctx, nil, &empID)
	if err != nil {
		return nil, err
	}
	deduction := decimal.Zero
	for _, adv := range advances {
		deduction = deduction.Add(adv.Amount)
	}
	net := gross.Sub(deduction)
	if net.IsNegative() {
		net = decimal.Zero
	}

	method := req.Method
	if method == "" {
		method = "cash"
	}

	payment := &model.SalaryPayment{
		EmployeeID:       empID,
		ShopID:           emp.ShopID,
		Gross:            gross,
		AdvanceDeduction: deduction,
		Net:              net,
		PeriodStart:      start,
		PeriodEnd:        end,
		Method:           method,
		PaidAt:           time.Now(),
	}

	txErr := runTx(ctx, s.salaryRepo.DB(), func(tx *gorm.DB) error {
		if err := s.salaryRepo.CreateTx(tx, payment); err != nil {
			return err
		}
		for _, adv := range advances {
			if err := s.advRepo.MarkRecoveredTx(tx, adv.ID, payment.ID); err != nil {
				return err
			}
		}
		if net.IsZero() {
			// Nothing left the till; the payment row alone records the
			// recovery of the advances.
			return nil
		}
		entry := &model.CashbookEntry{
			ShopID:      emp.ShopID,
			Direction:   model.CashOut,
			Category:    model.CategorySalary,
			Amount:      net,
			Description: fmt.Sprintf("Salary %s (%s to %s)", emp.Name, req.From, req.To),
			ReferenceID: &payment.ID,
			EntryDate:   payment.PaidAt,
		}
		return s.cashRepo.CreateTx(tx, entry)
	})
	if txErr != nil {
		return nil, txErr
	}

	notifyMirror(ctx, s.dispatcher, "salary_payments", payment.ID.String(), payment)
	resp := salaryPaymentToResponse(payment)
	resp.EmployeeName = emp.Name
	return resp, nil
}

func (s *payrollService) ListPayments(ctx context.Context, employeeID uuid.UUID) ([]dto.SalaryPaymentResponse, error) {
	payments, err := s.salaryRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SalaryPaymentResponse, len(payments))
	for i := range payments {
		resp[i] = *salaryPaymentToResponse(&payments[i])
	}
	return resp, nil
}

func salaryPaymentToResponse(p *model.SalaryPayment) *dto.SalaryPaymentResponse {
	return &dto.SalaryPaymentResponse{
		ID:               p.ID.String(),
		EmployeeID:       p.EmployeeID.String(),
		Gross:            p.Gross,
		AdvanceDeduction: p.AdvanceDeduction,
		Net:              p.Net,
		PeriodStart:      p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        p.PeriodEnd.Format("2006-01-02"),
		Method:           p.Method,
		PaidAt:           p.PaidAt.Format(time.RFC3339),
	}
}
