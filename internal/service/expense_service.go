package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"teapos/internal/dto"
	"teapos/internal/model"
	"teapos/internal/payroll"
	"teapos/internal/repository"
	"teapos/internal/worker"
)

type ExpenseService interface {
	Create(ctx context.Context, req dto.CreateFixedExpenseRequest) (*dto.FixedExpenseResponse, error)
	List(ctx context.Context, shopID *uuid.UUID) ([]dto.FixedExpenseResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateFixedExpenseRequest) (*dto.FixedExpenseResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// Prorated returns the day-granular share of all active fixed expenses
	// for the window. Days before an expense was created contribute nothing.
	Prorated(ctx context.Context, shopID *uuid.UUID, start, end time.Time) (decimal.Decimal, error)
}

type expenseService struct {
	repo       repository.FixedExpenseRepository
	dispatcher *worker.Dispatcher
}

func NewExpenseService(repo repository.FixedExpenseRepository, dispatcher *worker.Dispatcher) ExpenseService {
	return &expenseService{repo: repo, dispatcher: dispatcher}
}

func (s *expenseService) Create(ctx context.Context, req dto.CreateFixedExpenseRequest) (*dto.FixedExpenseResponse, error) {
	exp := &model.FixedExpense{
		Name:          req.Name,
		MonthlyAmount: req.MonthlyAmount,
		Active:        true,
	}
	if req.ShopID != nil {
		sid, err := uuid.Parse(*req.ShopID)
		if err != nil {
			return nil, errors.New("invalid shop_id")
		}
		exp.ShopID = &sid
	}
	if err := s.repo.Create(ctx, exp); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "fixed_expenses", exp.ID.String(), exp)
	return expenseToResponse(exp), nil
}

func (s *expenseService) List(ctx context.Context, shopID *uuid.UUID) ([]dto.FixedExpenseResponse, error) {
	expenses, err := s.repo.ListActive(ctx, shopID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FixedExpenseResponse, len(expenses))
	for i := range expenses {
		resp[i] = *expenseToResponse(&expenses[i])
	}
	return resp, nil
}

func (s *expenseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateFixedExpenseRequest) (*dto.FixedExpenseResponse, error) {
	exp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("expense not found")
	}
	if req.Name != "" {
		exp.Name = req.Name
	}
	if req.MonthlyAmount != nil {
		exp.MonthlyAmount = *req.MonthlyAmount
	}
	exp.Synced = false
	if err := s.repo.Update(ctx, exp); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "fixed_expenses", exp.ID.String(), exp)
	return expenseToResponse(exp), nil
}

func (s *expenseService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *expenseService) Prorated(ctx context.Context, shopID *uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	expenses, err := s.repo.ListActive(ctx, shopID)
	if err != nil {
		return decimal.Zero, err
	}
	return payroll.ProratedExpenses(expenses, start, end), nil
}

func expenseToResponse(e *model.FixedExpense) *dto.FixedExpenseResponse {
	resp := &dto.FixedExpenseResponse{
		ID:            e.ID.String(),
		Name:          e.Name,
		MonthlyAmount: e.MonthlyAmount,
		Active:        e.Active,
		CreatedAt:     e.CreatedAt.Format("2006-01-02"),
	}
	if e.ShopID != nil {
		sid := e.ShopID.String()
		resp.ShopID = &sid
	}
	return resp
}
