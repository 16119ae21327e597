package repository

import (
	"context"

	"teapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalaryPaymentRepository interface {
	CreateTx(tx *gorm.DB, p *model.SalaryPayment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SalaryPayment, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.SalaryPayment, error)
	DB() *gorm.DB
}

type salaryPaymentRepo struct{ db *gorm.DB }

func NewSalaryPaymentRepository(db *gorm.DB) SalaryPaymentRepository {
	return &salaryPaymentRepo{db: db}
}

func (r *salaryPaymentRepo) DB() *gorm.DB { return r.db }

func (r *salaryPaymentRepo) CreateTx(tx *gorm.DB, p *model.SalaryPayment) error {
	return tx.Create(p).Error
}

func (r *salaryPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SalaryPayment, error) {
	var p model.SalaryPayment
	err := r.db.WithContext(ctx).Preload("Employee").First(&p, id).Error
	return &p, err
}

func (r *salaryPaymentRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.SalaryPayment, error) {
	var payments []model.SalaryPayment
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).
		Order("paid_at DESC").Find(&payments).Error
	return payments, err
}
