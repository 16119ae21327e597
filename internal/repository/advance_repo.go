package repository

import (
	"context"

	"teapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdvanceRepository interface {
	CreateTx(tx *gorm.DB, a *model.AdvancePayment) error
	// ListUnrecovered returns pending advances for one employee, or for a
	// whole shop (shopID nil = all shops) when employeeID is nil.
	ListUnrecovered(ctx context.Context, shopID, employeeID *uuid.UUID) ([]model.AdvancePayment, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.AdvancePayment, error)
	// MarkRecoveredTx flips the recovered flag and links the salary payment.
	// The flag flips exactly once — already-recovered rows are not touched.
	MarkRecoveredTx(tx *gorm.DB, advanceID, salaryPaymentID uuid.UUID) error
	DB() *gorm.DB
}

type advanceRepo struct{ db *gorm.DB }

func NewAdvanceRepository(db *gorm.DB) AdvanceRepository { return &advanceRepo{db: db} }

func (r *advanceRepo) DB() *gorm.DB { return r.db }

func (r *advanceRepo) CreateTx(tx *gorm.DB, a *model.AdvancePayment) error {
	return tx.Create(a).Error
}

func (r *advanceRepo) ListUnrecovered(ctx context.Context, shopID, employeeID *uuid.UUID) ([]model.AdvancePayment, error) {
	var advances []model.AdvancePayment
	q := r.db.WithContext(ctx).Where("recovered = false")
	if shopID != nil {
		q = q.Where("shop_id = ?", *shopID)
	}
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}
	err := q.Order("given_at ASC").Find(&advances).Error
	return advances, err
}

func (r *advanceRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.AdvancePayment, error) {
	var advances []model.AdvancePayment
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).
		Order("given_at DESC").Find(&advances).Error
	return advances, err
}

func (r *advanceRepo) MarkRecoveredTx(tx *gorm.DB, advanceID, salaryPaymentID uuid.UUID) error {
	return tx.Model(&model.AdvancePayment{}).
		Where("id = ? AND recovered = false", advanceID).
		Updates(map[string]interface{}{
			"recovered":         true,
			"salary_payment_id": salaryPaymentID,
			"synced":            false,
		}).Error
}
