package repository

import (
	"context"

	"teapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FixedExpenseRepository interface {
	Create(ctx context.Context, e *model.FixedExpense) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FixedExpense, error)
	// ListActive returns active expenses for one shop plus the chain-wide
	// ones; shopID nil returns everything active.
	ListActive(ctx context.Context, shopID *uuid.UUID) ([]model.FixedExpense, error)
	Update(ctx context.Context, e *model.FixedExpense) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type fixedExpenseRepo struct{ db *gorm.DB }

func NewFixedExpenseRepository(db *gorm.DB) FixedExpenseRepository {
	return &fixedExpenseRepo{db: db}
}

func (r *fixedExpenseRepo) Create(ctx context.Context, e *model.FixedExpense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *fixedExpenseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.FixedExpense, error) {
	var e model.FixedExpense
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *fixedExpenseRepo) ListActive(ctx context.Context, shopID *uuid.UUID) ([]model.FixedExpense, error) {
	var expenses []model.FixedExpense
	q := r.db.WithContext(ctx).Where("active = true")
	if shopID != nil {
		q = q.Where("shop_id = ? OR shop_id IS NULL", *shopID)
	}
	err := q.Order("created_at ASC").Find(&expenses).Error
	return expenses, err
}

func (r *fixedExpenseRepo) Update(ctx context.Context, e *model.FixedExpense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *fixedExpenseRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.FixedExpense{}).Where("id = ?", id).
		Updates(map[string]interface{}{"active": false, "synced": false}).Error
}
