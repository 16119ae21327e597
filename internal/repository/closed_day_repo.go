package repository

import (
	"context"
	"time"

	"teapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClosedDayRepository interface {
	Create(ctx context.Context, d *model.ShopClosedDay) error
	// ListForWindow returns closed days with dates inside [start, end],
	// for one shop or all shops (shopID nil).
	ListForWindow(ctx context.Context, shopID *uuid.UUID, start, end time.Time) ([]model.ShopClosedDay, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type closedDayRepo struct{ db *gorm.DB }

func NewClosedDayRepository(db *gorm.DB) ClosedDayRepository { return &closedDayRepo{db: db} }

func (r *closedDayRepo) Create(ctx context.Context, d *model.ShopClosedDay) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *closedDayRepo) ListForWindow(ctx context.Context, shopID *uuid.UUID, start, end time.Time) ([]model.ShopClosedDay, error) {
	var days []model.ShopClosedDay
	q := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end.AddDate(0, 0, 1)).
		Order("date ASC")
	if shopID != nil {
		q = q.Where("shop_id = ?", *shopID)
	}
	err := q.Find(&days).Error
	return days, err
}

func (r *closedDayRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ShopClosedDay{}, id).Error
}
