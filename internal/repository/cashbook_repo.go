package repository

import (
	"context"
	"time"

	"teapos/internal/dto"
	"teapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BreakdownRow is one group of the categorical ledger pivot:
// (category, description, direction) with the summed amount.
type BreakdownRow struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Direction   string          `json:"direction"`
	Total       decimal.Decimal `json:"total"`
}

type CashbookRepository interface {
	Create(ctx context.Context, e *model.CashbookEntry) error
	CreateTx(tx *gorm.DB, e *model.CashbookEntry) error
	List(ctx context.Context, filter dto.CashbookFilter) ([]model.CashbookEntry, int64, error)
	// SumByDirection returns total IN and total OUT for the window.
	// shopID nil aggregates across all shops.
	SumByDirection(ctx context.Context, shopID *uuid.UUID, start, end time.Time) (in, out decimal.Decimal, err error)
	// Breakdown groups entries by (category, description, direction).
	Breakdown(ctx context.Context, shopID *uuid.UUID, start, end time.Time) ([]BreakdownRow, error)
	DB() *gorm.DB
}

type cashbookRepo struct{ db *gorm.DB }

func NewCashbookRepository(db *gorm.DB) CashbookRepository { return &cashbookRepo{db: db} }

func (r *cashbookRepo) DB() *gorm.DB { return r.db }

func (r *cashbookRepo) Create(ctx context.Context, e *model.CashbookEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *cashbookRepo) CreateTx(tx *gorm.DB, e *model.CashbookEntry) error {
	return tx.Create(e).Error
}

func (r *cashbookRepo) List(ctx context.Context, filter dto.CashbookFilter) ([]model.CashbookEntry, int64, error) {
	var entries []model.CashbookEntry
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CashbookEntry{})
	if filter.ShopID != "" {
		q = q.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Direction != "" && filter.Direction != "all" {
		q = q.Where("direction = ?", filter.Direction)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.From != "" {
		q = q.Where("entry_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("entry_date < (?::date + 1)", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	err := q.Order("entry_date DESC").Offset((page - 1) * limit).Limit(limit).Find(&entries).Error
	return entries, total, err
}

func (r *cashbookRepo) SumByDirection(ctx context.Context, shopID *uuid.UUID, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	type row struct {
		Direction string
		Total     decimal.Decimal
	}
	var rows []row

	q := r.db.WithContext(ctx).Model(&model.CashbookEntry{}).
		Select("direction, COALESCE(SUM(amount), 0) AS total").
		Where("entry_date >= ? AND entry_date < ?", start, end.AddDate(0, 0, 1)).
		Group("direction")
	if shopID != nil {
		q = q.Where("shop_id = ?", *shopID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	in, out := decimal.Zero, decimal.Zero
	for _, rw := range rows {
		switch rw.Direction {
		case model.CashIn:
			in = rw.Total
		case model.CashOut:
			out = rw.Total
		}
	}
	return in, out, nil
}

func (r *cashbookRepo) Breakdown(ctx context.Context, shopID *uuid.UUID, start, end time.Time) ([]BreakdownRow, error) {
	var rows []BreakdownRow
	q := r.db.WithContext(ctx).Model(&model.CashbookEntry{}).
		Select("category, description, direction, SUM(amount) AS total").
		Where("entry_date >= ? AND entry_date < ?", start, end.AddDate(0, 0, 1)).
		Group("category, description, direction").
		Order("category ASC, total DESC")
	if shopID != nil {
		q = q.Where("shop_id = ?", *shopID)
	}
	err := q.Scan(&rows).Error
	return rows, err
}
