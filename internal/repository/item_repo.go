package repository

import (
	"context"

	"teapos/internal/dto"
	"teapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemRepository defines the data access contract for menu items.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context, filter dto.ItemFilter) ([]model.Item, int64, error)
	Update(ctx context.Context, it *model.Item) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Item, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) DB() *gorm.DB { return r.db }

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).First(&it, id).Error
	return &it, err
}

func (r *itemRepo) List(ctx context.Context, filter dto.ItemFilter) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Item{})

	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}
	if filter.ShopID != "" {
		// Shop-scoped plus global items.
		q = q.Where("shop_id = ? OR shop_id IS NULL", filter.ShopID)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *itemRepo) Update(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *itemRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).
		Updates(map[string]interface{}{"active": false, "synced": false}).Error
}

func (r *itemRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Item, error) {
	var it model.Item
	err := tx.First(&it, id).Error
	return &it, err
}

func (r *itemRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Item{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_qty": gorm.Expr("stock_qty + ?", delta),
			"synced":    false,
		}).Error
}
