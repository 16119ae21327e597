package repository

import (
	"context"

	"teapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseFilter defines filters for listing purchases.
type PurchaseFilter struct {
	ShopID     *uuid.UUID
	SupplierID *uuid.UUID
	Page       int
	Limit      int
}

type PurchaseRepository interface {
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context, filter PurchaseFilter) ([]model.Purchase, int64, error)
	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) DB() *gorm.DB { return r.db }

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).Preload("Items.Item").Preload("Supplier").First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context, filter PurchaseFilter) ([]model.Purchase, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Purchase{})
	if filter.ShopID != nil {
		q = q.Where("shop_id = ?", *filter.ShopID)
	}
	if filter.SupplierID != nil {
		q = q.Where("supplier_id = ?", *filter.SupplierID)
	}

	var total int64
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

	var purchases []model.Purchase
	err := q.Preload("Items").Preload("Supplier").
		Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).
		Find(&purchases).Error
	return purchases, total, err
}
