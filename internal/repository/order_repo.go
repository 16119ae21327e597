package repository

import (
	"context"

	"teapos/internal/dto"
	"teapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByClientRef(ctx context.Context, clientRef string) (*model.Order, error)
	AddItemsTx(tx *gorm.DB, items []model.OrderItem) error
	UpdateTx(tx *gorm.DB, o *model.Order) error
	NextOrderNumber(ctx context.Context, tx *gorm.DB) (int, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items.Item").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) FindByClientRef(ctx context.Context, clientRef string) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("client_ref = ?", clientRef).First(&o).Error
	return &o, err
}

func (r *orderRepo) AddItemsTx(tx *gorm.DB, items []model.OrderItem) error {
	return tx.Create(&items).Error
}

func (r *orderRepo) UpdateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Save(o).Error
}

func (r *orderRepo) NextOrderNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic order number generation.
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('orders_order_number_seq')").Scan(&num).Error
	return num, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ShopID != "" {
		q = q.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&orders).Error

	return orders, total, err
}
