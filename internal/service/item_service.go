package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teapos/internal/dto"
	"teapos/internal/model"
	"teapos/internal/repository"
	"teapos/internal/worker"
)

type ItemService interface {
	Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error)
	List(ctx context.Context, filter dto.ItemFilter) (*dto.ItemListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// AdjustStock changes stock by hand (spoilage, recount) and records the
	// movement in the same transaction.
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ItemResponse, error)
	ListMovements(ctx context.Context, filter repository.StockMovementFilter) ([]model.StockMovement, int64, error)
}

type itemService struct {
	repo       repository.ItemRepository
	stockRepo  repository.StockMovementRepository
	dispatcher *worker.Dispatcher
}

func NewItemService(repo repository.ItemRepository, stockRepo repository.StockMovementRepository, dispatcher *worker.Dispatcher) ItemService {
	return &itemService{repo: repo, stockRepo: stockRepo, dispatcher: dispatcher}
}

func (s *itemService) Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	it := &model.Item{
		Name:       req.Name,
		Category:   req.Category,
		Price:      req.Price,
		CostPrice:  req.CostPrice,
		TrackStock: req.TrackStock,
		StockQty:   req.StockQty,
		Active:     true,
	}
	if it.Category == "" {
		it.Category = "general"
	}
	if req.ShopID != nil {
		sid, err := uuid.Parse(*req.ShopID)
		if err != nil {
			return nil, errors.New("invalid shop_id")
		}
		it.ShopID = &sid
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "items", it.ID.String(), it)
	return itemToResponse(it), nil
}

func (s *itemService) Get(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error) {
	it, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("item not found")
	}
	return itemToResponse(it), nil
}

func (s *itemService) List(ctx context.Context, filter dto.ItemFilter) (*dto.ItemListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ItemResponse, len(items))
	for i := range items {
		resp[i] = *itemToResponse(&items[i])
	}
	return &dto.ItemListResponse{Data: resp, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *itemService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	it, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("item not found")
	}
	if req.Name != "" {
		it.Name = req.Name
	}
	if req.Category != "" {
		it.Category = req.Category
	}
	if req.Price != nil {
		it.Price = *req.Price
	}
	if req.CostPrice != nil {
		it.CostPrice = *req.CostPrice
	}
	if req.TrackStock != nil {
		it.TrackStock = *req.TrackStock
	}
	it.Synced = false
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "items", it.ID.String(), it)
	return itemToResponse(it), nil
}

func (s *itemService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *itemService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ItemResponse, error) {
	it, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("item not found")
	}
	if !it.TrackStock {
		return nil, fmt.Errorf("item %s does not track stock", it.Name)
	}
	if it.StockQty+req.Delta < 0 {
		return nil, fmt.Errorf("adjustment would leave %s with negative stock", it.Name)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		before, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateStockTx(tx, id, req.Delta); err != nil {
			return err
		}
		shopID := uuid.Nil
		if before.ShopID != nil {
			shopID = *before.ShopID
		}
		mov := &model.StockMovement{
			ItemID:      id,
			ShopID:      shopID,
			Type:        "adjustment",
			Quantity:    req.Delta,
			StockBefore: before.StockQty,
			StockAfter:  before.StockQty + req.Delta,
			Note:        req.Note,
		}
		return s.stockRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	it.StockQty += req.Delta
	notifyMirror(ctx, s.dispatcher, "items", it.ID.String(), it)
	return itemToResponse(it), nil
}

func (s *itemService) ListMovements(ctx context.Context, filter repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	return s.stockRepo.List(ctx, filter)
}

func itemToResponse(it *model.Item) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ID:         it.ID.String(),
		Name:       it.Name,
		Category:   it.Category,
		Price:      it.Price,
		CostPrice:  it.CostPrice,
		StockQty:   it.StockQty,
		TrackStock: it.TrackStock,
		Active:     it.Active,
	}
	if it.ShopID != nil {
		sid := it.ShopID.String()
		resp.ShopID = &sid
	}
	return resp
}
