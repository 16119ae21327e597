package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"teapos/internal/dto"
	"teapos/internal/model"
	"teapos/internal/repository"
	"teapos/internal/worker"
)

type ShopService interface {
	Create(ctx context.Context, req dto.CreateShopRequest) (*dto.ShopResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ShopResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.ShopResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateShopRequest) (*dto.ShopResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type shopService struct {
	repo       repository.ShopRepository
	dispatcher *worker.Dispatcher
}

func NewShopService(repo repository.ShopRepository, dispatcher *worker.Dispatcher) ShopService {
	return &shopService{repo: repo, dispatcher: dispatcher}
}

func (s *shopService) Create(ctx context.Context, req dto.CreateShopRequest) (*dto.ShopResponse, error) {
	shop := &model.Shop{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  true,
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "shops", shop.ID.String(), shop)
	return shopToResponse(shop), nil
}

func (s *shopService) Get(ctx context.Context, id uuid.UUID) (*dto.ShopResponse, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("shop not found")
	}
	return shopToResponse(shop), nil
}

func (s *shopService) List(ctx context.Context, includeInactive bool) ([]dto.ShopResponse, error) {
	shops, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ShopResponse, len(shops))
	for i := range shops {
		resp[i] = *shopToResponse(&shops[i])
	}
	return resp, nil
}

func (s *shopService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("shop not found")
	}
	if req.Name != "" {
		shop.Name = req.Name
	}
	if req.Address != nil {
		shop.Address = req.Address
	}
	if req.Phone != nil {
		shop.Phone = req.Phone
	}
	shop.Synced = false
	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "shops", shop.ID.String(), shop)
	return shopToResponse(shop), nil
}

func (s *shopService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func shopToResponse(sh *model.Shop) *dto.ShopResponse {
	return &dto.ShopResponse{
		ID:      sh.ID.String(),
		Name:    sh.Name,
		Address: sh.Address,
		Phone:   sh.Phone,
		Active:  sh.Active,
	}
}
