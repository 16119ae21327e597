package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"teapos/internal/dto"
	"teapos/internal/model"
	"teapos/internal/repository"
	"teapos/internal/worker"
)

type PurchaseService interface {
	// Suppliers
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	ListSuppliers(ctx context.Context) ([]dto.SupplierResponse, error)
	DeactivateSupplier(ctx context.Context, id uuid.UUID) error

	// Purchases
	Create(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	List(ctx context.Context, filter repository.PurchaseFilter) (*dto.PurchaseListResponse, error)
}

type purchaseService struct {
	repo         repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.ItemRepository
	stockRepo    repository.StockMovementRepository
	cashRepo     repository.CashbookRepository
	dispatcher   *worker.Dispatcher
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.ItemRepository,
	stockRepo repository.StockMovementRepository,
	cashRepo repository.CashbookRepository,
	dispatcher *worker.Dispatcher,
) PurchaseService {
	return &purchaseService{
		repo:         repo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		stockRepo:    stockRepo,
		cashRepo:     cashRepo,
		dispatcher:   dispatcher,
	}
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (s *purchaseService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	sup := &model.Supplier{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Active:  true,
	}
	if err := s.supplierRepo.Create(ctx, sup); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "suppliers", sup.ID.String(), sup)
	return supplierToResponse(sup), nil
}

func (s *purchaseService) ListSuppliers(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := s.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SupplierResponse, len(suppliers))
	for i := range suppliers {
		resp[i] = *supplierToResponse(&suppliers[i])
	}
	return resp, nil
}

func (s *purchaseService) DeactivateSupplier(ctx context.Context, id uuid.UUID) error {
	return s.supplierRepo.SoftDelete(ctx, id)
}

// ── Purchases ─────────────────────────────────────────────────────────────────
// Recording a purchase is the inbound mirror of closing an order:
// purchase row + positive stock movement per tracked line + one cashbook
// OUT PURCHASE entry, in a single transaction.

func (s *purchaseService) Create(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, errors.New("invalid shop_id")
	}
	var supplierID *uuid.UUID
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, errors.New("invalid supplier_id")
		}
		if _, err := s.supplierRepo.FindByID(ctx, sid); err != nil {
			return nil, errors.New("supplier not found")
		}
		supplierID = &sid
	}

	type resolvedPurchaseLine struct {
		itemID     uuid.UUID
		name       string
		quantity   int
		unitCost   decimal.Decimal
		subtotal   decimal.Decimal
		trackStock bool
	}
	resolved := make([]resolvedPurchaseLine, 0, len(req.Items))
	total := decimal.Zero
	for _, line := range req.Items {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid item_id: %w", err)
		}
		it, err := s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("item %s not found", line.ItemID)
		}
		subtotal := line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)
		resolved = append(resolved, resolvedPurchaseLine{
			itemID:     itemID,
			name:       it.Name,
			quantity:   line.Quantity,
			unitCost:   line.UnitCost,
			subtotal:   subtotal,
			trackStock: it.TrackStock,
		})
	}

	var purchase model.Purchase
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		purchase = model.Purchase{
			ShopID:     shopID,
			SupplierID: supplierID,
			Total:      total,
			Note:       req.Note,
		}
		for _, r := range resolved {
			purchase.Items = append(purchase.Items, model.PurchaseItem{
				ItemID:   r.itemID,
				Quantity: r.quantity,
				UnitCost: r.unitCost,
				Subtotal: r.subtotal,
			})
		}
		if err := s.repo.CreateTx(tx, &purchase); err != nil {
			return err
		}

		for _, r := range resolved {
			if !r.trackStock {
				continue
			}
			before, err := s.itemRepo.FindByIDTx(tx, r.itemID)
			if err != nil {
				return err
			}
			if err := s.itemRepo.UpdateStockTx(tx, r.itemID, r.quantity); err != nil {
				return fmt.Errorf("stock increment for %s: %w", r.name, err)
			}
			ref := purchase.ID
			mov := &model.StockMovement{
				ItemID:      r.itemID,
				ShopID:      shopID,
				Type:        "purchase",
				Quantity:    r.quantity,
				StockBefore: before.StockQty,
				StockAfter:  before.StockQty + r.quantity,
				Note:        fmt.Sprintf("Purchase %s", purchase.ID),
				ReferenceID: &ref,
			}
			if err := s.stockRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		entry := &model.CashbookEntry{
			ShopID:      shopID,
			Direction:   model.CashOut,
			Category:    model.CategoryPurchase,
			Amount:      total,
			Description: purchaseDescription(req.Note),
			ReferenceID: &purchase.ID,
			EntryDate:   time.Now(),
		}
		return s.cashRepo.CreateTx(tx, entry)
	})
	if txErr != nil {
		return nil, txErr
	}

	notifyMirror(ctx, s.dispatcher, "purchases", purchase.ID.String(), &purchase)
	return purchaseToResponse(&purchase), nil
}

func purchaseDescription(note string) string {
	if note == "" {
		return "Stock purchase"
	}
	return "Stock purchase — " + note
}

func (s *purchaseService) Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("purchase not found")
	}
	return purchaseToResponse(p), nil
}

func (s *purchaseService) List(ctx context.Context, filter repository.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	purchases, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PurchaseResponse, len(purchases))
	for i := range purchases {
		resp[i] = *purchaseToResponse(&purchases[i])
	}
	return &dto.PurchaseListResponse{Data: resp, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func supplierToResponse(s *model.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:      s.ID.String(),
		Name:    s.Name,
		Phone:   s.Phone,
		Address: s.Address,
		Active:  s.Active,
	}
}

func purchaseToResponse(p *model.Purchase) *dto.PurchaseResponse {
	lines := make([]dto.PurchaseLineResponse, 0, len(p.Items))
	for _, line := range p.Items {
		lines = append(lines, dto.PurchaseLineResponse{
			ItemID:   line.ItemID.String(),
			Quantity: line.Quantity,
			UnitCost: line.UnitCost,
			Subtotal: line.Subtotal,
		})
	}
	resp := &dto.PurchaseResponse{
		ID:        p.ID.String(),
		ShopID:    p.ShopID.String(),
		Total:     p.Total,
		Note:      p.Note,
		Items:     lines,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	if p.SupplierID != nil {
		sid := p.SupplierID.String()
		resp.SupplierID = &sid
	}
	return resp
}
