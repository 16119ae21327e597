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

type OrderService interface {
	Open(ctx context.Context, userID uuid.UUID, req dto.OpenOrderRequest) (*dto.OrderResponse, error)
	AddItems(ctx context.Context, id uuid.UUID, req dto.AddOrderItemsRequest) (*dto.OrderResponse, error)
	Close(ctx context.Context, id uuid.UUID, req dto.CloseOrderRequest) (*dto.OrderResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, req dto.CancelOrderRequest) error
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	SyncBatch(ctx context.Context, userID uuid.UUID, req dto.SyncOrdersRequest) ([]dto.SyncOrderResult, error)
}

type orderService struct {
	repo       repository.OrderRepository
	itemRepo   repository.ItemRepository
	stockRepo  repository.StockMovementRepository
	cashRepo   repository.CashbookRepository
	dispatcher *worker.Dispatcher
}

func NewOrderService(
	repo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	stockRepo repository.StockMovementRepository,
	cashRepo repository.CashbookRepository,
	dispatcher *worker.Dispatcher,
) OrderService {
	return &orderService{
		repo:       repo,
		itemRepo:   itemRepo,
		stockRepo:  stockRepo,
		cashRepo:   cashRepo,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolvedLine is one order line after menu lookup, with the name and price
// snapshotted so later menu edits never alter the bill.
type resolvedLine struct {
	itemID     uuid.UUID
	name       string
	price      decimal.Decimal
	quantity   int
	subtotal   decimal.Decimal
	trackStock bool
}

func (s *orderService) resolveLines(ctx context.Context, lines []dto.OrderLineRequest) ([]resolvedLine, decimal.Decimal, error) {
	resolved := make([]resolvedLine, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("invalid item_id: %w", err)
		}
		it, err := s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("item %s not found", line.ItemID)
		}
		if !it.Active {
			return nil, decimal.Zero, fmt.Errorf("item %s is inactive and cannot be sold", it.Name)
		}
		subtotal := it.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)
		resolved = append(resolved, resolvedLine{
			itemID:     itemID,
			name:       it.Name,
			price:      it.Price,
			quantity:   line.Quantity,
			subtotal:   subtotal,
			trackStock: it.TrackStock,
		})
	}
	return resolved, total, nil
}

// ── Open ──────────────────────────────────────────────────────────────────────
// Opens a held order (a running table tab). No money or stock moves yet;
// both happen only at close time.

func (s *orderService) Open(ctx context.Context, userID uuid.UUID, req dto.OpenOrderRequest) (*dto.OrderResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("invalid shop_id: %w", err)
	}

	resolved, total, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	var order model.Order
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		num, err := s.repo.NextOrderNumber(ctx, tx)
		if err != nil {
			return err
		}
		order = model.Order{
			OrderNumber: num,
			ShopID:      shopID,
			UserID:      userID,
			TableLabel:  req.TableLabel,
			Status:      model.OrderOpen,
			Total:       total,
		}
		for _, r := range resolved {
			order.Items = append(order.Items, model.OrderItem{
				ItemID:    r.itemID,
				ItemName:  r.name,
				UnitPrice: r.price,
				Quantity:  r.quantity,
				Subtotal:  r.subtotal,
			})
		}
		return s.repo.Create(ctx, tx, &order)
	})
	if txErr != nil {
		return nil, txErr
	}

	return orderToResponse(&order), nil
}

// AddItems appends lines to an OPEN order and recalculates the total.
func (s *orderService) AddItems(ctx context.Context, id uuid.UUID, req dto.AddOrderItemsRequest) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.Status != model.OrderOpen {
		return nil, fmt.Errorf("order #%d is %s, items can only be added to an open order", order.OrderNumber, order.Status)
	}

	resolved, added, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		items := make([]model.OrderItem, 0, len(resolved))
		for _, r := range resolved {
			items = append(items, model.OrderItem{
				OrderID:   order.ID,
				ItemID:    r.itemID,
				ItemName:  r.name,
				UnitPrice: r.price,
				Quantity:  r.quantity,
				Subtotal:  r.subtotal,
			})
		}
		if err := s.repo.AddItemsTx(tx, items); err != nil {
			return err
		}
		order.Items = append(order.Items, items...)
		order.Total = order.Total.Add(added)
		return s.repo.UpdateTx(tx, order)
	})
	if txErr != nil {
		return nil, txErr
	}
	return orderToResponse(order), nil
}

// ── Close ─────────────────────────────────────────────────────────────────────
// Closing is the only operation that moves money and stock for a sale.
// Single ACID transaction:
//  1. flip the order to CLOSED with the payment method
//  2. one SALES cashbook entry for the full total
//  3. one negative stock movement per tracked line
// Either all three land or none do.

func (s *orderService) Close(ctx context.Context, id uuid.UUID, req dto.CloseOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.Status != model.OrderOpen {
		return nil, fmt.Errorf("order #%d is already %s", order.OrderNumber, order.Status)
	}
	if len(order.Items) == 0 {
		return nil, errors.New("an empty order cannot be closed")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		now := time.Now()
		order.Status = model.OrderClosed
		order.PaymentMethod = &req.PaymentMethod
		order.ClosedAt = &now
		order.Synced = false
		if err := s.repo.UpdateTx(tx, order); err != nil {
			return err
		}

		entry := &model.CashbookEntry{
			ShopID:      order.ShopID,
			Direction:   model.CashIn,
			Category:    model.CategorySales,
			Amount:      order.Total,
			Description: fmt.Sprintf("Order #%d", order.OrderNumber),
			ReferenceID: &order.ID,
			EntryDate:   now,
		}
		if err := s.cashRepo.CreateTx(tx, entry); err != nil {
			return err
		}

		return s.decrementStockTx(tx, order)
	})
	if txErr != nil {
		return nil, txErr
	}

	notifyMirror(ctx, s.dispatcher, "orders", order.ID.String(), order)
	return orderToResponse(order), nil
}

// decrementStockTx writes one negative movement per tracked line.
// Untracked (made-to-order) items never produce movements.
func (s *orderService) decrementStockTx(tx *gorm.DB, order *model.Order) error {
	for _, line := range order.Items {
		before, err := s.itemRepo.FindByIDTx(tx, line.ItemID)
		if err != nil {
			return fmt.Errorf("stock lookup for %s: %w", line.ItemName, err)
		}
		if !before.TrackStock {
			continue
		}
		if err := s.itemRepo.UpdateStockTx(tx, line.ItemID, -line.Quantity); err != nil {
			return fmt.Errorf("stock decrement for %s: %w", line.ItemName, err)
		}
		ref := order.ID
		mov := &model.StockMovement{
			ItemID:      line.ItemID,
			ShopID:      order.ShopID,
			Type:        "sale",
			Quantity:    -line.Quantity,
			StockBefore: before.StockQty,
			StockAfter:  before.StockQty - line.Quantity,
			Note:        fmt.Sprintf("Order #%d", order.OrderNumber),
			ReferenceID: &ref,
		}
		if err := s.stockRepo.CreateTx(tx, mov); err != nil {
			return err
		}
	}
	return nil
}

// ── Cancel ────────────────────────────────────────────────────────────────────
// Cancelling an OPEN order just flips the status. Cancelling a CLOSED order
// compensates: restore movements per tracked line and one inverse OUT entry
// in the cashbook, because the ledger is append-only.

func (s *orderService) Cancel(ctx context.Context, id uuid.UUID, req dto.CancelOrderRequest) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("order not found")
	}
	if order.Status == model.OrderCancelled {
		return errors.New("order is already cancelled")
	}
	wasClosed := order.Status == model.OrderClosed

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order.Status = model.OrderCancelled
		order.Synced = false
		if err := s.repo.UpdateTx(tx, order); err != nil {
			return err
		}
		if !wasClosed {
			return nil
		}

		for _, line := range order.Items {
			before, err := s.itemRepo.FindByIDTx(tx, line.ItemID)
			if err != nil {
				return err
			}
			if !before.TrackStock {
				continue
			}
			if err := s.itemRepo.UpdateStockTx(tx, line.ItemID, line.Quantity); err != nil {
				return err
			}
			ref := order.ID
			mov := &model.StockMovement{
				ItemID:      line.ItemID,
				ShopID:      order.ShopID,
				Type:        "restore_cancel",
				Quantity:    line.Quantity,
				StockBefore: before.StockQty,
				StockAfter:  before.StockQty + line.Quantity,
				Note:        fmt.Sprintf("Cancel order #%d — %s", order.OrderNumber, req.Reason),
				ReferenceID: &ref,
			}
			if err := s.stockRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		entry := &model.CashbookEntry{
			ShopID:      order.ShopID,
			Direction:   model.CashOut,
			Category:    model.CategorySales,
			Amount:      order.Total,
			Description: fmt.Sprintf("Cancel order #%d — %s", order.OrderNumber, req.Reason),
			ReferenceID: &order.ID,
			EntryDate:   time.Now(),
		}
		return s.cashRepo.CreateTx(tx, entry)
	})
	if txErr != nil {
		return txErr
	}

	notifyMirror(ctx, s.dispatcher, "orders", order.ID.String(), order)
	return nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Status == "" {
		filter.Status = model.OrderClosed
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── SyncBatch ─────────────────────────────────────────────────────────────────
// Reconciles orders recorded offline on a cashier device. Idempotent:
// client_ref deduplicates replays, so a device can resend its whole journal
// after a flaky upload and nothing double-counts.

func (s *orderService) SyncBatch(ctx context.Context, userID uuid.UUID, req dto.SyncOrdersRequest) ([]dto.SyncOrderResult, error) {
	results := make([]dto.SyncOrderResult, 0, len(req.Orders))
	for _, o := range req.Orders {
		if existing, err := s.repo.FindByClientRef(ctx, o.ClientRef); err == nil {
			results = append(results, dto.SyncOrderResult{
				ClientRef: o.ClientRef,
				Status:    "duplicate",
				OrderID:   existing.ID.String(),
			})
			continue
		}

		resp, err := s.applySyncedOrder(ctx, userID, o)
		if err != nil {
			results = append(results, dto.SyncOrderResult{
				ClientRef: o.ClientRef,
				Status:    "error",
				Error:     err.Error(),
			})
			continue
		}
		results = append(results, dto.SyncOrderResult{
			ClientRef: o.ClientRef,
			Status:    "applied",
			OrderID:   resp.ID,
		})
	}
	return results, nil
}

// applySyncedOrder lands one offline order as a CLOSED order with the full
// close-time side effects, in the same single transaction a live close uses.
func (s *orderService) applySyncedOrder(ctx context.Context, userID uuid.UUID, req dto.SyncOrderRequest) (*dto.OrderResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("invalid shop_id: %w", err)
	}
	resolved, total, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	var order model.Order
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		num, err := s.repo.NextOrderNumber(ctx, tx)
		if err != nil {
			return err
		}
		now := time.Now()
		clientRef := req.ClientRef
		method := req.PaymentMethod
		order = model.Order{
			OrderNumber:   num,
			ShopID:        shopID,
			UserID:        userID,
			Status:        model.OrderClosed,
			Total:         total,
			PaymentMethod: &method,
			ClientRef:     &clientRef,
			ClosedAt:      &now,
		}
		for _, r := range resolved {
			order.Items = append(order.Items, model.OrderItem{
				ItemID:    r.itemID,
				ItemName:  r.name,
				UnitPrice: r.price,
				Quantity:  r.quantity,
				Subtotal:  r.subtotal,
			})
		}
		if err := s.repo.Create(ctx, tx, &order); err != nil {
			return err
		}

		entry := &model.CashbookEntry{
			ShopID:      shopID,
			Direction:   model.CashIn,
			Category:    model.CategorySales,
			Amount:      total,
			Description: fmt.Sprintf("Order #%d", num),
			ReferenceID: &order.ID,
			EntryDate:   now,
		}
		if err := s.cashRepo.CreateTx(tx, entry); err != nil {
			return err
		}
		return s.decrementStockTx(tx, &order)
	})
	if txErr != nil {
		return nil, txErr
	}

	notifyMirror(ctx, s.dispatcher, "orders", order.ID.String(), &order)
	return orderToResponse(&order), nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Items))
	for _, line := range o.Items {
		lines = append(lines, dto.OrderLineResponse{
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}
	resp := &dto.OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		ShopID:        o.ShopID.String(),
		TableLabel:    o.TableLabel,
		Status:        o.Status,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		Items:         lines,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
	if o.ClosedAt != nil {
		closed := o.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &closed
	}
	return resp
}
