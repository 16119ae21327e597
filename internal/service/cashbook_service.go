package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"teapos/internal/dto"
	"teapos/internal/model"
	"teapos/internal/repository"
	"teapos/internal/worker"
)

type CashbookService interface {
	// AddManualEntry appends one hand-written ledger line. The ledger is
	// append-only: mistakes are corrected with inverse entries, never edits.
	AddManualEntry(ctx context.Context, req dto.ManualEntryRequest) (*dto.CashbookEntryResponse, error)
	List(ctx context.Context, filter dto.CashbookFilter) (*dto.CashbookListResponse, error)
}

type cashbookService struct {
	repo       repository.CashbookRepository
	dispatcher *worker.Dispatcher
}

func NewCashbookService(repo repository.CashbookRepository, dispatcher *worker.Dispatcher) CashbookService {
	return &cashbookService{repo: repo, dispatcher: dispatcher}
}

func (s *cashbookService) AddManualEntry(ctx context.Context, req dto.ManualEntryRequest) (*dto.CashbookEntryResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, errors.New("invalid shop_id")
	}

	entryDate := time.Now()
	if req.EntryDate != "" {
		d, err := time.Parse("2006-01-02", req.EntryDate)
		if err != nil {
			return nil, errors.New("invalid entry_date")
		}
		entryDate = d
	}

	entry := &model.CashbookEntry{
		ShopID:      shopID,
		Direction:   req.Direction,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		EntryDate:   entryDate,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	notifyMirror(ctx, s.dispatcher, "cashbook", entry.ID.String(), entry)
	return cashbookToResponse(entry), nil
}

func (s *cashbookService) List(ctx context.Context, filter dto.CashbookFilter) (*dto.CashbookListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CashbookEntryResponse, len(entries))
	for i := range entries {
		resp[i] = *cashbookToResponse(&entries[i])
	}
	return &dto.CashbookListResponse{Data: resp, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func cashbookToResponse(e *model.CashbookEntry) *dto.CashbookEntryResponse {
	resp := &dto.CashbookEntryResponse{
		ID:          e.ID.String(),
		ShopID:      e.ShopID.String(),
		Direction:   e.Direction,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		EntryDate:   e.EntryDate.Format(time.RFC3339),
	}
	if e.ReferenceID != nil {
		ref := e.ReferenceID.String()
		resp.ReferenceID = &ref
	}
	return resp
}
