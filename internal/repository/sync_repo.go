package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"teapos/internal/model"

	"gorm.io/gorm"
)

// Mirrored collections, keyed by the name used both in the job queue and in
// the cloud store path (owners/{uid}/{collection}/{id}).
var mirroredCollections = map[string]interface{}{
	"shops":            &model.Shop{},
	"items":            &model.Item{},
	"orders":           &model.Order{},
	"stock_movements":  &model.StockMovement{},
	"cashbook":         &model.CashbookEntry{},
	"employees":        &model.Employee{},
	"attendance":       &model.Attendance{},
	"advances":         &model.AdvancePayment{},
	"salary_payments":  &model.SalaryPayment{},
	"closed_days":      &model.ShopClosedDay{},
	"fixed_expenses":   &model.FixedExpense{},
	"suppliers":        &model.Supplier{},
	"purchases":        &model.Purchase{},
}

// UnsyncedRecord is one row pending a cloud mirror push.
type UnsyncedRecord struct {
	Collection string
	ID         string
	Payload    json.RawMessage
}

// SyncRepository tracks which rows still need a cloud mirror push.
// Pushes are idempotent upstream, so marking and re-listing are the only
// state transitions needed.
type SyncRepository interface {
	// ListUnsynced returns up to limit pending rows of one collection,
	// serialized as JSON.
	ListUnsynced(ctx context.Context, collection string, limit int) ([]UnsyncedRecord, error)
	// MarkSynced flips the synced flag of one row. Harmless when already set.
	MarkSynced(ctx context.Context, collection, id string) error
	// Collections lists every mirrored collection name.
	Collections() []string
}

type syncRepo struct{ db *gorm.DB }

func NewSyncRepository(db *gorm.DB) SyncRepository { return &syncRepo{db: db} }

func (r *syncRepo) Collections() []string {
	names := make([]string, 0, len(mirroredCollections))
	for name := range mirroredCollections {
		names = append(names, name)
	}
	return names
}

func (r *syncRepo) ListUnsynced(ctx context.Context, collection string, limit int) ([]UnsyncedRecord, error) {
	proto, ok := mirroredCollections[collection]
	if !ok {
		return nil, fmt.Errorf("sync: unknown collection %q", collection)
	}
	if limit < 1 {
		limit = 50
	}

	// Scan into generic maps so one query path serves every collection.
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).Model(proto).
		Where("synced = false").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]UnsyncedRecord, 0, len(rows))
	for _, row := range rows {
		id := fmt.Sprintf("%v", row["id"])
		payload, err := json.Marshal(row)
		if err != nil {
			return nil, err
		}
		records = append(records, UnsyncedRecord{Collection: collection, ID: id, Payload: payload})
	}
	return records, nil
}

func (r *syncRepo) MarkSynced(ctx context.Context, collection, id string) error {
	proto, ok := mirroredCollections[collection]
	if !ok {
		return fmt.Errorf("sync: unknown collection %q", collection)
	}
	return r.db.WithContext(ctx).Model(proto).Where("id = ?", id).Update("synced", true).Error
}
