package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"teapos/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus the schema patches. Exposed separately
// so integration tests can prepare a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Shop{},
		&model.User{},
		&model.Item{},
		&model.Order{},
		&model.OrderItem{},
		&model.StockMovement{},
		&model.CashbookEntry{},
		&model.Employee{},
		&model.Attendance{},
		&model.AdvancePayment{},
		&model.SalaryPayment{},
		&model.ShopClosedDay{},
		&model.FixedExpense{},
		&model.Supplier{},
		&model.Purchase{},
		&model.PurchaseItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Per-day visible order numbers come from a dedicated sequence so that
		// concurrent order opens never collide.
		{"create orders_order_number_seq",
			`CREATE SEQUENCE IF NOT EXISTS orders_order_number_seq START 1`},
		// Partial index for the mirror retry cron: it only ever scans unsynced rows.
		{"partial index orders unsynced", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_orders_unsynced') THEN
    CREATE INDEX idx_orders_unsynced ON orders (created_at) WHERE synced = false;
  END IF;
END $$`},
		{"partial index cashbook unsynced", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_cashbook_unsynced') THEN
    CREATE INDEX idx_cashbook_unsynced ON cashbook_entries (created_at) WHERE synced = false;
  END IF;
END $$`},
		// Open-session lookups hit (employee_id, check_out IS NULL) constantly.
		{"partial index attendance open sessions", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_attendance_open') THEN
    CREATE INDEX idx_attendance_open ON attendance_records (employee_id) WHERE check_out IS NULL;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
