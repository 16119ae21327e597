package router

import (
	"time"

	"teapos/internal/config"
	"teapos/internal/handler"
	"teapos/internal/infra"
	"teapos/internal/middleware"
	"teapos/internal/repository"
	"teapos/internal/service"
	"teapos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mirrorCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	itemRepo := repository.NewItemRepository(db)
	stockRepo := repository.NewStockMovementRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	cashRepo := repository.NewCashbookRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	attRepo := repository.NewAttendanceRepository(db)
	advRepo := repository.NewAdvanceRepository(db)
	closedRepo := repository.NewClosedDayRepository(db)
	salaryRepo := repository.NewSalaryPaymentRepository(db)
	expenseRepo := repository.NewFixedExpenseRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	shopSvc := service.NewShopService(shopRepo, dispatcher)
	itemSvc := service.NewItemService(itemRepo, stockRepo, dispatcher)
	orderSvc := service.NewOrderService(orderRepo, itemRepo, stockRepo, cashRepo, dispatcher)
	cashSvc := service.NewCashbookService(cashRepo, dispatcher)
	staffSvc := service.NewStaffService(empRepo, attRepo, advRepo, closedRepo, cashRepo, dispatcher)
	payrollSvc := service.NewPayrollService(empRepo, attRepo, advRepo, closedRepo, salaryRepo, cashRepo, dispatcher)
	expenseSvc := service.NewExpenseService(expenseRepo, dispatcher)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, supplierRepo, itemRepo, stockRepo, cashRepo, dispatcher)
	reportSvc := service.NewReportService(cashRepo, shopRepo, payrollSvc, expenseSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	shopsH := handler.NewShopsHandler(shopSvc)
	itemsH := handler.NewItemsHandler(itemSvc)
	ordersH := handler.NewOrdersHandler(orderSvc, orderRepo, shopRepo, cfg)
	cashbookH := handler.NewCashbookHandler(cashSvc)
	staffH := handler.NewStaffHandler(staffSvc)
	payrollH := handler.NewPayrollHandler(payrollSvc, salaryRepo, empRepo, cfg, dispatcher)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mirrorCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cashier, manager, owner — declared per-endpoint
		staffAny := middleware.RequireRole("cashier", "manager", "owner")
		managerUp := middleware.RequireRole("manager", "owner")
		ownerOnly := middleware.RequireRole("owner")

		// Orders — the cashier's day-to-day surface
		v1.POST("/orders", staffAny, ordersH.Open)
		v1.GET("/orders", staffAny, ordersH.List)
		v1.GET("/orders/:id", staffAny, ordersH.Get)
		v1.POST("/orders/:id/items", staffAny, ordersH.AddItems)
		v1.POST("/orders/:id/close", staffAny, ordersH.Close)
		v1.DELETE("/orders/:id", managerUp, ordersH.Cancel)
		v1.GET("/orders/:id/receipt.pdf", staffAny, ordersH.ReceiptPDF)
		v1.GET("/orders/:id/receipt.qr", staffAny, ordersH.ReceiptQR)

		// Offline sync (cashier device batch close + owner dashboard)
		v1.POST("/sync/orders", staffAny, ordersH.SyncBatch)
		v1.GET("/sync/all-shops-summary", ownerOnly, reportsH.AllShopsSummary)

		// Items — everyone reads, managers write
		v1.GET("/items", staffAny, itemsH.List)
		v1.GET("/items/:id", staffAny, itemsH.Get)
		v1.GET("/items/:id/movements", managerUp, itemsH.ListMovements)
		v1.PATCH("/items/:id/stock", managerUp, itemsH.AdjustStock)
		items := v1.Group("/items", managerUp)
		{
			items.POST("", itemsH.Create)
			items.PATCH("/:id", itemsH.Update)
			items.DELETE("/:id", itemsH.Deactivate)
		}

		// Cashbook
		v1.POST("/cashbook", staffAny, cashbookH.AddEntry)
		v1.GET("/cashbook", staffAny, cashbookH.List)

		// Staff — managers run attendance and advances
		staff := v1.Group("/staff", managerUp)
		{
			staff.POST("/employees", staffH.CreateEmployee)
			staff.GET("/employees", staffH.ListEmployees)
			staff.GET("/employees/:id", staffH.GetEmployee)
			staff.PATCH("/employees/:id", staffH.UpdateEmployee)
			staff.POST("/employees/:id/terminate", staffH.TerminateEmployee)
			staff.POST("/check-in", staffH.CheckIn)
			staff.POST("/employees/:id/check-out", staffH.CheckOut)
			staff.GET("/attendance", staffH.ListAttendance)
			staff.POST("/advances", staffH.CreateAdvance)
			staff.GET("/employees/:id/advances", staffH.ListAdvances)
			staff.POST("/closed-days", staffH.CreateClosedDay)
			staff.GET("/closed-days", staffH.ListClosedDays)
			staff.DELETE("/closed-days/:id", staffH.DeleteClosedDay)
		}

		// Payroll — settlement is owner-only, projections manager+
		v1.GET("/payroll/projected", managerUp, payrollH.Projected)
		v1.POST("/payroll/pay", ownerOnly, payrollH.PaySalary)
		v1.GET("/payroll/employees/:id/payments", managerUp, payrollH.ListPayments)
		v1.GET("/payroll/payments/:id/payslip.pdf", managerUp, payrollH.PayslipPDF)
		v1.POST("/payroll/payments/:id/email", managerUp, payrollH.EmailPayslip)

		// Fixed expenses
		expenses := v1.Group("/expenses", managerUp)
		{
			expenses.POST("", expensesH.Create)
			expenses.GET("", expensesH.List)
			expenses.PATCH("/:id", expensesH.Update)
			expenses.DELETE("/:id", expensesH.Deactivate)
		}

		// Suppliers and purchases
		v1.POST("/suppliers", managerUp, purchasesH.CreateSupplier)
		v1.GET("/suppliers", managerUp, purchasesH.ListSuppliers)
		v1.DELETE("/suppliers/:id", managerUp, purchasesH.DeactivateSupplier)
		v1.POST("/purchases", managerUp, purchasesH.Create)
		v1.GET("/purchases", managerUp, purchasesH.List)
		v1.GET("/purchases/:id", managerUp, purchasesH.Get)

		// Shops and reports — owner territory
		v1.GET("/shops", staffAny, shopsH.List)
		v1.GET("/shops/:id", staffAny, shopsH.Get)
		shops := v1.Group("/shops", ownerOnly)
		{
			shops.POST("", shopsH.Create)
			shops.PATCH("/:id", shopsH.Update)
			shops.DELETE("/:id", shopsH.Deactivate)
		}

		reports := v1.Group("/reports", ownerOnly)
		{
			reports.GET("/summary", reportsH.Summary)
			reports.GET("/breakdown", reportsH.Breakdown)
			reports.GET("/breakdown.xlsx", reportsH.BreakdownXLSX)
		}

		users := v1.Group("/users", ownerOnly)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PATCH("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
			users.POST("/:id/reactivate", authH.ReactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
