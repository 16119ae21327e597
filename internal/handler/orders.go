package handler

import (
	"errors"
	"net/http"

	"teapos/internal/apierror"
	"teapos/internal/config"
	"teapos/internal/dto"
	"teapos/internal/infra"
	"teapos/internal/middleware"
	"teapos/internal/repository"
	"teapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrdersHandler struct {
	svc       service.OrderService
	orderRepo repository.OrderRepository
	shopRepo  repository.ShopRepository
	cfg       *config.Config
}

func NewOrdersHandler(
	svc service.OrderService,
	orderRepo repository.OrderRepository,
	shopRepo repository.ShopRepository,
	cfg *config.Config,
) *OrdersHandler {
	return &OrdersHandler{svc: svc, orderRepo: orderRepo, shopRepo: shopRepo, cfg: cfg}
}

// Open godoc
// @Summary      Open order
// @Description  Starts a held order (a running table tab). Nothing hits the ledger or stock until close.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.OpenOrderRequest true "Shop, optional table label and initial items"
// @Success      201  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orders [post]
func (h *OrdersHandler) Open(c *gin.Context) {
	var req dto.OpenOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Open(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AddItems godoc
// @Summary      Add items to an open order
// @Description  Appends lines at current prices and recomputes the total. Only OPEN orders accept items.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Order UUID"
// @Param        body body dto.AddOrderItemsRequest true "Lines to add"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orders/{id}/items [post]
func (h *OrdersHandler) AddItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AddOrderItemsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItems(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Close godoc
// @Summary      Close order
// @Description  Settles the tab ACID: writes the SALES ledger entry and decrements stock for tracked items.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Order UUID"
// @Param        body body dto.CloseOrderRequest true "Payment method"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orders/{id}/close [post]
func (h *OrdersHandler) Close(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CloseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancel order
// @Description  Cancels an order. A closed order gets compensating stock restores and an inverse ledger entry.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Order UUID"
// @Param        body body dto.CancelOrderRequest true "Cancellation reason"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orders/{id} [delete]
func (h *OrdersHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CancelOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), id, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Get godoc
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200 {object} dto.OrderResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/orders/{id} [get]
func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("order not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id query string false "Filter by shop"
// @Param        date    query string false "YYYY-MM-DD (default: today)"
// @Param        status  query string false "OPEN | CLOSED | CANCELLED | all"
// @Param        page    query int    false "Page (default 1)"
// @Param        limit   query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.OrderListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReceiptPDF godoc
// @Summary      Download receipt PDF
// @Description  Renders the customer receipt (A7, thermal-printer friendly) for a closed order.
// @Tags         orders
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200 {file} binary
// @Failure      400 {object} apierror.APIError
// @Router       /v1/orders/{id}/receipt.pdf [get]
func (h *OrdersHandler) ReceiptPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.orderRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("order not found"))
		return
	}
	shopName := ""
	if shop, err := h.shopRepo.FindByID(c.Request.Context(), order.ShopID); err == nil {
		shopName = shop.Name
	}
	path, err := infra.GenerateReceiptPDF(order, shopName, h.cfg.PDFStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to render receipt"))
		return
	}
	c.FileAttachment(path, "receipt.pdf")
}

// ReceiptQR godoc
// @Summary      Receipt QR code
// @Description  Returns a PNG QR encoding the order reference, for printing on receipts.
// @Tags         orders
// @Produce      image/png
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200 {file} binary
// @Failure      400 {object} apierror.APIError
// @Router       /v1/orders/{id}/receipt.qr [get]
func (h *OrdersHandler) ReceiptQR(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.orderRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("order not found"))
		return
	}
	png, err := infra.ReceiptQR(order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to render QR"))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// SyncBatch godoc
// @Summary      Sync offline orders
// @Description  Reconciles a batch of orders recorded offline on a cashier device. Idempotent per client_ref; each order reports applied, duplicate or error.
// @Tags         sync
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SyncOrdersRequest true "Batch of offline orders"
// @Success      200  {array}  dto.SyncOrderResult
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sync/orders [post]
func (h *OrdersHandler) SyncBatch(c *gin.Context) {
	var req dto.SyncOrdersRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	results, err := h.svc.SyncBatch(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, results)
}
