package handler

import (
	"errors"
	"net/http"
	"strconv"

	"teapos/internal/apierror"
	"teapos/internal/dto"
	"teapos/internal/repository"
	"teapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchasesHandler struct{ svc service.PurchaseService }

func NewPurchasesHandler(svc service.PurchaseService) *PurchasesHandler {
	return &PurchasesHandler{svc: svc}
}

// CreateSupplier godoc
// @Summary      Create supplier
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateSupplierRequest true "New supplier"
// @Success      201  {object} dto.SupplierResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/suppliers [post]
func (h *PurchasesHandler) CreateSupplier(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListSuppliers godoc
// @Summary      List suppliers
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.SupplierResponse
// @Router       /v1/suppliers [get]
func (h *PurchasesHandler) ListSuppliers(c *gin.Context) {
	resp, err := h.svc.ListSuppliers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list suppliers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeactivateSupplier godoc
// @Summary      Deactivate supplier
// @Tags         purchases
// @Security     BearerAuth
// @Param        id path string true "Supplier UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/suppliers/{id} [delete]
func (h *PurchasesHandler) DeactivateSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeactivateSupplier(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Create godoc
// @Summary      Record purchase
// @Description  Records inbound stock ACID: purchase row, a stock movement per tracked item and one cashbook PURCHASE entry for the total.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreatePurchaseRequest true "Purchase lines"
// @Success      201  {object} dto.PurchaseResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/purchases [post]
func (h *PurchasesHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Get purchase
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Purchase UUID"
// @Success      200 {object} dto.PurchaseResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/purchases/{id} [get]
func (h *PurchasesHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("purchase not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List purchases
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id     query string false "Filter by shop"
// @Param        supplier_id query string false "Filter by supplier"
// @Param        page        query int    false "Page (default 1)"
// @Param        limit       query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.PurchaseListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/purchases [get]
func (h *PurchasesHandler) List(c *gin.Context) {
	var filter repository.PurchaseFilter
	if raw := c.Query("shop_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid shop_id"))
			return
		}
		filter.ShopID = &id
	}
	if raw := c.Query("supplier_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid supplier_id"))
			return
		}
		filter.SupplierID = &id
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list purchases"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
