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
	"gorm.io/gorm"
)

type ItemsHandler struct{ svc service.ItemService }

func NewItemsHandler(svc service.ItemService) *ItemsHandler { return &ItemsHandler{svc: svc} }

// Create godoc
// @Summary      Create item
// @Description  Creates a menu/inventory item. shop_id empty makes it a global item visible in every shop.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateItemRequest true "New item"
// @Success      201  {object} dto.ItemResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/items [post]
func (h *ItemsHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
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
// @Summary      Get item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Item UUID"
// @Success      200 {object} dto.ItemResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/items/{id} [get]
func (h *ItemsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("item not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id  query string false "Filter by shop (includes global items)"
// @Param        category query string false "Filter by category"
// @Param        name     query string false "Fuzzy name match"
// @Param        active   query string false "'' active only | false | all"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.ItemListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/items [get]
func (h *ItemsHandler) List(c *gin.Context) {
	var filter dto.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list items"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update item
// @Description  Partial update; price changes never rewrite already-recorded order lines.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Item UUID"
// @Param        body body dto.UpdateItemRequest true "Fields to change"
// @Success      200  {object} dto.ItemResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/items/{id} [patch]
func (h *ItemsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary      Deactivate item
// @Tags         items
// @Security     BearerAuth
// @Param        id path string true "Item UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/items/{id} [delete]
func (h *ItemsHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// AdjustStock godoc
// @Summary      Adjust stock
// @Description  Applies a signed delta (wastage, spillage, manual count fix) and records an audit movement.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Item UUID"
// @Param        body body dto.AdjustStockRequest true "Delta and reason"
// @Success      200  {object} dto.ItemResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/items/{id}/stock [patch]
func (h *ItemsHandler) AdjustStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMovements godoc
// @Summary      List stock movements
// @Description  Audit trail for one item: sales, purchases, adjustments and cancel restores.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string true  "Item UUID"
// @Param        type  query string false "sale | purchase | adjustment | restore_cancel"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 50)"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apierror.APIError
// @Router       /v1/items/{id}/movements [get]
func (h *ItemsHandler) ListMovements(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	filter := repository.StockMovementFilter{
		ItemID: &id,
		Type:   c.Query("type"),
		Page:   page,
		Limit:  limit,
	}
	movements, total, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list movements"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movements, "total": total, "page": page, "limit": limit})
}
