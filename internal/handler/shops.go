package handler

import (
	"errors"
	"net/http"

	"teapos/internal/apierror"
	"teapos/internal/dto"
	"teapos/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ShopsHandler struct{ svc service.ShopService }

func NewShopsHandler(svc service.ShopService) *ShopsHandler { return &ShopsHandler{svc: svc} }

// Create godoc
// @Summary      Create shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateShopRequest true "New shop"
// @Success      201  {object} dto.ShopResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/shops [post]
func (h *ShopsHandler) Create(c *gin.Context) {
	var req dto.CreateShopRequest
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
// @Summary      Get shop
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Shop UUID"
// @Success      200 {object} dto.ShopResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/shops/{id} [get]
func (h *ShopsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("shop not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List shops
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive query bool false "Include deactivated shops"
// @Success      200 {array} dto.ShopResponse
// @Router       /v1/shops [get]
func (h *ShopsHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list shops"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Shop UUID"
// @Param        body body dto.UpdateShopRequest true "Fields to change"
// @Success      200  {object} dto.ShopResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/shops/{id} [patch]
func (h *ShopsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateShopRequest
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
// @Summary      Deactivate shop
// @Description  Soft-deletes: the shop disappears from pickers but its history stays.
// @Tags         shops
// @Security     BearerAuth
// @Param        id path string true "Shop UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/shops/{id} [delete]
func (h *ShopsHandler) Deactivate(c *gin.Context) {
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
