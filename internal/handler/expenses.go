package handler

import (
	"net/http"

	"teapos/internal/apierror"
	"teapos/internal/dto"
	"teapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExpensesHandler struct{ svc service.ExpenseService }

func NewExpensesHandler(svc service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{svc: svc}
}

// Create godoc
// @Summary      Create fixed expense
// @Description  Registers a recurring monthly cost (rent, electricity). Reports prorate it day-by-day; it never writes ledger entries.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateFixedExpenseRequest true "New expense"
// @Success      201  {object} dto.FixedExpenseResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/expenses [post]
func (h *ExpensesHandler) Create(c *gin.Context) {
	var req dto.CreateFixedExpenseRequest
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

// List godoc
// @Summary      List fixed expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id query string false "Filter by shop (chain-wide expenses always included)"
// @Success      200 {array} dto.FixedExpenseResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/expenses [get]
func (h *ExpensesHandler) List(c *gin.Context) {
	var shopID *uuid.UUID
	if raw := c.Query("shop_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid shop_id"))
			return
		}
		shopID = &id
	}
	resp, err := h.svc.List(c.Request.Context(), shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list expenses"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update fixed expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Expense UUID"
// @Param        body body dto.UpdateFixedExpenseRequest true "Fields to change"
// @Success      200  {object} dto.FixedExpenseResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/expenses/{id} [patch]
func (h *ExpensesHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateFixedExpenseRequest
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
// @Summary      Deactivate fixed expense
// @Tags         expenses
// @Security     BearerAuth
// @Param        id path string true "Expense UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/expenses/{id} [delete]
func (h *ExpensesHandler) Deactivate(c *gin.Context) {
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
