package handler

import (
	"net/http"

	"teapos/internal/apierror"
	"teapos/internal/dto"
	"teapos/internal/service"

	"github.com/gin-gonic/gin"
)

type CashbookHandler struct{ svc service.CashbookService }

func NewCashbookHandler(svc service.CashbookService) *CashbookHandler {
	return &CashbookHandler{svc: svc}
}

// AddEntry godoc
// @Summary      Add manual ledger entry
// @Description  Records a hand-written cashbook line (till top-up, milkman, etc.). The ledger is append-only: mistakes are fixed with a counter-entry, never edited.
// @Tags         cashbook
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ManualEntryRequest true "Entry"
// @Success      201  {object} dto.CashbookEntryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cashbook [post]
func (h *CashbookHandler) AddEntry(c *gin.Context) {
	var req dto.ManualEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddManualEntry(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List ledger entries
// @Tags         cashbook
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id   query string false "Filter by shop"
// @Param        direction query string false "IN | OUT | all"
// @Param        category  query string false "SALES | PURCHASE | SALARY | ADVANCE | ..."
// @Param        from      query string false "YYYY-MM-DD"
// @Param        to        query string false "YYYY-MM-DD"
// @Param        page      query int    false "Page (default 1)"
// @Param        limit     query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.CashbookListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/cashbook [get]
func (h *CashbookHandler) List(c *gin.Context) {
	var filter dto.CashbookFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list cashbook"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
