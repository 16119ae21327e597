package handler

import (
	"fmt"
	"net/http"
	"time"

	"teapos/internal/apierror"
	"teapos/internal/dto"
	"teapos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) bindFilter(c *gin.Context) (dto.ReportFilter, bool) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return filter, false
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("from and to are required (YYYY-MM-DD)"))
		return filter, false
	}
	return filter, true
}

// Summary godoc
// @Summary      Cash flow summary
// @Description  Net for a window: ledger IN minus ledger OUT minus projected salary minus prorated fixed expenses.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id query string false "Filter by shop"
// @Param        from    query string true  "YYYY-MM-DD"
// @Param        to      query string true  "YYYY-MM-DD"
// @Success      200 {object} dto.CashFlowSummary
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reports/summary [get]
func (h *ReportsHandler) Summary(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Breakdown godoc
// @Summary      Ledger breakdown
// @Description  Pivots the ledger by (category, description, direction) so the owner sees where the money went.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id query string false "Filter by shop"
// @Param        from    query string true  "YYYY-MM-DD"
// @Param        to      query string true  "YYYY-MM-DD"
// @Success      200 {array} repository.BreakdownRow
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reports/breakdown [get]
func (h *ReportsHandler) Breakdown(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.Breakdown(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BreakdownXLSX godoc
// @Summary      Download ledger breakdown as Excel
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        shop_id query string false "Filter by shop"
// @Param        from    query string true  "YYYY-MM-DD"
// @Param        to      query string true  "YYYY-MM-DD"
// @Success      200 {file} binary
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reports/breakdown.xlsx [get]
func (h *ReportsHandler) BreakdownXLSX(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	data, err := h.svc.BreakdownXLSX(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	filename := fmt.Sprintf("breakdown_%s_%s.xlsx", filter.From, filter.To)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// AllShopsSummary godoc
// @Summary      All-shops dashboard
// @Description  One cash flow summary per active shop, for the owner's consolidated view.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "YYYY-MM-DD (default: first of current month)"
// @Param        to   query string false "YYYY-MM-DD (default: today)"
// @Success      200 {object} dto.AllShopsSummaryResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/sync/all-shops-summary [get]
func (h *ReportsHandler) AllShopsSummary(c *gin.Context) {
	now := time.Now()
	from := c.DefaultQuery("from", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02"))
	to := c.DefaultQuery("to", now.Format("2006-01-02"))

	resp, err := h.svc.AllShopsSummary(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
