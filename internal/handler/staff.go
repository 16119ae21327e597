package handler

import (
	"errors"
	"net/http"
	"time"

	"teapos/internal/apierror"
	"teapos/internal/dto"
	"teapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffHandler struct{ svc service.StaffService }

func NewStaffHandler(svc service.StaffService) *StaffHandler { return &StaffHandler{svc: svc} }

// ─── Employees ───────────────────────────────────────────────────────────────

// CreateEmployee godoc
// @Summary      Create employee
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateEmployeeRequest true "New employee"
// @Success      201  {object} dto.EmployeeResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/staff/employees [post]
func (h *StaffHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetEmployee godoc
// @Summary      Get employee
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Employee UUID"
// @Success      200 {object} dto.EmployeeResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/staff/employees/{id} [get]
func (h *StaffHandler) GetEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetEmployee(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("employee not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListEmployees godoc
// @Summary      List employees
// @Description  Terminated staff are included so payroll history stays browsable.
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id query string false "Filter by shop"
// @Success      200 {array} dto.EmployeeResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/staff/employees [get]
func (h *StaffHandler) ListEmployees(c *gin.Context) {
	var shopID *uuid.UUID
	if raw := c.Query("shop_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid shop_id"))
			return
		}
		shopID = &id
	}
	resp, err := h.svc.ListEmployees(c.Request.Context(), shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list employees"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateEmployee godoc
// @Summary      Update employee
// @Description  Changes pay parameters going forward. Already-recorded attendance keeps its snapshotted rate.
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Employee UUID"
// @Param        body body dto.UpdateEmployeeRequest true "Fields to change"
// @Success      200  {object} dto.EmployeeResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/staff/employees/{id} [patch]
func (h *StaffHandler) UpdateEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateEmployee(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TerminateEmployee godoc
// @Summary      Terminate employee
// @Description  Marks the last working day. Payroll clips every calculation at this date.
// @Tags         staff
// @Accept       json
// @Security     BearerAuth
// @Param        id   path string true "Employee UUID"
// @Param        body body dto.TerminateEmployeeRequest true "Last working day"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/staff/employees/{id}/terminate [post]
func (h *StaffHandler) TerminateEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.TerminateEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.TerminateEmployee(c.Request.Context(), id, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Attendance ──────────────────────────────────────────────────────────────

// CheckIn godoc
// @Summary      Check in
// @Description  Opens a work session and snapshots the employee's current rate and shift so later raises don't rewrite history.
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CheckInRequest true "Employee and session type"
// @Success      201  {object} dto.AttendanceResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/staff/check-in [post]
func (h *StaffHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CheckIn(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CheckOut godoc
// @Summary      Check out
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Employee UUID"
// @Success      200 {object} dto.AttendanceResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/staff/employees/{id}/check-out [post]
func (h *StaffHandler) CheckOut(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.CheckOut(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAttendance godoc
// @Summary      List attendance
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id     query string false "Filter by shop"
// @Param        employee_id query string false "Filter by employee"
// @Param        from        query string true  "YYYY-MM-DD"
// @Param        to          query string true  "YYYY-MM-DD"
// @Success      200 {array} dto.AttendanceResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/staff/attendance [get]
func (h *StaffHandler) ListAttendance(c *gin.Context) {
	var filter dto.AttendanceWindowFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("from and to are required (YYYY-MM-DD)"))
		return
	}
	resp, err := h.svc.ListAttendance(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ─── Advances ────────────────────────────────────────────────────────────────

// CreateAdvance godoc
// @Summary      Give salary advance
// @Description  Records the advance and the matching cashbook OUT entry. The amount is deducted at the next salary settlement.
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateAdvanceRequest true "Advance"
// @Success      201  {object} dto.AdvanceResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/staff/advances [post]
func (h *StaffHandler) CreateAdvance(c *gin.Context) {
	var req dto.CreateAdvanceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateAdvance(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListAdvances godoc
// @Summary      List advances for an employee
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Employee UUID"
// @Success      200 {array} dto.AdvanceResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/staff/employees/{id}/advances [get]
func (h *StaffHandler) ListAdvances(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListAdvances(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list advances"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ─── Closed days ─────────────────────────────────────────────────────────────

// CreateClosedDay godoc
// @Summary      Mark shop closed day
// @Description  Festival/holiday closure. With pay_salary true, staff who did not work that day are still paid.
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateClosedDayRequest true "Closed day"
// @Success      201  {object} dto.ClosedDayResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/staff/closed-days [post]
func (h *StaffHandler) CreateClosedDay(c *gin.Context) {
	var req dto.CreateClosedDayRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateClosedDay(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListClosedDays godoc
// @Summary      List closed days
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id query string false "Filter by shop"
// @Param        from    query string true  "YYYY-MM-DD"
// @Param        to      query string true  "YYYY-MM-DD"
// @Success      200 {array} dto.ClosedDayResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/staff/closed-days [get]
func (h *StaffHandler) ListClosedDays(c *gin.Context) {
	var shopID *uuid.UUID
	if raw := c.Query("shop_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid shop_id"))
			return
		}
		shopID = &id
	}
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid from date (YYYY-MM-DD)"))
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid to date (YYYY-MM-DD)"))
		return
	}
	resp, err := h.svc.ListClosedDays(c.Request.Context(), shopID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list closed days"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteClosedDay godoc
// @Summary      Delete closed day
// @Tags         staff
// @Security     BearerAuth
// @Param        id path string true "Closed day UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/staff/closed-days/{id} [delete]
func (h *StaffHandler) DeleteClosedDay(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteClosedDay(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
