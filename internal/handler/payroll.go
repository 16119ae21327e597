package handler

import (
	"fmt"
	"net/http"

	"teapos/internal/apierror"
	"teapos/internal/config"
	"teapos/internal/dto"
	"teapos/internal/infra"
	"teapos/internal/repository"
	"teapos/internal/service"
	"teapos/internal/worker"

	"github.com/gin-gonic/gin"
)

type PayrollHandler struct {
	svc        service.PayrollService
	salaryRepo repository.SalaryPaymentRepository
	empRepo    repository.EmployeeRepository
	cfg        *config.Config
	dispatcher *worker.Dispatcher
}

func NewPayrollHandler(
	svc service.PayrollService,
	salaryRepo repository.SalaryPaymentRepository,
	empRepo repository.EmployeeRepository,
	cfg *config.Config,
	dispatcher *worker.Dispatcher,
) *PayrollHandler {
	return &PayrollHandler{svc: svc, salaryRepo: salaryRepo, empRepo: empRepo, cfg: cfg, dispatcher: dispatcher}
}

// Projected godoc
// @Summary      Projected salary
// @Description  What the period would cost if settled today: attendance-derived pay plus paid closed days, minus unrecovered advances. Can be negative.
// @Tags         payroll
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id query string false "Filter by shop"
// @Param        from    query string true  "YYYY-MM-DD"
// @Param        to      query string true  "YYYY-MM-DD"
// @Success      200 {object} dto.ProjectedSalaryResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/payroll/projected [get]
func (h *PayrollHandler) Projected(c *gin.Context) {
	var filter dto.ProjectedSalaryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("from and to are required (YYYY-MM-DD)"))
		return
	}
	resp, err := h.svc.Projected(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PaySalary godoc
// @Summary      Settle salary
// @Description  Settles one employee for a period ACID: immutable payment row, pending advances marked recovered, one cashbook SALARY entry for the net.
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PaySalaryRequest true "Employee and period"
// @Success      201  {object} dto.SalaryPaymentResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/payroll/pay [post]
func (h *PayrollHandler) PaySalary(c *gin.Context) {
	var req dto.PaySalaryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.PaySalary(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListPayments godoc
// @Summary      List salary payments for an employee
// @Tags         payroll
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Employee UUID"
// @Success      200 {array} dto.SalaryPaymentResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/payroll/employees/{id}/payments [get]
func (h *PayrollHandler) ListPayments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListPayments(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list payments"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PayslipPDF godoc
// @Summary      Download payslip PDF
// @Tags         payroll
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Salary payment UUID"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/payroll/payments/{id}/payslip.pdf [get]
func (h *PayrollHandler) PayslipPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	payment, err := h.salaryRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("payment not found"))
		return
	}
	emp, err := h.empRepo.FindByID(c.Request.Context(), payment.EmployeeID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("employee not found"))
		return
	}
	path, err := infra.GeneratePayslipPDF(payment, emp, h.cfg.PDFStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to render payslip"))
		return
	}
	c.FileAttachment(path, "payslip.pdf")
}

// EmailPayslip godoc
// @Summary      Email payslip
// @Description  Renders the payslip PDF and queues it for delivery to the employee's email address.
// @Tags         payroll
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Salary payment UUID"
// @Success      202 {object} map[string]string
// @Failure      400 {object} apierror.APIError
// @Router       /v1/payroll/payments/{id}/email [post]
func (h *PayrollHandler) EmailPayslip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	payment, err := h.salaryRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("payment not found"))
		return
	}
	emp, err := h.empRepo.FindByID(c.Request.Context(), payment.EmployeeID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("employee not found"))
		return
	}
	if emp.Email == nil || *emp.Email == "" {
		c.JSON(http.StatusBadRequest, apierror.New("employee has no email address"))
		return
	}
	path, err := infra.GeneratePayslipPDF(payment, emp, h.cfg.PDFStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to render payslip"))
		return
	}
	job := worker.EmailJobPayload{
		ToEmail: *emp.Email,
		Subject: fmt.Sprintf("Payslip %s to %s", payment.PeriodStart.Format("2006-01-02"), payment.PeriodEnd.Format("2006-01-02")),
		Body:    fmt.Sprintf("Hi %s,\n\nPlease find your payslip attached.\n", emp.Name),
		PDFPath: path,
	}
	if err := h.dispatcher.EnqueueEmail(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to queue email"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
