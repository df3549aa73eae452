package handler

import (
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type BillingHandler struct {
	base
	invoiceUsecase usecase.InvoiceUsecase
}

func NewBillingHandler(invoiceUsecase usecase.InvoiceUsecase, validator *validator.CustomValidator, log *logrus.Logger) *BillingHandler {
	return &BillingHandler{
		base:           newBase(validator, log),
		invoiceUsecase: invoiceUsecase,
	}
}

// GetAll lists invoices, newest first. startDate and endDate are inclusive.
func (h *BillingHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	startDate, ok := queryDate(w, r, "startDate")
	if !ok {
		return
	}
	endDate, ok := queryDate(w, r, "endDate")
	if !ok {
		return
	}

	filter := entity.InvoiceFilter{
		Status:    r.URL.Query().Get("status"),
		StartDate: startDate,
		EndDate:   endDate,
	}

	invoices, err := h.invoiceUsecase.GetAll(r.Context(), principal, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessList(w, invoices, len(invoices))
}

func (h *BillingHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceUsecase.Get(r.Context(), principal, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, invoice)
}

func (h *BillingHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req dto.CreateInvoiceRequest
	if !h.bind(w, r, &req) {
		return
	}

	invoice, err := h.invoiceUsecase.Create(r.Context(), principal, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, invoice)
}

func (h *BillingHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateInvoiceRequest
	if !h.bind(w, r, &req) {
		return
	}

	invoice, err := h.invoiceUsecase.Update(r.Context(), principal, id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, invoice)
}

// Pay marks an invoice as paid
// @Summary Pay invoice
// @Tags Billing
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.PayInvoiceRequest true "Payment"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /billing/{id}/pay [put]
func (h *BillingHandler) Pay(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dto.PayInvoiceRequest
	if !h.bind(w, r, &req) {
		return
	}

	invoice, err := h.invoiceUsecase.Pay(r.Context(), principal, id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, invoice)
}

func (h *BillingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.invoiceUsecase.Delete(r.Context(), principal, id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, map[string]string{})
}
