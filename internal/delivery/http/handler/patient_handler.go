package handler

import (
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type PatientHandler struct {
	base
	patientUsecase     usecase.PatientUsecase
	appointmentUsecase usecase.AppointmentUsecase
	invoiceUsecase     usecase.InvoiceUsecase
	recordUsecase      usecase.MedicalRecordUsecase
}

func NewPatientHandler(
	patientUsecase usecase.PatientUsecase,
	appointmentUsecase usecase.AppointmentUsecase,
	invoiceUsecase usecase.InvoiceUsecase,
	recordUsecase usecase.MedicalRecordUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *PatientHandler {
	return &PatientHandler{
		base:               newBase(validator, log),
		patientUsecase:     patientUsecase,
		appointmentUsecase: appointmentUsecase,
		invoiceUsecase:     invoiceUsecase,
		recordUsecase:      recordUsecase,
	}
}

func (h *PatientHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	patients, err := h.patientUsecase.GetAll(r.Context(), principal)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessList(w, patients, len(patients))
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	patient, err := h.patientUsecase.Get(r.Context(), principal, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, patient)
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req dto.CreatePatientRequest
	if !h.bind(w, r, &req) {
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), principal, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, patient)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdatePatientRequest
	if !h.bind(w, r, &req) {
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), principal, id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, patient)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), principal, id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, map[string]string{})
}

// MedicalRecords lists the records of one patient, newest first.
func (h *PatientHandler) MedicalRecords(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	records, err := h.recordUsecase.GetByPatient(r.Context(), principal, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessList(w, records, len(records))
}

func (h *PatientHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.GetByPatient(r.Context(), principal, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessList(w, appointments, len(appointments))
}

func (h *PatientHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	invoices, err := h.invoiceUsecase.GetByPatient(r.Context(), principal, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessList(w, invoices, len(invoices))
}
