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

type AppointmentHandler struct {
	base
	appointmentUsecase usecase.AppointmentUsecase
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator, log *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		base:               newBase(validator, log),
		appointmentUsecase: appointmentUsecase,
	}
}

// GetAll lists the appointments visible to the caller
// @Summary List appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param date query string false "YYYY-MM-DD"
// @Param status query string false "Appointment status"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	date, ok := queryDate(w, r, "date")
	if !ok {
		return
	}

	filter := entity.AppointmentFilter{
		Date:   date,
		Status: r.URL.Query().Get("status"),
	}

	appointments, err := h.appointmentUsecase.GetAll(r.Context(), principal, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessList(w, appointments, len(appointments))
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), principal, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, appointment)
}

// Create books an appointment
// @Summary Create appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Appointment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req dto.CreateAppointmentRequest
	if !h.bind(w, r, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), principal, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, appointment)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateAppointmentRequest
	if !h.bind(w, r, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), principal, id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), principal, id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, map[string]string{})
}
