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

type StaffHandler struct {
	base
	staffUsecase       usecase.StaffUsecase
	appointmentUsecase usecase.AppointmentUsecase
}

func NewStaffHandler(
	staffUsecase usecase.StaffUsecase,
	appointmentUsecase usecase.AppointmentUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *StaffHandler {
	return &StaffHandler{
		base:               newBase(validator, log),
		staffUsecase:       staffUsecase,
		appointmentUsecase: appointmentUsecase,
	}
}

// GetAll lists staff members, optionally filtered by department, position and status
func (h *StaffHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := entity.StaffFilter{
		Department: query.Get("department"),
		Position:   query.Get("position"),
		Status:     query.Get("status"),
	}

	staff, err := h.staffUsecase.GetAll(r.Context(), principal, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessList(w, staff, len(staff))
}

func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	staff, err := h.staffUsecase.Get(r.Context(), principal, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, staff)
}

func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req dto.CreateStaffRequest
	if !h.bind(w, r, &req) {
		return
	}

	staff, err := h.staffUsecase.Create(r.Context(), principal, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, staff)
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateStaffRequest
	if !h.bind(w, r, &req) {
		return
	}

	staff, err := h.staffUsecase.Update(r.Context(), principal, id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, staff)
}

func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.staffUsecase.Delete(r.Context(), principal, id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, map[string]string{})
}

// Appointments lists the schedule of one staff member with optional date and status filters
func (h *StaffHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
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

	appointments, err := h.appointmentUsecase.GetByStaff(r.Context(), principal, id, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessList(w, appointments, len(appointments))
}
