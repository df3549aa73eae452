package handler

import (
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type MedicalRecordHandler struct {
	base
	recordUsecase usecase.MedicalRecordUsecase
}

func NewMedicalRecordHandler(recordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator, log *logrus.Logger) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		base:          newBase(validator, log),
		recordUsecase: recordUsecase,
	}
}

func (h *MedicalRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req dto.CreateMedicalRecordRequest
	if !h.bind(w, r, &req) {
		return
	}

	record, err := h.recordUsecase.Create(r.Context(), principal, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, record)
}

func (h *MedicalRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	record, err := h.recordUsecase.Get(r.Context(), principal, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, record)
}
