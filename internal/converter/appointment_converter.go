package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	endTime := ""
	if !a.EndsAt.IsZero() {
		endTime = a.EndsAt.Format("15:04")
	}

	return &dto.AppointmentResponse{
		ID:        a.ID,
		PatientID: a.PatientID,
		StaffID:   a.StaffID,
		Patient:   PatientToSummary(a.Patient),
		Staff:     StaffToSummary(a.Staff),
		Date:      formatDate(a.Date),
		Time:      a.Time,
		EndTime:   endTime,
		Duration:  a.Duration,
		Type:      a.Type,
		Status:    a.Status,
		Reason:    a.Reason,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
