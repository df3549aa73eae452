package usecase

import (
	"context"
	"errors"
	"time"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/domain/scheduling"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSchedulingConflict  = errors.New("there is a scheduling conflict with another appointment")
)

type AppointmentUsecase interface {
	GetAll(ctx context.Context, principal *policy.Principal, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error)
	GetByPatient(ctx context.Context, principal *policy.Principal, patientID uuid.UUID) ([]dto.AppointmentResponse, error)
	GetByStaff(ctx context.Context, principal *policy.Principal, staffID uuid.UUID, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error)
	Get(ctx context.Context, principal *policy.Principal, id uuid.UUID) (*dto.AppointmentResponse, error)
	Create(ctx context.Context, principal *policy.Principal, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, principal *policy.Principal, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, principal *policy.Principal, id uuid.UUID) error
}

type appointmentUsecase struct {
	tx              repository.TxManager
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientProfileRepository
	staffRepo       repository.StaffProfileRepository
	auditService    service.AuditService
	conflicts       prometheus.Counter
}

func NewAppointmentUsecase(
	tx repository.TxManager,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientProfileRepository,
	staffRepo repository.StaffProfileRepository,
	auditService service.AuditService,
	conflicts prometheus.Counter,
) AppointmentUsecase {
	return &appointmentUsecase{
		tx:              tx,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		staffRepo:       staffRepo,
		auditService:    auditService,
		conflicts:       conflicts,
	}
}

// GetAll lists appointments visible to the caller, sorted by date and time.
func (u *appointmentUsecase) GetAll(ctx context.Context, principal *policy.Principal, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	if err := requireOwnProfile(principal); err != nil {
		return nil, err
	}
	return u.list(ctx, principal.ScopeAppointments(filter))
}

// requireOwnProfile rejects patient and staff callers whose account has no
// profile to scope their listings to.
func requireOwnProfile(principal *policy.Principal) error {
	switch {
	case principal.IsPatient() && principal.PatientID == nil:
		return ErrPatientNotFound
	case principal.IsStaff() && principal.StaffID == nil:
		return ErrStaffNotFound
	}
	return nil
}

func (u *appointmentUsecase) GetByPatient(ctx context.Context, principal *policy.Principal, patientID uuid.UUID) ([]dto.AppointmentResponse, error) {
	if !principal.CanViewPatient(patientID) {
		return nil, ErrForbidden
	}
	if err := u.ensurePatient(ctx, u.tx.Conn(ctx), patientID); err != nil {
		return nil, err
	}
	return u.list(ctx, entity.AppointmentFilter{PatientID: &patientID})
}

func (u *appointmentUsecase) GetByStaff(ctx context.Context, principal *policy.Principal, staffID uuid.UUID, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	if !principal.CanViewStaff(staffID) {
		return nil, ErrForbidden
	}
	staff, err := u.staffRepo.FindByID(ctx, u.tx.Conn(ctx), staffID)
	if err != nil {
		u.log.Warnf("Failed to find staff %s: %+v", staffID, err)
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}

	filter.StaffID = &staffID
	return u.list(ctx, filter)
}

func (u *appointmentUsecase) list(ctx context.Context, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx, u.tx.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) Get(ctx context.Context, principal *policy.Principal, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.find(ctx, u.tx.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	if !principal.CanViewAppointment(appointment) {
		return nil, ErrForbidden
	}
	return converter.AppointmentToResponse(appointment), nil
}

// Create books a slot. The staff row is locked for the duration of the
// transaction so concurrent bookings for the same staff member are checked
// one after another.
func (u *appointmentUsecase) Create(ctx context.Context, principal *policy.Principal, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !principal.CanCreateAppointment(req.PatientID) {
		return nil, ErrForbidden
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	duration := req.Duration
	if duration == 0 {
		duration = entity.DefaultAppointmentDuration
	}
	slot, err := scheduling.NewSlot(req.Time, duration)
	if err != nil {
		return nil, err
	}
	appointmentType := req.Type
	if appointmentType == "" {
		appointmentType = entity.AppointmentTypeRegular
	}

	appointment := &entity.Appointment{
		PatientID: req.PatientID,
		StaffID:   req.StaffID,
		Date:      date,
		Time:      req.Time,
		Duration:  duration,
		Type:      appointmentType,
		Status:    entity.AppointmentStatusScheduled,
		Reason:    req.Reason,
		Notes:     req.Notes,
	}
	appointment.StartsAt, appointment.EndsAt = slot.On(date)

	err = u.tx.Do(ctx, func(tx *gorm.DB) error {
		if err := u.ensurePatient(ctx, tx, req.PatientID); err != nil {
			return err
		}
		if err := u.checkConflict(ctx, tx, req.StaffID, date, slot, nil); err != nil {
			return err
		}

		if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
			return u.mapWriteError(err)
		}

		return u.auditService.LogCreate(ctx, tx, principal.ActorID(), entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment))
	})
	if err != nil {
		return nil, err
	}

	return u.reload(ctx, appointment)
}

// Update applies a partial update and re-runs the conflict check whenever the
// slot moves or a cancelled appointment becomes active again.
func (u *appointmentUsecase) Update(ctx context.Context, principal *policy.Principal, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	var status string
	if req.Status != nil {
		status = *req.Status
	}

	var appointment *entity.Appointment
	err := u.tx.Do(ctx, func(tx *gorm.DB) error {
		var err error
		appointment, err = u.find(ctx, tx, id)
		if err != nil {
			return err
		}
		if !principal.CanModifyAppointment(appointment) {
			return ErrForbidden
		}
		if fields := principal.DisallowedAppointmentChange(req.ChangedFields(), status); len(fields) > 0 {
			return fieldsNotAllowed(fields)
		}

		oldValue := converter.AppointmentToResponse(appointment)
		wasActive := appointment.IsActive()
		moved, err := applyAppointmentUpdate(appointment, req)
		if err != nil {
			return err
		}

		slot, err := scheduling.NewSlot(appointment.Time, appointment.Duration)
		if err != nil {
			return err
		}
		appointment.StartsAt, appointment.EndsAt = slot.On(appointment.Date)

		reactivated := !wasActive && appointment.IsActive()
		if appointment.IsActive() && (moved || reactivated) {
			if err := u.checkConflict(ctx, tx, appointment.StaffID, appointment.Date, slot, &appointment.ID); err != nil {
				return err
			}
		}

		if err := u.appointmentRepo.Update(ctx, tx, appointment); err != nil {
			return u.mapWriteError(err)
		}

		return u.auditService.LogUpdate(ctx, tx, principal.ActorID(), entity.AuditActionAppointmentUpdate, "appointment", id.String(), oldValue, converter.AppointmentToResponse(appointment))
	})
	if err != nil {
		return nil, err
	}

	return u.reload(ctx, appointment)
}

// applyAppointmentUpdate copies the present fields and reports whether the
// slot or its owner changed.
func applyAppointmentUpdate(a *entity.Appointment, req *dto.UpdateAppointmentRequest) (bool, error) {
	moved := false
	if req.StaffID != nil && *req.StaffID != a.StaffID {
		a.StaffID = *req.StaffID
		a.Staff = nil
		moved = true
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return false, err
		}
		if !date.Equal(a.Date) {
			a.Date = date
			moved = true
		}
	}
	if req.Time != nil && *req.Time != a.Time {
		a.Time = *req.Time
		moved = true
	}
	if req.Duration != nil && *req.Duration != a.Duration {
		a.Duration = *req.Duration
		moved = true
	}
	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.Status != nil {
		a.Status = *req.Status
	}
	if req.Reason != nil {
		a.Reason = *req.Reason
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}
	return moved, nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, principal *policy.Principal, id uuid.UUID) error {
	return u.tx.Do(ctx, func(tx *gorm.DB) error {
		appointment, err := u.find(ctx, tx, id)
		if err != nil {
			return err
		}
		if !principal.CanDeleteAppointment(appointment) {
			return ErrForbidden
		}

		if err := u.appointmentRepo.Delete(ctx, tx, id); err != nil {
			u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
			return err
		}

		return u.auditService.LogDelete(ctx, tx, principal.ActorID(), entity.AuditActionAppointmentDelete, "appointment", id.String(), converter.AppointmentToResponse(appointment))
	})
}

// checkConflict locks the staff row, then compares the candidate slot with the
// staff member's other active appointments on that date.
func (u *appointmentUsecase) checkConflict(ctx context.Context, tx *gorm.DB, staffID uuid.UUID, date time.Time, slot scheduling.Slot, excludeID *uuid.UUID) error {
	staff, err := u.staffRepo.LockByID(ctx, tx, staffID)
	if err != nil {
		u.log.Warnf("Failed to lock staff %s: %+v", staffID, err)
		return err
	}
	if staff == nil {
		return ErrStaffNotFound
	}

	existing, err := u.appointmentRepo.FindActiveByStaffAndDate(ctx, tx, staffID, date, excludeID)
	if err != nil {
		u.log.Warnf("Failed to find appointments of staff %s: %+v", staffID, err)
		return err
	}

	booked := make([]scheduling.Booked, 0, len(existing))
	for _, a := range existing {
		s, err := scheduling.NewSlot(a.Time, a.Duration)
		if err != nil {
			u.log.Warnf("Skipping appointment %s with unusable slot %s/%d: %+v", a.ID, a.Time, a.Duration, err)
			continue
		}
		booked = append(booked, scheduling.Booked{AppointmentID: a.ID, Slot: s})
	}

	if hit, ok := scheduling.FindConflict(slot, booked); ok {
		u.log.Infof("Scheduling conflict for staff %s on %s: %s overlaps appointment %s",
			staffID, date.Format(time.DateOnly), scheduling.FormatClock(slot.Start), hit.AppointmentID)
		u.conflicts.Inc()
		return ErrSchedulingConflict
	}
	return nil
}

func (u *appointmentUsecase) mapWriteError(err error) error {
	switch {
	case isExclusionError(err):
		u.conflicts.Inc()
		return ErrSchedulingConflict
	case isForeignKeyError(err, "patient"):
		return ErrPatientNotFound
	case isForeignKeyError(err, "staff"):
		return ErrStaffNotFound
	}
	u.log.Warnf("Failed to save appointment: %+v", err)
	return err
}

func (u *appointmentUsecase) ensurePatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(ctx, db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	return nil
}

func (u *appointmentUsecase) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// reload fetches the committed row with patient and staff attached. The
// in-memory copy is returned if the read fails.
func (u *appointmentUsecase) reload(ctx context.Context, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	fresh, err := u.appointmentRepo.FindByID(ctx, u.tx.Conn(ctx), appointment.ID)
	if err != nil || fresh == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(fresh), nil
}
