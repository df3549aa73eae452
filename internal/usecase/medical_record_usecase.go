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
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrMedicalRecordNotFound = errors.New("medical record not found")
	ErrRecordAuthorRequired  = errors.New("staffId is required when an admin writes a medical record")
)

type MedicalRecordUsecase interface {
	GetByPatient(ctx context.Context, principal *policy.Principal, patientID uuid.UUID) ([]dto.MedicalRecordResponse, error)
	Get(ctx context.Context, principal *policy.Principal, id uuid.UUID) (*dto.MedicalRecordResponse, error)
	Create(ctx context.Context, principal *policy.Principal, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
}

type medicalRecordUsecase struct {
	tx           repository.TxManager
	log          *logrus.Logger
	recordRepo   repository.MedicalRecordRepository
	patientRepo  repository.PatientProfileRepository
	staffRepo    repository.StaffProfileRepository
	auditService service.AuditService
	now          func() time.Time
}

func NewMedicalRecordUsecase(
	tx repository.TxManager,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	patientRepo repository.PatientProfileRepository,
	staffRepo repository.StaffProfileRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		tx:           tx,
		log:          log,
		recordRepo:   recordRepo,
		patientRepo:  patientRepo,
		staffRepo:    staffRepo,
		auditService: auditService,
		now:          time.Now,
	}
}

func (u *medicalRecordUsecase) GetByPatient(ctx context.Context, principal *policy.Principal, patientID uuid.UUID) ([]dto.MedicalRecordResponse, error) {
	if !principal.CanViewPatient(patientID) {
		return nil, ErrForbidden
	}

	db := u.tx.Conn(ctx)
	patient, err := u.patientRepo.FindByID(ctx, db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	records, err := u.recordRepo.FindByPatientID(ctx, db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find medical records of patient %s: %+v", patientID, err)
		return nil, err
	}
	return converter.MedicalRecordsToResponses(records), nil
}

func (u *medicalRecordUsecase) Get(ctx context.Context, principal *policy.Principal, id uuid.UUID) (*dto.MedicalRecordResponse, error) {
	record, err := u.recordRepo.FindByID(ctx, u.tx.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}
	if !principal.CanViewMedicalRecord(record) {
		return nil, ErrForbidden
	}
	return converter.MedicalRecordToResponse(record), nil
}

// Create stores a record authored by the calling staff member. Admins write
// on behalf of the staff member named in the request.
func (u *medicalRecordUsecase) Create(ctx context.Context, principal *policy.Principal, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	if !principal.CanWriteMedicalRecord() {
		return nil, ErrForbidden
	}

	staffID, err := recordAuthor(principal, req.StaffID)
	if err != nil {
		return nil, err
	}

	date := u.now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	record := &entity.MedicalRecord{
		PatientID:   req.PatientID,
		StaffID:     staffID,
		Date:        date,
		Diagnosis:   req.Diagnosis,
		Symptoms:    datatypes.JSONSlice[string](req.Symptoms),
		Treatment:   req.Treatment,
		Medications: datatypes.JSONSlice[entity.Medication](req.Medications),
		LabResults:  datatypes.JSONSlice[entity.LabResult](req.LabResults),
		Notes:       req.Notes,
	}
	if req.VitalSigns != nil {
		record.VitalSigns = datatypes.NewJSONType(*req.VitalSigns)
	}

	err = u.tx.Do(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(ctx, tx, req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		staff, err := u.staffRepo.FindByID(ctx, tx, staffID)
		if err != nil {
			u.log.Warnf("Failed to find staff %s: %+v", staffID, err)
			return err
		}
		if staff == nil {
			return ErrStaffNotFound
		}

		if err := u.recordRepo.Create(ctx, tx, record); err != nil {
			u.log.Warnf("Failed to create medical record: %+v", err)
			return err
		}
		record.Patient = patient
		record.Staff = staff

		return u.auditService.LogCreate(ctx, tx, principal.ActorID(), entity.AuditActionRecordCreate, "medical_record", record.ID.String(), converter.MedicalRecordToResponse(record))
	})
	if err != nil {
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func recordAuthor(principal *policy.Principal, requested *uuid.UUID) (uuid.UUID, error) {
	if principal.IsAdmin() {
		if requested == nil {
			return uuid.Nil, ErrRecordAuthorRequired
		}
		return *requested, nil
	}

	if principal.StaffID == nil {
		return uuid.Nil, ErrStaffNotFound
	}
	if requested != nil && *requested != *principal.StaffID {
		return uuid.Nil, fieldsNotAllowed([]string{"staffId"})
	}
	return *principal.StaffID, nil
}
