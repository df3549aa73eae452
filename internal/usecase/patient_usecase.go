package usecase

import (
	"context"
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

type PatientUsecase interface {
	GetAll(ctx context.Context, principal *policy.Principal) ([]dto.PatientResponse, error)
	Get(ctx context.Context, principal *policy.Principal, id uuid.UUID) (*dto.PatientResponse, error)
	Create(ctx context.Context, principal *policy.Principal, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Update(ctx context.Context, principal *policy.Principal, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, principal *policy.Principal, id uuid.UUID) error
}

type patientUsecase struct {
	tx           repository.TxManager
	log          *logrus.Logger
	accounts     *accounts
	patientRepo  repository.PatientProfileRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	tx repository.TxManager,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	patientRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		tx:           tx,
		log:          log,
		accounts:     newAccounts(log, userRepo, roleRepo),
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) GetAll(ctx context.Context, principal *policy.Principal) ([]dto.PatientResponse, error) {
	if !principal.CanListPatients() {
		return nil, ErrForbidden
	}

	profiles, err := u.patientRepo.FindAll(ctx, u.tx.Conn(ctx))
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(profiles), nil
}

func (u *patientUsecase) Get(ctx context.Context, principal *policy.Principal, id uuid.UUID) (*dto.PatientResponse, error) {
	if !principal.CanViewPatient(id) {
		return nil, ErrForbidden
	}

	profile, err := u.patientRepo.FindByID(ctx, u.tx.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(profile), nil
}

func (u *patientUsecase) Create(ctx context.Context, principal *policy.Principal, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	var profile *entity.PatientProfile
	err = u.tx.Do(ctx, func(tx *gorm.DB) error {
		user, err := u.accounts.create(ctx, tx, entity.RolePatient, req.Name, req.Email, req.Password)
		if err != nil {
			return err
		}

		profile = &entity.PatientProfile{
			UserID:             user.ID,
			DateOfBirth:        dob,
			Gender:             req.Gender,
			BloodGroup:         req.BloodGroup,
			Phone:              req.Phone,
			MedicalHistory:     req.MedicalHistory,
			Allergies:          req.Allergies,
			CurrentMedications: req.CurrentMedications,
		}
		setContact(&profile.Address, &profile.EmergencyContact, req.Address, req.EmergencyContact)
		if req.InsuranceInfo != nil {
			profile.InsuranceInfo = datatypes.NewJSONType(*req.InsuranceInfo)
		}

		if err := u.patientRepo.Create(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to create patient profile: %+v", err)
			return err
		}
		profile.User = *user

		return u.auditService.LogCreate(ctx, tx, principal.ActorID(), entity.AuditActionPatientCreate, "patient", profile.ID.String(), converter.PatientToResponse(profile))
	})
	if err != nil {
		return nil, err
	}

	return converter.PatientToResponse(profile), nil
}

// Update applies a partial update. Patients may only change their contact
// details and insurance on their own profile.
func (u *patientUsecase) Update(ctx context.Context, principal *policy.Principal, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if !principal.CanEditPatient(id) {
		return nil, ErrForbidden
	}
	if fields := principal.DisallowedPatientFields(req.ChangedFields()); len(fields) > 0 {
		return nil, fieldsNotAllowed(fields)
	}

	var dob *time.Time
	if req.DateOfBirth != nil {
		parsed, err := parseOptionalDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		dob = parsed
	}

	var profile *entity.PatientProfile
	err := u.tx.Do(ctx, func(tx *gorm.DB) error {
		var err error
		profile, err = u.patientRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find patient %s: %+v", id, err)
			return err
		}
		if profile == nil {
			return ErrPatientNotFound
		}
		oldValue := converter.PatientToResponse(profile)

		if req.Name != nil {
			if err := u.accounts.rename(ctx, tx, &profile.User, *req.Name); err != nil {
				return err
			}
		}
		applyPatientUpdate(profile, req, dob)

		if err := u.patientRepo.Update(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to update patient %s: %+v", id, err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, principal.ActorID(), entity.AuditActionPatientUpdate, "patient", id.String(), oldValue, converter.PatientToResponse(profile))
	})
	if err != nil {
		return nil, err
	}

	return converter.PatientToResponse(profile), nil
}

func applyPatientUpdate(profile *entity.PatientProfile, req *dto.UpdatePatientRequest, dob *time.Time) {
	if req.DateOfBirth != nil {
		profile.DateOfBirth = dob
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.BloodGroup != nil {
		profile.BloodGroup = *req.BloodGroup
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	setContact(&profile.Address, &profile.EmergencyContact, req.Address, req.EmergencyContact)
	if req.MedicalHistory != nil {
		profile.MedicalHistory = *req.MedicalHistory
	}
	if req.Allergies != nil {
		profile.Allergies = *req.Allergies
	}
	if req.CurrentMedications != nil {
		profile.CurrentMedications = *req.CurrentMedications
	}
	if req.InsuranceInfo != nil {
		profile.InsuranceInfo = datatypes.NewJSONType(*req.InsuranceInfo)
	}
}

// Delete removes the profile and its user account in one transaction.
func (u *patientUsecase) Delete(ctx context.Context, principal *policy.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrForbidden
	}

	return u.tx.Do(ctx, func(tx *gorm.DB) error {
		profile, err := u.patientRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find patient %s: %+v", id, err)
			return err
		}
		if profile == nil {
			return ErrPatientNotFound
		}

		if err := u.patientRepo.Delete(ctx, tx, id); err != nil {
			u.log.Warnf("Failed to delete patient %s: %+v", id, err)
			return err
		}
		if err := u.accounts.delete(ctx, tx, profile.UserID); err != nil {
			return err
		}

		return u.auditService.LogDelete(ctx, tx, principal.ActorID(), entity.AuditActionPatientDelete, "patient", id.String(), converter.PatientToResponse(profile))
	})
}
