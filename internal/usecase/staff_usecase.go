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
	"gorm.io/gorm"
)

type StaffUsecase interface {
	GetAll(ctx context.Context, principal *policy.Principal, filter entity.StaffFilter) ([]dto.StaffResponse, error)
	Get(ctx context.Context, principal *policy.Principal, id uuid.UUID) (*dto.StaffResponse, error)
	Create(ctx context.Context, principal *policy.Principal, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	Update(ctx context.Context, principal *policy.Principal, id uuid.UUID, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	Delete(ctx context.Context, principal *policy.Principal, id uuid.UUID) error
}

type staffUsecase struct {
	tx           repository.TxManager
	log          *logrus.Logger
	accounts     *accounts
	staffRepo    repository.StaffProfileRepository
	sequences    service.SequenceService
	auditService service.AuditService
	now          func() time.Time
}

func NewStaffUsecase(
	tx repository.TxManager,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	staffRepo repository.StaffProfileRepository,
	sequences service.SequenceService,
	auditService service.AuditService,
) StaffUsecase {
	return &staffUsecase{
		tx:           tx,
		log:          log,
		accounts:     newAccounts(log, userRepo, roleRepo),
		staffRepo:    staffRepo,
		sequences:    sequences,
		auditService: auditService,
		now:          time.Now,
	}
}

func (u *staffUsecase) GetAll(ctx context.Context, principal *policy.Principal, filter entity.StaffFilter) ([]dto.StaffResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	profiles, err := u.staffRepo.FindAll(ctx, u.tx.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find staff: %+v", err)
		return nil, err
	}
	return converter.StaffListToResponses(profiles), nil
}

func (u *staffUsecase) Get(ctx context.Context, principal *policy.Principal, id uuid.UUID) (*dto.StaffResponse, error) {
	if !principal.CanViewStaff(id) {
		return nil, ErrForbidden
	}

	profile, err := u.staffRepo.FindByID(ctx, u.tx.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find staff %s: %+v", id, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrStaffNotFound
	}
	return converter.StaffToResponse(profile), nil
}

func (u *staffUsecase) Create(ctx context.Context, principal *policy.Principal, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	joinDate := today(u.now())
	if req.JoinDate != "" {
		if joinDate, err = parseDate(req.JoinDate); err != nil {
			return nil, err
		}
	}

	var profile *entity.StaffProfile
	err = u.tx.Do(ctx, func(tx *gorm.DB) error {
		user, err := u.accounts.create(ctx, tx, entity.RoleStaff, req.Name, req.Email, req.Password)
		if err != nil {
			return err
		}

		profile = &entity.StaffProfile{
			UserID:         user.ID,
			Department:     req.Department,
			Position:       req.Position,
			Specialization: req.Specialization,
			Qualification:  req.Qualification,
			DateOfBirth:    dob,
			Gender:         req.Gender,
			Phone:          req.Phone,
			JoinDate:       joinDate,
			Schedule:       converter.ShiftBlocksFromRequest(req.Schedule),
			Status:         req.Status,
		}
		setContact(&profile.Address, &profile.EmergencyContact, req.Address, req.EmergencyContact)

		if err := insertStaffProfile(ctx, tx, u.log, u.sequences, u.staffRepo, profile); err != nil {
			return err
		}
		profile.User = *user

		return u.auditService.LogCreate(ctx, tx, principal.ActorID(), entity.AuditActionStaffCreate, "staff", profile.ID.String(), converter.StaffToResponse(profile))
	})
	if err != nil {
		return nil, err
	}

	return converter.StaffToResponse(profile), nil
}

// Update applies a partial update. Staff members may only change their
// contact details on their own profile.
func (u *staffUsecase) Update(ctx context.Context, principal *policy.Principal, id uuid.UUID, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	if !principal.CanEditStaff(id) {
		return nil, ErrForbidden
	}
	if fields := principal.DisallowedStaffFields(req.ChangedFields()); len(fields) > 0 {
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
	var joinDate time.Time
	if req.JoinDate != nil {
		parsed, err := parseDate(*req.JoinDate)
		if err != nil {
			return nil, err
		}
		joinDate = parsed
	}

	var profile *entity.StaffProfile
	err := u.tx.Do(ctx, func(tx *gorm.DB) error {
		var err error
		profile, err = u.staffRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find staff %s: %+v", id, err)
			return err
		}
		if profile == nil {
			return ErrStaffNotFound
		}
		oldValue := converter.StaffToResponse(profile)

		if req.Name != nil {
			if err := u.accounts.rename(ctx, tx, &profile.User, *req.Name); err != nil {
				return err
			}
		}
		applyStaffUpdate(profile, req, dob, joinDate)

		if err := u.staffRepo.Update(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to update staff %s: %+v", id, err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, principal.ActorID(), entity.AuditActionStaffUpdate, "staff", id.String(), oldValue, converter.StaffToResponse(profile))
	})
	if err != nil {
		return nil, err
	}

	return converter.StaffToResponse(profile), nil
}

func applyStaffUpdate(profile *entity.StaffProfile, req *dto.UpdateStaffRequest, dob *time.Time, joinDate time.Time) {
	if req.Department != nil {
		profile.Department = *req.Department
	}
	if req.Position != nil {
		profile.Position = *req.Position
	}
	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}
	if req.Qualification != nil {
		profile.Qualification = *req.Qualification
	}
	if req.DateOfBirth != nil {
		profile.DateOfBirth = dob
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	setContact(&profile.Address, &profile.EmergencyContact, req.Address, req.EmergencyContact)
	if req.JoinDate != nil {
		profile.JoinDate = joinDate
	}
	if req.Schedule != nil {
		profile.Schedule = converter.ShiftBlocksFromRequest(*req.Schedule)
	}
	if req.Status != nil {
		profile.Status = *req.Status
	}
}

// Delete removes the profile and its user account in one transaction.
// Appointments of the staff member go with it.
func (u *staffUsecase) Delete(ctx context.Context, principal *policy.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrForbidden
	}

	return u.tx.Do(ctx, func(tx *gorm.DB) error {
		profile, err := u.staffRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find staff %s: %+v", id, err)
			return err
		}
		if profile == nil {
			return ErrStaffNotFound
		}

		if err := u.staffRepo.Delete(ctx, tx, id); err != nil {
			if isForeignKeyError(err, "medical_records") {
				return ErrStaffHasRecords
			}
			u.log.Warnf("Failed to delete staff %s: %+v", id, err)
			return err
		}
		if err := u.accounts.delete(ctx, tx, profile.UserID); err != nil {
			return err
		}

		return u.auditService.LogDelete(ctx, tx, principal.ActorID(), entity.AuditActionStaffDelete, "staff", id.String(), converter.StaffToResponse(profile))
	})
}
