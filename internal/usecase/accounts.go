package usecase

import (
	"context"
	"strings"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// accounts creates and removes the user rows that own patient and staff profiles.
type accounts struct {
	log      *logrus.Logger
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func newAccounts(log *logrus.Logger, userRepo repository.UserRepository, roleRepo repository.RoleRepository) *accounts {
	return &accounts{log: log, userRepo: userRepo, roleRepo: roleRepo}
}

// create inserts an account with a bcrypt-hashed password. Emails are
// stored lower-cased and must be unique.
func (a *accounts) create(ctx context.Context, tx *gorm.DB, roleName, name, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := a.userRepo.FindByEmail(ctx, tx, email)
	if err != nil {
		a.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	role, err := a.roleRepo.FindByName(ctx, tx, roleName)
	if err != nil {
		a.log.Warnf("Failed to find role %s: %+v", roleName, err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		a.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		RoleID:   role.ID,
		Role:     *role,
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashedPassword),
		IsActive: true,
	}
	if err := a.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrUserAlreadyExists
		}
		if isForeignKeyError(err, "role") {
			return nil, ErrRoleNotFound
		}
		a.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}
	return user, nil
}

func (a *accounts) delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	if err := a.userRepo.Delete(ctx, tx, userID); err != nil {
		a.log.Warnf("Failed to delete user %s: %+v", userID, err)
		return err
	}
	return nil
}

// rename updates the display name on the account behind a profile.
func (a *accounts) rename(ctx context.Context, tx *gorm.DB, user *entity.User, name string) error {
	user.Name = strings.TrimSpace(name)
	if err := a.userRepo.Update(ctx, tx, user); err != nil {
		a.log.Warnf("Failed to update user %s: %+v", user.ID, err)
		return err
	}
	return nil
}

// insertStaffProfile assigns the next STAFFnnnn code and inserts the profile.
func insertStaffProfile(ctx context.Context, tx *gorm.DB, log *logrus.Logger, sequences service.SequenceService, staffRepo repository.StaffProfileRepository, staff *entity.StaffProfile) error {
	code, err := sequences.Next(ctx, service.SequenceStaff)
	if err != nil {
		return err
	}
	staff.StaffCode = code
	if staff.Status == "" {
		staff.Status = entity.StaffStatusActive
	}

	if err := staffRepo.Create(ctx, tx, staff); err != nil {
		if isDuplicateKeyError(err, "staff_code") {
			log.Errorf("Staff code %s already taken, sequence out of sync", code)
			return ErrSequenceOutOfSync
		}
		log.Warnf("Failed to create staff profile: %+v", err)
		return err
	}
	return nil
}
