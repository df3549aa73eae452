package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrAccountInactive    = errors.New("account is inactive")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, principal *policy.Principal, req *dto.LogoutRequest) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	// Authenticate turns a bearer access token into the request principal.
	Authenticate(ctx context.Context, token string) (*policy.Principal, error)
}

type authUsecase struct {
	tx           repository.TxManager
	log          *logrus.Logger
	accounts     *accounts
	userRepo     repository.UserRepository
	patientRepo  repository.PatientProfileRepository
	staffRepo    repository.StaffProfileRepository
	jwtService   *jwt.JWTService
	tokenStore   service.TokenStore
	sequences    service.SequenceService
	auditService service.AuditService
	now          func() time.Time
}

func NewAuthUsecase(
	tx repository.TxManager,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	patientRepo repository.PatientProfileRepository,
	staffRepo repository.StaffProfileRepository,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
	sequences service.SequenceService,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		tx:           tx,
		log:          log,
		accounts:     newAccounts(log, userRepo, roleRepo),
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		staffRepo:    staffRepo,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
		sequences:    sequences,
		auditService: auditService,
		now:          time.Now,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	roleName := req.Role
	if roleName == "" {
		roleName = entity.RolePatient
	}

	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	err = u.tx.Do(ctx, func(tx *gorm.DB) error {
		created, err := u.accounts.create(ctx, tx, roleName, req.Name, req.Email, req.Password)
		if err != nil {
			return err
		}
		user = created

		switch roleName {
		case entity.RoleStaff:
			staff := &entity.StaffProfile{
				UserID:         user.ID,
				Department:     req.Department,
				Position:       req.Position,
				Specialization: req.Specialization,
				DateOfBirth:    dob,
				Gender:         req.Gender,
				Phone:          req.Phone,
				JoinDate:       today(u.now()),
				Status:         entity.StaffStatusActive,
			}
			setContact(&staff.Address, &staff.EmergencyContact, req.Address, req.EmergencyContact)
			if err := insertStaffProfile(ctx, tx, u.log, u.sequences, u.staffRepo, staff); err != nil {
				return err
			}
			user.StaffProfile = staff
		default:
			patient := &entity.PatientProfile{
				UserID:      user.ID,
				DateOfBirth: dob,
				Gender:      req.Gender,
				Phone:       req.Phone,
			}
			setContact(&patient.Address, &patient.EmergencyContact, req.Address, req.EmergencyContact)
			if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
				u.log.Warnf("Failed to create patient profile: %+v", err)
				return err
			}
			user.PatientProfile = patient
		}

		return u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), converter.UserToResponse(user))
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.UserResponse, error) {
	var user *entity.User
	err := u.tx.Do(ctx, func(tx *gorm.DB) error {
		created, err := u.accounts.create(ctx, tx, entity.RoleAdmin, req.Name, req.Email, req.Password)
		if err != nil {
			return err
		}
		user = created
		return u.auditService.LogCreate(ctx, tx, nil, entity.AuditActionAdminCreate, "user", user.ID.String(), converter.UserToResponse(user))
	})
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	db := u.tx.Conn(ctx)

	user, err := u.userRepo.FindByEmail(ctx, db, strings.TrimSpace(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	full, err := u.userRepo.FindByID(ctx, db, user.ID)
	if err != nil {
		u.log.Warnf("Failed to load user %s: %+v", user.ID, err)
		return nil, err
	}
	if full == nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(full)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, db, &full.ID, entity.AuditActionUserLogin, "user", full.ID.String(), nil); err != nil {
		return nil, err
	}

	return tokens, nil
}

func (u *authUsecase) Logout(ctx context.Context, principal *policy.Principal, req *dto.LogoutRequest) error {
	if principal.TokenID != "" {
		if _, err := u.tokenStore.Revoke(ctx, principal.TokenID, principal.TokenExpiresAt); err != nil {
			return err
		}
	}

	if req != nil && req.RefreshToken != "" {
		claims, err := u.jwtService.ValidateToken(req.RefreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == principal.UserID {
			if _, err := u.tokenStore.Revoke(ctx, claims.TokenID, expiresAt(claims)); err != nil {
				return err
			}
		}
	}

	return u.auditService.LogCreate(ctx, u.tx.Conn(ctx), principal.ActorID(), entity.AuditActionUserLogout, "user", principal.UserID.String(), nil)
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// Refresh tokens are single use. Revoking first makes a concurrent
	// second use of the same token lose.
	fresh, err := u.tokenStore.Revoke(ctx, claims.TokenID, expiresAt(claims))
	if err != nil {
		return nil, err
	}
	if !fresh {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(ctx, u.tx.Conn(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return u.issueTokens(user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.tx.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*policy.Principal, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil || claims.TokenType != jwt.AccessToken {
		return nil, ErrInvalidToken
	}

	// An unreachable deny-list does not invalidate tokens.
	revoked, err := u.tokenStore.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check token revocation: %+v", err)
	} else if revoked {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(ctx, u.tx.Conn(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	principal := policy.NewPrincipal(user)
	principal.TokenID = claims.TokenID
	principal.TokenExpiresAt = expiresAt(claims)
	return principal, nil
}

func (u *authUsecase) issueTokens(user *entity.User) (*dto.TokenResponse, error) {
	role := user.RoleName()

	accessToken, _, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, _, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         converter.UserToResponse(user),
	}, nil
}

func expiresAt(claims *jwt.Claims) time.Time {
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// setContact copies optional address and emergency contact blocks onto a profile.
func setContact(address *datatypes.JSONType[entity.Address], contact *datatypes.JSONType[entity.EmergencyContact], a *entity.Address, c *entity.EmergencyContact) {
	if a != nil {
		*address = datatypes.NewJSONType(*a)
	}
	if c != nil {
		*contact = datatypes.NewJSONType(*c)
	}
}
