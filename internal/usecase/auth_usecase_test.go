package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-management-api/config"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	usecase    *authUsecase
	jwtService *jwt.JWTService
	users      *MockUserRepository
	roles      *MockRoleRepository
	patients   *MockPatientRepository
	staff      *MockStaffRepository
	tokens     *memoryTokenStore
	sequences  *MockSequenceService
	audit      *recordingAudit
}

func newAuthFixture(accessExpiry time.Duration) *authFixture {
	f := &authFixture{
		jwtService: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  accessExpiry,
			RefreshExpiry: time.Hour,
		}),
		users:     new(MockUserRepository),
		roles:     new(MockRoleRepository),
		patients:  new(MockPatientRepository),
		staff:     new(MockStaffRepository),
		tokens:    newMemoryTokenStore(),
		sequences: new(MockSequenceService),
		audit:     &recordingAudit{},
	}
	f.usecase = NewAuthUsecase(&fakeTx{}, newTestLogger(), f.users, f.roles, f.patients, f.staff,
		f.jwtService, f.tokens, f.sequences, f.audit).(*authUsecase)
	return f
}

// patientUser returns an active patient account whose password is "secret1".
func patientUser(t *testing.T) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	id := uuid.New()
	return &entity.User{
		ID:             id,
		RoleID:         entity.RoleIDPatient,
		Role:           entity.Role{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		Password:       string(hash),
		IsActive:       true,
		PatientProfile: &entity.PatientProfile{ID: uuid.New(), UserID: id},
	}
}

func (f *authFixture) expectUser(user *entity.User) {
	f.users.On("FindByEmail", mock.Anything, mock.Anything, user.Email).Return(user, nil)
	f.users.On("FindByID", mock.Anything, mock.Anything, user.ID).Return(user, nil)
}

func TestLogin_IssuesTokens(t *testing.T) {
	f := newAuthFixture(15 * time.Minute)
	user := patientUser(t)
	f.expectUser(user)

	tokens, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret1"})

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int64(900), tokens.ExpiresIn)
	require.NotNil(t, tokens.User.PatientID)
	assert.Equal(t, user.PatientProfile.ID, *tokens.User.PatientID)
	assert.Empty(t, f.tokens.revoked)
	assert.Equal(t, []string{entity.AuditActionUserLogin}, f.audit.actions)
}

func TestLogin_Rejections(t *testing.T) {
	user := patientUser(t)

	f := newAuthFixture(time.Minute)
	f.expectUser(user)
	_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	f = newAuthFixture(time.Minute)
	f.users.On("FindByEmail", mock.Anything, mock.Anything, "nobody@example.com").Return(nil, nil)
	_, err = f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	inactive := patientUser(t)
	inactive.IsActive = false
	f = newAuthFixture(time.Minute)
	f.expectUser(inactive)
	_, err = f.usecase.Login(context.Background(), &dto.LoginRequest{Email: inactive.Email, Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		f := newAuthFixture(time.Minute)
		user := patientUser(t)
		f.expectUser(user)
		tokens, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret1"})
		require.NoError(t, err)

		principal, err := f.usecase.Authenticate(context.Background(), tokens.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, user.ID, principal.UserID)
		assert.True(t, principal.IsPatient())
		require.NotNil(t, principal.PatientID)
		assert.Equal(t, user.PatientProfile.ID, *principal.PatientID)
		assert.NotEmpty(t, principal.TokenID)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newAuthFixture(-time.Minute)
		user := patientUser(t)
		f.expectUser(user)
		tokens, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret1"})
		require.NoError(t, err)

		_, err = f.usecase.Authenticate(context.Background(), tokens.AccessToken)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		f := newAuthFixture(time.Minute)
		_, err := f.usecase.Authenticate(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		f := newAuthFixture(time.Minute)
		user := patientUser(t)
		f.expectUser(user)
		tokens, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret1"})
		require.NoError(t, err)

		_, err = f.usecase.Authenticate(context.Background(), tokens.RefreshToken)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token issued without login is accepted on its contents", func(t *testing.T) {
		f := newAuthFixture(time.Hour)
		user := patientUser(t)
		f.expectUser(user)
		token, tokenID, err := f.jwtService.GenerateAccessToken(user.ID, user.Email, entity.RolePatient)
		require.NoError(t, err)

		principal, err := f.usecase.Authenticate(context.Background(), token)

		require.NoError(t, err)
		assert.Equal(t, user.ID, principal.UserID)
		assert.Equal(t, tokenID, principal.TokenID)
		assert.WithinDuration(t, time.Now().Add(time.Hour), principal.TokenExpiresAt, 5*time.Second)
	})

	t.Run("revoked token", func(t *testing.T) {
		f := newAuthFixture(time.Hour)
		user := patientUser(t)
		f.expectUser(user)
		token, tokenID, err := f.jwtService.GenerateAccessToken(user.ID, user.Email, entity.RolePatient)
		require.NoError(t, err)
		_, err = f.tokens.Revoke(context.Background(), tokenID, time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = f.usecase.Authenticate(context.Background(), token)

		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("deny-list outage does not reject valid tokens", func(t *testing.T) {
		f := newAuthFixture(time.Hour)
		user := patientUser(t)
		f.expectUser(user)
		token, _, err := f.jwtService.GenerateAccessToken(user.ID, user.Email, entity.RolePatient)
		require.NoError(t, err)
		f.tokens.err = errors.New("connection refused")

		principal, err := f.usecase.Authenticate(context.Background(), token)

		require.NoError(t, err)
		assert.Equal(t, user.ID, principal.UserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture(time.Minute)
		ghost := uuid.New()
		f.users.On("FindByID", mock.Anything, mock.Anything, ghost).Return(nil, nil)
		token, _, err := f.jwtService.GenerateAccessToken(ghost, "ghost@example.com", entity.RoleAdmin)
		require.NoError(t, err)

		_, err = f.usecase.Authenticate(context.Background(), token)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	f := newAuthFixture(time.Minute)
	user := patientUser(t)
	f.expectUser(user)
	tokens, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret1"})
	require.NoError(t, err)
	principal, err := f.usecase.Authenticate(context.Background(), tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.usecase.Logout(context.Background(), principal, &dto.LogoutRequest{RefreshToken: tokens.RefreshToken}))
	assert.Len(t, f.tokens.revoked, 2)
	assert.Equal(t, principal.TokenExpiresAt, f.tokens.revoked[principal.TokenID])

	_, err = f.usecase.Authenticate(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.Equal(t, []string{entity.AuditActionUserLogin, entity.AuditActionUserLogout}, f.audit.actions)
}

func TestRefreshToken_IsSingleUse(t *testing.T) {
	f := newAuthFixture(time.Minute)
	user := patientUser(t)
	f.expectUser(user)
	tokens, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret1"})
	require.NoError(t, err)

	refreshed, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRegister_StaffGetsProfileAndCode(t *testing.T) {
	f := newAuthFixture(time.Minute)
	f.users.On("FindByEmail", mock.Anything, mock.Anything, "house@hospital.test").Return(nil, nil)
	f.roles.On("FindByName", mock.Anything, mock.Anything, entity.RoleStaff).
		Return(&entity.Role{ID: entity.RoleIDStaff, RoleName: entity.RoleStaff}, nil)
	f.users.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	f.sequences.On("Next", mock.Anything, service.SequenceStaff).Return("STAFF0010", nil)
	f.staff.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(p *entity.StaffProfile) bool {
		return p.StaffCode == "STAFF0010" && p.Department == "Diagnostics"
	})).Return(nil)

	resp, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Name:       "Gregory House",
		Email:      "House@hospital.test",
		Password:   "vicodin",
		Role:       entity.RoleStaff,
		Phone:      "555-0142",
		Department: "Diagnostics",
		Position:   "Doctor",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, resp.Role)
	assert.NotNil(t, resp.StaffID)
	assert.Nil(t, resp.PatientID)
	f.patients.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{entity.AuditActionUserRegister}, f.audit.actions)
}

func TestRegister_DefaultsToPatient(t *testing.T) {
	f := newAuthFixture(time.Minute)
	f.users.On("FindByEmail", mock.Anything, mock.Anything, "amy@example.com").Return(nil, nil)
	f.roles.On("FindByName", mock.Anything, mock.Anything, entity.RolePatient).
		Return(&entity.Role{ID: entity.RoleIDPatient, RoleName: entity.RolePatient}, nil)
	f.users.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	f.patients.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.PatientProfile")).Return(nil)

	resp, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Amy Pond",
		Email:    "amy@example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RolePatient, resp.Role)
	assert.NotNil(t, resp.PatientID)
	f.sequences.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
}
