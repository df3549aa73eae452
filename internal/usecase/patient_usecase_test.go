package usecase

import (
	"context"
	"testing"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type patientFixture struct {
	usecase  *patientUsecase
	users    *MockUserRepository
	roles    *MockRoleRepository
	patients *MockPatientRepository
	audit    *recordingAudit
}

func newPatientFixture() *patientFixture {
	f := &patientFixture{
		users:    new(MockUserRepository),
		roles:    new(MockRoleRepository),
		patients: new(MockPatientRepository),
		audit:    &recordingAudit{},
	}
	f.usecase = NewPatientUsecase(&fakeTx{}, newTestLogger(), f.users, f.roles, f.patients, f.audit).(*patientUsecase)
	return f
}

func TestPatientGetAll_PatientIsForbidden(t *testing.T) {
	f := newPatientFixture()

	_, err := f.usecase.GetAll(context.Background(), patientPrincipal(uuid.New()))

	assert.ErrorIs(t, err, ErrForbidden)
	f.patients.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestPatientGet(t *testing.T) {
	own := uuid.New()

	t.Run("other patient", func(t *testing.T) {
		f := newPatientFixture()
		_, err := f.usecase.Get(context.Background(), patientPrincipal(own), uuid.New())
		assert.ErrorIs(t, err, ErrForbidden)
		f.patients.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("own profile", func(t *testing.T) {
		f := newPatientFixture()
		f.patients.On("FindByID", mock.Anything, mock.Anything, own).
			Return(&entity.PatientProfile{ID: own, User: entity.User{ID: uuid.New(), Name: "Jane Doe"}}, nil)

		resp, err := f.usecase.Get(context.Background(), patientPrincipal(own), own)

		require.NoError(t, err)
		assert.Equal(t, own, resp.ID)
		require.NotNil(t, resp.User)
		assert.Equal(t, "Jane Doe", resp.User.Name)
		assert.NotNil(t, resp.Allergies)
	})

	t.Run("staff reads any", func(t *testing.T) {
		f := newPatientFixture()
		id := uuid.New()
		f.patients.On("FindByID", mock.Anything, mock.Anything, id).Return(nil, nil)

		_, err := f.usecase.Get(context.Background(), staffPrincipal(uuid.New()), id)

		assert.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestPatientCreate(t *testing.T) {
	req := &dto.CreatePatientRequest{
		Name:      "John Smith",
		Email:     " John@Example.com ",
		Password:  "secret1",
		Allergies: []string{"Penicillin"},
	}

	t.Run("duplicate email", func(t *testing.T) {
		f := newPatientFixture()
		f.users.On("FindByEmail", mock.Anything, mock.Anything, "john@example.com").Return(&entity.User{ID: uuid.New()}, nil)

		_, err := f.usecase.Create(context.Background(), adminPrincipal(), req)

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		f.patients.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("creates account and profile", func(t *testing.T) {
		f := newPatientFixture()
		f.users.On("FindByEmail", mock.Anything, mock.Anything, "john@example.com").Return(nil, nil)
		f.roles.On("FindByName", mock.Anything, mock.Anything, entity.RolePatient).
			Return(&entity.Role{ID: entity.RoleIDPatient, RoleName: entity.RolePatient}, nil)
		f.users.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "john@example.com" && u.Password != "secret1" && u.RoleID == entity.RoleIDPatient
		})).Return(nil)
		f.patients.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.PatientProfile")).Return(nil)

		resp, err := f.usecase.Create(context.Background(), adminPrincipal(), req)

		require.NoError(t, err)
		assert.Equal(t, []string{"Penicillin"}, resp.Allergies)
		require.NotNil(t, resp.User)
		assert.Equal(t, "john@example.com", resp.User.Email)
		assert.Equal(t, []string{entity.AuditActionPatientCreate}, f.audit.actions)
	})

	t.Run("staff cannot create", func(t *testing.T) {
		f := newPatientFixture()
		_, err := f.usecase.Create(context.Background(), staffPrincipal(uuid.New()), req)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestPatientUpdate_FieldRestrictions(t *testing.T) {
	own := uuid.New()

	t.Run("patient changes blood group", func(t *testing.T) {
		f := newPatientFixture()
		blood := "O+"

		_, err := f.usecase.Update(context.Background(), patientPrincipal(own), own, &dto.UpdatePatientRequest{BloodGroup: &blood})

		assert.ErrorIs(t, err, ErrFieldNotAllowed)
		assert.Contains(t, err.Error(), "bloodGroup")
	})

	t.Run("patient changes phone and insurance", func(t *testing.T) {
		f := newPatientFixture()
		profile := &entity.PatientProfile{ID: own, Phone: "000"}
		f.patients.On("FindByID", mock.Anything, mock.Anything, own).Return(profile, nil)
		f.patients.On("Update", mock.Anything, mock.Anything, profile).Return(nil)
		phone := "+1 555 0100"

		resp, err := f.usecase.Update(context.Background(), patientPrincipal(own), own, &dto.UpdatePatientRequest{
			Phone:         &phone,
			InsuranceInfo: &entity.InsuranceInfo{Provider: "Acme Health"},
		})

		require.NoError(t, err)
		assert.Equal(t, phone, resp.Phone)
		assert.Equal(t, "Acme Health", resp.InsuranceInfo.Provider)
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("patient edits someone else", func(t *testing.T) {
		f := newPatientFixture()
		phone := "1"
		_, err := f.usecase.Update(context.Background(), patientPrincipal(own), uuid.New(), &dto.UpdatePatientRequest{Phone: &phone})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin renames", func(t *testing.T) {
		f := newPatientFixture()
		userID := uuid.New()
		profile := &entity.PatientProfile{ID: own, UserID: userID, User: entity.User{ID: userID, Name: "Old"}}
		f.patients.On("FindByID", mock.Anything, mock.Anything, own).Return(profile, nil)
		f.patients.On("Update", mock.Anything, mock.Anything, profile).Return(nil)
		f.users.On("Update", mock.Anything, mock.Anything, &profile.User).Return(nil)
		name := "  New Name "

		resp, err := f.usecase.Update(context.Background(), adminPrincipal(), own, &dto.UpdatePatientRequest{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "New Name", resp.User.Name)
	})
}

func TestPatientDelete_RemovesProfileAndAccount(t *testing.T) {
	f := newPatientFixture()
	id, userID := uuid.New(), uuid.New()
	f.patients.On("FindByID", mock.Anything, mock.Anything, id).Return(&entity.PatientProfile{ID: id, UserID: userID}, nil)
	f.patients.On("Delete", mock.Anything, mock.Anything, id).Return(nil)
	f.users.On("Delete", mock.Anything, mock.Anything, userID).Return(nil)

	err := f.usecase.Delete(context.Background(), adminPrincipal(), id)

	require.NoError(t, err)
	f.patients.AssertExpectations(t)
	f.users.AssertExpectations(t)
	assert.Equal(t, []string{entity.AuditActionPatientDelete}, f.audit.actions)
}
