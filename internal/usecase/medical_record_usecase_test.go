package usecase

import (
	"context"
	"testing"
	"time"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type medicalRecordFixture struct {
	usecase  *medicalRecordUsecase
	records  *MockMedicalRecordRepository
	patients *MockPatientRepository
	staff    *MockStaffRepository
	audit    *recordingAudit
}

func newMedicalRecordFixture() *medicalRecordFixture {
	f := &medicalRecordFixture{
		records:  new(MockMedicalRecordRepository),
		patients: new(MockPatientRepository),
		staff:    new(MockStaffRepository),
		audit:    &recordingAudit{},
	}
	f.usecase = NewMedicalRecordUsecase(&fakeTx{}, newTestLogger(), f.records, f.patients, f.staff, f.audit).(*medicalRecordUsecase)
	f.usecase.now = func() time.Time { return time.Date(2025, 2, 2, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *medicalRecordFixture) expectReferences(patientID, staffID uuid.UUID) {
	f.patients.On("FindByID", mock.Anything, mock.Anything, patientID).Return(&entity.PatientProfile{ID: patientID}, nil)
	f.staff.On("FindByID", mock.Anything, mock.Anything, staffID).Return(&entity.StaffProfile{ID: staffID}, nil)
}

func TestMedicalRecordCreate_StaffAuthorsOwnRecords(t *testing.T) {
	f := newMedicalRecordFixture()
	patientID, staffID := uuid.New(), uuid.New()
	f.expectReferences(patientID, staffID)
	f.records.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(r *entity.MedicalRecord) bool {
		return r.StaffID == staffID && r.PatientID == patientID
	})).Return(nil)
	temperature := 38.2

	resp, err := f.usecase.Create(context.Background(), staffPrincipal(staffID), &dto.CreateMedicalRecordRequest{
		PatientID:  patientID,
		Diagnosis:  "Influenza",
		Symptoms:   []string{"fever", "cough"},
		Treatment:  "Rest and fluids",
		VitalSigns: &entity.VitalSigns{Temperature: &temperature},
	})

	require.NoError(t, err)
	assert.Equal(t, staffID, resp.StaffID)
	assert.Equal(t, []string{"fever", "cough"}, resp.Symptoms)
	assert.NotNil(t, resp.Medications)
	require.NotNil(t, resp.VitalSigns.Temperature)
	assert.Equal(t, 38.2, *resp.VitalSigns.Temperature)
	assert.Equal(t, 2025, resp.Date.Year())
	assert.Equal(t, []string{entity.AuditActionRecordCreate}, f.audit.actions)
}

func TestMedicalRecordCreate_Authorship(t *testing.T) {
	patientID := uuid.New()
	req := func(staffID *uuid.UUID) *dto.CreateMedicalRecordRequest {
		return &dto.CreateMedicalRecordRequest{PatientID: patientID, StaffID: staffID, Diagnosis: "Sprain", Treatment: "Ice"}
	}

	t.Run("admin must name the author", func(t *testing.T) {
		f := newMedicalRecordFixture()
		_, err := f.usecase.Create(context.Background(), adminPrincipal(), req(nil))
		assert.ErrorIs(t, err, ErrRecordAuthorRequired)
	})

	t.Run("admin writes for named staff", func(t *testing.T) {
		f := newMedicalRecordFixture()
		staffID := uuid.New()
		f.expectReferences(patientID, staffID)
		f.records.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		resp, err := f.usecase.Create(context.Background(), adminPrincipal(), req(&staffID))

		require.NoError(t, err)
		assert.Equal(t, staffID, resp.StaffID)
	})

	t.Run("staff cannot write as someone else", func(t *testing.T) {
		f := newMedicalRecordFixture()
		other := uuid.New()
		_, err := f.usecase.Create(context.Background(), staffPrincipal(uuid.New()), req(&other))
		assert.ErrorIs(t, err, ErrFieldNotAllowed)
	})

	t.Run("patient cannot write", func(t *testing.T) {
		f := newMedicalRecordFixture()
		_, err := f.usecase.Create(context.Background(), patientPrincipal(patientID), req(nil))
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestMedicalRecordGetByPatient_OnlyOwn(t *testing.T) {
	own := uuid.New()

	f := newMedicalRecordFixture()
	_, err := f.usecase.GetByPatient(context.Background(), patientPrincipal(own), uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)

	f.patients.On("FindByID", mock.Anything, mock.Anything, own).Return(&entity.PatientProfile{ID: own}, nil)
	f.records.On("FindByPatientID", mock.Anything, mock.Anything, own).
		Return([]entity.MedicalRecord{{ID: uuid.New(), PatientID: own}}, nil)

	resp, err := f.usecase.GetByPatient(context.Background(), patientPrincipal(own), own)
	require.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestMedicalRecordGet(t *testing.T) {
	f := newMedicalRecordFixture()
	id := uuid.New()
	f.records.On("FindByID", mock.Anything, mock.Anything, id).Return(&entity.MedicalRecord{ID: id, PatientID: uuid.New()}, nil)

	_, err := f.usecase.Get(context.Background(), patientPrincipal(uuid.New()), id)
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err := f.usecase.Get(context.Background(), staffPrincipal(uuid.New()), id)
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)

	missing := uuid.New()
	f.records.On("FindByID", mock.Anything, mock.Anything, missing).Return(nil, nil)
	_, err = f.usecase.Get(context.Background(), adminPrincipal(), missing)
	assert.ErrorIs(t, err, ErrMedicalRecordNotFound)
}
