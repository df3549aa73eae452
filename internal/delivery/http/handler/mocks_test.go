package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testValidator() *validator.CustomValidator {
	return validator.NewValidator()
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Count   *int              `json:"count"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

// serve routes one request through a mux router so path variables resolve,
// with p attached as the authenticated caller.
func serve(method, pattern, target string, body interface{}, p *policy.Principal, h http.HandlerFunc) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if p != nil {
		req = req.WithContext(policy.WithPrincipal(req.Context(), p))
	}

	router := mux.NewRouter()
	router.HandleFunc(pattern, h).Methods(method)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func adminPrincipal() *policy.Principal {
	return &policy.Principal{UserID: uuid.New(), Role: entity.RoleAdmin}
}

func patientPrincipal(patientID uuid.UUID) *policy.Principal {
	return &policy.Principal{UserID: uuid.New(), Role: entity.RolePatient, PatientID: &patientID}
}

// MockPatientUsecase

type MockPatientUsecase struct {
	mock.Mock
}

func (m *MockPatientUsecase) GetAll(ctx context.Context, p *policy.Principal) ([]dto.PatientResponse, error) {
	args := m.Called(ctx, p)
	res, _ := args.Get(0).([]dto.PatientResponse)
	return res, args.Error(1)
}

func (m *MockPatientUsecase) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*dto.PatientResponse, error) {
	args := m.Called(ctx, p, id)
	res, _ := args.Get(0).(*dto.PatientResponse)
	return res, args.Error(1)
}

func (m *MockPatientUsecase) Create(ctx context.Context, p *policy.Principal, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	args := m.Called(ctx, p, req)
	res, _ := args.Get(0).(*dto.PatientResponse)
	return res, args.Error(1)
}

func (m *MockPatientUsecase) Update(ctx context.Context, p *policy.Principal, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	args := m.Called(ctx, p, id, req)
	res, _ := args.Get(0).(*dto.PatientResponse)
	return res, args.Error(1)
}

func (m *MockPatientUsecase) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

// MockAppointmentUsecase

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) GetAll(ctx context.Context, p *policy.Principal, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	args := m.Called(ctx, p, filter)
	res, _ := args.Get(0).([]dto.AppointmentResponse)
	return res, args.Error(1)
}

func (m *MockAppointmentUsecase) GetByPatient(ctx context.Context, p *policy.Principal, patientID uuid.UUID) ([]dto.AppointmentResponse, error) {
	args := m.Called(ctx, p, patientID)
	res, _ := args.Get(0).([]dto.AppointmentResponse)
	return res, args.Error(1)
}

func (m *MockAppointmentUsecase) GetByStaff(ctx context.Context, p *policy.Principal, staffID uuid.UUID, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	args := m.Called(ctx, p, staffID, filter)
	res, _ := args.Get(0).([]dto.AppointmentResponse)
	return res, args.Error(1)
}

func (m *MockAppointmentUsecase) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, p, id)
	res, _ := args.Get(0).(*dto.AppointmentResponse)
	return res, args.Error(1)
}

func (m *MockAppointmentUsecase) Create(ctx context.Context, p *policy.Principal, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, p, req)
	res, _ := args.Get(0).(*dto.AppointmentResponse)
	return res, args.Error(1)
}

func (m *MockAppointmentUsecase) Update(ctx context.Context, p *policy.Principal, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, p, id, req)
	res, _ := args.Get(0).(*dto.AppointmentResponse)
	return res, args.Error(1)
}

func (m *MockAppointmentUsecase) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

// MockInvoiceUsecase

type MockInvoiceUsecase struct {
	mock.Mock
}

func (m *MockInvoiceUsecase) GetAll(ctx context.Context, p *policy.Principal, filter entity.InvoiceFilter) ([]dto.InvoiceResponse, error) {
	args := m.Called(ctx, p, filter)
	res, _ := args.Get(0).([]dto.InvoiceResponse)
	return res, args.Error(1)
}

func (m *MockInvoiceUsecase) GetByPatient(ctx context.Context, p *policy.Principal, patientID uuid.UUID) ([]dto.InvoiceResponse, error) {
	args := m.Called(ctx, p, patientID)
	res, _ := args.Get(0).([]dto.InvoiceResponse)
	return res, args.Error(1)
}

func (m *MockInvoiceUsecase) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*dto.InvoiceResponse, error) {
	args := m.Called(ctx, p, id)
	res, _ := args.Get(0).(*dto.InvoiceResponse)
	return res, args.Error(1)
}

func (m *MockInvoiceUsecase) Create(ctx context.Context, p *policy.Principal, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	args := m.Called(ctx, p, req)
	res, _ := args.Get(0).(*dto.InvoiceResponse)
	return res, args.Error(1)
}

func (m *MockInvoiceUsecase) Update(ctx context.Context, p *policy.Principal, id uuid.UUID, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	args := m.Called(ctx, p, id, req)
	res, _ := args.Get(0).(*dto.InvoiceResponse)
	return res, args.Error(1)
}

func (m *MockInvoiceUsecase) Pay(ctx context.Context, p *policy.Principal, id uuid.UUID, req *dto.PayInvoiceRequest) (*dto.InvoiceResponse, error) {
	args := m.Called(ctx, p, id, req)
	res, _ := args.Get(0).(*dto.InvoiceResponse)
	return res, args.Error(1)
}

func (m *MockInvoiceUsecase) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

// MockMedicalRecordUsecase

type MockMedicalRecordUsecase struct {
	mock.Mock
}

func (m *MockMedicalRecordUsecase) GetByPatient(ctx context.Context, p *policy.Principal, patientID uuid.UUID) ([]dto.MedicalRecordResponse, error) {
	args := m.Called(ctx, p, patientID)
	res, _ := args.Get(0).([]dto.MedicalRecordResponse)
	return res, args.Error(1)
}

func (m *MockMedicalRecordUsecase) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*dto.MedicalRecordResponse, error) {
	args := m.Called(ctx, p, id)
	res, _ := args.Get(0).(*dto.MedicalRecordResponse)
	return res, args.Error(1)
}

func (m *MockMedicalRecordUsecase) Create(ctx context.Context, p *policy.Principal, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	args := m.Called(ctx, p, req)
	res, _ := args.Get(0).(*dto.MedicalRecordResponse)
	return res, args.Error(1)
}

// MockAuthUsecase

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.UserResponse)
	return res, args.Error(1)
}

func (m *MockAuthUsecase) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.UserResponse)
	return res, args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.TokenResponse)
	return res, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, p *policy.Principal, req *dto.LogoutRequest) error {
	return m.Called(ctx, p, req).Error(0)
}

func (m *MockAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.TokenResponse)
	return res, args.Error(1)
}

func (m *MockAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).(*dto.UserResponse)
	return res, args.Error(1)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, token string) (*policy.Principal, error) {
	args := m.Called(ctx, token)
	res, _ := args.Get(0).(*policy.Principal)
	return res, args.Error(1)
}

// MockAuditLogUsecase

type MockAuditLogUsecase struct {
	mock.Mock
}

func (m *MockAuditLogUsecase) GetAllAuditLogs(ctx context.Context, p *policy.Principal, filter entity.AuditLogFilter) (*dto.AuditLogListResponse, error) {
	args := m.Called(ctx, p, filter)
	res, _ := args.Get(0).(*dto.AuditLogListResponse)
	return res, args.Error(1)
}

func (m *MockAuditLogUsecase) GetAuditLog(ctx context.Context, p *policy.Principal, id int64) (*dto.AuditLogResponse, error) {
	args := m.Called(ctx, p, id)
	res, _ := args.Get(0).(*dto.AuditLogResponse)
	return res, args.Error(1)
}
