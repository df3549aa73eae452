package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeTx runs the callback directly. Repositories are mocked, so the
// *gorm.DB they receive is always nil.
type fakeTx struct {
	calls int
}

func (f *fakeTx) Conn(ctx context.Context) *gorm.DB {
	return nil
}

func (f *fakeTx) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.calls++
	return fn(nil)
}

// recordingAudit collects the actions written to the audit trail.
type recordingAudit struct {
	mu      sync.Mutex
	actions []string
	err     error
}

func (r *recordingAudit) record(action string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.actions = append(r.actions, action)
	return nil
}

func (r *recordingAudit) LogCreate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, newValue any) error {
	return r.record(action)
}

func (r *recordingAudit) LogUpdate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, oldValue, newValue any) error {
	return r.record(action)
}

func (r *recordingAudit) LogDelete(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, oldValue any) error {
	return r.record(action)
}

// memoryTokenStore is an in-memory deny-list. Setting err makes every call fail.
type memoryTokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{revoked: map[string]time.Time{}}
}

func (m *memoryTokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.revoked[tokenID]; ok {
		return false, nil
	}
	m.revoked[tokenID] = expiresAt
	return true, nil
}

func (m *memoryTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}

// MockSequenceService returns whatever number the test queues up.
type MockSequenceService struct {
	mock.Mock
}

func (m *MockSequenceService) Next(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

// MockUserRepository provides a mock user repository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	args := m.Called(ctx, db, user)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	args := m.Called(ctx, db, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, db, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return m.Called(ctx, db, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return m.Called(ctx, db, id).Error(0)
}

type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Role, error) {
	args := m.Called(ctx, db, name)
	role, _ := args.Get(0).(*entity.Role)
	return role, args.Error(1)
}

func (m *MockRoleRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Role, error) {
	args := m.Called(ctx, db)
	roles, _ := args.Get(0).([]entity.Role)
	return roles, args.Error(1)
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	args := m.Called(ctx, db, profile)
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.PatientProfile, error) {
	args := m.Called(ctx, db, id)
	profile, _ := args.Get(0).(*entity.PatientProfile)
	return profile, args.Error(1)
}

func (m *MockPatientRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	args := m.Called(ctx, db, userID)
	profile, _ := args.Get(0).(*entity.PatientProfile)
	return profile, args.Error(1)
}

func (m *MockPatientRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.PatientProfile, error) {
	args := m.Called(ctx, db)
	profiles, _ := args.Get(0).([]entity.PatientProfile)
	return profiles, args.Error(1)
}

func (m *MockPatientRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	return m.Called(ctx, db, profile).Error(0)
}

func (m *MockPatientRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return m.Called(ctx, db, id).Error(0)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.StaffProfile) error {
	args := m.Called(ctx, db, profile)
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockStaffRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.StaffProfile, error) {
	args := m.Called(ctx, db, id)
	profile, _ := args.Get(0).(*entity.StaffProfile)
	return profile, args.Error(1)
}

func (m *MockStaffRepository) LockByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.StaffProfile, error) {
	args := m.Called(ctx, db, id)
	profile, _ := args.Get(0).(*entity.StaffProfile)
	return profile, args.Error(1)
}

func (m *MockStaffRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.StaffFilter) ([]entity.StaffProfile, error) {
	args := m.Called(ctx, db, filter)
	profiles, _ := args.Get(0).([]entity.StaffProfile)
	return profiles, args.Error(1)
}

func (m *MockStaffRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.StaffProfile) error {
	return m.Called(ctx, db, profile).Error(0)
}

func (m *MockStaffRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return m.Called(ctx, db, id).Error(0)
}

func (m *MockStaffRepository) MaxCodeNumber(ctx context.Context, db *gorm.DB) (int64, error) {
	args := m.Called(ctx, db)
	return args.Get(0).(int64), args.Error(1)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(ctx, db, appointment)
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, db, id)
	appointment, _ := args.Get(0).(*entity.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	args := m.Called(ctx, db, filter)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentRepository) FindActiveByStaffAndDate(ctx context.Context, db *gorm.DB, staffID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(ctx, db, staffID, date, excludeID)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return m.Called(ctx, db, appointment).Error(0)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return m.Called(ctx, db, id).Error(0)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, db *gorm.DB, invoice *entity.Invoice) error {
	args := m.Called(ctx, db, invoice)
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	args := m.Called(ctx, db, id)
	invoice, _ := args.Get(0).(*entity.Invoice)
	return invoice, args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.InvoiceFilter) ([]entity.Invoice, error) {
	args := m.Called(ctx, db, filter)
	invoices, _ := args.Get(0).([]entity.Invoice)
	return invoices, args.Error(1)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, db *gorm.DB, invoice *entity.Invoice) error {
	return m.Called(ctx, db, invoice).Error(0)
}

func (m *MockInvoiceRepository) ReplaceItems(ctx context.Context, db *gorm.DB, invoiceID uuid.UUID, items []entity.InvoiceItem) error {
	return m.Called(ctx, db, invoiceID, items).Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return m.Called(ctx, db, id).Error(0)
}

func (m *MockInvoiceRepository) MaxNumber(ctx context.Context, db *gorm.DB) (int64, error) {
	args := m.Called(ctx, db)
	return args.Get(0).(int64), args.Error(1)
}

type MockMedicalRecordRepository struct {
	mock.Mock
}

func (m *MockMedicalRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	args := m.Called(ctx, db, record)
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockMedicalRecordRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	args := m.Called(ctx, db, id)
	record, _ := args.Get(0).(*entity.MedicalRecord)
	return record, args.Error(1)
}

func (m *MockMedicalRecordRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error) {
	args := m.Called(ctx, db, patientID)
	records, _ := args.Get(0).([]entity.MedicalRecord)
	return records, args.Error(1)
}

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	return m.Called(ctx, db, log).Error(0)
}

func (m *MockAuditLogRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	args := m.Called(ctx, db, filter)
	logs, _ := args.Get(0).([]entity.AuditLog)
	return logs, args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	args := m.Called(ctx, db, id)
	log, _ := args.Get(0).(*entity.AuditLog)
	return log, args.Error(1)
}

// Principals used across the usecase tests.

func adminPrincipal() *policy.Principal {
	return &policy.Principal{UserID: uuid.New(), Name: "Admin", Role: entity.RoleAdmin}
}

func staffPrincipal(staffID uuid.UUID) *policy.Principal {
	return &policy.Principal{UserID: uuid.New(), Name: "Dr. Grey", Role: entity.RoleStaff, StaffID: &staffID}
}

func patientPrincipal(patientID uuid.UUID) *policy.Principal {
	return &policy.Principal{UserID: uuid.New(), Name: "Jane Doe", Role: entity.RolePatient, PatientID: &patientID}
}
