package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

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

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAuditService_LogUpdateKeepsBothValues(t *testing.T) {
	repo := new(MockAuditLogRepository)
	svc := NewAuditService(quietLogger(), repo)
	actor := uuid.New()

	var written *entity.AuditLog
	repo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.AuditLog")).
		Run(func(args mock.Arguments) { written = args.Get(2).(*entity.AuditLog) }).
		Return(nil)

	err := svc.LogUpdate(context.Background(), nil, &actor, entity.AuditActionInvoiceUpdate, "invoice", "inv-1",
		map[string]string{"status": "Pending"}, map[string]string{"status": "Paid"})

	require.NoError(t, err)
	require.NotNil(t, written)
	assert.Equal(t, &actor, written.UserID)
	assert.Equal(t, entity.AuditActionInvoiceUpdate, written.Action)

	metadata := written.Metadata.Data()
	assert.Equal(t, "invoice", metadata.Entity)
	assert.Equal(t, "inv-1", metadata.EntityID)
	assert.Equal(t, map[string]string{"status": "Pending"}, metadata.OldValue)
	assert.Equal(t, map[string]string{"status": "Paid"}, metadata.NewValue)
}

func TestAuditService_SystemActionsHaveNoActor(t *testing.T) {
	repo := new(MockAuditLogRepository)
	svc := NewAuditService(quietLogger(), repo)
	repo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(l *entity.AuditLog) bool {
		return l.UserID == nil && l.Metadata.Data().OldValue == nil
	})).Return(nil)

	require.NoError(t, svc.LogCreate(context.Background(), nil, nil, entity.AuditActionAdminCreate, "user", "u-1", "created"))
	repo.AssertExpectations(t)
}

func TestAuditService_PropagatesWriteFailure(t *testing.T) {
	repo := new(MockAuditLogRepository)
	svc := NewAuditService(quietLogger(), repo)
	boom := errors.New("insert failed")
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(boom)

	err := svc.LogDelete(context.Background(), nil, nil, entity.AuditActionPatientDelete, "patient", "p-1", nil)

	assert.ErrorIs(t, err, boom)
}
