package service

import (
	"context"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService writes audit rows on the caller's transaction so they commit
// or roll back together with the change they describe.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, newValue any) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, oldValue, newValue any) error
	LogDelete(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, oldValue any) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, newValue any) error {
	return s.write(ctx, tx, actorID, action, entity.AuditMetadata{
		Entity:   entityName,
		EntityID: entityID,
		NewValue: newValue,
	})
}

func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, oldValue, newValue any) error {
	return s.write(ctx, tx, actorID, action, entity.AuditMetadata{
		Entity:   entityName,
		EntityID: entityID,
		OldValue: oldValue,
		NewValue: newValue,
	})
}

func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, oldValue any) error {
	return s.write(ctx, tx, actorID, action, entity.AuditMetadata{
		Entity:   entityName,
		EntityID: entityID,
		OldValue: oldValue,
	})
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, metadata entity.AuditMetadata) error {
	auditLog := &entity.AuditLog{
		UserID:   actorID,
		Action:   action,
		Metadata: datatypes.NewJSONType(metadata),
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log %s: %+v", action, err)
		return err
	}
	return nil
}
