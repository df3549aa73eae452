package repository

import (
	"context"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.StaffProfile) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.StaffProfile, error)
	// LockByID takes a row lock on the staff profile for the rest of the transaction.
	LockByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.StaffProfile, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.StaffFilter) ([]entity.StaffProfile, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.StaffProfile) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	MaxCodeNumber(ctx context.Context, db *gorm.DB) (int64, error)
}
