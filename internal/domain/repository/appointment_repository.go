package repository

import (
	"context"
	"time"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindActiveByStaffAndDate returns the non-cancelled appointments of a staff
	// member on date, skipping excludeID when it is set.
	FindActiveByStaffAndDate(ctx context.Context, db *gorm.DB, staffID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]entity.Appointment, error)
	Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
