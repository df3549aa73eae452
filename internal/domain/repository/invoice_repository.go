package repository

import (
	"context"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	// Create inserts the invoice together with its items.
	Create(ctx context.Context, db *gorm.DB, invoice *entity.Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.InvoiceFilter) ([]entity.Invoice, error)
	// Update saves the invoice columns only. Items are changed with ReplaceItems.
	Update(ctx context.Context, db *gorm.DB, invoice *entity.Invoice) error
	ReplaceItems(ctx context.Context, db *gorm.DB, invoiceID uuid.UUID, items []entity.InvoiceItem) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	MaxNumber(ctx context.Context, db *gorm.DB) (int64, error)
}
