package repository

import (
	"context"
	"errors"
	"time"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepository struct{}

func NewInvoiceRepository() domainRepo.InvoiceRepository {
	return &invoiceRepository{}
}

func (r *invoiceRepository) Create(ctx context.Context, db *gorm.DB, invoice *entity.Invoice) error {
	for i := range invoice.Items {
		invoice.Items[i].Position = i
	}
	return db.WithContext(ctx).Omit("Patient").Create(invoice).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Patient.User").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.InvoiceFilter) ([]entity.Invoice, error) {
	query := db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Patient.User")
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate.Format(time.DateOnly))
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate.Format(time.DateOnly))
	}

	var invoices []entity.Invoice
	if err := query.Order("date DESC, invoice_number DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) Update(ctx context.Context, db *gorm.DB, invoice *entity.Invoice) error {
	return db.WithContext(ctx).Omit("Items", "Patient").Save(invoice).Error
}

func (r *invoiceRepository) ReplaceItems(ctx context.Context, db *gorm.DB, invoiceID uuid.UUID, items []entity.InvoiceItem) error {
	db = db.WithContext(ctx)
	if err := db.Where("invoice_id = ?", invoiceID).Delete(&entity.InvoiceItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = uuid.Nil
		items[i].InvoiceID = invoiceID
		items[i].Position = i
	}
	return db.Create(&items).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	db = db.WithContext(ctx)
	if err := db.Where("invoice_id = ?", id).Delete(&entity.InvoiceItem{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entity.Invoice{}).Error
}

// MaxNumber returns the highest N among INVnnnn invoice numbers, or 0.
func (r *invoiceRepository) MaxNumber(ctx context.Context, db *gorm.DB) (int64, error) {
	var highest int64
	err := db.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(CAST(SUBSTRING(invoice_number FROM 4) AS BIGINT)), 0)
			FROM invoices WHERE invoice_number ~ '^INV[0-9]+$'`).
		Scan(&highest).Error
	return highest, err
}
