package usecase

import (
	"context"
	"errors"
	"time"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/billing"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrInvoiceNotPayable  = errors.New("invoice cannot be paid in its current status")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
	ErrDueDateBeforeIssue = errors.New("due date must not be before the invoice date")
)

type InvoiceUsecase interface {
	GetAll(ctx context.Context, principal *policy.Principal, filter entity.InvoiceFilter) ([]dto.InvoiceResponse, error)
	GetByPatient(ctx context.Context, principal *policy.Principal, patientID uuid.UUID) ([]dto.InvoiceResponse, error)
	Get(ctx context.Context, principal *policy.Principal, id uuid.UUID) (*dto.InvoiceResponse, error)
	Create(ctx context.Context, principal *policy.Principal, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	Update(ctx context.Context, principal *policy.Principal, id uuid.UUID, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	Pay(ctx context.Context, principal *policy.Principal, id uuid.UUID, req *dto.PayInvoiceRequest) (*dto.InvoiceResponse, error)
	Delete(ctx context.Context, principal *policy.Principal, id uuid.UUID) error
}

type invoiceUsecase struct {
	tx           repository.TxManager
	log          *logrus.Logger
	invoiceRepo  repository.InvoiceRepository
	patientRepo  repository.PatientProfileRepository
	sequences    service.SequenceService
	auditService service.AuditService
	now          func() time.Time
}

func NewInvoiceUsecase(
	tx repository.TxManager,
	log *logrus.Logger,
	invoiceRepo repository.InvoiceRepository,
	patientRepo repository.PatientProfileRepository,
	sequences service.SequenceService,
	auditService service.AuditService,
) InvoiceUsecase {
	return &invoiceUsecase{
		tx:           tx,
		log:          log,
		invoiceRepo:  invoiceRepo,
		patientRepo:  patientRepo,
		sequences:    sequences,
		auditService: auditService,
		now:          time.Now,
	}
}

// GetAll lists invoices newest first. Patients only ever see their own.
func (u *invoiceUsecase) GetAll(ctx context.Context, principal *policy.Principal, filter entity.InvoiceFilter) ([]dto.InvoiceResponse, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, ErrInvalidDateRange
	}
	if principal.IsPatient() {
		if err := requireOwnProfile(principal); err != nil {
			return nil, err
		}
	}
	return u.list(ctx, principal.ScopeInvoices(filter))
}

func (u *invoiceUsecase) GetByPatient(ctx context.Context, principal *policy.Principal, patientID uuid.UUID) ([]dto.InvoiceResponse, error) {
	if !principal.CanViewPatient(patientID) {
		return nil, ErrForbidden
	}
	patient, err := u.patientRepo.FindByID(ctx, u.tx.Conn(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return u.list(ctx, entity.InvoiceFilter{PatientID: &patientID})
}

func (u *invoiceUsecase) list(ctx context.Context, filter entity.InvoiceFilter) ([]dto.InvoiceResponse, error) {
	invoices, err := u.invoiceRepo.FindAll(ctx, u.tx.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find invoices: %+v", err)
		return nil, err
	}
	return converter.InvoicesToResponses(invoices), nil
}

func (u *invoiceUsecase) Get(ctx context.Context, principal *policy.Principal, id uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, err := u.find(ctx, u.tx.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	if !principal.CanViewInvoice(invoice) {
		return nil, ErrForbidden
	}
	return converter.InvoiceToResponse(invoice), nil
}

// Create computes the totals, draws the next invoice number and stores the
// invoice as Pending.
func (u *invoiceUsecase) Create(ctx context.Context, principal *policy.Principal, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if !principal.CanManageInvoices() {
		return nil, ErrForbidden
	}

	date := today(u.now())
	if req.Date != "" {
		var err error
		if date, err = parseDate(req.Date); err != nil {
			return nil, err
		}
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	if dueDate.Before(date) {
		return nil, ErrDueDateBeforeIssue
	}

	lineItems := converter.LineItemsFromRequest(req.Items)
	totals, err := billing.ComputeTotals(lineItems, req.Tax, req.Discount)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		PatientID: req.PatientID,
		Date:      date,
		DueDate:   dueDate,
		Items:     converter.InvoiceItemsFromTotals(lineItems, totals),
		Status:    entity.InvoiceStatusPending,
		Notes:     req.Notes,
	}
	setTotals(invoice, totals)

	err = u.tx.Do(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(ctx, tx, req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		number, err := u.sequences.Next(ctx, service.SequenceInvoice)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number

		if err := u.invoiceRepo.Create(ctx, tx, invoice); err != nil {
			if isDuplicateKeyError(err, "invoice_number") {
				u.log.Errorf("Invoice number %s already stored, sequence needs a resync", number)
				return ErrSequenceOutOfSync
			}
			u.log.Warnf("Failed to create invoice: %+v", err)
			return err
		}

		return u.auditService.LogCreate(ctx, tx, principal.ActorID(), entity.AuditActionInvoiceCreate, "invoice", invoice.ID.String(), converter.InvoiceToResponse(invoice))
	})
	if err != nil {
		return nil, err
	}

	return u.reload(ctx, invoice)
}

// Update applies a partial update. Totals are recomputed from the stored or
// replacement items whenever items, tax or discount change.
func (u *invoiceUsecase) Update(ctx context.Context, principal *policy.Principal, id uuid.UUID, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if !principal.CanManageInvoices() {
		return nil, ErrForbidden
	}

	var invoice *entity.Invoice
	err := u.tx.Do(ctx, func(tx *gorm.DB) error {
		var err error
		invoice, err = u.find(ctx, tx, id)
		if err != nil {
			return err
		}
		oldValue := converter.InvoiceToResponse(invoice)

		if req.DueDate != nil {
			dueDate, err := parseDate(*req.DueDate)
			if err != nil {
				return err
			}
			if dueDate.Before(invoice.Date) {
				return ErrDueDateBeforeIssue
			}
			invoice.DueDate = dueDate
		}
		if req.Status != nil && *req.Status != invoice.Status {
			invoice.Status = *req.Status
			if invoice.Status == entity.InvoiceStatusPaid && invoice.PaymentDate == nil {
				paidAt := u.now().UTC()
				invoice.PaymentDate = &paidAt
			}
		}
		if req.PaymentMethod != nil {
			invoice.PaymentMethod = *req.PaymentMethod
		}
		if req.Notes != nil {
			invoice.Notes = *req.Notes
		}

		itemsChanged := false
		if req.TouchesTotals() {
			lineItems := storedLineItems(invoice.Items)
			if req.Items != nil {
				lineItems = converter.LineItemsFromRequest(*req.Items)
				itemsChanged = true
			}
			tax, discount := invoice.Tax, invoice.Discount
			if req.Tax != nil {
				tax = *req.Tax
			}
			if req.Discount != nil {
				discount = *req.Discount
			}

			totals, err := billing.ComputeTotals(lineItems, tax, discount)
			if err != nil {
				return err
			}
			setTotals(invoice, totals)
			if itemsChanged {
				invoice.Items = converter.InvoiceItemsFromTotals(lineItems, totals)
			}
		}

		if err := u.invoiceRepo.Update(ctx, tx, invoice); err != nil {
			u.log.Warnf("Failed to update invoice %s: %+v", id, err)
			return err
		}
		if itemsChanged {
			if err := u.invoiceRepo.ReplaceItems(ctx, tx, id, invoice.Items); err != nil {
				u.log.Warnf("Failed to replace items of invoice %s: %+v", id, err)
				return err
			}
		}

		return u.auditService.LogUpdate(ctx, tx, principal.ActorID(), entity.AuditActionInvoiceUpdate, "invoice", id.String(), oldValue, converter.InvoiceToResponse(invoice))
	})
	if err != nil {
		return nil, err
	}

	return u.reload(ctx, invoice)
}

// Pay marks a Pending or Overdue invoice as Paid.
func (u *invoiceUsecase) Pay(ctx context.Context, principal *policy.Principal, id uuid.UUID, req *dto.PayInvoiceRequest) (*dto.InvoiceResponse, error) {
	var invoice *entity.Invoice
	err := u.tx.Do(ctx, func(tx *gorm.DB) error {
		var err error
		invoice, err = u.find(ctx, tx, id)
		if err != nil {
			return err
		}
		if !principal.CanPayInvoice(invoice) {
			return ErrForbidden
		}
		if invoice.Status == entity.InvoiceStatusPaid || invoice.Status == entity.InvoiceStatusCancelled {
			return ErrInvoiceNotPayable
		}

		oldValue := converter.InvoiceToResponse(invoice)
		paidAt := u.now().UTC()
		invoice.Status = entity.InvoiceStatusPaid
		invoice.PaymentMethod = req.PaymentMethod
		invoice.PaymentDate = &paidAt

		if err := u.invoiceRepo.Update(ctx, tx, invoice); err != nil {
			u.log.Warnf("Failed to pay invoice %s: %+v", id, err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, principal.ActorID(), entity.AuditActionInvoicePay, "invoice", id.String(), oldValue, converter.InvoiceToResponse(invoice))
	})
	if err != nil {
		return nil, err
	}

	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) Delete(ctx context.Context, principal *policy.Principal, id uuid.UUID) error {
	if !principal.CanManageInvoices() {
		return ErrForbidden
	}

	return u.tx.Do(ctx, func(tx *gorm.DB) error {
		invoice, err := u.find(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := u.invoiceRepo.Delete(ctx, tx, id); err != nil {
			u.log.Warnf("Failed to delete invoice %s: %+v", id, err)
			return err
		}

		return u.auditService.LogDelete(ctx, tx, principal.ActorID(), entity.AuditActionInvoiceDelete, "invoice", id.String(), converter.InvoiceToResponse(invoice))
	})
}

func (u *invoiceUsecase) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := u.invoiceRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice %s: %+v", id, err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

func (u *invoiceUsecase) reload(ctx context.Context, invoice *entity.Invoice) (*dto.InvoiceResponse, error) {
	fresh, err := u.invoiceRepo.FindByID(ctx, u.tx.Conn(ctx), invoice.ID)
	if err != nil || fresh == nil {
		u.log.Warnf("Failed to reload invoice %s: %+v", invoice.ID, err)
		return converter.InvoiceToResponse(invoice), nil
	}
	return converter.InvoiceToResponse(fresh), nil
}

func setTotals(invoice *entity.Invoice, totals billing.Totals) {
	invoice.Subtotal = totals.Subtotal
	invoice.Tax = totals.Tax
	invoice.Discount = totals.Discount
	invoice.Total = totals.Total
}

func storedLineItems(items []entity.InvoiceItem) []billing.LineItem {
	out := make([]billing.LineItem, len(items))
	for i, item := range items {
		out[i] = billing.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return out
}
