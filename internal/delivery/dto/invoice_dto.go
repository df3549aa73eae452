package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type InvoiceItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type CreateInvoiceRequest struct {
	PatientID uuid.UUID            `json:"patientId" validate:"required"`
	Date      string               `json:"date" validate:"omitempty,isodate"`
	DueDate   string               `json:"dueDate" validate:"required,isodate"`
	Items     []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	Tax       decimal.Decimal      `json:"tax"`
	Discount  decimal.Decimal      `json:"discount"`
	Notes     string               `json:"notes" validate:"omitempty,max=4000"`
}

// UpdateInvoiceRequest is a partial update. Totals are recomputed whenever
// items, tax or discount are present.
type UpdateInvoiceRequest struct {
	DueDate       *string               `json:"dueDate" validate:"omitempty,isodate"`
	Items         *[]InvoiceItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	Tax           *decimal.Decimal      `json:"tax"`
	Discount      *decimal.Decimal      `json:"discount"`
	Status        *string               `json:"status" validate:"omitempty,oneof=Paid Pending Overdue Cancelled"`
	PaymentMethod *string               `json:"paymentMethod" validate:"omitempty,oneof=Cash 'Credit Card' Insurance 'Bank Transfer' 'Online Payment'"`
	Notes         *string               `json:"notes" validate:"omitempty,max=4000"`
}

// TouchesTotals reports whether the update requires recomputing totals.
func (r *UpdateInvoiceRequest) TouchesTotals() bool {
	return r.Items != nil || r.Tax != nil || r.Discount != nil
}

type PayInvoiceRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=Cash 'Credit Card' Insurance 'Bank Transfer' 'Online Payment'"`
}

// Response DTOs

type InvoiceItemResponse struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoiceNumber"`
	PatientID     uuid.UUID             `json:"patientId"`
	Patient       *PatientSummary       `json:"patient,omitempty"`
	Date          string                `json:"date"`
	DueDate       string                `json:"dueDate"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      float64               `json:"subtotal"`
	Tax           float64               `json:"tax"`
	Discount      float64               `json:"discount"`
	Total         float64               `json:"total"`
	Status        string                `json:"status"`
	PaymentMethod string                `json:"paymentMethod,omitempty"`
	PaymentDate   *time.Time            `json:"paymentDate,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}
