package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus constants
const (
	InvoiceStatusPaid      = "Paid"
	InvoiceStatusPending   = "Pending"
	InvoiceStatusOverdue   = "Overdue"
	InvoiceStatusCancelled = "Cancelled"
)

// PaymentMethod constants
const (
	PaymentMethodCash      = "Cash"
	PaymentMethodCard      = "Credit Card"
	PaymentMethodInsurance = "Insurance"
	PaymentMethodTransfer  = "Bank Transfer"
	PaymentMethodOnline    = "Online Payment"
)

// Invoice stores denormalised totals computed from its items
type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"patientId"`
	InvoiceNumber string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"invoiceNumber"`
	Date          time.Time       `gorm:"type:date;not null;index" json:"date"`
	DueDate       time.Time       `gorm:"type:date;not null" json:"dueDate"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Tax           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"tax"`
	Discount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"discount"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Status        string          `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	PaymentMethod string          `gorm:"type:varchar(30)" json:"paymentMethod,omitempty"`
	PaymentDate   *time.Time      `json:"paymentDate,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Items   []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	Patient *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position    int             `gorm:"not null" json:"-"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unitPrice"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}
