package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/billing"
	"hospital-management-api/internal/domain/entity"
)

func InvoiceToResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}

	items := make([]dto.InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = dto.InvoiceItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.InexactFloat64(),
			Amount:      item.Amount.InexactFloat64(),
		}
	}

	return &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		PatientID:     inv.PatientID,
		Patient:       PatientToSummary(inv.Patient),
		Date:          formatDate(inv.Date),
		DueDate:       formatDate(inv.DueDate),
		Items:         items,
		Subtotal:      inv.Subtotal.InexactFloat64(),
		Tax:           inv.Tax.InexactFloat64(),
		Discount:      inv.Discount.InexactFloat64(),
		Total:         inv.Total.InexactFloat64(),
		Status:        inv.Status,
		PaymentMethod: inv.PaymentMethod,
		PaymentDate:   inv.PaymentDate,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func InvoicesToResponses(invoices []entity.Invoice) []dto.InvoiceResponse {
	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = *InvoiceToResponse(&invoices[i])
	}
	return responses
}

// LineItemsFromRequest maps request items onto billing line items.
func LineItemsFromRequest(items []dto.InvoiceItemRequest) []billing.LineItem {
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

// InvoiceItemsFromTotals builds stored items from line items and their computed amounts.
func InvoiceItemsFromTotals(items []billing.LineItem, totals billing.Totals) []entity.InvoiceItem {
	out := make([]entity.InvoiceItem, len(items))
	for i, item := range items {
		out[i] = entity.InvoiceItem{
			Position:    i,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Round(2),
			Amount:      totals.Amounts[i],
		}
	}
	return out
}
