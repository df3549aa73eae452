package policy

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// nobody scopes a listing to an id no row carries, for callers missing the
// profile their role implies.
var nobody = uuid.Nil

func (p *Principal) CanListPatients() bool {
	return p.IsAdmin() || p.IsStaff()
}

func (p *Principal) CanViewPatient(patientID uuid.UUID) bool {
	return p.IsAdmin() || p.IsStaff() || (p.IsPatient() && p.ownsPatient(patientID))
}

func (p *Principal) CanEditPatient(patientID uuid.UUID) bool {
	return p.IsAdmin() || (p.IsPatient() && p.ownsPatient(patientID))
}

func (p *Principal) CanViewStaff(staffID uuid.UUID) bool {
	return p.IsAdmin() || (p.IsStaff() && p.ownsStaff(staffID))
}

func (p *Principal) CanEditStaff(staffID uuid.UUID) bool {
	return p.CanViewStaff(staffID)
}

// CanCreateAppointment lets patients book only for themselves.
func (p *Principal) CanCreateAppointment(patientID uuid.UUID) bool {
	return p.IsAdmin() || p.IsStaff() || (p.IsPatient() && p.ownsPatient(patientID))
}

func (p *Principal) CanViewAppointment(a *entity.Appointment) bool {
	switch {
	case p.IsAdmin():
		return true
	case p.IsStaff():
		return p.ownsStaff(a.StaffID)
	case p.IsPatient():
		return p.ownsPatient(a.PatientID)
	}
	return false
}

func (p *Principal) CanModifyAppointment(a *entity.Appointment) bool {
	return p.CanViewAppointment(a)
}

func (p *Principal) CanDeleteAppointment(a *entity.Appointment) bool {
	return p.IsAdmin() || (p.IsStaff() && p.ownsStaff(a.StaffID))
}

func (p *Principal) CanViewInvoice(inv *entity.Invoice) bool {
	return p.IsAdmin() || p.IsStaff() || (p.IsPatient() && p.ownsPatient(inv.PatientID))
}

func (p *Principal) CanManageInvoices() bool {
	return p.IsAdmin()
}

func (p *Principal) CanPayInvoice(inv *entity.Invoice) bool {
	return p.IsAdmin() || (p.IsPatient() && p.ownsPatient(inv.PatientID))
}

func (p *Principal) CanWriteMedicalRecord() bool {
	return p.IsAdmin() || p.IsStaff()
}

func (p *Principal) CanViewMedicalRecord(rec *entity.MedicalRecord) bool {
	return p.IsAdmin() || p.IsStaff() || (p.IsPatient() && p.ownsPatient(rec.PatientID))
}

// ScopeAppointments pins the filter to the caller's own rows. Admin filters pass through.
func (p *Principal) ScopeAppointments(filter entity.AppointmentFilter) entity.AppointmentFilter {
	switch {
	case p.IsAdmin():
	case p.IsStaff():
		filter.StaffID = p.ownOr(p.StaffID)
	case p.IsPatient():
		filter.PatientID = p.ownOr(p.PatientID)
	default:
		filter.PatientID = p.ownOr(nil)
	}
	return filter
}

// ScopeInvoices pins patient listings to their own invoices. Staff read all invoices.
func (p *Principal) ScopeInvoices(filter entity.InvoiceFilter) entity.InvoiceFilter {
	switch {
	case p.IsAdmin(), p.IsStaff():
	case p.IsPatient():
		filter.PatientID = p.ownOr(p.PatientID)
	default:
		filter.PatientID = p.ownOr(nil)
	}
	return filter
}

func (p *Principal) ownOr(id *uuid.UUID) *uuid.UUID {
	if id != nil {
		v := *id
		return &v
	}
	v := nobody
	return &v
}
