package policy

import "hospital-management-api/internal/domain/entity"

// Profile fields a patient may change on their own record.
var patientSelfFields = map[string]bool{
	"phone":            true,
	"address":          true,
	"emergencyContact": true,
	"insuranceInfo":    true,
}

// Profile fields a staff member may change on their own record.
var staffSelfFields = map[string]bool{
	"phone":            true,
	"address":          true,
	"emergencyContact": true,
}

// Statuses a patient may move their own appointment to.
var patientAppointmentStatuses = map[string]bool{
	entity.AppointmentStatusConfirmed: true,
	entity.AppointmentStatusCancelled: true,
}

// DisallowedPatientFields returns the fields in changed the caller may not set
// on a patient profile. An empty result means the update is allowed.
func (p *Principal) DisallowedPatientFields(changed []string) []string {
	if p.IsAdmin() {
		return nil
	}
	return disallowed(changed, patientSelfFields)
}

// DisallowedStaffFields is the staff-profile counterpart of DisallowedPatientFields.
func (p *Principal) DisallowedStaffFields(changed []string) []string {
	if p.IsAdmin() {
		return nil
	}
	return disallowed(changed, staffSelfFields)
}

// DisallowedAppointmentChange returns the rejected fields of an appointment
// update. Patients may only touch status, and only to Confirmed or Cancelled.
func (p *Principal) DisallowedAppointmentChange(changed []string, status string) []string {
	if !p.IsPatient() {
		return nil
	}
	var out []string
	for _, field := range changed {
		if field != "status" {
			out = append(out, field)
		}
	}
	if status != "" && !patientAppointmentStatuses[status] {
		out = append(out, "status")
	}
	return out
}

func disallowed(changed []string, allowed map[string]bool) []string {
	var out []string
	for _, field := range changed {
		if !allowed[field] {
			out = append(out, field)
		}
	}
	return out
}
