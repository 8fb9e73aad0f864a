// Package policy holds the pure per-actor access decisions for appointment
// records. Nothing here touches storage; callers fetch the record first and
// ask the policy afterwards.
package policy

import (
	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/repositories"
)

// CanRead reports whether actor may view appt. Patients see their own
// records; doctors see records assigned to them or not yet assigned.
func CanRead(actor entities.Actor, appt *entities.Appointment) bool {
	if actor.IsSuperuser {
		return true
	}
	switch actor.Role {
	case entities.RolePatient:
		return appt.PatientID == actor.ID
	case entities.RoleDoctor:
		return appt.DoctorID == nil || *appt.DoctorID == actor.ID
	}
	return false
}

// CanWrite reports whether actor may update appt. Patients never update;
// doctors update their own or unassigned (claimable) records.
func CanWrite(actor entities.Actor, appt *entities.Appointment) bool {
	if actor.IsSuperuser {
		return true
	}
	if actor.Role != entities.RoleDoctor {
		return false
	}
	return appt.DoctorID == nil || *appt.DoctorID == actor.ID
}

// CanDelete reports whether actor may delete appt. Only the owning patient
// or a superuser may; doctors never delete.
func CanDelete(actor entities.Actor, appt *entities.Appointment) bool {
	if actor.IsSuperuser {
		return true
	}
	return actor.Role == entities.RolePatient && appt.PatientID == actor.ID
}

// CanCreateAsPatient reports whether actor may use the patient-initiated
// creation flow
func CanCreateAsPatient(actor entities.Actor) bool {
	return actor.IsSuperuser || actor.Role == entities.RolePatient
}

// CanCreateAsDoctor reports whether actor may use the doctor-initiated
// creation flow
func CanCreateAsDoctor(actor entities.Actor) bool {
	return actor.IsSuperuser || actor.Role == entities.RoleDoctor
}

// ListScope narrows filter to the records actor is allowed to list:
// doctors to their assigned appointments, patients to their own.
// Superusers see everything.
func ListScope(actor entities.Actor, filter *repositories.AppointmentFilter) {
	if actor.IsSuperuser {
		return
	}
	if actor.Role == entities.RoleDoctor {
		filter.DoctorID = actor.ID
		return
	}
	filter.PatientID = actor.ID
}
