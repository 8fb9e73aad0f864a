package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/policy"
	"github.com/clinicdesk/backend/internal/domain/repositories"
)

var (
	superuser    = entities.Actor{ID: "root", Role: entities.RolePatient, IsSuperuser: true}
	patientOwner = entities.Actor{ID: "patient-1", Role: entities.RolePatient}
	otherPatient = entities.Actor{ID: "patient-2", Role: entities.RolePatient}
	assignedDoc  = entities.Actor{ID: "doctor-1", Role: entities.RoleDoctor}
	otherDoc     = entities.Actor{ID: "doctor-2", Role: entities.RoleDoctor}
)

func apptWithDoctor(doctorID string) *entities.Appointment {
	appt := &entities.Appointment{ID: "appt-1", PatientID: "patient-1"}
	if doctorID != "" {
		appt.DoctorID = &doctorID
	}
	return appt
}

func TestCanRead(t *testing.T) {
	assigned := apptWithDoctor("doctor-1")
	unassigned := apptWithDoctor("")

	assert.True(t, policy.CanRead(superuser, assigned))
	assert.True(t, policy.CanRead(patientOwner, assigned))
	assert.False(t, policy.CanRead(otherPatient, assigned))
	assert.True(t, policy.CanRead(assignedDoc, assigned))
	assert.False(t, policy.CanRead(otherDoc, assigned))
	assert.True(t, policy.CanRead(otherDoc, unassigned), "unassigned appointments are visible to any doctor")
}

func TestCanWrite(t *testing.T) {
	assigned := apptWithDoctor("doctor-1")
	unassigned := apptWithDoctor("")

	assert.True(t, policy.CanWrite(superuser, assigned))
	assert.False(t, policy.CanWrite(patientOwner, assigned), "patients never update, not even their own record")
	assert.True(t, policy.CanWrite(assignedDoc, assigned))
	assert.False(t, policy.CanWrite(otherDoc, assigned))
	assert.True(t, policy.CanWrite(otherDoc, unassigned), "unassigned appointments are claimable by any doctor")
}

func TestCanDelete(t *testing.T) {
	appt := apptWithDoctor("doctor-1")

	assert.True(t, policy.CanDelete(superuser, appt))
	assert.True(t, policy.CanDelete(patientOwner, appt))
	assert.False(t, policy.CanDelete(otherPatient, appt))
	assert.False(t, policy.CanDelete(assignedDoc, appt), "doctors never delete")
}

func TestCanCreate(t *testing.T) {
	assert.True(t, policy.CanCreateAsPatient(patientOwner))
	assert.True(t, policy.CanCreateAsPatient(superuser))
	assert.False(t, policy.CanCreateAsPatient(assignedDoc))

	assert.True(t, policy.CanCreateAsDoctor(assignedDoc))
	assert.True(t, policy.CanCreateAsDoctor(superuser))
	assert.False(t, policy.CanCreateAsDoctor(patientOwner))
}

func TestListScope(t *testing.T) {
	t.Run("doctor is scoped to assigned appointments", func(t *testing.T) {
		filter := repositories.AppointmentFilter{}
		policy.ListScope(assignedDoc, &filter)
		assert.Equal(t, "doctor-1", filter.DoctorID)
		assert.Empty(t, filter.PatientID)
	})

	t.Run("patient is scoped to own appointments", func(t *testing.T) {
		filter := repositories.AppointmentFilter{}
		policy.ListScope(patientOwner, &filter)
		assert.Equal(t, "patient-1", filter.PatientID)
		assert.Empty(t, filter.DoctorID)
	})

	t.Run("superuser sees all", func(t *testing.T) {
		filter := repositories.AppointmentFilter{}
		policy.ListScope(superuser, &filter)
		assert.Empty(t, filter.PatientID)
		assert.Empty(t, filter.DoctorID)
	})
}
