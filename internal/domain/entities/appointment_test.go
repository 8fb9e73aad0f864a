package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

func strPtr(s string) *string { return &s }

func TestAppointmentPatch_Apply(t *testing.T) {
	base := func() *entities.Appointment {
		return &entities.Appointment{
			ID:              "appt-1",
			PatientID:       "patient-1",
			Complaints:      strPtr("кашель и насморк"),
			DoctorDiagnosis: strPtr("грипп"),
			Status:          entities.AppointmentStatusPending,
			CreatedAt:       time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt:       time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		}
	}

	t.Run("absent fields stay untouched", func(t *testing.T) {
		appt := base()
		status := entities.AppointmentStatusCompleted

		entities.AppointmentPatch{Status: &status}.Apply(appt)

		assert.Equal(t, entities.AppointmentStatusCompleted, appt.Status)
		assert.Equal(t, "кашель и насморк", *appt.Complaints)
		assert.Equal(t, "грипп", *appt.DoctorDiagnosis)
		assert.Nil(t, appt.DoctorID)
	})

	t.Run("explicit empty string overwrites", func(t *testing.T) {
		appt := base()

		entities.AppointmentPatch{DoctorDiagnosis: strPtr("")}.Apply(appt)

		assert.Equal(t, "", *appt.DoctorDiagnosis)
		assert.Equal(t, "кашель и насморк", *appt.Complaints)
	})

	t.Run("doctor can be assigned through a patch", func(t *testing.T) {
		appt := base()

		entities.AppointmentPatch{DoctorID: strPtr("doctor-9")}.Apply(appt)

		assert.Equal(t, "doctor-9", *appt.DoctorID)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		appt := base()
		want := *appt

		entities.AppointmentPatch{}.Apply(appt)

		assert.Equal(t, want, *appt)
	})
}

func TestAppointmentStatus_Valid(t *testing.T) {
	assert.True(t, entities.AppointmentStatusPending.Valid())
	assert.True(t, entities.AppointmentStatusCompleted.Valid())
	assert.True(t, entities.AppointmentStatusCancelled.Valid())
	assert.False(t, entities.AppointmentStatus("archived").Valid())
	assert.False(t, entities.AppointmentStatus("").Valid())
}
