package database_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/backend/internal/adapters/database"
	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	"github.com/clinicdesk/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

func newMockAdapter(t *testing.T) (repositories.AppointmentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewAppointmentAdapter(postgres.NewClientFromDB(db)), mock
}

func appointmentRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "patient_id", "doctor_id",
		"complaints", "doctor_diagnosis", "doctor_recommendations",
		"nlp_diagnosis", "nlp_recommendations",
		"status", "created_at", "updated_at",
	})
	now := time.Now()
	for _, id := range ids {
		rows.AddRow(id, "patient-1", nil, "кашель", nil, nil, nil, nil, "pending", now, now)
	}
	return rows
}

func TestAppointmentAdapter_List(t *testing.T) {
	t.Run("count and items share the search predicate", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "appointments" WHERE .*ILIKE`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`SELECT .+ FROM "appointments" WHERE .*ILIKE.* ORDER BY "updated_at" DESC`).
			WillReturnRows(appointmentRows("appt-1", "appt-2"))

		items, total, err := adapter.List(context.Background(), repositories.AppointmentFilter{
			PatientID: "patient-1",
			Search:    "грипп",
			Order:     repositories.SortDesc,
			Limit:     100,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, items, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ascending order when requested", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "appointments"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`ORDER BY "updated_at" ASC`).
			WillReturnRows(appointmentRows("appt-1"))

		_, _, err := adapter.List(context.Background(), repositories.AppointmentFilter{
			DoctorID: "doctor-1",
			Order:    repositories.SortAsc,
			Limit:    10,
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("doctor scope appears in both queries", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "appointments" WHERE .*"doctor_id"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT .+ FROM "appointments" WHERE .*"doctor_id"`).
			WillReturnRows(appointmentRows())

		items, total, err := adapter.List(context.Background(), repositories.AppointmentFilter{
			DoctorID: "doctor-1",
			Limit:    100,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppointmentAdapter_GetByID(t *testing.T) {
	t.Run("returns not found for missing row", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectQuery(`SELECT .+ FROM "appointments"`).
			WillReturnError(sql.ErrNoRows)

		_, err := adapter.GetByID(context.Background(), "missing")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("maps nullable columns", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectQuery(`SELECT .+ FROM "appointments"`).
			WillReturnRows(appointmentRows("appt-1"))

		appointment, err := adapter.GetByID(context.Background(), "appt-1")

		require.NoError(t, err)
		assert.Equal(t, "appt-1", appointment.ID)
		assert.Nil(t, appointment.DoctorID)
		assert.Equal(t, "кашель", *appointment.Complaints)
		assert.Equal(t, entities.AppointmentStatusPending, appointment.Status)
	})
}

func TestAppointmentAdapter_Delete(t *testing.T) {
	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectExec(`DELETE FROM "appointments"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := adapter.Delete(context.Background(), "missing")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("deletes existing row", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectExec(`DELETE FROM "appointments"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, adapter.Delete(context.Background(), "appt-1"))
	})
}

func TestAppointmentAdapter_Create(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectExec(`INSERT INTO "appointments"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	complaints := "кашель"
	err := adapter.Create(context.Background(), &entities.Appointment{
		ID:         "appt-1",
		PatientID:  "patient-1",
		Complaints: &complaints,
		Status:     entities.AppointmentStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
