package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	"github.com/clinicdesk/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

const appointmentsTable = "appointments"

var appointmentColumns = []interface{}{
	"id", "patient_id", "doctor_id",
	"complaints", "doctor_diagnosis", "doctor_recommendations",
	"nlp_diagnosis", "nlp_recommendations",
	"status", "created_at", "updated_at",
}

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	query, args, err := a.db.Insert(appointmentsTable).
		Rows(appointmentRecord(appointment)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	appointment, err := scanAppointment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}

	return appointment, nil
}

// Update persists the full current state of an appointment
func (a *AppointmentAdapter) Update(ctx context.Context, appointment *entities.Appointment) error {
	record := appointmentRecord(appointment)
	delete(record, "id")
	delete(record, "patient_id")
	delete(record, "created_at")

	query, args, err := a.db.Update(appointmentsTable).
		Set(record).
		Where(goqu.Ex{"id": appointment.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", appointment.ID))
	}

	return nil
}

// Delete removes an appointment
func (a *AppointmentAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete(appointmentsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}

	return nil
}

// List returns the filtered page of appointments and the total size of the
// filtered set. Count and items share the predicate built by listConds, so
// a search term narrows both identically.
func (a *AppointmentAdapter) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, int, error) {
	conds := listConds(filter)

	countQuery, countArgs, err := a.db.Select(goqu.COUNT(goqu.Star())).
		From(appointmentsTable).
		Where(conds...).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count appointments", err)
	}

	ds := a.db.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(conds...)

	if filter.Order == repositories.SortAsc {
		ds = ds.Order(goqu.I("updated_at").Asc())
	} else {
		ds = ds.Order(goqu.I("updated_at").Desc())
	}

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	appointments := []*entities.Appointment{}
	for rows.Next() {
		appointment, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to read appointments", err)
	}

	return appointments, total, nil
}

// listConds builds the shared where-clause for List. Search matches any of
// the three free-text fields, case-insensitively.
func listConds(filter repositories.AppointmentFilter) []goqu.Expression {
	var conds []goqu.Expression

	if filter.PatientID != "" {
		conds = append(conds, goqu.Ex{"patient_id": filter.PatientID})
	}
	if filter.DoctorID != "" {
		conds = append(conds, goqu.Ex{"doctor_id": filter.DoctorID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, goqu.Or(
			goqu.C("complaints").ILike(pattern),
			goqu.C("doctor_diagnosis").ILike(pattern),
			goqu.C("doctor_recommendations").ILike(pattern),
		))
	}

	return conds
}

func appointmentRecord(appointment *entities.Appointment) goqu.Record {
	return goqu.Record{
		"id":                     appointment.ID,
		"patient_id":             appointment.PatientID,
		"doctor_id":              appointment.DoctorID,
		"complaints":             appointment.Complaints,
		"doctor_diagnosis":       appointment.DoctorDiagnosis,
		"doctor_recommendations": appointment.DoctorRecommendations,
		"nlp_diagnosis":          appointment.NLPDiagnosis,
		"nlp_recommendations":    appointment.NLPRecommendations,
		"status":                 appointment.Status,
		"created_at":             appointment.CreatedAt,
		"updated_at":             appointment.UpdatedAt,
	}
}

func scanAppointment(scan func(dest ...interface{}) error) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	var doctorID, complaints, doctorDiagnosis, doctorRecs, nlpDiagnosis, nlpRecs sql.NullString

	err := scan(
		&appointment.ID,
		&appointment.PatientID,
		&doctorID,
		&complaints,
		&doctorDiagnosis,
		&doctorRecs,
		&nlpDiagnosis,
		&nlpRecs,
		&appointment.Status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.DoctorID = nullableString(doctorID)
	appointment.Complaints = nullableString(complaints)
	appointment.DoctorDiagnosis = nullableString(doctorDiagnosis)
	appointment.DoctorRecommendations = nullableString(doctorRecs)
	appointment.NLPDiagnosis = nullableString(nlpDiagnosis)
	appointment.NLPRecommendations = nullableString(nlpRecs)

	return appointment, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
