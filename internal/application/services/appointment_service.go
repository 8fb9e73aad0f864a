package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/policy"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// AppointmentService implements the appointment lifecycle. Every operation
// takes the acting user and enforces the access policy before touching
// storage.
type AppointmentService struct {
	repo repositories.AppointmentRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repo: repo}
}

// ListParams are the caller-facing listing knobs. Scoping by actor happens
// inside List and cannot be overridden from outside.
type ListParams struct {
	Skip   int
	Limit  int
	Search string
	Order  repositories.SortOrder
}

// DoctorCreateParams is the doctor-initiated creation payload. The acting
// doctor becomes the assigned doctor of the new record.
type DoctorCreateParams struct {
	PatientID             string  `json:"patient_id"`
	Complaints            *string `json:"complaints"`
	DoctorDiagnosis       *string `json:"doctor_diagnosis"`
	DoctorRecommendations *string `json:"doctor_recommendations"`
	NLPDiagnosis          *string `json:"nlp_diagnosis"`
	NLPRecommendations    *string `json:"nlp_recommendations"`
}

// List returns the page of appointments visible to actor plus the total size
// of the visible set.
func (s *AppointmentService) List(ctx context.Context, actor entities.Actor, params ListParams) ([]*entities.Appointment, int, error) {
	filter := repositories.AppointmentFilter{
		Search: strings.TrimSpace(params.Search),
		Order:  params.Order,
		Limit:  params.Limit,
		Offset: params.Skip,
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Order == "" {
		filter.Order = repositories.SortDesc
	}
	policy.ListScope(actor, &filter)

	return s.repo.List(ctx, filter)
}

// Get returns a single appointment if actor is allowed to see it.
func (s *AppointmentService) Get(ctx context.Context, actor entities.Actor, id string) (*entities.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanRead(actor, appointment) {
		return nil, apperrors.NewForbiddenError("not enough permissions")
	}
	return appointment, nil
}

// CreateAsPatient opens a new pending appointment owned by the acting
// patient. Complaints are required; doctorID may pre-assign a doctor,
// otherwise the record stays unassigned until a doctor picks it up.
func (s *AppointmentService) CreateAsPatient(ctx context.Context, actor entities.Actor, complaints string, doctorID *string) (*entities.Appointment, error) {
	if !policy.CanCreateAsPatient(actor) {
		return nil, apperrors.NewForbiddenError("only patients can create appointments here")
	}

	complaints = strings.TrimSpace(complaints)
	if complaints == "" {
		return nil, apperrors.NewValidationError("complaints cannot be empty")
	}

	now := time.Now().UTC()
	appointment := &entities.Appointment{
		ID:         uuid.New().String(),
		PatientID:  actor.ID,
		DoctorID:   doctorID,
		Complaints: &complaints,
		Status:     entities.AppointmentStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	log.Info().
		Str("appointment_id", appointment.ID).
		Str("patient_id", appointment.PatientID).
		Msg("patient appointment created")

	return appointment, nil
}

// CreateAsDoctor records a completed encounter authored by the acting
// doctor on behalf of a patient.
func (s *AppointmentService) CreateAsDoctor(ctx context.Context, actor entities.Actor, params DoctorCreateParams) (*entities.Appointment, error) {
	if !policy.CanCreateAsDoctor(actor) {
		return nil, apperrors.NewForbiddenError("not enough permissions")
	}
	if strings.TrimSpace(params.PatientID) == "" {
		return nil, apperrors.NewValidationError("patient_id is required")
	}

	doctorID := actor.ID
	now := time.Now().UTC()
	appointment := &entities.Appointment{
		ID:                    uuid.New().String(),
		PatientID:             params.PatientID,
		DoctorID:              &doctorID,
		Complaints:            params.Complaints,
		DoctorDiagnosis:       params.DoctorDiagnosis,
		DoctorRecommendations: params.DoctorRecommendations,
		NLPDiagnosis:          params.NLPDiagnosis,
		NLPRecommendations:    params.NLPRecommendations,
		Status:                entities.AppointmentStatusCompleted,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	log.Info().
		Str("appointment_id", appointment.ID).
		Str("doctor_id", doctorID).
		Str("patient_id", appointment.PatientID).
		Msg("doctor appointment created")

	return appointment, nil
}

// Update merges a sparse patch into an existing appointment. Absent fields
// keep their stored values; PatientID and CreatedAt never change.
func (s *AppointmentService) Update(ctx context.Context, actor entities.Actor, id string, patch entities.AppointmentPatch) (*entities.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanWrite(actor, appointment) {
		return nil, apperrors.NewForbiddenError("not enough permissions")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid appointment status")
	}

	patch.Apply(appointment)
	appointment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Delete removes an appointment. Only the owning patient or a superuser may.
func (s *AppointmentService) Delete(ctx context.Context, actor entities.Actor, id string) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDelete(actor, appointment) {
		return apperrors.NewForbiddenError("not enough permissions")
	}
	return s.repo.Delete(ctx, id)
}
