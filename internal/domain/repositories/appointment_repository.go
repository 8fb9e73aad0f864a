package repositories

import (
	"context"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// SortOrder is the updated_at sort direction for appointment listings
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// AppointmentFilter defines filters for listing appointments
type AppointmentFilter struct {
	// PatientID / DoctorID scope the result set to one side of the record.
	// Empty values apply no scoping.
	PatientID string
	DoctorID  string

	// Search is matched case-insensitively as a substring against
	// complaints, doctor_diagnosis and doctor_recommendations (OR).
	Search string

	Order  SortOrder
	Limit  int
	Offset int
}

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create creates a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// Update persists the full current state of an appointment
	Update(ctx context.Context, appointment *entities.Appointment) error

	// Delete removes an appointment
	Delete(ctx context.Context, id string) error

	// List returns the filtered page of appointments and the total size of
	// the filtered set before pagination. Both come from the same predicate.
	List(ctx context.Context, filter AppointmentFilter) ([]*entities.Appointment, int, error)
}
