package entities

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known status values. Transitions
// between statuses are unrestricted.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment represents a medical encounter record. PatientID is immutable
// after creation; DoctorID stays nil until a doctor is assigned. The doctor-
// and NLP-authored diagnosis fields are independent and never reconciled.
type Appointment struct {
	ID                    string            `json:"id" db:"id"`
	PatientID             string            `json:"patient_id" db:"patient_id"`
	DoctorID              *string           `json:"doctor_id" db:"doctor_id"`
	Complaints            *string           `json:"complaints" db:"complaints"`
	DoctorDiagnosis       *string           `json:"doctor_diagnosis" db:"doctor_diagnosis"`
	DoctorRecommendations *string           `json:"doctor_recommendations" db:"doctor_recommendations"`
	NLPDiagnosis          *string           `json:"nlp_diagnosis" db:"nlp_diagnosis"`
	NLPRecommendations    *string           `json:"nlp_recommendations" db:"nlp_recommendations"`
	Status                AppointmentStatus `json:"status" db:"status"`
	CreatedAt             time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at" db:"updated_at"`
}

// AppointmentPatch is a sparse update: a nil field means "leave untouched",
// a non-nil pointer to an empty string means "explicitly set to empty".
type AppointmentPatch struct {
	DoctorID              *string            `json:"doctor_id"`
	Complaints            *string            `json:"complaints"`
	DoctorDiagnosis       *string            `json:"doctor_diagnosis"`
	DoctorRecommendations *string            `json:"doctor_recommendations"`
	NLPDiagnosis          *string            `json:"nlp_diagnosis"`
	NLPRecommendations    *string            `json:"nlp_recommendations"`
	Status                *AppointmentStatus `json:"status"`
}

// Apply merges the provided fields into appt, leaving absent fields alone.
func (p AppointmentPatch) Apply(appt *Appointment) {
	if p.DoctorID != nil {
		appt.DoctorID = p.DoctorID
	}
	if p.Complaints != nil {
		appt.Complaints = p.Complaints
	}
	if p.DoctorDiagnosis != nil {
		appt.DoctorDiagnosis = p.DoctorDiagnosis
	}
	if p.DoctorRecommendations != nil {
		appt.DoctorRecommendations = p.DoctorRecommendations
	}
	if p.NLPDiagnosis != nil {
		appt.NLPDiagnosis = p.NLPDiagnosis
	}
	if p.NLPRecommendations != nil {
		appt.NLPRecommendations = p.NLPRecommendations
	}
	if p.Status != nil {
		appt.Status = *p.Status
	}
}
