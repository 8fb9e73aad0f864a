package providers

import (
	"context"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// DiagnosisProvider requests a diagnosis for patient attributes from the
// inference backend. Every call is a fresh round trip; there is no retry
// and no caching.
type DiagnosisProvider interface {
	RequestDiagnosis(ctx context.Context, gender entities.Gender, age int, complaints string) (*entities.InferenceResult, error)
}
