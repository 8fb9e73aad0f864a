package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// InferenceService turns free-form complaint text into a diagnosis label and
// its stored recommendation. A label with no recommendation on file still
// produces a successful result with an empty recommendations field.
type InferenceService struct {
	classifier      providers.Classifier
	recommendations repositories.RecommendationRepository
}

// NewInferenceService creates a new inference service
func NewInferenceService(classifier providers.Classifier, recommendations repositories.RecommendationRepository) *InferenceService {
	return &InferenceService{
		classifier:      classifier,
		recommendations: recommendations,
	}
}

// Diagnose classifies text and resolves the recommendation for the predicted
// label.
func (s *InferenceService) Diagnose(ctx context.Context, text string) (*entities.InferenceResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("input text cannot be empty")
	}

	label, err := s.classifier.Predict(ctx, text)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("classifier prediction failed", err)
	}

	result := &entities.InferenceResult{Diagnosis: label}

	entry, err := s.recommendations.GetByLabel(ctx, label)
	switch {
	case err == nil:
		result.Recommendations = strings.TrimSpace(entry.Text)
		if result.Recommendations == "" {
			log.Warn().Str("label", label).Msg("stored recommendation is blank")
		}
	case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
		log.Warn().Str("label", label).Msg("no recommendation stored for predicted label")
	default:
		return nil, apperrors.NewInternalError("recommendation lookup failed", err)
	}

	return result, nil
}
