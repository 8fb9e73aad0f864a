package handlers

import (
	"context"
	"net/http"

	"github.com/clinicdesk/backend/internal/domain/entities"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// DiagnosisService defines the interface for local diagnosis inference
type DiagnosisService interface {
	Diagnose(ctx context.Context, text string) (*entities.InferenceResult, error)
}

// PredictHandler serves the model prediction endpoint of the inference backend
type PredictHandler struct {
	service DiagnosisService
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(service DiagnosisService) *PredictHandler {
	return &PredictHandler{
		service: service,
	}
}

// Predict handles POST /api/v1/model/predict
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")

	result, err := h.service.Diagnose(r.Context(), text)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeValidation {
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error during prediction")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
