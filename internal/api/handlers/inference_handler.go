package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// InferenceHandler proxies diagnosis requests to the inference backend
type InferenceHandler struct {
	provider providers.DiagnosisProvider
}

// NewInferenceHandler creates a new inference handler
func NewInferenceHandler(provider providers.DiagnosisProvider) *InferenceHandler {
	return &InferenceHandler{
		provider: provider,
	}
}

// Run handles POST /inference/run
func (h *InferenceHandler) Run(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Gender     entities.Gender `json:"gender"`
		Age        int             `json:"age"`
		Complaints string          `json:"complaints"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if !payload.Gender.Valid() {
		respondWithError(w, http.StatusBadRequest, "gender must be male or female")
		return
	}
	if payload.Age <= 0 {
		respondWithError(w, http.StatusBadRequest, "age must be positive")
		return
	}
	if strings.TrimSpace(payload.Complaints) == "" {
		respondWithError(w, http.StatusBadRequest, "complaints cannot be empty")
		return
	}

	result, err := h.provider.RequestDiagnosis(r.Context(), payload.Gender, payload.Age, payload.Complaints)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeExternal, apperrors.ErrorTypeUnavailable:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
				return
			}
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
