package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clinicdesk/backend/internal/api/middleware"
	"github.com/clinicdesk/backend/internal/application/services"
	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// AppointmentService defines the interface for appointment operations
type AppointmentService interface {
	List(ctx context.Context, actor entities.Actor, params services.ListParams) ([]*entities.Appointment, int, error)
	Get(ctx context.Context, actor entities.Actor, id string) (*entities.Appointment, error)
	CreateAsPatient(ctx context.Context, actor entities.Actor, complaints string, doctorID *string) (*entities.Appointment, error)
	CreateAsDoctor(ctx context.Context, actor entities.Actor, params services.DoctorCreateParams) (*entities.Appointment, error)
	Update(ctx context.Context, actor entities.Actor, id string, patch entities.AppointmentPatch) (*entities.Appointment, error)
	Delete(ctx context.Context, actor entities.Actor, id string) error
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

// List handles GET /appointments/
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	query := r.URL.Query()
	params := services.ListParams{
		Search: query.Get("search"),
	}

	if skipStr := query.Get("skip"); skipStr != "" {
		skip, err := strconv.Atoi(skipStr)
		if err != nil || skip < 0 {
			respondWithError(w, http.StatusBadRequest, "skip must be a non-negative integer")
			return
		}
		params.Skip = skip
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		params.Limit = limit
	}
	switch order := query.Get("order"); order {
	case "":
		params.Order = repositories.SortDesc
	case "asc":
		params.Order = repositories.SortAsc
	case "desc":
		params.Order = repositories.SortDesc
	default:
		respondWithError(w, http.StatusBadRequest, "order must be asc or desc")
		return
	}

	items, count, err := h.service.List(r.Context(), actor, params)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if items == nil {
		items = []*entities.Appointment{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data":  items,
		"count": count,
	})
}

// Get handles GET /appointments/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	appointment, err := h.service.Get(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeNotFound:
				respondWithError(w, http.StatusNotFound, appErr.Message)
				return
			case apperrors.ErrorTypeForbidden:
				respondWithError(w, http.StatusForbidden, appErr.Message)
				return
			}
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// CreatePatient handles POST /appointments/patient
func (h *AppointmentHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var payload struct {
		Complaints string  `json:"complaints"`
		DoctorID   *string `json:"doctor_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.CreateAsPatient(r.Context(), actor, payload.Complaints, payload.DoctorID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeForbidden:
				respondWithError(w, http.StatusForbidden, appErr.Message)
				return
			case apperrors.ErrorTypeValidation:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
				return
			}
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// CreateDoctor handles POST /appointments/doctor
func (h *AppointmentHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var params services.DoctorCreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.CreateAsDoctor(r.Context(), actor, params)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeForbidden, apperrors.ErrorTypeValidation:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
				return
			}
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// Update handles PUT /appointments/{id}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var patch entities.AppointmentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.Update(r.Context(), actor, r.PathValue("id"), patch)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeNotFound:
				respondWithError(w, http.StatusNotFound, appErr.Message)
				return
			case apperrors.ErrorTypeForbidden, apperrors.ErrorTypeValidation:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
				return
			}
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// Delete handles DELETE /appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	if err := h.service.Delete(r.Context(), actor, r.PathValue("id")); err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeNotFound:
				respondWithError(w, http.StatusNotFound, appErr.Message)
				return
			case apperrors.ErrorTypeForbidden:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
				return
			}
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Appointment deleted successfully",
	})
}
