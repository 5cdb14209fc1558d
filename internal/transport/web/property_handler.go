package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ccontarino/apluz-backend/internal/domain"
	"github.com/ccontarino/apluz-backend/internal/dto"
	"github.com/ccontarino/apluz-backend/internal/service"
)

const maxPropertyBodySize = 1 * 1024 * 1024 // 1MB

// CreateProperty handles POST /api/properties.
// It validates the request body, creates the listing and returns it with a 201.
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxPropertyBodySize) {
		return
	}

	var req dto.PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	property, err := h.container.PropertySvc.Create(r.Context(), req.ToDomain())
	if err != nil {
		slog.Error("failed to create property", "error", err)
		ErrorResponse(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.container.Metrics.RecordPropertyCreated(string(property.Type))

	jsonResponse(w, http.StatusCreated, dto.PropertyToDTO(property))
}

// GetProperty handles GET /api/properties/{id}.
// An unknown ID yields a 404.
func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePropertyID(w, r)
	if !ok {
		return
	}

	property, err := h.container.PropertySvc.GetByID(r.Context(), id)
	if err != nil {
		slog.Error("failed to fetch property", "id", id, "error", err)
		ErrorResponse(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if property == nil {
		h.container.Metrics.RecordLookupMiss()
		ErrorResponse(w, "property not found", http.StatusNotFound)
		return
	}

	jsonResponse(w, http.StatusOK, dto.PropertyToDTO(property))
}

// ListProperties handles GET /api/properties.
// Optional query filters: city, type, status. The first non-empty filter wins.
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	var (
		properties []*domain.Property
		err        error
	)

	query := r.URL.Query()
	switch {
	case query.Get("city") != "":
		properties, err = h.container.PropertySvc.ListByCity(r.Context(), query.Get("city"))
	case query.Get("type") != "":
		propertyType, parseErr := domain.ParsePropertyType(query.Get("type"))
		if parseErr != nil {
			ErrorResponse(w, parseErr.Error(), http.StatusBadRequest)
			return
		}
		properties, err = h.container.PropertySvc.ListByType(r.Context(), propertyType)
	case query.Get("status") != "":
		status, parseErr := domain.ParsePropertyStatus(query.Get("status"))
		if parseErr != nil {
			ErrorResponse(w, parseErr.Error(), http.StatusBadRequest)
			return
		}
		properties, err = h.container.PropertySvc.ListByStatus(r.Context(), status)
	default:
		properties, err = h.container.PropertySvc.ListAll(r.Context())
	}

	if err != nil {
		slog.Error("failed to list properties", "error", err)
		ErrorResponse(w, "internal server error", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, http.StatusOK, dto.PropertiesToDTO(properties))
}

// UpdateProperty handles PUT /api/properties/{id}.
// The body fully replaces the mutable fields of the listing.
func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxPropertyBodySize) {
		return
	}

	id, ok := parsePropertyID(w, r)
	if !ok {
		return
	}

	var req dto.PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	property, err := h.container.PropertySvc.Update(r.Context(), id, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			h.container.Metrics.RecordLookupMiss()
			ErrorResponse(w, err.Error(), http.StatusNotFound)
			return
		}
		slog.Error("failed to update property", "id", id, "error", err)
		ErrorResponse(w, "internal server error", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, http.StatusOK, dto.PropertyToDTO(property))
}

// UpdatePropertyStatus handles PATCH /api/properties/{id}/status.
// Only the status field of the listing changes.
func (h *Handler) UpdatePropertyStatus(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxPropertyBodySize) {
		return
	}

	id, ok := parsePropertyID(w, r)
	if !ok {
		return
	}

	var req dto.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	status, _ := domain.ParsePropertyStatus(req.Status)

	property, err := h.container.PropertySvc.UpdateStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			h.container.Metrics.RecordLookupMiss()
			ErrorResponse(w, err.Error(), http.StatusNotFound)
			return
		}
		slog.Error("failed to update property status", "id", id, "error", err)
		ErrorResponse(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.container.Metrics.RecordStatusChange(string(status))

	jsonResponse(w, http.StatusOK, dto.PropertyToDTO(property))
}

// DeleteProperty handles DELETE /api/properties/{id}.
// Returns 204 on success, 404 when the ID does not exist.
func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePropertyID(w, r)
	if !ok {
		return
	}

	if err := h.container.PropertySvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			h.container.Metrics.RecordLookupMiss()
			ErrorResponse(w, err.Error(), http.StatusNotFound)
			return
		}
		slog.Error("failed to delete property", "id", id, "error", err)
		ErrorResponse(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.container.Metrics.RecordPropertyDeletion()

	w.WriteHeader(http.StatusNoContent)
}

// parsePropertyID extracts and validates the {id} path value
// Extrait et valide la valeur de chemin {id}
func parsePropertyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(w, "invalid property id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
