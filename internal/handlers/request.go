package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/profiledesk/backend/internal/models"
	"github.com/profiledesk/backend/internal/services"
)

type RequestHandler struct {
	service services.RequestServiceInterface
}

func NewRequestHandler(service services.RequestServiceInterface) *RequestHandler {
	return &RequestHandler{service: service}
}

type CreateRequestRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	AvatarURL   *string `json:"avatar_url"`
}

type UpdateRequestStatusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// List returns every friend request, newest first.
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list friend requests")
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// Create accepts a visitor submission. New requests always start pending.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), models.CreateRequestParams{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingRequestFields) {
			writeError(w, http.StatusBadRequest, "Name and description are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create friend request")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// SetStatus resolves a pending request. Only pending requests can move.
func (h *RequestHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequestStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "A valid id is required")
		return
	}

	updated, err := h.service.SetStatus(r.Context(), req.ID, models.RequestStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRequestStatus):
			writeError(w, http.StatusBadRequest, "Status must be approved or rejected")
		case errors.Is(err, services.ErrRequestNotPending):
			writeError(w, http.StatusBadRequest, "Friend request has already been resolved")
		case errors.Is(err, services.ErrRequestNotFound):
			writeError(w, http.StatusNotFound, "Friend request not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update friend request")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a request by id regardless of its status.
func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "A valid id is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			writeError(w, http.StatusNotFound, "Friend request not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete friend request")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Friend request deleted"})
}
