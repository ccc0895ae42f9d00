package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/profiledesk/backend/internal/models"
	"github.com/profiledesk/backend/internal/services"
)

type MessageHandler struct {
	service services.MessageServiceInterface
}

func NewMessageHandler(service services.MessageServiceInterface) *MessageHandler {
	return &MessageHandler{service: service}
}

type CreateMessageRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Message string  `json:"message"`
}

type UpdateMessageReadRequest struct {
	ID     int64 `json:"id"`
	IsRead *bool `json:"is_read"`
}

// List returns every contact message, newest first.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list messages")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// Create accepts a contact-form submission. New messages start unread.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), models.CreateMessageParams{
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Message: strings.TrimSpace(req.Message),
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingMessageFields) {
			writeError(w, http.StatusBadRequest, "Name and message are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create message")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// SetRead flips the read flag. Unlike request status this moves both ways.
func (h *MessageHandler) SetRead(w http.ResponseWriter, r *http.Request) {
	var req UpdateMessageReadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "A valid id is required")
		return
	}
	if req.IsRead == nil {
		writeError(w, http.StatusBadRequest, "is_read is required")
		return
	}

	updated, err := h.service.SetRead(r.Context(), req.ID, *req.IsRead)
	if err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update message")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "A valid id is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Message deleted"})
}
