package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/profiledesk/backend/internal/auth"
	"github.com/profiledesk/backend/internal/models"
	"github.com/profiledesk/backend/internal/services"
)

// ChatHandler serves the shared transcript. Reading and visitor sends are
// public; admin sends re-check the operator credential on every call because
// the transcript routes are mounted outside the admin middleware.
type ChatHandler struct {
	service services.ChatServiceInterface
	gate    *auth.Gate
}

func NewChatHandler(service services.ChatServiceInterface, gate *auth.Gate) *ChatHandler {
	return &ChatHandler{service: service, gate: gate}
}

type SendChatRequest struct {
	Sender  string  `json:"sender"`
	Name    *string `json:"name"`
	Message string  `json:"message"`
}

// List returns the full transcript, oldest first.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list chat messages")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Send appends one entry to the transcript.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sender := models.ChatSender(req.Sender)
	if sender == models.ChatSenderAdmin {
		if err := h.gate.Authorize(r.Header.Get(auth.PasswordHeader)); err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
	}

	created, err := h.service.Append(r.Context(), models.AppendChatParams{
		Sender:  sender,
		Name:    req.Name,
		Message: strings.TrimSpace(req.Message),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidChatSender):
			writeError(w, http.StatusBadRequest, "Sender must be visitor or admin")
		case errors.Is(err, services.ErrEmptyChatMessage):
			writeError(w, http.StatusBadRequest, "Message is required")
		case errors.Is(err, services.ErrMissingVisitorName):
			writeError(w, http.StatusBadRequest, "Name is required for visitor messages")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to send chat message")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
