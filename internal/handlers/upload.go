package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/profiledesk/backend/internal/storage"
)

// uploadBodySlack covers the JSON framing and data-URL prefix around the
// base64 payload when capping the request body.
const uploadBodySlack = 4 << 10

// UploadHandler accepts base64-encoded avatar images and stores them as
// blobs. The response URL is what the submission form puts in avatar_url.
type UploadHandler struct {
	store    storage.BlobStore
	maxBytes int64
}

func NewUploadHandler(store storage.BlobStore, maxBytes int64) *UploadHandler {
	return &UploadHandler{store: store, maxBytes: maxBytes}
}

type UploadRequest struct {
	File     string `json:"file"`
	FileName string `json:"fileName"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Reject oversized bodies while they stream in; base64 inflates the
	// payload by 4/3, so the wire cap sits above the decoded cap.
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes*4/3+uploadBodySlack)
	}

	var req UploadRequest
	if err := decodeJSON(r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.File == "" {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}

	// Browsers send data URLs; only the payload after the comma is base64.
	payload := req.File
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "File must be base64 encoded")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "File is empty")
		return
	}
	if h.maxBytes > 0 && int64(len(data)) > h.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "avatar.jpg"
	}

	url, err := h.store.Put(r.Context(), storage.ObjectKey(fileName), data, storage.ContentTypeFor(fileName))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{URL: url})
}
