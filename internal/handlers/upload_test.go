package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadHandler_Upload(t *testing.T) {
	var gotKey, gotType string
	var gotData []byte
	mock := &mockBlobStore{
		PutFunc: func(ctx context.Context, key string, data []byte, contentType string) (string, error) {
			gotKey, gotData, gotType = key, data, contentType
			return "http://localhost:8080/uploads/" + key, nil
		},
	}
	h := NewUploadHandler(mock, 5<<20)

	encoded := base64.StdEncoding.EncodeToString([]byte("fake png bytes"))
	body, _ := json.Marshal(UploadRequest{File: encoded, FileName: "me.png"})
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(string(body)))
	rr := httptest.NewRecorder()
	h.Upload(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp UploadResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !strings.Contains(resp.URL, gotKey) {
		t.Errorf("expected URL %q to contain key %q", resp.URL, gotKey)
	}
	if !strings.HasPrefix(gotKey, "avatars/") || !strings.HasSuffix(gotKey, ".png") {
		t.Errorf("unexpected object key %q", gotKey)
	}
	if string(gotData) != "fake png bytes" {
		t.Errorf("stored bytes do not match upload")
	}
	if gotType != "image/png" {
		t.Errorf("expected image/png, got %q", gotType)
	}
}

func TestUploadHandler_Upload_DataURL(t *testing.T) {
	var gotData []byte
	mock := &mockBlobStore{
		PutFunc: func(ctx context.Context, key string, data []byte, contentType string) (string, error) {
			gotData = data
			return "http://localhost:8080/uploads/" + key, nil
		},
	}
	h := NewUploadHandler(mock, 5<<20)

	encoded := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))
	body, _ := json.Marshal(UploadRequest{File: encoded})
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(string(body)))
	rr := httptest.NewRecorder()
	h.Upload(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if string(gotData) != "jpeg bytes" {
		t.Errorf("expected data URL prefix to be stripped before decoding")
	}
}

func TestUploadHandler_Upload_NotBase64(t *testing.T) {
	h := NewUploadHandler(&mockBlobStore{}, 5<<20)

	body, _ := json.Marshal(UploadRequest{File: "not base64!!!", FileName: "me.png"})
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(string(body)))
	rr := httptest.NewRecorder()
	h.Upload(rr, req)

	assertErrorResponse(t, rr, http.StatusBadRequest, "File must be base64 encoded")
}

func TestUploadHandler_Upload_MissingFile(t *testing.T) {
	h := NewUploadHandler(&mockBlobStore{}, 5<<20)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"fileName":"me.png"}`))
	rr := httptest.NewRecorder()
	h.Upload(rr, req)

	assertErrorResponse(t, rr, http.StatusBadRequest, "File is required")
}

func TestUploadHandler_Upload_TooLarge(t *testing.T) {
	h := NewUploadHandler(&mockBlobStore{}, 8)

	encoded := base64.StdEncoding.EncodeToString([]byte("more than eight bytes"))
	body, _ := json.Marshal(UploadRequest{File: encoded, FileName: "me.png"})
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(string(body)))
	rr := httptest.NewRecorder()
	h.Upload(rr, req)

	assertErrorResponse(t, rr, http.StatusRequestEntityTooLarge, "File is too large")
}

func TestUploadHandler_Upload_BodyCappedBeforeDecoding(t *testing.T) {
	stored := false
	mock := &mockBlobStore{
		PutFunc: func(ctx context.Context, key string, data []byte, contentType string) (string, error) {
			stored = true
			return "", nil
		},
	}
	h := NewUploadHandler(mock, 8)

	// Far beyond the wire cap for an 8-byte limit; the body reader must cut
	// it off rather than buffering the whole payload.
	encoded := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), 64<<10))
	body, _ := json.Marshal(UploadRequest{File: encoded, FileName: "me.png"})
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Upload(rr, req)

	assertErrorResponse(t, rr, http.StatusRequestEntityTooLarge, "File is too large")
	if stored {
		t.Fatal("oversized upload must never reach the blob store")
	}
}

func TestUploadHandler_Upload_DefaultFileName(t *testing.T) {
	var gotKey, gotType string
	mock := &mockBlobStore{
		PutFunc: func(ctx context.Context, key string, data []byte, contentType string) (string, error) {
			gotKey, gotType = key, contentType
			return "http://localhost:8080/uploads/" + key, nil
		},
	}
	h := NewUploadHandler(mock, 5<<20)

	encoded := base64.StdEncoding.EncodeToString([]byte("bytes"))
	body, _ := json.Marshal(UploadRequest{File: encoded})
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(string(body)))
	rr := httptest.NewRecorder()
	h.Upload(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.HasSuffix(gotKey, ".jpg") {
		t.Errorf("expected .jpg fallback key, got %q", gotKey)
	}
	if gotType != "image/jpeg" {
		t.Errorf("expected image/jpeg fallback, got %q", gotType)
	}
}
