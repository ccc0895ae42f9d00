// Package client is a typed Go client for the backend API. It is what the
// operator dashboard and CLI tooling use; the pollers in this package drive
// the periodic refresh the UI relies on instead of push delivery.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/profiledesk/backend/internal/auth"
	"github.com/profiledesk/backend/internal/models"
)

var (
	ErrUnauthorized = errors.New("client: invalid admin credential")
	ErrNotFound     = errors.New("client: not found")
	ErrInvalidInput = errors.New("client: invalid input")
	ErrRateLimited  = errors.New("client: rate limited")
)

// Client talks to one backend instance. The operator credential is a
// per-call argument, never stored on the client, so a single Client can
// serve both the public and the operator surface.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient is for callers that need their own transport, such as
// tests or instrumented clients.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc}
}

type createRequestBody struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type setStatusBody struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type createMessageBody struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Message string  `json:"message"`
}

type setReadBody struct {
	ID     int64 `json:"id"`
	IsRead bool  `json:"is_read"`
}

type sendChatBody struct {
	Sender  string  `json:"sender"`
	Name    *string `json:"name,omitempty"`
	Message string  `json:"message"`
}

type uploadBody struct {
	File     string `json:"file"`
	FileName string `json:"fileName,omitempty"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// ListRequests fetches all friend requests. Requires the operator credential.
func (c *Client) ListRequests(ctx context.Context, password string) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	if err := c.do(ctx, http.MethodGet, "/requests", password, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRequest submits a friend request. Public, no credential.
func (c *Client) CreateRequest(ctx context.Context, name, description string, avatarURL *string) (*models.FriendRequest, error) {
	var out models.FriendRequest
	body := createRequestBody{Name: name, Description: description, AvatarURL: avatarURL}
	if err := c.do(ctx, http.MethodPost, "/requests", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetRequestStatus resolves a pending request to approved or rejected.
func (c *Client) SetRequestStatus(ctx context.Context, password string, id int64, status models.RequestStatus) (*models.FriendRequest, error) {
	var out models.FriendRequest
	body := setStatusBody{ID: id, Status: string(status)}
	if err := c.do(ctx, http.MethodPut, "/requests", password, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRequest(ctx context.Context, password string, id int64) error {
	path := fmt.Sprintf("/requests?id=%d", id)
	return c.do(ctx, http.MethodDelete, path, password, nil, nil)
}

// ListMessages fetches all contact messages. Requires the operator credential.
func (c *Client) ListMessages(ctx context.Context, password string) ([]models.Message, error) {
	var out []models.Message
	if err := c.do(ctx, http.MethodGet, "/messages", password, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMessage submits a contact message. Public, no credential.
func (c *Client) CreateMessage(ctx context.Context, name string, email *string, message string) (*models.Message, error) {
	var out models.Message
	body := createMessageBody{Name: name, Email: email, Message: message}
	if err := c.do(ctx, http.MethodPost, "/messages", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetMessageRead(ctx context.Context, password string, id int64, isRead bool) (*models.Message, error) {
	var out models.Message
	body := setReadBody{ID: id, IsRead: isRead}
	if err := c.do(ctx, http.MethodPut, "/messages", password, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMessage(ctx context.Context, password string, id int64) error {
	path := fmt.Sprintf("/messages?id=%d", id)
	return c.do(ctx, http.MethodDelete, path, password, nil, nil)
}

// ListChat fetches the full transcript, oldest first. Public.
func (c *Client) ListChat(ctx context.Context) ([]models.ChatEntry, error) {
	var out []models.ChatEntry
	if err := c.do(ctx, http.MethodGet, "/chat", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendVisitorChat appends a visitor line to the transcript.
func (c *Client) SendVisitorChat(ctx context.Context, name, message string) (*models.ChatEntry, error) {
	var out models.ChatEntry
	body := sendChatBody{Sender: string(models.ChatSenderVisitor), Name: &name, Message: message}
	if err := c.do(ctx, http.MethodPost, "/chat", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendAdminChat appends an operator line. The credential rides on this one
// call only.
func (c *Client) SendAdminChat(ctx context.Context, password, message string) (*models.ChatEntry, error) {
	var out models.ChatEntry
	body := sendChatBody{Sender: string(models.ChatSenderAdmin), Message: message}
	if err := c.do(ctx, http.MethodPost, "/chat", password, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload stores a base64-encoded avatar and returns its public URL.
func (c *Client) Upload(ctx context.Context, encoded, fileName string) (string, error) {
	var out uploadResponse
	body := uploadBody{File: encoded, FileName: fileName}
	if err := c.do(ctx, http.MethodPost, "/upload", "", body, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *Client) do(ctx context.Context, method, path, password string, body, out interface{}) error {
	// JoinPath would escape the query string, so split it off first
	query := ""
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path, query = path[:idx], path[idx:]
	}
	target, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("building request URL: %w", err)
	}
	target += query

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if password != "" {
		req.Header.Set(auth.PasswordHeader, password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func statusError(resp *http.Response) error {
	var apiErr struct {
		Error string `json:"error"`
	}
	detail := ""
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		detail = ": " + apiErr.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w%s", ErrUnauthorized, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w%s", ErrNotFound, detail)
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w%s", ErrInvalidInput, detail)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w%s", ErrRateLimited, detail)
	default:
		return fmt.Errorf("unexpected status %d%s", resp.StatusCode, detail)
	}
}
