package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/profiledesk/backend/internal/models"
)

var (
	ErrRequestNotFound      = errors.New("friend request not found")
	ErrRequestNotPending    = errors.New("friend request is not pending")
	ErrInvalidRequestStatus = errors.New("invalid request status")
	ErrMissingRequestFields = errors.New("name and description are required")
)

const requestColumns = "id, name, description, avatar_url, status, created_at"

type RequestService struct {
	db DB
}

func NewRequestService(db DB) *RequestService {
	return &RequestService{db: db}
}

// List returns every friend request, newest first.
func (s *RequestService) List(ctx context.Context) ([]models.FriendRequest, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+requestColumns+` FROM friend_requests
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friend requests: %w", err)
	}
	defer rows.Close()

	var requests []models.FriendRequest
	for rows.Next() {
		var req models.FriendRequest
		if err := rows.Scan(&req.ID, &req.Name, &req.Description, &req.AvatarURL, &req.Status, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning friend request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing friend requests: %w", err)
	}

	if requests == nil {
		requests = []models.FriendRequest{}
	}

	return requests, nil
}

// Create inserts a new pending request. This is the public write path, so
// the required fields are validated here rather than trusted from the caller.
func (s *RequestService) Create(ctx context.Context, params models.CreateRequestParams) (*models.FriendRequest, error) {
	name := strings.TrimSpace(params.Name)
	description := strings.TrimSpace(params.Description)
	if name == "" || description == "" {
		return nil, ErrMissingRequestFields
	}

	req := &models.FriendRequest{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO friend_requests (name, description, avatar_url, status)
		 VALUES ($1, $2, $3, 'pending')
		 RETURNING `+requestColumns,
		name, description, params.AvatarURL,
	).Scan(&req.ID, &req.Name, &req.Description, &req.AvatarURL, &req.Status, &req.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating friend request: %w", err)
	}

	return req, nil
}

// SetStatus moves a pending request to approved or rejected. The pending
// guard lives in the UPDATE itself so two concurrent decisions cannot both
// win: whichever lands second matches zero rows.
func (s *RequestService) SetStatus(ctx context.Context, id int64, status models.RequestStatus) (*models.FriendRequest, error) {
	if status != models.RequestStatusApproved && status != models.RequestStatusRejected {
		return nil, ErrInvalidRequestStatus
	}

	req := &models.FriendRequest{}
	err := s.db.QueryRow(ctx,
		`UPDATE friend_requests SET status = $1 WHERE id = $2 AND status = 'pending'
		 RETURNING `+requestColumns,
		status, id,
	).Scan(&req.ID, &req.Name, &req.Description, &req.AvatarURL, &req.Status, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Zero rows means the id is unknown or the request was already
		// resolved; look it up to tell the two apart.
		if _, err := s.getByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrRequestNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("updating friend request status: %w", err)
	}

	return req, nil
}

// Delete removes a request regardless of status. Deleting an absent id
// reports ErrRequestNotFound.
func (s *RequestService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM friend_requests WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting friend request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (s *RequestService) getByID(ctx context.Context, id int64) (*models.FriendRequest, error) {
	req := &models.FriendRequest{}
	err := s.db.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM friend_requests WHERE id = $1`,
		id,
	).Scan(&req.ID, &req.Name, &req.Description, &req.AvatarURL, &req.Status, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting friend request: %w", err)
	}
	return req, nil
}
