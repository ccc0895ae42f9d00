package models

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// FriendRequest is a visitor-submitted request awaiting operator review.
// Status only ever moves pending -> approved or pending -> rejected.
type FriendRequest struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	AvatarURL   *string       `json:"avatar_url,omitempty"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

type CreateRequestParams struct {
	Name        string
	Description string
	AvatarURL   *string
}
