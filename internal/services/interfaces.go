package services

import (
	"context"

	"github.com/profiledesk/backend/internal/models"
)

// RequestServiceInterface defines the contract for friend request operations.
type RequestServiceInterface interface {
	List(ctx context.Context) ([]models.FriendRequest, error)
	Create(ctx context.Context, params models.CreateRequestParams) (*models.FriendRequest, error)
	SetStatus(ctx context.Context, id int64, status models.RequestStatus) (*models.FriendRequest, error)
	Delete(ctx context.Context, id int64) error
}

// MessageServiceInterface defines the contract for contact message operations.
type MessageServiceInterface interface {
	List(ctx context.Context) ([]models.Message, error)
	Create(ctx context.Context, params models.CreateMessageParams) (*models.Message, error)
	SetRead(ctx context.Context, id int64, isRead bool) (*models.Message, error)
	Delete(ctx context.Context, id int64) error
}

// ChatServiceInterface defines the contract for chat transcript operations.
type ChatServiceInterface interface {
	List(ctx context.Context) ([]models.ChatEntry, error)
	Append(ctx context.Context, params models.AppendChatParams) (*models.ChatEntry, error)
}
