package handlers

import (
	"context"

	"github.com/profiledesk/backend/internal/models"
)

type mockRequestService struct {
	ListFunc      func(ctx context.Context) ([]models.FriendRequest, error)
	CreateFunc    func(ctx context.Context, params models.CreateRequestParams) (*models.FriendRequest, error)
	SetStatusFunc func(ctx context.Context, id int64, status models.RequestStatus) (*models.FriendRequest, error)
	DeleteFunc    func(ctx context.Context, id int64) error
}

func (m *mockRequestService) List(ctx context.Context) ([]models.FriendRequest, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockRequestService) Create(ctx context.Context, params models.CreateRequestParams) (*models.FriendRequest, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockRequestService) SetStatus(ctx context.Context, id int64, status models.RequestStatus) (*models.FriendRequest, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return nil, nil
}

func (m *mockRequestService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockMessageService struct {
	ListFunc    func(ctx context.Context) ([]models.Message, error)
	CreateFunc  func(ctx context.Context, params models.CreateMessageParams) (*models.Message, error)
	SetReadFunc func(ctx context.Context, id int64, isRead bool) (*models.Message, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockMessageService) List(ctx context.Context) ([]models.Message, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockMessageService) Create(ctx context.Context, params models.CreateMessageParams) (*models.Message, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockMessageService) SetRead(ctx context.Context, id int64, isRead bool) (*models.Message, error) {
	if m.SetReadFunc != nil {
		return m.SetReadFunc(ctx, id, isRead)
	}
	return nil, nil
}

func (m *mockMessageService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockChatService struct {
	ListFunc   func(ctx context.Context) ([]models.ChatEntry, error)
	AppendFunc func(ctx context.Context, params models.AppendChatParams) (*models.ChatEntry, error)
}

func (m *mockChatService) List(ctx context.Context) ([]models.ChatEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockChatService) Append(ctx context.Context, params models.AppendChatParams) (*models.ChatEntry, error) {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, params)
	}
	return nil, nil
}

type mockBlobStore struct {
	PutFunc func(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

func (m *mockBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, data, contentType)
	}
	return "", nil
}
