package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/profiledesk/backend/internal/models"
)

var (
	ErrInvalidChatSender  = errors.New("sender must be visitor or admin")
	ErrEmptyChatMessage   = errors.New("chat message is empty")
	ErrMissingVisitorName = errors.New("visitor name is required")
)

const chatColumns = "id, sender, name, message, created_at"

// ChatService manages the single shared transcript between visitors and the
// operator. Entries are append-only; there is no update or delete.
type ChatService struct {
	db DB
}

func NewChatService(db DB) *ChatService {
	return &ChatService{db: db}
}

// List returns the whole transcript ascending by (created_at, id), i.e.
// insertion order since timestamps are assigned at append time.
func (s *ChatService) List(ctx context.Context) ([]models.ChatEntry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+chatColumns+` FROM chat_messages
		 ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var entries []models.ChatEntry
	for rows.Next() {
		var entry models.ChatEntry
		if err := rows.Scan(&entry.ID, &entry.Sender, &entry.Name, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}

	if entries == nil {
		entries = []models.ChatEntry{}
	}

	return entries, nil
}

// Append persists one transcript line with a server-assigned id and
// timestamp. Visitor entries must carry a name; admin entries never do.
func (s *ChatService) Append(ctx context.Context, params models.AppendChatParams) (*models.ChatEntry, error) {
	message := strings.TrimSpace(params.Message)
	if message == "" {
		return nil, ErrEmptyChatMessage
	}

	var name *string
	switch params.Sender {
	case models.ChatSenderVisitor:
		if params.Name == nil || strings.TrimSpace(*params.Name) == "" {
			return nil, ErrMissingVisitorName
		}
		trimmed := strings.TrimSpace(*params.Name)
		name = &trimmed
	case models.ChatSenderAdmin:
		name = nil
	default:
		return nil, ErrInvalidChatSender
	}

	entry := &models.ChatEntry{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO chat_messages (sender, name, message)
		 VALUES ($1, $2, $3)
		 RETURNING `+chatColumns,
		params.Sender, name, message,
	).Scan(&entry.ID, &entry.Sender, &entry.Name, &entry.Message, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("appending chat message: %w", err)
	}

	return entry, nil
}
