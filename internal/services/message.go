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
	ErrMessageNotFound      = errors.New("message not found")
	ErrMissingMessageFields = errors.New("name and message are required")
)

const messageColumns = "id, name, email, message, is_read, created_at"

type MessageService struct {
	db DB
}

func NewMessageService(db DB) *MessageService {
	return &MessageService{db: db}
}

// List returns every contact message, newest first.
func (s *MessageService) List(ctx context.Context) ([]models.Message, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.IsRead, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	if messages == nil {
		messages = []models.Message{}
	}

	return messages, nil
}

// Create inserts a new unread message. Public write path; email is optional.
func (s *MessageService) Create(ctx context.Context, params models.CreateMessageParams) (*models.Message, error) {
	name := strings.TrimSpace(params.Name)
	body := strings.TrimSpace(params.Message)
	if name == "" || body == "" {
		return nil, ErrMissingMessageFields
	}

	msg := &models.Message{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO messages (name, email, message, is_read)
		 VALUES ($1, $2, $3, false)
		 RETURNING `+messageColumns,
		name, params.Email, body,
	).Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.IsRead, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	return msg, nil
}

// SetRead toggles the read flag in either direction.
func (s *MessageService) SetRead(ctx context.Context, id int64, isRead bool) (*models.Message, error) {
	msg := &models.Message{}
	err := s.db.QueryRow(ctx,
		`UPDATE messages SET is_read = $1 WHERE id = $2
		 RETURNING `+messageColumns,
		isRead, id,
	).Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.IsRead, &msg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating message read flag: %w", err)
	}

	return msg, nil
}

// Delete removes a message. Deleting an absent id reports ErrMessageNotFound.
func (s *MessageService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM messages WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}
