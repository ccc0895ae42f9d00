package models

import "time"

// Message is a contact-form submission. IsRead toggles freely both ways.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateMessageParams struct {
	Name    string
	Email   *string
	Message string
}
