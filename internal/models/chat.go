package models

import "time"

type ChatSender string

const (
	ChatSenderVisitor ChatSender = "visitor"
	ChatSenderAdmin   ChatSender = "admin"
)

// ChatEntry is one line of the shared transcript. The transcript is
// append-only; entries are ordered by (created_at, id) ascending. Name is
// set for visitor entries and null for admin entries.
type ChatEntry struct {
	ID        int64      `json:"id"`
	Sender    ChatSender `json:"sender"`
	Name      *string    `json:"name"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

type AppendChatParams struct {
	Sender  ChatSender
	Name    *string
	Message string
}
