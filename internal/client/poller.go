package client

import (
	"context"
	"time"

	"github.com/profiledesk/backend/internal/logging"
	"github.com/profiledesk/backend/internal/models"
)

const (
	// DefaultAdminInterval is how often the operator view refreshes its
	// request and message lists.
	DefaultAdminInterval = 10 * time.Second

	// DefaultChatInterval is how often a chat view refetches the transcript.
	DefaultChatInterval = 3 * time.Second
)

// AdminSnapshot is one complete poll result. Consumers replace their state
// wholesale with each snapshot rather than merging deltas.
type AdminSnapshot struct {
	Requests []models.FriendRequest
	Messages []models.Message
}

// AdminPoller periodically fetches the operator's request and message lists.
// The credential is presented on every poll; there is no session to expire.
type AdminPoller struct {
	client   *Client
	password string
	interval time.Duration
	logger   *logging.Logger
}

func NewAdminPoller(c *Client, password string, interval time.Duration) *AdminPoller {
	if interval <= 0 {
		interval = DefaultAdminInterval
	}
	return &AdminPoller{
		client:   c,
		password: password,
		interval: interval,
		logger:   logging.Default.WithField("component", "admin_poller"),
	}
}

// Run polls until ctx is cancelled, invoking onSnapshot after every
// successful fetch. The first poll happens immediately. A failed poll is
// logged and skipped; the next tick tries again with fresh state.
func (p *AdminPoller) Run(ctx context.Context, onSnapshot func(AdminSnapshot)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, onSnapshot)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, onSnapshot)
		}
	}
}

func (p *AdminPoller) poll(ctx context.Context, onSnapshot func(AdminSnapshot)) {
	requests, err := p.client.ListRequests(ctx, p.password)
	if err != nil {
		p.logger.Warn("Poll failed", map[string]interface{}{"error": err.Error()})
		return
	}
	messages, err := p.client.ListMessages(ctx, p.password)
	if err != nil {
		p.logger.Warn("Poll failed", map[string]interface{}{"error": err.Error()})
		return
	}
	onSnapshot(AdminSnapshot{Requests: requests, Messages: messages})
}

// ChatPoller periodically refetches the shared transcript. It needs no
// credential; the transcript is public.
type ChatPoller struct {
	client   *Client
	interval time.Duration
	logger   *logging.Logger
}

func NewChatPoller(c *Client, interval time.Duration) *ChatPoller {
	if interval <= 0 {
		interval = DefaultChatInterval
	}
	return &ChatPoller{
		client:   c,
		interval: interval,
		logger:   logging.Default.WithField("component", "chat_poller"),
	}
}

// Run polls until ctx is cancelled, invoking onTranscript with the full
// transcript after every successful fetch.
func (p *ChatPoller) Run(ctx context.Context, onTranscript func([]models.ChatEntry)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, onTranscript)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, onTranscript)
		}
	}
}

func (p *ChatPoller) poll(ctx context.Context, onTranscript func([]models.ChatEntry)) {
	entries, err := p.client.ListChat(ctx)
	if err != nil {
		p.logger.Warn("Poll failed", map[string]interface{}{"error": err.Error()})
		return
	}
	onTranscript(entries)
}
