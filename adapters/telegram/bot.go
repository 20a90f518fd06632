package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pycarrot2/rebrickable-bot/core"
)

const longPollTimeout = 60

// Bot long-polls Telegram for updates and adapts message updates into
// core.IncomingMessage values.
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *slog.Logger
}

// New creates a Bot. The token is validated against the live API.
func New(token string, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{api: api, logger: logger}, nil
}

// NewWithEndpoint creates a Bot against a custom API endpoint, in
// tgbotapi.APIEndpoint format (for testing).
func NewWithEndpoint(token, endpoint string, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{api: api, logger: logger}, nil
}

// Username returns the bot's own username as reported by the platform.
func (b *Bot) Username() string { return b.api.Self.UserName }

// Sender returns the outbound half bound to the same API client.
func (b *Bot) Sender() *Sender { return &Sender{api: b.api} }

// Run starts the long-poll loop and hands every message update to
// handler in its own goroutine. Blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context, handler core.MessageHandler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = longPollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("telegram updates started", "bot", b.api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram updates stopped")
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if upd.Message == nil {
				continue
			}
			go handler(ctx, incomingMessage(upd))
		}
	}
}

func incomingMessage(upd tgbotapi.Update) core.IncomingMessage {
	m := upd.Message
	msg := core.IncomingMessage{
		UpdateID: upd.UpdateID,
		ChatID:   m.Chat.ID,
		Kind:     chatKind(m.Chat),
		ChatName: chatName(m.Chat),
		Text:     m.Text,
	}
	if m.IsCommand() {
		msg.Command = m.Command()
	}
	return msg
}

func chatKind(c *tgbotapi.Chat) core.ChatKind {
	switch {
	case c.IsPrivate():
		return core.ChatPrivate
	case c.IsGroup():
		return core.ChatGroup
	case c.IsSuperGroup():
		return core.ChatSupergroup
	default:
		return core.ChatOther
	}
}

// chatName prefers the group title; private chats fall back to the
// peer's full name.
func chatName(c *tgbotapi.Chat) string {
	if c.Title != "" {
		return c.Title
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
