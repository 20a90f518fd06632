package core

import "context"

// ChatKind classifies the chat a message arrived from.
type ChatKind int

const (
	ChatOther ChatKind = iota
	ChatPrivate
	ChatGroup
	ChatSupergroup
)

func (k ChatKind) String() string {
	switch k {
	case ChatPrivate:
		return "private"
	case ChatGroup:
		return "group"
	case ChatSupergroup:
		return "supergroup"
	default:
		return "other"
	}
}

// IncomingMessage represents a message received from Telegram.
type IncomingMessage struct {
	UpdateID int
	ChatID   int64
	Kind     ChatKind
	ChatName string
	Text     string
	Command  string
}

// MessageHandler processes an incoming message.
type MessageHandler func(ctx context.Context, msg IncomingMessage)
