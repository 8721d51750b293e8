// Package domain contains core concepts of the chat system.
// This file defines Message values and related rules.
// Messages are immutable once persisted.
package domain

import (
	"time"
)

type MessageID uint32

// Message represents a persisted chat message.
type Message struct {
	ID        MessageID
	ChatID    ChatID
	SenderID  UserID
	Content   string
	Timestamp time.Time
}
