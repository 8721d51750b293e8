package domain

import "time"

// ChatID is the stable identifier of a conversation.
type ChatID uint32

type Chat struct {
	ID        ChatID
	CreatorID UserID
	CreatedAt time.Time
}
