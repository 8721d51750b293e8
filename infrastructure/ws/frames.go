package ws

import (
	"encoding/json"
	"time"

	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/domain/event"
	"github.com/samber/lo"
)

// Request is a call sent by the client. The response echoes its ID.
type Request struct {
	ID     uint64          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	ID     uint64 `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// Error carries the name of the gRPC status code, e.g. "NotFound".
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Push is an unsolicited server notification.
type Push struct {
	Event event.Kind `json:"event"`
	Data  any        `json:"data"`
}

// Params is the union of every request argument, each method reads its own fields.
type Params struct {
	ChatID       uint32   `json:"chat_id"`
	UserID       uint32   `json:"user_id"`
	Participants []uint32 `json:"participants"`
	MessageID    uint32   `json:"message_id"`
	Content      string   `json:"content"`
	Limit        int      `json:"limit"`
	Offset       int      `json:"offset"`
	CallID       string   `json:"call_id"`
	CalleeID     uint32   `json:"callee_id"`
	Offer        string   `json:"offer"`
	Answer       string   `json:"answer"`
	Candidate    string   `json:"candidate"`
	Reason       string   `json:"reason"`
	Username     string   `json:"username"`
	Query        string   `json:"query"`
}

type MessageResponse struct {
	ID        uint32    `json:"id"`
	ChatID    uint32    `json:"chat_id"`
	SenderID  uint32    `json:"sender_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ContactResponse struct {
	UserID   uint32    `json:"user_id"`
	Username string    `json:"username"`
	AddedAt  time.Time `json:"added_at"`
}

type UserResponse struct {
	UserID   uint32 `json:"user_id"`
	Username string `json:"username"`
}

type ChatResponse struct {
	ID        uint32    `json:"id"`
	CreatorID uint32    `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CallResponse struct {
	CallID   string `json:"call_id"`
	ChatID   uint32 `json:"chat_id,omitempty"`
	CallerID uint32 `json:"caller_id,omitempty"`
	CalleeID uint32 `json:"callee_id,omitempty"`
	From     uint32 `json:"from,omitempty"`
	To       uint32 `json:"to,omitempty"`
	Offer    string `json:"offer,omitempty"`
	Answer   string `json:"answer,omitempty"`
	// Candidate is set on IceCandidate pushes only.
	Candidate string `json:"candidate,omitempty"`
	EndedBy   uint32 `json:"ended_by,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Active    bool   `json:"active,omitempty"`
}

type DeliveredResponse struct {
	ChatID    uint32 `json:"chat_id"`
	MessageID uint32 `json:"message_id"`
}

func toMessageResponse(m domain.Message) MessageResponse {
	return MessageResponse{
		ID:        uint32(m.ID),
		ChatID:    uint32(m.ChatID),
		SenderID:  uint32(m.SenderID),
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

func toMessagesResponse(messages []domain.Message) []MessageResponse {
	return lo.Map(messages, func(item domain.Message, _ int) MessageResponse {
		return toMessageResponse(item)
	})
}

func toContactsResponse(contacts domain.ContactList) []ContactResponse {
	return lo.Map(contacts, func(item domain.Contact, _ int) ContactResponse {
		return ContactResponse{UserID: uint32(item.UserID), Username: item.Username, AddedAt: item.AddedAt}
	})
}

func toUsersResponse(users domain.ContactList) []UserResponse {
	return lo.Map(users, func(item domain.Contact, _ int) UserResponse {
		return UserResponse{UserID: uint32(item.UserID), Username: item.Username}
	})
}

func toChatsResponse(chats []domain.Chat) []ChatResponse {
	return lo.Map(chats, func(item domain.Chat, _ int) ChatResponse {
		return ChatResponse{ID: uint32(item.ID), CreatorID: uint32(item.CreatorID), CreatedAt: item.CreatedAt}
	})
}

func toCallsResponse(calls []domain.CallSession) []CallResponse {
	return lo.Map(calls, func(item domain.CallSession, _ int) CallResponse {
		return CallResponse{
			CallID:   string(item.ID),
			ChatID:   uint32(item.ChatID),
			CallerID: uint32(item.CallerID),
			CalleeID: uint32(item.CalleeID),
			Offer:    item.Offer,
			Answer:   item.Answer,
			Active:   item.Active,
		}
	})
}
