package ws

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/errors"
	"github.com/nikitapn/npchat/services"
	"github.com/samber/lo"
	"google.golang.org/grpc/status"
)

type method func(userID domain.UserID, p Params) (any, error)

// Handler serves the request/response protocol of an authenticated connection
// and registers the connection as the user's chat listener while it is open.
type Handler struct {
	log          *slog.Logger
	service      services.IChatService
	writeTimeout time.Duration
	methods      map[string]method
}

func NewHandler(log *slog.Logger, service services.IChatService, writeTimeout time.Duration) *Handler {
	h := &Handler{log: log, service: service, writeTimeout: writeTimeout}
	h.methods = map[string]method{
		"getContacts":            h.getContacts,
		"addContact":             h.addContact,
		"removeContact":          h.removeContact,
		"setUsername":            h.setUsername,
		"searchUsers":            h.searchUsers,
		"getChats":               h.getChats,
		"createChat":             h.createChat,
		"createChatWith":         h.createChatWith,
		"addChatParticipant":     h.addChatParticipant,
		"removeChatParticipant":  h.removeChatParticipant,
		"deleteChat":             h.deleteChat,
		"sendMessage":            h.sendMessage,
		"getChatHistory":         h.getChatHistory,
		"getUndeliveredMessages": h.getUndeliveredMessages,
		"markMessageAsRead":      h.markMessageAsRead,
		"getUnreadMessageCount":  h.getUnreadMessageCount,
		"initiateCall":           h.initiateCall,
		"answerCall":             h.answerCall,
		"sendIceCandidate":       h.sendIceCandidate,
		"endCall":                h.endCall,
		"getActiveCalls":         h.getActiveCalls,
	}
	return h
}

// Serve blocks until the connection is closed by the client or fails.
func (h *Handler) Serve(conn Conn, userID domain.UserID) {
	connectionID := uuid.NewString()
	log := h.log.With("user_id", userID, "connection_id", connectionID)
	listener := NewListener(log, conn, connectionID, h.writeTimeout)
	defer func() {
		h.service.UnsubscribeFromEvents(userID, listener)
		_ = listener.Close()
		log.Info("Websocket disconnected")
	}()

	if err := h.service.SubscribeToEvents(userID, listener); err != nil {
		log.Error("Unable to subscribe to events", "error", err)
		return
	}
	log.Info("Websocket connected")

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			log.Debug("Websocket read stopped", "error", err)
			return
		}
		if err := listener.reply(h.handle(log, userID, payload)); err != nil {
			return
		}
	}
}

func (h *Handler) handle(log *slog.Logger, userID domain.UserID, payload []byte) Response {
	var request Request
	if err := json.Unmarshal(payload, &request); err != nil {
		return failure(0, fmt.Errorf("%w: malformed frame", errors.ErrInvalidMessage))
	}

	fn, ok := h.methods[request.Method]
	if !ok {
		return failure(request.ID, fmt.Errorf("%w: %q", errors.ErrUnknownMethod, request.Method))
	}

	var params Params
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return failure(request.ID, fmt.Errorf("%w: malformed params", errors.ErrInvalidMessage))
		}
	}

	result, err := fn(userID, params)
	if err != nil {
		log.Debug("Request failed", "method", request.Method, "error", err)
		return failure(request.ID, err)
	}
	return Response{ID: request.ID, Result: result}
}

func failure(id uint64, err error) Response {
	st := status.Convert(errors.MapToGRPCError(err))
	return Response{ID: id, Error: &Error{Code: st.Code().String(), Message: st.Message()}}
}

type chatIDResult struct {
	ChatID uint32 `json:"chat_id"`
}

type countResult struct {
	Count uint32 `json:"count"`
}

type changedResult struct {
	OK bool `json:"ok"`
}

var done = changedResult{OK: true}

func (h *Handler) getContacts(userID domain.UserID, _ Params) (any, error) {
	contacts, err := h.service.GetContacts(userID)
	return toContactsResponse(contacts), err
}

func (h *Handler) addContact(userID domain.UserID, p Params) (any, error) {
	return done, h.service.AddContact(userID, domain.UserID(p.UserID))
}

func (h *Handler) removeContact(userID domain.UserID, p Params) (any, error) {
	return done, h.service.RemoveContact(userID, domain.UserID(p.UserID))
}

func (h *Handler) setUsername(userID domain.UserID, p Params) (any, error) {
	return done, h.service.SetUsername(userID, services.SetUsernameCommand{Username: p.Username})
}

func (h *Handler) searchUsers(userID domain.UserID, p Params) (any, error) {
	users, err := h.service.SearchUsers(userID, p.Query, p.Limit)
	return toUsersResponse(users), err
}

func (h *Handler) getChats(userID domain.UserID, _ Params) (any, error) {
	chats, err := h.service.GetChats(userID)
	return toChatsResponse(chats), err
}

func (h *Handler) createChat(userID domain.UserID, p Params) (any, error) {
	participants := lo.Map(p.Participants, func(item uint32, _ int) domain.UserID {
		return domain.UserID(item)
	})
	chatID, err := h.service.CreateChat(userID, participants...)
	return chatIDResult{ChatID: uint32(chatID)}, err
}

func (h *Handler) createChatWith(userID domain.UserID, p Params) (any, error) {
	chatID, err := h.service.CreateChatWith(userID, domain.UserID(p.UserID))
	return chatIDResult{ChatID: uint32(chatID)}, err
}

func (h *Handler) addChatParticipant(userID domain.UserID, p Params) (any, error) {
	return done, h.service.AddChatParticipant(userID, domain.ChatID(p.ChatID), domain.UserID(p.UserID))
}

func (h *Handler) removeChatParticipant(userID domain.UserID, p Params) (any, error) {
	return done, h.service.RemoveChatParticipant(userID, domain.ChatID(p.ChatID), domain.UserID(p.UserID))
}

func (h *Handler) deleteChat(userID domain.UserID, p Params) (any, error) {
	return done, h.service.DeleteChat(userID, domain.ChatID(p.ChatID))
}

func (h *Handler) sendMessage(userID domain.UserID, p Params) (any, error) {
	message, err := h.service.SendMessage(userID, domain.ChatID(p.ChatID), p.Content)
	return toMessageResponse(message), err
}

func (h *Handler) getChatHistory(userID domain.UserID, p Params) (any, error) {
	messages, err := h.service.GetChatHistory(userID, domain.ChatID(p.ChatID), p.Limit, p.Offset)
	return toMessagesResponse(messages), err
}

func (h *Handler) getUndeliveredMessages(userID domain.UserID, _ Params) (any, error) {
	messages, err := h.service.GetUndeliveredMessages(userID)
	return toMessagesResponse(messages), err
}

func (h *Handler) markMessageAsRead(userID domain.UserID, p Params) (any, error) {
	return done, h.service.MarkMessageAsRead(userID, domain.MessageID(p.MessageID))
}

func (h *Handler) getUnreadMessageCount(userID domain.UserID, _ Params) (any, error) {
	count, err := h.service.GetUnreadMessageCount(userID)
	return countResult{Count: count}, err
}

func (h *Handler) initiateCall(userID domain.UserID, p Params) (any, error) {
	callID, err := h.service.InitiateCall(userID, services.InitiateCallCommand{
		ChatID:   p.ChatID,
		CalleeID: p.CalleeID,
		Offer:    p.Offer,
	})
	return CallResponse{CallID: string(callID)}, err
}

func (h *Handler) answerCall(userID domain.UserID, p Params) (any, error) {
	return done, h.service.AnswerCall(userID, services.AnswerCallCommand{CallID: p.CallID, Answer: p.Answer})
}

func (h *Handler) sendIceCandidate(userID domain.UserID, p Params) (any, error) {
	return done, h.service.SendIceCandidate(userID, services.IceCandidateCommand{CallID: p.CallID, Candidate: p.Candidate})
}

func (h *Handler) endCall(userID domain.UserID, p Params) (any, error) {
	return done, h.service.EndCall(userID, domain.CallID(p.CallID), p.Reason)
}

func (h *Handler) getActiveCalls(userID domain.UserID, _ Params) (any, error) {
	calls, err := h.service.GetActiveCalls(userID)
	return toCallsResponse(calls), err
}
