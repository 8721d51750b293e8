package services

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nikitapn/npchat/contract"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/domain/event"
	"github.com/nikitapn/npchat/errors"
	"github.com/nikitapn/npchat/repositories"
)

type IChatService interface {
	SubscribeToEvents(userID domain.UserID, listener contract.ChatListener) error
	UnsubscribeFromEvents(userID domain.UserID, listener contract.ChatListener)

	GetContacts(userID domain.UserID) (domain.ContactList, error)
	AddContact(userID, contactID domain.UserID) error
	RemoveContact(userID, contactID domain.UserID) error
	SetUsername(userID domain.UserID, cmd SetUsernameCommand) error
	SearchUsers(userID domain.UserID, query string, limit int) (domain.ContactList, error)

	GetChats(userID domain.UserID) ([]domain.Chat, error)
	CreateChat(userID domain.UserID, participants ...domain.UserID) (domain.ChatID, error)
	CreateChatWith(userID, otherID domain.UserID) (domain.ChatID, error)
	AddChatParticipant(userID domain.UserID, chatID domain.ChatID, participantID domain.UserID) error
	RemoveChatParticipant(userID domain.UserID, chatID domain.ChatID, participantID domain.UserID) error
	DeleteChat(userID domain.UserID, chatID domain.ChatID) error

	SendMessage(userID domain.UserID, chatID domain.ChatID, content string) (domain.Message, error)
	GetChatHistory(userID domain.UserID, chatID domain.ChatID, limit, offset int) ([]domain.Message, error)
	GetUndeliveredMessages(userID domain.UserID) ([]domain.Message, error)
	MarkMessageAsRead(userID domain.UserID, messageID domain.MessageID) error
	GetUnreadMessageCount(userID domain.UserID) (uint32, error)

	InitiateCall(userID domain.UserID, cmd InitiateCallCommand) (domain.CallID, error)
	AnswerCall(userID domain.UserID, cmd AnswerCallCommand) error
	SendIceCandidate(userID domain.UserID, cmd IceCandidateCommand) error
	EndCall(userID domain.UserID, callID domain.CallID, reason string) error
	GetActiveCalls(userID domain.UserID) ([]domain.CallSession, error)
}

// ChatService handles the requests of an authenticated user.
// Every write is persisted first, then the resulting event is handed to the dispatcher:
// a failure is reported before anything is pushed, a push is never reported back.
// Membership writes and subscription seeding hold membership from the storage
// access to the dispatcher post, so the cache sees them in commit order.
type ChatService struct {
	membership       sync.Mutex
	log              *slog.Logger
	chats            repositories.IChatRepository
	messages         repositories.IMessageRepository
	contacts         repositories.IContactRepository
	dispatcher       contract.IDispatcher
	relay            contract.ICallRelay
	maxContentLength int
	historyLimit     int
}

func NewChatService(log *slog.Logger,
	chats repositories.IChatRepository,
	messages repositories.IMessageRepository,
	contacts repositories.IContactRepository,
	dispatcher contract.IDispatcher,
	relay contract.ICallRelay,
	maxContentLength, historyLimit int) *ChatService {
	return &ChatService{
		log:              log,
		chats:            chats,
		messages:         messages,
		contacts:         contacts,
		dispatcher:       dispatcher,
		relay:            relay,
		maxContentLength: maxContentLength,
		historyLimit:     historyLimit,
	}
}

// SubscribeToEvents seeds the participants of every chat of the user, then records the listener.
func (s *ChatService) SubscribeToEvents(userID domain.UserID, listener contract.ChatListener) error {
	s.membership.Lock()
	defer s.membership.Unlock()
	chats, err := s.chats.GetUserChats(userID)
	if err != nil {
		return fmt.Errorf("load chats of user %d: %w", userID, err)
	}
	for _, chat := range chats {
		participants, err := s.chats.GetChatParticipants(chat.ID)
		if err != nil {
			return fmt.Errorf("load participants of chat %d: %w", chat.ID, err)
		}
		s.dispatcher.AddParticipants(chat.ID, participants...)
	}
	s.dispatcher.SubscribeUser(userID, listener)
	s.log.Info("User subscribed to events", "user_id", userID, "chats", len(chats))
	return nil
}

func (s *ChatService) UnsubscribeFromEvents(userID domain.UserID, listener contract.ChatListener) {
	s.dispatcher.UnsubscribeUser(userID, listener)
	s.log.Info("User unsubscribed from events", "user_id", userID)
}

func (s *ChatService) GetContacts(userID domain.UserID) (domain.ContactList, error) {
	return s.contacts.GetContacts(userID)
}

func (s *ChatService) AddContact(userID, contactID domain.UserID) error {
	if userID == contactID {
		return errors.ErrInvalidMessage
	}
	added, err := s.contacts.AddContact(userID, contactID)
	if err != nil {
		return err
	}
	if added {
		return s.pushContacts(userID)
	}
	return nil
}

func (s *ChatService) RemoveContact(userID, contactID domain.UserID) error {
	removed, err := s.contacts.RemoveContact(userID, contactID)
	if err != nil {
		return err
	}
	if removed {
		return s.pushContacts(userID)
	}
	return nil
}

func (s *ChatService) SetUsername(userID domain.UserID, cmd SetUsernameCommand) error {
	if err := validateUsername(cmd); err != nil {
		return err
	}
	if err := s.contacts.SetUsername(userID, cmd.Username); err != nil {
		return err
	}
	s.log.Info("Username set", "user_id", userID, "username", cmd.Username)
	return nil
}

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// SearchUsers looks users up by a part of their name, the caller excluded.
func (s *ChatService) SearchUsers(userID domain.UserID, query string, limit int) (domain.ContactList, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	limit = min(limit, maxSearchLimit)
	users, err := s.contacts.SearchUsers(userID, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Users searched", "user_id", userID, "query", query, "found", len(users))
	return users, nil
}

func (s *ChatService) pushContacts(userID domain.UserID) error {
	contacts, err := s.contacts.GetContacts(userID)
	if err != nil {
		return err
	}
	s.dispatcher.Submit(event.ContactListUpdated{UserID: userID, Contacts: contacts})
	return nil
}

func (s *ChatService) GetChats(userID domain.UserID) ([]domain.Chat, error) {
	return s.chats.GetUserChats(userID)
}

func (s *ChatService) CreateChat(userID domain.UserID, participants ...domain.UserID) (domain.ChatID, error) {
	s.membership.Lock()
	defer s.membership.Unlock()
	chatID, err := s.chats.CreateChat(userID, participants...)
	if err != nil {
		return 0, err
	}
	return chatID, s.seed(chatID)
}

// CreateChatWith returns the one-to-one chat with otherID, creating it on first use.
func (s *ChatService) CreateChatWith(userID, otherID domain.UserID) (domain.ChatID, error) {
	s.membership.Lock()
	defer s.membership.Unlock()
	chatID, created, err := s.chats.FindOrCreateChatBetween(userID, otherID)
	if err != nil {
		return 0, err
	}
	if created {
		s.log.Info("Direct chat created", "chat_id", chatID, "user_id", userID, "other_id", otherID)
	}
	s.dispatcher.AddParticipants(chatID, userID, otherID)
	return chatID, nil
}

// seed copies the stored participants of a chat into the dispatcher's cache.
func (s *ChatService) seed(chatID domain.ChatID) error {
	participants, err := s.chats.GetChatParticipants(chatID)
	if err != nil {
		return err
	}
	s.dispatcher.AddParticipants(chatID, participants...)
	return nil
}

func (s *ChatService) AddChatParticipant(userID domain.UserID, chatID domain.ChatID, participantID domain.UserID) error {
	s.membership.Lock()
	defer s.membership.Unlock()
	if err := s.chats.AddParticipant(userID, chatID, participantID); err != nil {
		return err
	}
	s.dispatcher.AddParticipants(chatID, participantID)
	return nil
}

// RemoveChatParticipant lets a user leave a chat, or its creator remove somebody.
func (s *ChatService) RemoveChatParticipant(userID domain.UserID, chatID domain.ChatID, participantID domain.UserID) error {
	s.membership.Lock()
	defer s.membership.Unlock()
	if err := s.chats.RemoveParticipant(userID, chatID, participantID); err != nil {
		return err
	}
	s.dispatcher.RemoveParticipant(chatID, participantID)
	return nil
}

func (s *ChatService) DeleteChat(userID domain.UserID, chatID domain.ChatID) error {
	s.membership.Lock()
	defer s.membership.Unlock()
	if err := s.chats.DeleteChat(userID, chatID); err != nil {
		return err
	}
	s.dispatcher.RemoveChat(chatID)
	s.log.Info("Chat deleted", "chat_id", chatID, "user_id", userID)
	return nil
}

// SendMessage pushes the message to the other participants and the receipt back to the sender.
func (s *ChatService) SendMessage(userID domain.UserID, chatID domain.ChatID, content string) (domain.Message, error) {
	if err := validateContent(content, s.maxContentLength); err != nil {
		return domain.Message{}, err
	}
	message, err := s.messages.SendMessage(userID, chatID, content)
	if err != nil {
		return domain.Message{}, err
	}
	s.dispatcher.Submit(event.MessageReceived{Message: message})
	s.dispatcher.Submit(event.MessageDelivered{ChatID: chatID, MessageID: message.ID, SenderID: userID})
	return message, nil
}

// GetChatHistory pages backwards from the latest message.
// The page size is capped by the configured history limit.
func (s *ChatService) GetChatHistory(userID domain.UserID, chatID domain.ChatID, limit, offset int) ([]domain.Message, error) {
	ok, err := s.chats.IsParticipant(chatID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.ErrUserNotParticipant
	}
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	return s.messages.GetMessages(chatID, limit, max(offset, 0))
}

func (s *ChatService) GetUndeliveredMessages(userID domain.UserID) ([]domain.Message, error) {
	return s.messages.GetUndeliveredMessages(userID)
}

func (s *ChatService) MarkMessageAsRead(userID domain.UserID, messageID domain.MessageID) error {
	return s.messages.MarkMessageAsRead(userID, messageID)
}

func (s *ChatService) GetUnreadMessageCount(userID domain.UserID) (uint32, error) {
	return s.messages.GetUnreadMessageCount(userID)
}

func (s *ChatService) InitiateCall(userID domain.UserID, cmd InitiateCallCommand) (domain.CallID, error) {
	if err := validateStruct(cmd); err != nil {
		return "", err
	}
	return s.relay.Initiate(domain.ChatID(cmd.ChatID), userID, domain.UserID(cmd.CalleeID), cmd.Offer)
}

func (s *ChatService) AnswerCall(userID domain.UserID, cmd AnswerCallCommand) error {
	if err := validateStruct(cmd); err != nil {
		return err
	}
	return s.relay.Answer(domain.CallID(cmd.CallID), userID, cmd.Answer)
}

func (s *ChatService) SendIceCandidate(userID domain.UserID, cmd IceCandidateCommand) error {
	if err := validateStruct(cmd); err != nil {
		return err
	}
	return s.relay.RelayIce(domain.CallID(cmd.CallID), userID, cmd.Candidate)
}

func (s *ChatService) EndCall(userID domain.UserID, callID domain.CallID, reason string) error {
	return s.relay.End(callID, userID, reason)
}

func (s *ChatService) GetActiveCalls(userID domain.UserID) ([]domain.CallSession, error) {
	return s.relay.ActiveCalls(userID)
}
