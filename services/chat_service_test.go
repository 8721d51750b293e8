package services

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/domain/event"
	"github.com/nikitapn/npchat/errors"
	"github.com/nikitapn/npchat/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	service    *ChatService
	chats      *mocks.MockIChatRepository
	messages   *mocks.MockIMessageRepository
	contacts   *mocks.MockIContactRepository
	dispatcher *mocks.MockIDispatcher
	relay      *mocks.MockICallRelay
	listener   *mocks.MockChatListener
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		chats:      mocks.NewMockIChatRepository(ctrl),
		messages:   mocks.NewMockIMessageRepository(ctrl),
		contacts:   mocks.NewMockIContactRepository(ctrl),
		dispatcher: mocks.NewMockIDispatcher(ctrl),
		relay:      mocks.NewMockICallRelay(ctrl),
		listener:   mocks.NewMockChatListener(ctrl),
	}
	f.service = NewChatService(logs.GetLoggerFromLevel(slog.LevelDebug),
		f.chats, f.messages, f.contacts, f.dispatcher, f.relay, 20, 50)
	return f
}

func TestChatService_SubscribeToEvents_Seeds_Participants(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	// Given alice belongs to two chats
	f.chats.EXPECT().GetUserChats(domain.UserID(1)).Return([]domain.Chat{{ID: 42}, {ID: 43}}, nil)
	f.chats.EXPECT().GetChatParticipants(domain.ChatID(42)).Return([]domain.UserID{1, 2}, nil)
	f.chats.EXPECT().GetChatParticipants(domain.ChatID(43)).Return([]domain.UserID{1, 3, 4}, nil)

	// Then both chats are seeded before the listener is recorded
	gomock.InOrder(
		f.dispatcher.EXPECT().AddParticipants(domain.ChatID(42), domain.UserID(1), domain.UserID(2)),
		f.dispatcher.EXPECT().AddParticipants(domain.ChatID(43), domain.UserID(1), domain.UserID(3), domain.UserID(4)),
		f.dispatcher.EXPECT().SubscribeUser(domain.UserID(1), f.listener),
	)

	req.NoError(f.service.SubscribeToEvents(1, f.listener))
}

func TestChatService_Removal_During_Subscribe_Is_Not_Undone(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	reading := make(chan struct{})
	release := make(chan struct{})

	// Given alice subscribing while chat 42 still lists carol
	f.chats.EXPECT().GetUserChats(domain.UserID(1)).Return([]domain.Chat{{ID: 42}}, nil)
	f.chats.EXPECT().GetChatParticipants(domain.ChatID(42)).DoAndReturn(func(domain.ChatID) ([]domain.UserID, error) {
		close(reading)
		<-release
		return []domain.UserID{1, 3}, nil
	})
	f.chats.EXPECT().RemoveParticipant(domain.UserID(3), domain.ChatID(42), domain.UserID(3)).Return(nil)

	// Then the stale seed reaches the dispatcher before the removal
	gomock.InOrder(
		f.dispatcher.EXPECT().AddParticipants(domain.ChatID(42), domain.UserID(1), domain.UserID(3)),
		f.dispatcher.EXPECT().SubscribeUser(domain.UserID(1), f.listener),
		f.dispatcher.EXPECT().RemoveParticipant(domain.ChatID(42), domain.UserID(3)),
	)

	// When carol leaves the chat in the middle of the seeding
	subscribed := make(chan error, 1)
	go func() { subscribed <- f.service.SubscribeToEvents(1, f.listener) }()
	<-reading
	left := make(chan error, 1)
	go func() { left <- f.service.RemoveChatParticipant(3, 42, 3) }()
	time.Sleep(20 * time.Millisecond)
	close(release)

	req.NoError(<-subscribed)
	req.NoError(<-left)
}

func TestChatService_SubscribeToEvents_Storage_Failure(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.chats.EXPECT().GetUserChats(domain.UserID(1)).Return([]domain.Chat{{ID: 42}}, nil)
	f.chats.EXPECT().GetChatParticipants(domain.ChatID(42)).Return(nil, errors.ErrChatNotFound)
	f.dispatcher.EXPECT().SubscribeUser(gomock.Any(), gomock.Any()).Times(0)

	req.ErrorIs(f.service.SubscribeToEvents(1, f.listener), errors.ErrChatNotFound)
}

func TestChatService_SendMessage(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	message := domain.Message{ID: 100, ChatID: 42, SenderID: 1, Content: "hi", Timestamp: time.Now()}

	f.messages.EXPECT().SendMessage(domain.UserID(1), domain.ChatID(42), "hi").Return(message, nil)
	gomock.InOrder(
		f.dispatcher.EXPECT().Submit(event.MessageReceived{Message: message}),
		f.dispatcher.EXPECT().Submit(event.MessageDelivered{ChatID: 42, MessageID: 100, SenderID: 1}),
	)

	sent, err := f.service.SendMessage(1, 42, "hi")
	req.NoError(err)
	req.Equal(message, sent)
}

func TestChatService_SendMessage_Rejections(t *testing.T) {
	t.Run("empty content", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.dispatcher.EXPECT().Submit(gomock.Any()).Times(0)

		_, err := f.service.SendMessage(1, 42, "")
		req.ErrorIs(err, errors.ErrInvalidMessage)
	})

	t.Run("content too long", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		_, err := f.service.SendMessage(1, 42, strings.Repeat("a", 21))
		req.ErrorIs(err, errors.ErrInvalidMessage)
	})

	t.Run("sender not in chat", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.messages.EXPECT().SendMessage(domain.UserID(9), domain.ChatID(42), "hi").Return(domain.Message{}, errors.ErrUserNotParticipant)
		f.dispatcher.EXPECT().Submit(gomock.Any()).Times(0)

		_, err := f.service.SendMessage(9, 42, "hi")
		req.ErrorIs(err, errors.ErrUserNotParticipant)
	})
}

func TestChatService_Contacts_Push_Updated_List(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	contacts := domain.ContactList{{UserID: 2}}

	f.contacts.EXPECT().AddContact(domain.UserID(1), domain.UserID(2)).Return(true, nil)
	f.contacts.EXPECT().GetContacts(domain.UserID(1)).Return(contacts, nil)
	f.dispatcher.EXPECT().Submit(event.ContactListUpdated{UserID: 1, Contacts: contacts})

	req.NoError(f.service.AddContact(1, 2))

	// Nothing changes, nothing is pushed
	f.contacts.EXPECT().RemoveContact(domain.UserID(1), domain.UserID(3)).Return(false, nil)
	req.NoError(f.service.RemoveContact(1, 3))

	// And oneself is not a contact
	req.ErrorIs(f.service.AddContact(1, 1), errors.ErrInvalidMessage)
}

func TestChatService_SetUsername(t *testing.T) {
	tests := []struct {
		description string
		username    string
		valid       bool
	}{
		{"plain name", "bob", true},
		{"unicode name", "Zoë_42", true},
		{"too short", "bo", false},
		{"too long", strings.Repeat("b", 33), false},
		{"white space", "bob smith", false},
		{"separator", "bob:1", false},
		{"wildcard", "bob*", false},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			f := newFixture(t)
			if tt.valid {
				f.contacts.EXPECT().SetUsername(domain.UserID(1), tt.username).Return(nil)
			}

			err := f.service.SetUsername(1, SetUsernameCommand{Username: tt.username})
			if tt.valid {
				req.NoError(err)
			} else {
				req.ErrorIs(err, errors.ErrInvalidMessage)
			}
		})
	}
}

func TestChatService_SetUsername_Taken(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.contacts.EXPECT().SetUsername(domain.UserID(1), "bob").Return(errors.ErrUsernameTaken)

	req.ErrorIs(f.service.SetUsername(1, SetUsernameCommand{Username: "bob"}), errors.ErrUsernameTaken)
}

func TestChatService_SearchUsers_Bounds_The_Limit(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	found := domain.ContactList{{UserID: 2, Username: "bob"}}

	gomock.InOrder(
		f.contacts.EXPECT().SearchUsers(domain.UserID(1), "bo", defaultSearchLimit).Return(found, nil),
		f.contacts.EXPECT().SearchUsers(domain.UserID(1), "bo", maxSearchLimit).Return(found, nil),
		f.contacts.EXPECT().SearchUsers(domain.UserID(1), "bo", 5).Return(found, nil),
	)

	// No limit gives the default, a huge one is capped, the query is trimmed
	users, err := f.service.SearchUsers(1, " bo ", 0)
	req.NoError(err)
	req.Equal(found, users)
	_, err = f.service.SearchUsers(1, "bo", 10_000)
	req.NoError(err)
	_, err = f.service.SearchUsers(1, "bo", 5)
	req.NoError(err)
}

func TestChatService_Chat_Membership_Updates_Directory(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	// Create
	f.chats.EXPECT().CreateChat(domain.UserID(1), domain.UserID(2), domain.UserID(3)).Return(domain.ChatID(42), nil)
	f.chats.EXPECT().GetChatParticipants(domain.ChatID(42)).Return([]domain.UserID{1, 2, 3}, nil)
	f.dispatcher.EXPECT().AddParticipants(domain.ChatID(42), domain.UserID(1), domain.UserID(2), domain.UserID(3))
	chatID, err := f.service.CreateChat(1, 2, 3)
	req.NoError(err)
	req.Equal(domain.ChatID(42), chatID)

	// Add
	f.chats.EXPECT().AddParticipant(domain.UserID(1), domain.ChatID(42), domain.UserID(4)).Return(nil)
	f.dispatcher.EXPECT().AddParticipants(domain.ChatID(42), domain.UserID(4))
	req.NoError(f.service.AddChatParticipant(1, 42, 4))

	// Remove
	f.chats.EXPECT().RemoveParticipant(domain.UserID(1), domain.ChatID(42), domain.UserID(2)).Return(nil)
	f.dispatcher.EXPECT().RemoveParticipant(domain.ChatID(42), domain.UserID(2))
	req.NoError(f.service.RemoveChatParticipant(1, 42, 2))

	// Refused removal leaves the directory alone
	f.chats.EXPECT().RemoveParticipant(domain.UserID(3), domain.ChatID(42), domain.UserID(4)).Return(errors.ErrPermissionDenied)
	req.ErrorIs(f.service.RemoveChatParticipant(3, 42, 4), errors.ErrPermissionDenied)

	// Delete
	f.chats.EXPECT().DeleteChat(domain.UserID(1), domain.ChatID(42)).Return(nil)
	f.dispatcher.EXPECT().RemoveChat(domain.ChatID(42))
	req.NoError(f.service.DeleteChat(1, 42))
}

func TestChatService_CreateChatWith(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.chats.EXPECT().FindOrCreateChatBetween(domain.UserID(1), domain.UserID(2)).Return(domain.ChatID(7), false, nil)
	f.dispatcher.EXPECT().AddParticipants(domain.ChatID(7), domain.UserID(1), domain.UserID(2))

	chatID, err := f.service.CreateChatWith(1, 2)
	req.NoError(err)
	req.Equal(domain.ChatID(7), chatID)
}

func TestChatService_GetChatHistory(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	// A stranger cannot read the chat
	f.chats.EXPECT().IsParticipant(domain.ChatID(42), domain.UserID(9)).Return(false, nil)
	_, err := f.service.GetChatHistory(9, 42, 10, 0)
	req.ErrorIs(err, errors.ErrUserNotParticipant)

	// The page size is capped
	f.chats.EXPECT().IsParticipant(domain.ChatID(42), domain.UserID(1)).Return(true, nil).Times(2)
	f.messages.EXPECT().GetMessages(domain.ChatID(42), 50, 0).Return(nil, nil)
	_, err = f.service.GetChatHistory(1, 42, 1000, -3)
	req.NoError(err)

	f.messages.EXPECT().GetMessages(domain.ChatID(42), 10, 20).Return(nil, nil)
	_, err = f.service.GetChatHistory(1, 42, 10, 20)
	req.NoError(err)
}

func TestChatService_Calls_Are_Validated_Then_Relayed(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	callID := domain.CallID("0123456789abcdef0123456789abcdef")

	f.relay.EXPECT().Initiate(domain.ChatID(42), domain.UserID(5), domain.UserID(9), "offer").Return(callID, nil)
	got, err := f.service.InitiateCall(5, InitiateCallCommand{ChatID: 42, CalleeID: 9, Offer: "offer"})
	req.NoError(err)
	req.Equal(callID, got)

	f.relay.EXPECT().RelayIce(callID, domain.UserID(5), "X").Return(nil)
	req.NoError(f.service.SendIceCandidate(5, IceCandidateCommand{CallID: string(callID), Candidate: "X"}))

	// Malformed requests never reach the relay
	_, err = f.service.InitiateCall(5, InitiateCallCommand{ChatID: 42, CalleeID: 9})
	req.ErrorIs(err, errors.ErrInvalidMessage)
	req.ErrorIs(f.service.AnswerCall(9, AnswerCallCommand{CallID: "not-a-call", Answer: "a"}), errors.ErrInvalidMessage)

	f.relay.EXPECT().End(callID, domain.UserID(9), "hangup").Return(errors.ErrChatNotFound)
	req.ErrorIs(f.service.EndCall(9, callID, "hangup"), errors.ErrChatNotFound)
}
