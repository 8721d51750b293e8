package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/errors"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_SendMessage(t *testing.T) {
	req := require.New(t)
	db, log := openDB(t)
	chats := newChatRepository(t, db, log)
	messages := newMessageRepository(t, db, log)
	at := time.Date(2026, 10, 17, 12, 0, 0, 123456789, time.UTC)
	messages.now = func() time.Time { return at }

	chatID, err := chats.CreateChat(1, 2, 3)
	req.NoError(err)

	// When alice sends a message
	message, err := messages.SendMessage(1, chatID, "hi")
	req.NoError(err)

	// Then it is stored with the sending time
	req.NotZero(message.ID)
	req.Equal(at, message.Timestamp)
	history, err := messages.GetMessages(chatID, 10, 0)
	req.NoError(err)
	req.Equal([]domain.Message{message}, history)

	// And it is unread for the others only
	for userID, want := range map[domain.UserID]uint32{1: 0, 2: 1, 3: 1} {
		count, err := messages.GetUnreadMessageCount(userID)
		req.NoError(err)
		req.Equal(want, count, "user %d", userID)
	}
}

func TestMessageRepository_SendMessage_Rejections(t *testing.T) {
	req := require.New(t)
	db, log := openDB(t)
	chats := newChatRepository(t, db, log)
	messages := newMessageRepository(t, db, log)
	chatID, err := chats.CreateChat(1, 2)
	req.NoError(err)

	_, err = messages.SendMessage(9, chatID, "intruder")
	req.ErrorIs(err, errors.ErrUserNotParticipant)

	_, err = messages.SendMessage(1, 404, "nowhere")
	req.ErrorIs(err, errors.ErrChatNotFound)
}

func TestMessageRepository_GetMessages_Pages_From_Newest(t *testing.T) {
	req := require.New(t)
	db, log := openDB(t)
	chats := newChatRepository(t, db, log)
	messages := newMessageRepository(t, db, log)
	chatID, err := chats.CreateChat(1, 2)
	req.NoError(err)

	for i := 1; i <= 5; i++ {
		_, err = messages.SendMessage(1, chatID, fmt.Sprintf("m%d", i))
		req.NoError(err)
	}

	contents := func(page []domain.Message) []string {
		var res []string
		for _, m := range page {
			res = append(res, m.Content)
		}
		return res
	}

	// Latest page, in chronological order
	page, err := messages.GetMessages(chatID, 2, 0)
	req.NoError(err)
	req.Equal([]string{"m4", "m5"}, contents(page))

	// Previous page
	page, err = messages.GetMessages(chatID, 2, 2)
	req.NoError(err)
	req.Equal([]string{"m2", "m3"}, contents(page))

	// Past the end
	page, err = messages.GetMessages(chatID, 2, 10)
	req.NoError(err)
	req.Empty(page)

	_, err = messages.GetMessages(404, 2, 0)
	req.ErrorIs(err, errors.ErrChatNotFound)
}

func TestMessageRepository_Undelivered_Are_Pulled_Once(t *testing.T) {
	req := require.New(t)
	db, log := openDB(t)
	chats := newChatRepository(t, db, log)
	messages := newMessageRepository(t, db, log)
	chatID, err := chats.CreateChat(1, 2)
	req.NoError(err)

	first, err := messages.SendMessage(1, chatID, "first")
	req.NoError(err)
	second, err := messages.SendMessage(1, chatID, "second")
	req.NoError(err)

	// When bob comes back online
	undelivered, err := messages.GetUndeliveredMessages(2)
	req.NoError(err)

	// Then he gets what he missed in order, only once
	req.Equal([]domain.Message{first, second}, undelivered)
	undelivered, err = messages.GetUndeliveredMessages(2)
	req.NoError(err)
	req.Empty(undelivered)

	// And they stay unread until marked
	count, err := messages.GetUnreadMessageCount(2)
	req.NoError(err)
	req.Equal(uint32(2), count)

	req.NoError(messages.MarkMessageAsRead(2, first.ID))
	req.NoError(messages.MarkMessageAsRead(2, first.ID))
	count, err = messages.GetUnreadMessageCount(2)
	req.NoError(err)
	req.Equal(uint32(1), count)
}
