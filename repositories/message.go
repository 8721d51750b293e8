//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/errors"
	"github.com/samber/lo"
)

type IMessageRepository interface {
	SendMessage(senderID domain.UserID, chatID domain.ChatID, content string) (domain.Message, error)
	GetMessages(chatID domain.ChatID, limit, offset int) ([]domain.Message, error)
	GetUndeliveredMessages(userID domain.UserID) ([]domain.Message, error)
	MarkMessageAsRead(userID domain.UserID, messageID domain.MessageID) error
	GetUnreadMessageCount(userID domain.UserID) (uint32, error)
}

// MessageRepository stores messages under "msg:{chat}:{id}".
// Ids come from a single sequence and are zero padded, so a prefix scan
// of a chat returns its messages in sending order.
//
// For every recipient two index entries are written:
//
//	undelivered:{user}:{id} until the message is pulled
//	unread:{user}:{id}      until the message is marked as read
type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq *badger.Sequence
	now func() time.Time
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) (*MessageRepository, error) {
	seq, err := db.GetSequence([]byte("seq:message"), 1000)
	if err != nil {
		return nil, fmt.Errorf("message sequence: %w", err)
	}
	return &MessageRepository{db: db, log: log, seq: seq, now: time.Now}, nil
}

func (m *MessageRepository) Close() error {
	return m.seq.Release()
}

func messagePrefix(chatID domain.ChatID) string {
	return fmt.Sprintf("msg:%010d:", chatID)
}

func messageKey(chatID domain.ChatID, messageID domain.MessageID) string {
	return fmt.Sprintf("%s%010d", messagePrefix(chatID), messageID)
}

func undeliveredPrefix(userID domain.UserID) string {
	return fmt.Sprintf("undelivered:%010d:", userID)
}

func undeliveredKey(userID domain.UserID, messageID domain.MessageID) string {
	return fmt.Sprintf("%s%010d", undeliveredPrefix(userID), messageID)
}

func unreadPrefix(userID domain.UserID) string {
	return fmt.Sprintf("unread:%010d:", userID)
}

func unreadKey(userID domain.UserID, messageID domain.MessageID) string {
	return fmt.Sprintf("%s%010d", unreadPrefix(userID), messageID)
}

// SendMessage persists a message from a participant of the chat
// and marks it undelivered and unread for every other participant.
func (m *MessageRepository) SendMessage(senderID domain.UserID, chatID domain.ChatID, content string) (domain.Message, error) {
	id, err := nextID(m.seq)
	if err != nil {
		return domain.Message{}, err
	}
	message := domain.Message{
		ID:        domain.MessageID(id),
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		Timestamp: m.now().UTC(),
	}

	err = m.db.Update(func(txn *badger.Txn) error {
		participants, err := readParticipants(txn, chatID)
		if err != nil {
			return err
		}
		if !lo.Contains(participants, senderID) {
			return errors.ErrUserNotParticipant
		}
		err = setRecord(txn, messageKey(chatID, message.ID), map[string]any{
			"sender_id": uint32(senderID),
			"content":   content,
			"timestamp": formatTime(message.Timestamp),
		})
		if err != nil {
			return err
		}
		pointer := map[string]any{"chat_id": uint32(chatID)}
		for _, userID := range lo.Without(participants, senderID) {
			if err = setRecord(txn, undeliveredKey(userID, message.ID), pointer); err != nil {
				return err
			}
			if err = setRecord(txn, unreadKey(userID, message.ID), pointer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

// GetMessages pages backwards from the newest message, skipping offset messages.
// The page itself is returned in chronological order.
func (m *MessageRepository) GetMessages(chatID domain.ChatID, limit, offset int) ([]domain.Message, error) {
	var messages []domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		found, err := exists(txn, chatKey(chatID))
		if err != nil {
			return err
		}
		if !found {
			return errors.ErrChatNotFound
		}
		prefix := []byte(messagePrefix(chatID))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts from the greatest key of the prefix
		skipped := 0
		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(messages) == limit {
				break
			}
			message, err := decodeMessage(it.Item(), chatID)
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Reverse(messages)
	return messages, nil
}

// GetUndeliveredMessages returns what userID missed while offline and marks it delivered.
func (m *MessageRepository) GetUndeliveredMessages(userID domain.UserID) ([]domain.Message, error) {
	var messages []domain.Message
	err := m.db.Update(func(txn *badger.Txn) error {
		for _, key := range scanKeys(txn, undeliveredPrefix(userID)) {
			message, found, err := loadIndexed(txn, key)
			if err != nil {
				return err
			}
			if found {
				messages = append(messages, message)
			}
			if err = txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.log.Debug("Undelivered messages pulled", "user_id", userID, "count", len(messages))
	return messages, nil
}

// MarkMessageAsRead is idempotent. A read message is also considered delivered.
func (m *MessageRepository) MarkMessageAsRead(userID domain.UserID, messageID domain.MessageID) error {
	return m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(unreadKey(userID, messageID))); err != nil {
			return err
		}
		return txn.Delete([]byte(undeliveredKey(userID, messageID)))
	})
}

// GetUnreadMessageCount counts unread entries whose message still exists.
func (m *MessageRepository) GetUnreadMessageCount(userID domain.UserID) (uint32, error) {
	var count uint32
	err := m.db.View(func(txn *badger.Txn) error {
		for _, key := range scanKeys(txn, unreadPrefix(userID)) {
			_, found, err := loadIndexed(txn, key)
			if err != nil {
				return err
			}
			if found {
				count++
			}
		}
		return nil
	})
	return count, err
}

// loadIndexed follows an undelivered or unread entry to its message.
// found is false when the chat has been deleted meanwhile.
func loadIndexed(txn *badger.Txn, key string) (domain.Message, bool, error) {
	pointer, found, err := getRecord(txn, key)
	if err != nil || !found {
		return domain.Message{}, false, err
	}
	id, err := idSuffix(key)
	if err != nil {
		return domain.Message{}, false, err
	}
	chatID := domain.ChatID(uint32Field(pointer, "chat_id"))
	item, err := txn.Get([]byte(messageKey(chatID, domain.MessageID(id))))
	if err == badger.ErrKeyNotFound {
		return domain.Message{}, false, nil
	}
	if err != nil {
		return domain.Message{}, false, err
	}
	message, err := decodeMessage(item, chatID)
	return message, err == nil, err
}

func decodeMessage(item *badger.Item, chatID domain.ChatID) (domain.Message, error) {
	id, err := idSuffix(string(item.Key()))
	if err != nil {
		return domain.Message{}, err
	}
	var message domain.Message
	err = item.Value(func(val []byte) error {
		record, err := unmarshalRecord(val)
		if err != nil {
			return err
		}
		timestamp, err := timeField(record, "timestamp")
		if err != nil {
			return err
		}
		message = domain.Message{
			ID:        domain.MessageID(id),
			ChatID:    chatID,
			SenderID:  domain.UserID(uint32Field(record, "sender_id")),
			Content:   stringField(record, "content"),
			Timestamp: timestamp,
		}
		return nil
	})
	return message, err
}
