//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../mocks/mock_chat_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/errors"
	"github.com/samber/lo"
)

type IChatRepository interface {
	CreateChat(creatorID domain.UserID, participants ...domain.UserID) (domain.ChatID, error)
	FindOrCreateChatBetween(userA, userB domain.UserID) (domain.ChatID, bool, error)
	GetChat(chatID domain.ChatID) (domain.Chat, error)
	GetChatParticipants(chatID domain.ChatID) ([]domain.UserID, error)
	GetUserChats(userID domain.UserID) ([]domain.Chat, error)
	IsParticipant(chatID domain.ChatID, userID domain.UserID) (bool, error)
	AddParticipant(requestingID domain.UserID, chatID domain.ChatID, userID domain.UserID) error
	RemoveParticipant(requestingID domain.UserID, chatID domain.ChatID, participantID domain.UserID) error
	DeleteChat(requestingID domain.UserID, chatID domain.ChatID) error
}

// ChatRepository keeps chats and their membership in BadgerDB.
// Membership is indexed both ways:
//
//	chat_member:{chat}:{user}
//	user_chat:{user}:{chat}
//
// so that both participants of a chat and chats of a user are a prefix scan.
type ChatRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq *badger.Sequence
}

func NewChatRepository(db *badger.DB, log *slog.Logger) (*ChatRepository, error) {
	seq, err := db.GetSequence([]byte("seq:chat"), 100)
	if err != nil {
		return nil, fmt.Errorf("chat sequence: %w", err)
	}
	return &ChatRepository{db: db, log: log, seq: seq}, nil
}

// Close releases the leased ids of the sequence.
func (c *ChatRepository) Close() error {
	return c.seq.Release()
}

func chatKey(chatID domain.ChatID) string {
	return fmt.Sprintf("chat:%010d", chatID)
}

func chatMemberPrefix(chatID domain.ChatID) string {
	return fmt.Sprintf("chat_member:%010d:", chatID)
}

func chatMemberKey(chatID domain.ChatID, userID domain.UserID) string {
	return fmt.Sprintf("%s%010d", chatMemberPrefix(chatID), userID)
}

func userChatPrefix(userID domain.UserID) string {
	return fmt.Sprintf("user_chat:%010d:", userID)
}

func userChatKey(userID domain.UserID, chatID domain.ChatID) string {
	return fmt.Sprintf("%s%010d", userChatPrefix(userID), chatID)
}

// directChatKey is symmetric in its two users.
func directChatKey(userA, userB domain.UserID) string {
	return fmt.Sprintf("direct:%010d:%010d", min(userA, userB), max(userA, userB))
}

// idSuffix parses the trailing padded id of an index key.
func idSuffix(key string) (uint32, error) {
	raw := key[strings.LastIndex(key, ":")+1:]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed key %q: %w", key, err)
	}
	return uint32(id), nil
}

// CreateChat stores a new chat with its creator and the given participants.
func (c *ChatRepository) CreateChat(creatorID domain.UserID, participants ...domain.UserID) (domain.ChatID, error) {
	id, err := nextID(c.seq)
	if err != nil {
		return 0, err
	}
	chatID := domain.ChatID(id)
	members := lo.Uniq(append([]domain.UserID{creatorID}, participants...))

	err = c.db.Update(func(txn *badger.Txn) error {
		return c.insertChat(txn, chatID, creatorID, members)
	})
	if err != nil {
		return 0, err
	}
	c.log.Debug("Chat created", "chat_id", chatID, "creator_id", creatorID, "participants", len(members))
	return chatID, nil
}

// FindOrCreateChatBetween returns the one-to-one chat of two users, creating it if needed.
// The boolean reports whether the chat was created by this call.
func (c *ChatRepository) FindOrCreateChatBetween(userA, userB domain.UserID) (domain.ChatID, bool, error) {
	if userA == userB {
		return 0, false, errors.ErrInvalidMessage
	}
	chatID, created, err := c.findOrCreateChatBetween(userA, userB)
	if err == badger.ErrConflict {
		// A racing call created the chat first, the retry finds it.
		c.log.Debug("Direct chat creation conflicted, retrying", "user_a", userA, "user_b", userB)
		chatID, created, err = c.findOrCreateChatBetween(userA, userB)
	}
	return chatID, created, err
}

func (c *ChatRepository) findOrCreateChatBetween(userA, userB domain.UserID) (domain.ChatID, bool, error) {
	var chatID domain.ChatID
	var created bool
	err := c.db.Update(func(txn *badger.Txn) error {
		record, found, err := getRecord(txn, directChatKey(userA, userB))
		if err != nil {
			return err
		}
		if found {
			chatID = domain.ChatID(uint32Field(record, "chat_id"))
			return nil
		}
		id, err := nextID(c.seq)
		if err != nil {
			return err
		}
		chatID, created = domain.ChatID(id), true
		if err = c.insertChat(txn, chatID, userA, []domain.UserID{userA, userB}); err != nil {
			return err
		}
		return setRecord(txn, directChatKey(userA, userB), map[string]any{"chat_id": id})
	})
	if err != nil {
		return 0, false, err
	}
	return chatID, created, nil
}

func (c *ChatRepository) insertChat(txn *badger.Txn, chatID domain.ChatID, creatorID domain.UserID, members []domain.UserID) error {
	err := setRecord(txn, chatKey(chatID), map[string]any{
		"creator_id": uint32(creatorID),
		"created_at": formatTime(time.Now()),
	})
	if err != nil {
		return err
	}
	for _, userID := range members {
		if err = c.insertMember(txn, chatID, userID); err != nil {
			return err
		}
	}
	return nil
}

func (c *ChatRepository) insertMember(txn *badger.Txn, chatID domain.ChatID, userID domain.UserID) error {
	if err := txn.Set([]byte(chatMemberKey(chatID, userID)), nil); err != nil {
		return err
	}
	return txn.Set([]byte(userChatKey(userID, chatID)), nil)
}

func (c *ChatRepository) GetChat(chatID domain.ChatID) (domain.Chat, error) {
	var chat domain.Chat
	err := c.db.View(func(txn *badger.Txn) error {
		var err error
		chat, err = readChat(txn, chatID)
		return err
	})
	return chat, err
}

func readChat(txn *badger.Txn, chatID domain.ChatID) (domain.Chat, error) {
	record, found, err := getRecord(txn, chatKey(chatID))
	if err != nil {
		return domain.Chat{}, err
	}
	if !found {
		return domain.Chat{}, errors.ErrChatNotFound
	}
	createdAt, err := timeField(record, "created_at")
	if err != nil {
		return domain.Chat{}, err
	}
	return domain.Chat{
		ID:        chatID,
		CreatorID: domain.UserID(uint32Field(record, "creator_id")),
		CreatedAt: createdAt,
	}, nil
}

// GetChatParticipants fails with ErrChatNotFound for an unknown chat.
func (c *ChatRepository) GetChatParticipants(chatID domain.ChatID) ([]domain.UserID, error) {
	var participants []domain.UserID
	err := c.db.View(func(txn *badger.Txn) error {
		var err error
		participants, err = readParticipants(txn, chatID)
		return err
	})
	return participants, err
}

func readParticipants(txn *badger.Txn, chatID domain.ChatID) ([]domain.UserID, error) {
	found, err := exists(txn, chatKey(chatID))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.ErrChatNotFound
	}
	var participants []domain.UserID
	for _, key := range scanKeys(txn, chatMemberPrefix(chatID)) {
		id, err := idSuffix(key)
		if err != nil {
			return nil, err
		}
		participants = append(participants, domain.UserID(id))
	}
	return participants, nil
}

func (c *ChatRepository) GetUserChats(userID domain.UserID) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := c.db.View(func(txn *badger.Txn) error {
		for _, key := range scanKeys(txn, userChatPrefix(userID)) {
			id, err := idSuffix(key)
			if err != nil {
				return err
			}
			chat, err := readChat(txn, domain.ChatID(id))
			if err != nil {
				return err
			}
			chats = append(chats, chat)
		}
		return nil
	})
	return chats, err
}

func (c *ChatRepository) IsParticipant(chatID domain.ChatID, userID domain.UserID) (bool, error) {
	var ok bool
	err := c.db.View(func(txn *badger.Txn) error {
		var err error
		ok, err = exists(txn, chatMemberKey(chatID, userID))
		return err
	})
	return ok, err
}

// AddParticipant lets any participant bring a new user in. Adding a member twice is a no-op.
func (c *ChatRepository) AddParticipant(requestingID domain.UserID, chatID domain.ChatID, userID domain.UserID) error {
	return c.db.Update(func(txn *badger.Txn) error {
		if _, err := readChat(txn, chatID); err != nil {
			return err
		}
		member, err := exists(txn, chatMemberKey(chatID, requestingID))
		if err != nil {
			return err
		}
		if !member {
			return errors.ErrUserNotParticipant
		}
		return c.insertMember(txn, chatID, userID)
	})
}

// RemoveParticipant removes participantID from the chat.
// A participant may always leave, only the creator may remove somebody else.
func (c *ChatRepository) RemoveParticipant(requestingID domain.UserID, chatID domain.ChatID, participantID domain.UserID) error {
	return c.db.Update(func(txn *badger.Txn) error {
		chat, err := readChat(txn, chatID)
		if err != nil {
			return err
		}
		member, err := exists(txn, chatMemberKey(chatID, participantID))
		if err != nil {
			return err
		}
		if !member {
			return errors.ErrUserNotParticipant
		}
		if requestingID != participantID && requestingID != chat.CreatorID {
			return errors.ErrPermissionDenied
		}
		if err = txn.Delete([]byte(chatMemberKey(chatID, participantID))); err != nil {
			return err
		}
		return txn.Delete([]byte(userChatKey(participantID, chatID)))
	})
}

// DeleteChat removes the chat, its membership and its messages. Only the creator may do it.
func (c *ChatRepository) DeleteChat(requestingID domain.UserID, chatID domain.ChatID) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		chat, err := readChat(txn, chatID)
		if err != nil {
			return err
		}
		if chat.CreatorID != requestingID {
			return errors.ErrPermissionDenied
		}
		participants, err := readParticipants(txn, chatID)
		if err != nil {
			return err
		}
		for _, userID := range participants {
			if err = txn.Delete([]byte(chatMemberKey(chatID, userID))); err != nil {
				return err
			}
			if err = txn.Delete([]byte(userChatKey(userID, chatID))); err != nil {
				return err
			}
		}
		if len(participants) == 2 {
			if err = c.deleteDirect(txn, chatID, participants[0], participants[1]); err != nil {
				return err
			}
		}
		return txn.Delete([]byte(chatKey(chatID)))
	})
	if err != nil {
		return err
	}
	// Undelivered and unread index entries left behind are skipped and cleaned on read.
	return c.db.DropPrefix([]byte(messagePrefix(chatID)))
}

func (c *ChatRepository) deleteDirect(txn *badger.Txn, chatID domain.ChatID, userA, userB domain.UserID) error {
	record, found, err := getRecord(txn, directChatKey(userA, userB))
	if err != nil || !found {
		return err
	}
	if domain.ChatID(uint32Field(record, "chat_id")) != chatID {
		return nil
	}
	return txn.Delete([]byte(directChatKey(userA, userB)))
}
