//go:generate go run go.uber.org/mock/mockgen -source=call.go -destination=../mocks/mock_call_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/errors"
	"github.com/samber/lo"
)

type ICallRepository interface {
	CreateCallIfIdle(call domain.CallSession) error
	GetCall(callID domain.CallID) (domain.CallSession, bool, error)
	GetActiveCallsForChat(chatID domain.ChatID) ([]domain.CallSession, error)
	GetActiveCallsForUser(userID domain.UserID) ([]domain.CallSession, error)
	AnswerCall(callID domain.CallID, answer string) error
	AddIceCandidate(callID domain.CallID, candidate string) error
	EndCall(callID domain.CallID) (bool, error)
	DeleteCallsBefore(cutoff time.Time) (int, error)
}

const (
	callPrefix       = "call:"
	activeCallPrefix = "active_call:"
)

// CallRepository keeps call sessions under "call:{id}".
// There are few calls at any time, so queries scan them all.
// "active_call:{chat}" names the active call of a chat, at most one.
type CallRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewCallRepository(db *badger.DB, log *slog.Logger) *CallRepository {
	return &CallRepository{db: db, log: log}
}

func callKey(callID domain.CallID) string {
	return callPrefix + string(callID)
}

func activeCallKey(chatID domain.ChatID) string {
	return fmt.Sprintf("%s%010d", activeCallPrefix, chatID)
}

// CreateCallIfIdle stores the call unless its chat already has an active one.
// Check and write share a transaction, so of two racing initiates one commits
// and the other fails with ErrCallInProgress.
func (c *CallRepository) CreateCallIfIdle(call domain.CallSession) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		if call.Active {
			busy, err := chatHasActiveCall(txn, call.ChatID)
			if err != nil {
				return err
			}
			if busy {
				return errors.ErrCallInProgress
			}
			err = setRecord(txn, activeCallKey(call.ChatID), map[string]any{"call_id": string(call.ID)})
			if err != nil {
				return err
			}
		}
		return writeCall(txn, call)
	})
	if err == badger.ErrConflict {
		c.log.Debug("Concurrent call initiation lost", "chat_id", call.ChatID, "call_id", call.ID)
		return errors.ErrCallInProgress
	}
	return err
}

func (c *CallRepository) GetCall(callID domain.CallID) (domain.CallSession, bool, error) {
	var call domain.CallSession
	var found bool
	err := c.db.View(func(txn *badger.Txn) error {
		var err error
		call, found, err = readCall(txn, callID)
		return err
	})
	return call, found, err
}

func (c *CallRepository) GetActiveCallsForChat(chatID domain.ChatID) ([]domain.CallSession, error) {
	return c.filter(func(call domain.CallSession) bool {
		return call.Active && call.ChatID == chatID
	})
}

func (c *CallRepository) GetActiveCallsForUser(userID domain.UserID) ([]domain.CallSession, error) {
	return c.filter(func(call domain.CallSession) bool {
		return call.Active && call.IsParticipant(userID)
	})
}

func (c *CallRepository) AnswerCall(callID domain.CallID, answer string) error {
	return c.mutate(callID, func(call *domain.CallSession) {
		call.Answer = answer
	})
}

func (c *CallRepository) AddIceCandidate(callID domain.CallID, candidate string) error {
	return c.mutate(callID, func(call *domain.CallSession) {
		call.IceCandidates = append(call.IceCandidates, candidate)
	})
}

// EndCall marks the call inactive. The session is kept until swept.
func (c *CallRepository) EndCall(callID domain.CallID) (bool, error) {
	var found bool
	err := c.db.Update(func(txn *badger.Txn) error {
		call, ok, err := readCall(txn, callID)
		if err != nil || !ok {
			return err
		}
		found = true
		call.Active = false
		if err = releaseChat(txn, call); err != nil {
			return err
		}
		return writeCall(txn, call)
	})
	return found, err
}

// DeleteCallsBefore removes every session created before cutoff, active or not.
func (c *CallRepository) DeleteCallsBefore(cutoff time.Time) (int, error) {
	expired, err := c.filter(func(call domain.CallSession) bool {
		return call.CreatedAt.Before(cutoff)
	})
	if err != nil {
		return 0, err
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		for _, call := range expired {
			if err := releaseChat(txn, call); err != nil {
				return err
			}
			if err := txn.Delete([]byte(callKey(call.ID))); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(expired), nil
}

func (c *CallRepository) mutate(callID domain.CallID, apply func(call *domain.CallSession)) error {
	return c.db.Update(func(txn *badger.Txn) error {
		call, found, err := readCall(txn, callID)
		if err != nil {
			return err
		}
		if !found {
			return errors.ErrChatNotFound
		}
		apply(&call)
		return writeCall(txn, call)
	})
}

func (c *CallRepository) filter(keep func(call domain.CallSession) bool) ([]domain.CallSession, error) {
	var calls []domain.CallSession
	err := c.db.View(func(txn *badger.Txn) error {
		for _, key := range scanKeys(txn, callPrefix) {
			call, found, err := readCall(txn, domain.CallID(key[len(callPrefix):]))
			if err != nil {
				return err
			}
			if found && keep(call) {
				calls = append(calls, call)
			}
		}
		return nil
	})
	return calls, err
}

// chatHasActiveCall follows the chat guard. A guard left on an ended or
// purged call does not count.
func chatHasActiveCall(txn *badger.Txn, chatID domain.ChatID) (bool, error) {
	guard, found, err := getRecord(txn, activeCallKey(chatID))
	if err != nil || !found {
		return false, err
	}
	call, found, err := readCall(txn, domain.CallID(stringField(guard, "call_id")))
	if err != nil {
		return false, err
	}
	return found && call.Active, nil
}

// releaseChat drops the chat guard when it still names this call.
func releaseChat(txn *badger.Txn, call domain.CallSession) error {
	guard, found, err := getRecord(txn, activeCallKey(call.ChatID))
	if err != nil || !found {
		return err
	}
	if domain.CallID(stringField(guard, "call_id")) != call.ID {
		return nil
	}
	return txn.Delete([]byte(activeCallKey(call.ChatID)))
}

func writeCall(txn *badger.Txn, call domain.CallSession) error {
	return setRecord(txn, callKey(call.ID), map[string]any{
		"chat_id":        uint32(call.ChatID),
		"caller_id":      uint32(call.CallerID),
		"callee_id":      uint32(call.CalleeID),
		"offer":          call.Offer,
		"answer":         call.Answer,
		"ice_candidates": lo.ToAnySlice(call.IceCandidates),
		"active":         call.Active,
		"created_at":     formatTime(call.CreatedAt),
	})
}

func readCall(txn *badger.Txn, callID domain.CallID) (domain.CallSession, bool, error) {
	record, found, err := getRecord(txn, callKey(callID))
	if err != nil || !found {
		return domain.CallSession{}, false, err
	}
	createdAt, err := timeField(record, "created_at")
	if err != nil {
		return domain.CallSession{}, false, err
	}
	return domain.CallSession{
		ID:            callID,
		ChatID:        domain.ChatID(uint32Field(record, "chat_id")),
		CallerID:      domain.UserID(uint32Field(record, "caller_id")),
		CalleeID:      domain.UserID(uint32Field(record, "callee_id")),
		Offer:         stringField(record, "offer"),
		Answer:        stringField(record, "answer"),
		IceCandidates: stringsField(record, "ice_candidates"),
		Active:        boolField(record, "active"),
		CreatedAt:     createdAt,
	}, true, nil
}
