//go:generate go run go.uber.org/mock/mockgen -source=contact.go -destination=../mocks/mock_contact_repository.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/errors"
)

type IContactRepository interface {
	GetContacts(userID domain.UserID) (domain.ContactList, error)
	AddContact(userID, contactID domain.UserID) (bool, error)
	RemoveContact(userID, contactID domain.UserID) (bool, error)
	SetUsername(userID domain.UserID, username string) error
	SearchUsers(searcherID domain.UserID, query string, limit int) (domain.ContactList, error)
}

const (
	userIDField      = "user_id"
	usernameField    = "username"
	usernameKeyField = "username_key"
)

// ContactRepository stores one key per contact: "contact:{user}:{contact}".
// Profiles live under "user:{id}" with "username:{lowercase name}" owning each name.
// The bluge index mirrors the profiles for substring search.
type ContactRepository struct {
	db    *badger.DB
	index *bluge.Writer
	log   *slog.Logger
}

func NewContactRepository(db *badger.DB, index *bluge.Writer, log *slog.Logger) *ContactRepository {
	return &ContactRepository{db: db, index: index, log: log}
}

func userKey(userID domain.UserID) string {
	return fmt.Sprintf("user:%010d", userID)
}

func usernameKey(username string) string {
	return "username:" + strings.ToLower(username)
}

func contactPrefix(userID domain.UserID) string {
	return fmt.Sprintf("contact:%010d:", userID)
}

func contactKey(userID, contactID domain.UserID) string {
	return fmt.Sprintf("%s%010d", contactPrefix(userID), contactID)
}

func (c *ContactRepository) GetContacts(userID domain.UserID) (domain.ContactList, error) {
	contacts := domain.ContactList{}
	err := c.db.View(func(txn *badger.Txn) error {
		for _, key := range scanKeys(txn, contactPrefix(userID)) {
			id, err := idSuffix(key)
			if err != nil {
				return err
			}
			record, found, err := getRecord(txn, key)
			if err != nil {
				return err
			}
			if !found {
				continue
			}
			addedAt, err := timeField(record, "added_at")
			if err != nil {
				return err
			}
			username, err := usernameOf(txn, domain.UserID(id))
			if err != nil {
				return err
			}
			contacts = append(contacts, domain.Contact{UserID: domain.UserID(id), Username: username, AddedAt: addedAt})
		}
		return nil
	})
	return contacts, err
}

// AddContact returns false when contactID already is a contact.
func (c *ContactRepository) AddContact(userID, contactID domain.UserID) (bool, error) {
	var added bool
	err := c.db.Update(func(txn *badger.Txn) error {
		found, err := exists(txn, contactKey(userID, contactID))
		if err != nil || found {
			return err
		}
		added = true
		return setRecord(txn, contactKey(userID, contactID), map[string]any{
			"added_at": formatTime(time.Now()),
		})
	})
	return added, err
}

// RemoveContact returns false when contactID was not a contact.
func (c *ContactRepository) RemoveContact(userID, contactID domain.UserID) (bool, error) {
	var removed bool
	err := c.db.Update(func(txn *badger.Txn) error {
		found, err := exists(txn, contactKey(userID, contactID))
		if err != nil || !found {
			return err
		}
		removed = true
		return txn.Delete([]byte(contactKey(userID, contactID)))
	})
	return removed, err
}

// SetUsername records the username of a user and indexes it for search.
// A name owned by another user, compared case-insensitively, is refused with ErrUsernameTaken.
func (c *ContactRepository) SetUsername(userID domain.UserID, username string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		owner, found, err := getRecord(txn, usernameKey(username))
		if err != nil {
			return err
		}
		if found && domain.UserID(uint32Field(owner, userIDField)) != userID {
			return errors.ErrUsernameTaken
		}
		previous, err := usernameOf(txn, userID)
		if err != nil {
			return err
		}
		if previous != "" && usernameKey(previous) != usernameKey(username) {
			if err = txn.Delete([]byte(usernameKey(previous))); err != nil {
				return err
			}
		}
		err = setRecord(txn, usernameKey(username), map[string]any{userIDField: uint32(userID)})
		if err != nil {
			return err
		}
		return setRecord(txn, userKey(userID), map[string]any{
			usernameField: username,
			"updated_at":  formatTime(time.Now()),
		})
	})
	if err == badger.ErrConflict {
		// Another rename touching the same name committed first.
		return errors.ErrUsernameTaken
	}
	if err != nil {
		return err
	}

	doc := bluge.NewDocument(fmt.Sprintf("%010d", userID)).
		AddField(bluge.NewKeywordField(userIDField, fmt.Sprintf("%010d", userID)).StoreValue()).
		AddField(bluge.NewKeywordField(usernameField, username).StoreValue()).
		AddField(bluge.NewKeywordField(usernameKeyField, strings.ToLower(username)).Sortable())
	if err = c.index.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index user %d: %w", userID, err)
	}
	c.log.Debug("Username set", "user_id", userID, "username", username)
	return nil
}

// SearchUsers returns up to limit users whose name contains query, ignoring case,
// ordered by name. The searcher is never part of the result. An empty query matches everybody.
func (c *ContactRepository) SearchUsers(searcherID domain.UserID, query string, limit int) (domain.ContactList, error) {
	var match bluge.Query = bluge.NewMatchAllQuery()
	if pattern := strings.NewReplacer("*", "", "?", "").Replace(strings.ToLower(query)); pattern != "" {
		match = bluge.NewWildcardQuery("*" + pattern + "*").SetField(usernameKeyField)
	}
	q := bluge.NewBooleanQuery().
		AddMust(match).
		AddMustNot(bluge.NewTermQuery(fmt.Sprintf("%010d", searcherID)).SetField(userIDField))

	reader, err := c.index.Reader()
	if err != nil {
		return nil, fmt.Errorf("open user index: %w", err)
	}
	defer func() { _ = reader.Close() }()

	matches, err := reader.Search(context.Background(), bluge.NewTopNSearch(limit, q).SortBy([]string{usernameKeyField}))
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	users := domain.ContactList{}
	next, err := matches.Next()
	for err == nil && next != nil {
		var user domain.Contact
		var parseErr error
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case userIDField:
				var id uint32
				if id, parseErr = idSuffix(string(value)); parseErr != nil {
					return false
				}
				user.UserID = domain.UserID(id)
			case usernameField:
				user.Username = string(value)
			}
			return true
		})
		if err == nil {
			err = parseErr
		}
		if err != nil {
			break
		}
		users = append(users, user)
		next, err = matches.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("read user matches: %w", err)
	}
	return users, nil
}

// usernameOf is empty for a user who never set a name.
func usernameOf(txn *badger.Txn, userID domain.UserID) (string, error) {
	record, found, err := getRecord(txn, userKey(userID))
	if err != nil || !found {
		return "", err
	}
	return stringField(record, usernameField), nil
}
