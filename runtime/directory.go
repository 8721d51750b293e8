package runtime

import (
	"github.com/nikitapn/npchat/contract"
	"github.com/nikitapn/npchat/domain"
	"github.com/samber/lo"
)

type Set map[domain.UserID]struct{}

// Directory maintains the dual index chat -> participants and user -> listener tokens.
// Participant sets are a cache of the storage layer: they are seeded by the request
// handlers, never loaded from here, which keeps the directory free of I/O.
//
// Directory is not safe for concurrent use. Only the dispatcher's goroutine touches it.
type Directory struct {
	registry         *ListenerRegistry
	userListeners    map[domain.UserID][]Token
	owners           map[Token]domain.UserID
	chatParticipants map[domain.ChatID]Set
}

func NewDirectory(registry *ListenerRegistry) *Directory {
	return &Directory{
		registry:         registry,
		userListeners:    make(map[domain.UserID][]Token),
		owners:           make(map[Token]domain.UserID),
		chatParticipants: make(map[domain.ChatID]Set),
	}
}

// SubscribeUser records listener as an active endpoint of userID.
// Subscribing the same listener again returns its existing token,
// so a resubscribe can never produce a double delivery.
func (d *Directory) SubscribeUser(userID domain.UserID, listener contract.ChatListener) Token {
	if token, ok := d.find(userID, listener); ok {
		return token
	}
	token := d.registry.Register(listener)
	d.userListeners[userID] = append(d.userListeners[userID], token)
	d.owners[token] = userID
	return token
}

// UnsubscribeUser removes listener from userID's endpoints.
// The user entry is pruned when its last listener goes away.
func (d *Directory) UnsubscribeUser(userID domain.UserID, listener contract.ChatListener) bool {
	token, ok := d.find(userID, listener)
	if !ok {
		return false
	}
	return d.Evict(token)
}

// Evict drops a token whatever user owns it, e.g. after a failed delivery.
func (d *Directory) Evict(token Token) bool {
	userID, ok := d.owners[token]
	if !ok {
		return false
	}
	delete(d.owners, token)
	tokens := lo.Without(d.userListeners[userID], token)
	if len(tokens) == 0 {
		delete(d.userListeners, userID)
	} else {
		d.userListeners[userID] = tokens
	}
	d.registry.Unregister(token)
	return true
}

// AddParticipants unions userIDs into the chat's participant set.
func (d *Directory) AddParticipants(chatID domain.ChatID, userIDs ...domain.UserID) {
	if len(userIDs) == 0 {
		return
	}
	members, ok := d.chatParticipants[chatID]
	if !ok {
		members = make(Set, len(userIDs))
		d.chatParticipants[chatID] = members
	}
	for _, userID := range userIDs {
		members[userID] = struct{}{}
	}
}

// RemoveParticipant removes userID from the chat.
// If no one is left in the chat, the chat entry is removed entirely.
func (d *Directory) RemoveParticipant(chatID domain.ChatID, userID domain.UserID) {
	members, ok := d.chatParticipants[chatID]
	if !ok {
		return
	}
	delete(members, userID)
	if len(members) == 0 {
		delete(d.chatParticipants, chatID)
	}
}

func (d *Directory) RemoveChat(chatID domain.ChatID) {
	delete(d.chatParticipants, chatID)
}

// ResolveChat returns the live tokens of every participant of chatID but the excluded users.
// Participants without a listener are skipped: they catch up through the undelivered pull.
func (d *Directory) ResolveChat(chatID domain.ChatID, except ...domain.UserID) []Token {
	members, ok := d.chatParticipants[chatID]
	if !ok {
		return nil
	}
	var tokens []Token
	for userID := range members {
		if lo.Contains(except, userID) {
			continue
		}
		tokens = append(tokens, d.ResolveUser(userID)...)
	}
	return tokens
}

// ResolveUser returns the live tokens of userID, possibly none.
func (d *Directory) ResolveUser(userID domain.UserID) []Token {
	return lo.Filter(d.userListeners[userID], func(token Token, _ int) bool {
		_, alive := d.registry.Resolve(token)
		return alive
	})
}

func (d *Directory) Participants(chatID domain.ChatID) []domain.UserID {
	return lo.Keys(d.chatParticipants[chatID])
}

func (d *Directory) HasChat(chatID domain.ChatID) bool {
	_, ok := d.chatParticipants[chatID]
	return ok
}

func (d *Directory) find(userID domain.UserID, listener contract.ChatListener) (Token, bool) {
	for _, token := range d.userListeners[userID] {
		if l, ok := d.registry.Resolve(token); ok && l == listener {
			return token, true
		}
	}
	return Token{}, false
}
