// Package event defines the real-time events pushed to chat listeners.
package event

import (
	"github.com/nikitapn/npchat/domain"
)

type Kind string

const (
	MessageReceivedKind    Kind = "MessageReceived"
	MessageDeliveredKind   Kind = "MessageDelivered"
	ContactListUpdatedKind Kind = "ContactListUpdated"
	CallInitiatedKind      Kind = "CallInitiated"
	CallAnsweredKind       Kind = "CallAnswered"
	IceCandidateKind       Kind = "IceCandidate"
	CallEndedKind          Kind = "CallEnded"
)

// Event is a tagged value submitted to the dispatcher.
// Each kind carries its own addressing key.
type Event interface {
	Kind() Kind
}

// MessageReceived goes to every participant of the chat but the sender.
type MessageReceived struct {
	Message domain.Message
}

func (MessageReceived) Kind() Kind { return MessageReceivedKind }

// MessageDelivered is the delivery receipt sent back to the author.
type MessageDelivered struct {
	ChatID    domain.ChatID
	MessageID domain.MessageID
	SenderID  domain.UserID
}

func (MessageDelivered) Kind() Kind { return MessageDeliveredKind }

type ContactListUpdated struct {
	UserID   domain.UserID
	Contacts domain.ContactList
}

func (ContactListUpdated) Kind() Kind { return ContactListUpdatedKind }

// CallInitiated rings every participant of the chat but the caller.
type CallInitiated struct {
	CallID   domain.CallID
	ChatID   domain.ChatID
	CallerID domain.UserID
	CalleeID domain.UserID
	Offer    string
}

func (CallInitiated) Kind() Kind { return CallInitiatedKind }

// CallAnswered is addressed to the caller only.
type CallAnswered struct {
	CallID   domain.CallID
	ChatID   domain.ChatID
	CallerID domain.UserID
	CalleeID domain.UserID
	Answer   string
}

func (CallAnswered) Kind() Kind { return CallAnsweredKind }

// IceCandidate is addressed to the other party of the call.
type IceCandidate struct {
	CallID    domain.CallID
	From      domain.UserID
	To        domain.UserID
	Candidate string
}

func (IceCandidate) Kind() Kind { return IceCandidateKind }

type CallEnded struct {
	CallID  domain.CallID
	ChatID  domain.ChatID
	EndedBy domain.UserID
	Reason  string
}

func (CallEnded) Kind() Kind { return CallEndedKind }
