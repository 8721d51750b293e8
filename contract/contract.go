//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// ChatListener is the remote callback endpoint of a connected session.
// Implementations must be comparable (pointers) since the directory
// finds them back by identity on unsubscribe.
type ChatListener interface {
	OnMessageReceived(ctx context.Context, message domain.Message) error
	OnMessageDelivered(ctx context.Context, chatID domain.ChatID, messageID domain.MessageID) error
	OnContactListUpdated(ctx context.Context, contacts domain.ContactList) error
	OnCallInitiated(ctx context.Context, e event.CallInitiated) error
	OnCallAnswered(ctx context.Context, e event.CallAnswered) error
	OnIceCandidate(ctx context.Context, e event.IceCandidate) error
	OnCallEnded(ctx context.Context, e event.CallEnded) error
}

// IDispatcher is the single entry point of real-time fan-out.
// Every method returns immediately, the work is done later on the dispatcher's own goroutine.
type IDispatcher interface {
	Submit(e event.Event)
	SubscribeUser(userID domain.UserID, listener ChatListener)
	UnsubscribeUser(userID domain.UserID, listener ChatListener)
	AddParticipants(chatID domain.ChatID, userIDs ...domain.UserID)
	RemoveParticipant(chatID domain.ChatID, userID domain.UserID)
	RemoveChat(chatID domain.ChatID)
}

type ICallRelay interface {
	Initiate(chatID domain.ChatID, callerID, calleeID domain.UserID, offer string) (domain.CallID, error)
	Answer(callID domain.CallID, userID domain.UserID, answer string) error
	RelayIce(callID domain.CallID, userID domain.UserID, candidate string) error
	End(callID domain.CallID, userID domain.UserID, reason string) error
	ActiveCalls(userID domain.UserID) ([]domain.CallSession, error)
}
