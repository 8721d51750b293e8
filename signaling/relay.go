// Package signaling relays WebRTC offer, answer and ICE messages between the two parties of a call.
// Call state lives in the call repository, delivery goes through the dispatcher.
package signaling

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nikitapn/npchat/contract"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/domain/event"
	"github.com/nikitapn/npchat/errors"
	"github.com/nikitapn/npchat/repositories"
	"github.com/samber/lo"
)

var _ contract.ICallRelay = (*Relay)(nil)

type Relay struct {
	log        *slog.Logger
	calls      repositories.ICallRepository
	chats      repositories.IChatRepository
	dispatcher contract.IDispatcher
	retention  time.Duration
	now        func() time.Time
}

type Option func(*Relay)

// WithClock replaces the wall clock used to stamp and expire sessions.
func WithClock(now func() time.Time) Option {
	return func(r *Relay) { r.now = now }
}

func NewRelay(log *slog.Logger, calls repositories.ICallRepository, chats repositories.IChatRepository,
	dispatcher contract.IDispatcher, retention time.Duration, opts ...Option) *Relay {
	r := &Relay{
		log:        log,
		calls:      calls,
		chats:      chats,
		dispatcher: dispatcher,
		retention:  retention,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initiate opens a call on a chat and rings every other participant.
// Both parties must belong to the chat and the chat must not have an active call.
func (r *Relay) Initiate(chatID domain.ChatID, callerID, calleeID domain.UserID, offer string) (domain.CallID, error) {
	if callerID == calleeID {
		return "", errors.ErrInvalidMessage
	}
	participants, err := r.chats.GetChatParticipants(chatID)
	if err != nil {
		return "", fmt.Errorf("initiate call: %w", err)
	}
	if !lo.Contains(participants, callerID) || !lo.Contains(participants, calleeID) {
		return "", errors.ErrUserNotParticipant
	}
	call := domain.CallSession{
		ID:        domain.NewCallID(),
		ChatID:    chatID,
		CallerID:  callerID,
		CalleeID:  calleeID,
		Offer:     offer,
		Active:    true,
		CreatedAt: r.now().UTC(),
	}
	if err = r.calls.CreateCallIfIdle(call); err != nil {
		return "", fmt.Errorf("initiate call: %w", err)
	}
	r.log.Info("Call initiated", "call_id", call.ID, "chat_id", chatID, "caller_id", callerID, "callee_id", calleeID)

	r.dispatcher.Submit(event.CallInitiated{
		CallID:   call.ID,
		ChatID:   chatID,
		CallerID: callerID,
		CalleeID: calleeID,
		Offer:    offer,
	})
	return call.ID, nil
}

// Answer is only accepted from the callee. The answer goes back to the caller.
func (r *Relay) Answer(callID domain.CallID, userID domain.UserID, answer string) error {
	call, err := r.activeCall(callID)
	if err != nil {
		return err
	}
	if userID != call.CalleeID {
		return errors.ErrUserNotParticipant
	}
	if err = r.calls.AnswerCall(callID, answer); err != nil {
		return fmt.Errorf("answer call: %w", err)
	}
	r.log.Info("Call answered", "call_id", callID, "callee_id", userID)

	r.dispatcher.Submit(event.CallAnswered{
		CallID:   callID,
		ChatID:   call.ChatID,
		CallerID: call.CallerID,
		CalleeID: call.CalleeID,
		Answer:   answer,
	})
	return nil
}

// RelayIce forwards a candidate to the other party of the call.
func (r *Relay) RelayIce(callID domain.CallID, userID domain.UserID, candidate string) error {
	call, err := r.activeCall(callID)
	if err != nil {
		return err
	}
	peer, ok := call.Peer(userID)
	if !ok {
		return errors.ErrUserNotParticipant
	}
	if err = r.calls.AddIceCandidate(callID, candidate); err != nil {
		return fmt.Errorf("relay ice candidate: %w", err)
	}
	r.log.Debug("ICE candidate relayed", "call_id", callID, "from", userID, "to", peer)

	r.dispatcher.Submit(event.IceCandidate{
		CallID:    callID,
		From:      userID,
		To:        peer,
		Candidate: candidate,
	})
	return nil
}

// End closes the call and notifies the chat. The session itself stays until swept.
func (r *Relay) End(callID domain.CallID, userID domain.UserID, reason string) error {
	call, err := r.activeCall(callID)
	if err != nil {
		return err
	}
	if !call.IsParticipant(userID) {
		return errors.ErrUserNotParticipant
	}
	found, err := r.calls.EndCall(callID)
	if err != nil {
		return fmt.Errorf("end call: %w", err)
	}
	if !found {
		return errors.ErrChatNotFound
	}
	r.log.Info("Call ended", "call_id", callID, "ended_by", userID, "reason", reason)

	r.dispatcher.Submit(event.CallEnded{
		CallID:  callID,
		ChatID:  call.ChatID,
		EndedBy: userID,
		Reason:  reason,
	})
	return nil
}

func (r *Relay) ActiveCalls(userID domain.UserID) ([]domain.CallSession, error) {
	return r.calls.GetActiveCallsForUser(userID)
}

// Sweep drops every session older than the retention window, active or not.
func (r *Relay) Sweep() (int, error) {
	cutoff := r.now().Add(-r.retention)
	removed, err := r.calls.DeleteCallsBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep calls: %w", err)
	}
	return removed, nil
}

// activeCall treats an ended call like an unknown one.
func (r *Relay) activeCall(callID domain.CallID) (domain.CallSession, error) {
	call, found, err := r.calls.GetCall(callID)
	if err != nil {
		return domain.CallSession{}, fmt.Errorf("get call: %w", err)
	}
	if !found || !call.Active {
		return domain.CallSession{}, errors.ErrChatNotFound
	}
	return call, nil
}
