package signaling_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/domain/event"
	"github.com/nikitapn/npchat/errors"
	"github.com/nikitapn/npchat/repositories"
	"github.com/nikitapn/npchat/runtime"
	"github.com/nikitapn/npchat/signaling"
	"github.com/stretchr/testify/require"
)

// callListener records call events and ignores chat traffic.
type callListener struct {
	mu     sync.Mutex
	events []event.Event
}

func (l *callListener) OnMessageReceived(context.Context, domain.Message) error { return nil }
func (l *callListener) OnMessageDelivered(context.Context, domain.ChatID, domain.MessageID) error {
	return nil
}
func (l *callListener) OnContactListUpdated(context.Context, domain.ContactList) error { return nil }

func (l *callListener) OnCallInitiated(_ context.Context, e event.CallInitiated) error {
	return l.record(e)
}
func (l *callListener) OnCallAnswered(_ context.Context, e event.CallAnswered) error {
	return l.record(e)
}
func (l *callListener) OnIceCandidate(_ context.Context, e event.IceCandidate) error {
	return l.record(e)
}
func (l *callListener) OnCallEnded(_ context.Context, e event.CallEnded) error { return l.record(e) }

func (l *callListener) record(e event.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *callListener) Events() []event.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]event.Event(nil), l.events...)
}

type environment struct {
	relay      *signaling.Relay
	dispatcher *runtime.Dispatcher
	calls      *repositories.CallRepository
	chatID     domain.ChatID
	now        *time.Time
}

func setup(t *testing.T) environment {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	chats, err := repositories.NewChatRepository(db, log)
	req.NoError(err)
	t.Cleanup(func() { _ = chats.Close() })
	calls := repositories.NewCallRepository(db, log)

	chatID, err := chats.CreateChat(5, 9)
	req.NoError(err)

	dispatcher := runtime.NewDispatcher(log, 100, 250*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = dispatcher.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	env := environment{dispatcher: dispatcher, calls: calls, chatID: chatID, now: &now}
	env.relay = signaling.NewRelay(log, calls, chats, dispatcher, 24*time.Hour,
		signaling.WithClock(func() time.Time { return *env.now }))
	return env
}

func (e environment) sync(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, e.dispatcher.Sync(ctx))
}

func TestRelay_Ice_Reaches_Only_The_Other_Party(t *testing.T) {
	req := require.New(t)
	env := setup(t)
	caller := &callListener{}
	callee := &callListener{}

	// Given 5 and 9 subscribed to chat 42
	env.dispatcher.SubscribeUser(5, caller)
	env.dispatcher.SubscribeUser(9, callee)
	env.dispatcher.AddParticipants(env.chatID, 5, 9)

	// And a call from 5 to 9
	callID, err := env.relay.Initiate(env.chatID, 5, 9, "offer")
	req.NoError(err)
	env.sync(t)
	req.Len(callee.Events(), 1)
	req.Empty(caller.Events())

	// When 5 sends the candidate "X"
	req.NoError(env.relay.RelayIce(callID, 5, "X"))
	env.sync(t)

	// Then 9 receives it exactly once and 5 nothing
	want := event.IceCandidate{CallID: callID, From: 5, To: 9, Candidate: "X"}
	req.Equal([]event.Event{callee.Events()[0], want}, callee.Events())
	req.Empty(caller.Events())
}

func TestRelay_Sessions_Are_Purged_After_Retention(t *testing.T) {
	req := require.New(t)
	env := setup(t)
	start := *env.now

	// Given a call created at T, still active
	callID, err := env.relay.Initiate(env.chatID, 5, 9, "offer")
	req.NoError(err)

	// At T+23h it is still there
	*env.now = start.Add(23 * time.Hour)
	removed, err := env.relay.Sweep()
	req.NoError(err)
	req.Zero(removed)
	_, found, err := env.calls.GetCall(callID)
	req.NoError(err)
	req.True(found)

	// At T+25h it is gone even though nobody ended it
	*env.now = start.Add(25 * time.Hour)
	removed, err = env.relay.Sweep()
	req.NoError(err)
	req.Equal(1, removed)
	_, found, err = env.calls.GetCall(callID)
	req.NoError(err)
	req.False(found)
}

func TestRelay_Concurrent_Initiates_Open_One_Call(t *testing.T) {
	req := require.New(t)
	env := setup(t)

	for round := 0; round < 5; round++ {
		// When both parties ring each other at the same moment
		var wg sync.WaitGroup
		var mu sync.Mutex
		var opened []domain.CallID
		var refused []error
		for i := 0; i < 16; i++ {
			caller, callee := domain.UserID(5), domain.UserID(9)
			if i%2 == 1 {
				caller, callee = callee, caller
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				callID, err := env.relay.Initiate(env.chatID, caller, callee, "offer")
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					refused = append(refused, err)
					return
				}
				opened = append(opened, callID)
			}()
		}
		wg.Wait()

		// Then exactly one session is active on the chat
		req.Len(opened, 1, "round %d", round)
		for _, err := range refused {
			req.ErrorIs(err, errors.ErrCallInProgress)
		}
		active, err := env.calls.GetActiveCallsForChat(env.chatID)
		req.NoError(err)
		req.Len(active, 1, "round %d", round)
		req.Equal(opened[0], active[0].ID)

		// And ending it frees the chat for the next round
		req.NoError(env.relay.End(opened[0], 5, "hangup"))
	}
}
