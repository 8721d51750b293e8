package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/nikitapn/npchat/contract"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/domain/event"
)

var (
	_ contract.Worker      = (*Dispatcher)(nil)
	_ contract.IDispatcher = (*Dispatcher)(nil)
)

// Dispatcher owns the directory and the listener registry and mutates them from a single goroutine.
// Callers post work onto its mailbox and return at once, the order of posting is the order of execution.
type Dispatcher struct {
	log        *slog.Logger
	mailbox    *mailbox
	directory  *Directory
	registry   *ListenerRegistry
	maxBacklog int
}

func NewDispatcher(log *slog.Logger, maxBacklog int, listenerTimeout time.Duration) *Dispatcher {
	registry := NewListenerRegistry(log, listenerTimeout)
	return &Dispatcher{
		log:        log,
		mailbox:    newMailbox(),
		directory:  NewDirectory(registry),
		registry:   registry,
		maxBacklog: maxBacklog,
	}
}

// Run drains the mailbox until ctx is done.
// Tasks still queued when Run returns are kept and picked up by the next Run.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.log.Info("Starting dispatcher", "backlog", d.mailbox.len())
	for {
		for {
			if ctx.Err() != nil {
				d.log.Info("Context done, stopping dispatcher", "backlog", d.mailbox.len())
				return nil
			}
			t, ok := d.mailbox.pop()
			if !ok {
				break
			}
			t.run(ctx)
		}
		select {
		case <-ctx.Done():
			d.log.Info("Context done, stopping dispatcher", "backlog", d.mailbox.len())
			return nil
		case <-d.mailbox.notify:
		}
	}
}

// Submit enqueues an event for fan-out.
// Events are dropped with a warning when the backlog is full, the caller is never blocked.
func (d *Dispatcher) Submit(e event.Event) {
	accepted := d.mailbox.push(task{
		droppable: true,
		run:       func(ctx context.Context) { d.process(ctx, e) },
	}, d.maxBacklog)
	if !accepted {
		d.log.Warn("Dispatcher backlog full, dropping event", "kind", e.Kind(), "max_backlog", d.maxBacklog)
	}
}

func (d *Dispatcher) SubscribeUser(userID domain.UserID, listener contract.ChatListener) {
	d.post(func(context.Context) {
		token := d.directory.SubscribeUser(userID, listener)
		d.log.Debug("User subscribed", "user_id", userID, "token", token.String())
	})
}

func (d *Dispatcher) UnsubscribeUser(userID domain.UserID, listener contract.ChatListener) {
	d.post(func(context.Context) {
		if d.directory.UnsubscribeUser(userID, listener) {
			d.log.Debug("User unsubscribed", "user_id", userID)
		}
	})
}

func (d *Dispatcher) AddParticipants(chatID domain.ChatID, userIDs ...domain.UserID) {
	d.post(func(context.Context) {
		d.directory.AddParticipants(chatID, userIDs...)
	})
}

func (d *Dispatcher) RemoveParticipant(chatID domain.ChatID, userID domain.UserID) {
	d.post(func(context.Context) {
		d.directory.RemoveParticipant(chatID, userID)
	})
}

func (d *Dispatcher) RemoveChat(chatID domain.ChatID) {
	d.post(func(context.Context) {
		d.directory.RemoveChat(chatID)
	})
}

// Sync blocks until every task posted before it has been executed.
func (d *Dispatcher) Sync(ctx context.Context) error {
	done := make(chan struct{})
	d.post(func(context.Context) { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Backlog returns the number of queued tasks.
func (d *Dispatcher) Backlog() int {
	return d.mailbox.len()
}

func (d *Dispatcher) post(run func(ctx context.Context)) {
	d.mailbox.push(task{run: run}, d.maxBacklog)
}

func (d *Dispatcher) process(ctx context.Context, e event.Event) {
	tokens, invocation, ok := d.route(e)
	if !ok {
		d.log.Warn("Unknown event, dropping", "kind", e.Kind())
		return
	}
	if len(tokens) == 0 {
		d.log.Debug("No recipient for event", "kind", e.Kind())
		return
	}

	results := d.registry.InvokeAll(ctx, tokens, Everyone, invocation)
	if ctx.Err() != nil {
		// Shutting down, the failures are ours, not the listeners'.
		return
	}
	for _, res := range results {
		if res.Err != nil && d.directory.Evict(res.Token) {
			d.log.Info("Listener evicted after failed delivery", "token", res.Token.String(), "kind", e.Kind())
		}
	}
}

// route resolves the recipients of an event and the listener method reaching them.
func (d *Dispatcher) route(e event.Event) ([]Token, Invocation, bool) {
	switch evt := e.(type) {
	case event.MessageReceived:
		return d.directory.ResolveChat(evt.Message.ChatID, evt.Message.SenderID),
			func(ctx context.Context, l contract.ChatListener) error {
				return l.OnMessageReceived(ctx, evt.Message)
			}, true
	case event.MessageDelivered:
		return d.directory.ResolveUser(evt.SenderID),
			func(ctx context.Context, l contract.ChatListener) error {
				return l.OnMessageDelivered(ctx, evt.ChatID, evt.MessageID)
			}, true
	case event.ContactListUpdated:
		return d.directory.ResolveUser(evt.UserID),
			func(ctx context.Context, l contract.ChatListener) error {
				return l.OnContactListUpdated(ctx, evt.Contacts)
			}, true
	case event.CallInitiated:
		return d.directory.ResolveChat(evt.ChatID, evt.CallerID),
			func(ctx context.Context, l contract.ChatListener) error {
				return l.OnCallInitiated(ctx, evt)
			}, true
	case event.CallAnswered:
		return d.directory.ResolveUser(evt.CallerID),
			func(ctx context.Context, l contract.ChatListener) error {
				return l.OnCallAnswered(ctx, evt)
			}, true
	case event.IceCandidate:
		return d.directory.ResolveUser(evt.To),
			func(ctx context.Context, l contract.ChatListener) error {
				return l.OnIceCandidate(ctx, evt)
			}, true
	case event.CallEnded:
		return d.directory.ResolveChat(evt.ChatID, evt.EndedBy),
			func(ctx context.Context, l contract.ChatListener) error {
				return l.OnCallEnded(ctx, evt)
			}, true
	default:
		return nil, nil, false
	}
}
