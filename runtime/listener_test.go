package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/domain/event"
)

// RecordingListener keeps every notification it receives.
// failWith makes every callback fail, block makes them wait for ctx.
type RecordingListener struct {
	mu        sync.Mutex
	name      string
	failWith  error
	panicWith any
	block     bool
	received  []domain.Message
	delivered []domain.MessageID
	contacts  []domain.ContactList
	events    []event.Event
}

func NewRecordingListener(name string) *RecordingListener {
	return &RecordingListener{name: name}
}

func (l *RecordingListener) hook(ctx context.Context) error {
	if l.panicWith != nil {
		panic(l.panicWith)
	}
	if l.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return l.failWith
}

func (l *RecordingListener) OnMessageReceived(ctx context.Context, message domain.Message) error {
	if err := l.hook(ctx); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.received = append(l.received, message)
	return nil
}

func (l *RecordingListener) OnMessageDelivered(ctx context.Context, _ domain.ChatID, messageID domain.MessageID) error {
	if err := l.hook(ctx); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.delivered = append(l.delivered, messageID)
	return nil
}

func (l *RecordingListener) OnContactListUpdated(ctx context.Context, contacts domain.ContactList) error {
	if err := l.hook(ctx); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.contacts = append(l.contacts, contacts)
	return nil
}

func (l *RecordingListener) OnCallInitiated(ctx context.Context, e event.CallInitiated) error {
	return l.record(ctx, e)
}

func (l *RecordingListener) OnCallAnswered(ctx context.Context, e event.CallAnswered) error {
	return l.record(ctx, e)
}

func (l *RecordingListener) OnIceCandidate(ctx context.Context, e event.IceCandidate) error {
	return l.record(ctx, e)
}

func (l *RecordingListener) OnCallEnded(ctx context.Context, e event.CallEnded) error {
	return l.record(ctx, e)
}

func (l *RecordingListener) record(ctx context.Context, e event.Event) error {
	if err := l.hook(ctx); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *RecordingListener) Received() []domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Message(nil), l.received...)
}

func (l *RecordingListener) Delivered() []domain.MessageID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.MessageID(nil), l.delivered...)
}

func (l *RecordingListener) Contacts() []domain.ContactList {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.ContactList(nil), l.contacts...)
}

func (l *RecordingListener) Events() []event.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]event.Event(nil), l.events...)
}

// startDispatcher runs a dispatcher until the test ends.
func startDispatcher(ctx context.Context, d *Dispatcher) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = d.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func syncDispatcher(d *Dispatcher) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return d.Sync(ctx)
}
