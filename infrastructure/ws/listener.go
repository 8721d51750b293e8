package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/nikitapn/npchat/contract"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/domain/event"
	"github.com/nikitapn/npchat/errors"
)

// Conn is the part of a websocket connection used by the transport.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Listener pushes dispatcher notifications to one websocket connection.
// Responses and pushes share the connection, writes are serialized.
type Listener struct {
	mu           sync.Mutex
	log          *slog.Logger
	conn         Conn
	id           string
	writeTimeout time.Duration
	closed       bool
	connClosed   bool
}

var _ contract.ChatListener = (*Listener)(nil)

func NewListener(log *slog.Logger, conn Conn, id string, writeTimeout time.Duration) *Listener {
	return &Listener{log: log, conn: conn, id: id, writeTimeout: writeTimeout}
}

func (l *Listener) OnMessageReceived(ctx context.Context, message domain.Message) error {
	return l.push(ctx, event.MessageReceivedKind, toMessageResponse(message))
}

func (l *Listener) OnMessageDelivered(ctx context.Context, chatID domain.ChatID, messageID domain.MessageID) error {
	return l.push(ctx, event.MessageDeliveredKind, DeliveredResponse{
		ChatID:    uint32(chatID),
		MessageID: uint32(messageID),
	})
}

func (l *Listener) OnContactListUpdated(ctx context.Context, contacts domain.ContactList) error {
	return l.push(ctx, event.ContactListUpdatedKind, toContactsResponse(contacts))
}

func (l *Listener) OnCallInitiated(ctx context.Context, e event.CallInitiated) error {
	return l.push(ctx, e.Kind(), CallResponse{
		CallID:   string(e.CallID),
		ChatID:   uint32(e.ChatID),
		CallerID: uint32(e.CallerID),
		CalleeID: uint32(e.CalleeID),
		Offer:    e.Offer,
	})
}

func (l *Listener) OnCallAnswered(ctx context.Context, e event.CallAnswered) error {
	return l.push(ctx, e.Kind(), CallResponse{
		CallID:   string(e.CallID),
		ChatID:   uint32(e.ChatID),
		CallerID: uint32(e.CallerID),
		CalleeID: uint32(e.CalleeID),
		Answer:   e.Answer,
	})
}

func (l *Listener) OnIceCandidate(ctx context.Context, e event.IceCandidate) error {
	return l.push(ctx, e.Kind(), CallResponse{
		CallID:    string(e.CallID),
		From:      uint32(e.From),
		To:        uint32(e.To),
		Candidate: e.Candidate,
	})
}

func (l *Listener) OnCallEnded(ctx context.Context, e event.CallEnded) error {
	return l.push(ctx, e.Kind(), CallResponse{
		CallID:  string(e.CallID),
		ChatID:  uint32(e.ChatID),
		EndedBy: uint32(e.EndedBy),
		Reason:  e.Reason,
	})
}

func (l *Listener) push(ctx context.Context, kind event.Kind, data any) error {
	return l.write(ctx, Push{Event: kind, Data: data})
}

// reply answers a request. It is called from the reading goroutine only.
func (l *Listener) reply(response Response) error {
	return l.write(context.Background(), response)
}

func (l *Listener) write(ctx context.Context, frame any) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return errors.ErrListenerClosed
	}

	deadline := time.Now().Add(l.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err = l.conn.SetWriteDeadline(deadline); err == nil {
		err = l.conn.WriteMessage(websocket.TextMessage, payload)
	}
	if err != nil {
		// A failed write leaves the stream in an unknown state. Closing the
		// socket unblocks the reader so the client sees the drop and reconnects.
		l.log.Debug("Websocket write failed", "connection_id", l.id, "error", err)
		if closeErr := l.closeLocked(); closeErr != nil {
			l.log.Debug("Websocket close failed", "connection_id", l.id, "error", closeErr)
		}
		return fmt.Errorf("%w: %v", errors.ErrListenerClosed, err)
	}
	return nil
}

// Close stops every later write then closes the connection.
func (l *Listener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeLocked()
}

// closeLocked closes the socket at most once. l.mu must be held.
func (l *Listener) closeLocked() error {
	l.closed = true
	if l.connClosed {
		return nil
	}
	l.connClosed = true
	return l.conn.Close()
}
