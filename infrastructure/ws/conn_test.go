package ws

import (
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeConn feeds scripted frames to the handler and records what is written back.
// ReadMessage blocks until a frame is sent or the connection is closed.
type fakeConn struct {
	mu       sync.Mutex
	incoming chan []byte
	written  [][]byte
	failNext error
	closed   chan struct{}
	once     sync.Once
	closes   int
}

func newFakeConn() *fakeConn {
	return &fakeConn{incoming: make(chan []byte, 16), closed: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case frame := <-c.incoming:
		return 1, frame, nil
	case <-c.closed:
		return 0, nil, io.EOF
	}
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failNext; err != nil {
		c.failNext = nil
		return err
	}
	c.written = append(c.written, append([]byte(nil), data...))
	return nil
}

func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closes++
	c.mu.Unlock()
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *fakeConn) send(v any) {
	payload, _ := json.Marshal(v)
	c.incoming <- payload
}

func (c *fakeConn) frames() []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	var res []map[string]any
	for _, raw := range c.written {
		var frame map[string]any
		_ = json.Unmarshal(raw, &frame)
		res = append(res, frame)
	}
	return res
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}
