package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nikitapn/npchat/contract"
	"github.com/nikitapn/npchat/errors"
)

// Token is an opaque reference to a registered listener.
// The zero Token never resolves.
type Token struct {
	index      uint32
	generation uint32
}

func (t Token) String() string {
	return fmt.Sprintf("%d#%d", t.index, t.generation)
}

type slot struct {
	listener   contract.ChatListener
	generation uint32
	refs       int
}

// Predicate selects which listeners an invocation is applied to.
type Predicate func(token Token, listener contract.ChatListener) bool

// Everyone is the predicate accepting all listeners.
func Everyone(Token, contract.ChatListener) bool { return true }

// Invocation is one remote call applied to a listener.
type Invocation func(ctx context.Context, listener contract.ChatListener) error

// Result is the outcome of an invocation for a single recipient.
type Result struct {
	Token Token
	Err   error
}

// ListenerRegistry is a table of live listener handles.
// Registration hands out generation-checked tokens, so a token kept after
// unregistration can never reach the listener that reused its slot.
//
// ListenerRegistry is not safe for concurrent use: it is owned by the dispatcher's goroutine.
type ListenerRegistry struct {
	log     *slog.Logger
	timeout time.Duration
	slots   []slot
	free    []uint32
	live    int
}

func NewListenerRegistry(log *slog.Logger, timeout time.Duration) *ListenerRegistry {
	return &ListenerRegistry{log: log, timeout: timeout}
}

// Register adds a listener and returns the token used to reach or remove it.
// Registering the same listener twice yields two independent tokens.
func (r *ListenerRegistry) Register(listener contract.ChatListener) Token {
	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot{})
		index = uint32(len(r.slots) - 1)
	}
	s := &r.slots[index]
	s.generation++
	s.listener = listener
	s.refs = 1
	r.live++
	return Token{index: index, generation: s.generation}
}

// Unregister releases the token. Unknown or already released tokens are ignored.
func (r *ListenerRegistry) Unregister(token Token) bool {
	s, ok := r.lookup(token)
	if !ok {
		return false
	}
	s.refs--
	if s.refs == 0 {
		s.listener = nil
		r.free = append(r.free, token.index)
		r.live--
	}
	return true
}

// Resolve returns the listener behind a live token.
func (r *ListenerRegistry) Resolve(token Token) (contract.ChatListener, bool) {
	s, ok := r.lookup(token)
	if !ok {
		return nil, false
	}
	return s.listener, true
}

// Len returns the number of live handles.
func (r *ListenerRegistry) Len() int { return r.live }

func (r *ListenerRegistry) lookup(token Token) (*slot, bool) {
	if int(token.index) >= len(r.slots) {
		return nil, false
	}
	s := &r.slots[token.index]
	if s.generation != token.generation || s.refs == 0 {
		return nil, false
	}
	return s, true
}

// InvokeAll applies fn to every live listener accepted by predicate, at most once per token.
// Invocations run concurrently, each bounded by the registry timeout, and are awaited as a group.
// A failing or panicking listener only affects its own Result: it never aborts the delivery
// to the others and InvokeAll itself never fails.
func (r *ListenerRegistry) InvokeAll(ctx context.Context, tokens []Token, predicate Predicate, fn Invocation) []Result {
	type target struct {
		token    Token
		listener contract.ChatListener
	}

	seen := make(map[Token]struct{}, len(tokens))
	targets := make([]target, 0, len(tokens))
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		listener, ok := r.Resolve(token)
		if !ok {
			continue
		}
		if predicate != nil && !predicate(token, listener) {
			continue
		}
		targets = append(targets, target{token: token, listener: listener})
	}

	results := make([]Result, len(targets))
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func(i int, t target) {
			defer wg.Done()
			results[i] = Result{Token: t.token, Err: r.invoke(ctx, t.listener, fn)}
		}(i, t)
	}
	wg.Wait()

	for _, res := range results {
		if res.Err != nil {
			r.log.Warn("Listener invocation failed", "token", res.Token.String(), "error", res.Err)
		}
	}
	return results
}

// invoke bounds a single call with the registry timeout.
// A listener ignoring its context is abandoned once the deadline passes.
func (r *ListenerRegistry) invoke(ctx context.Context, listener contract.ChatListener, fn Invocation) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- call(ctx, listener, fn)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func call(ctx context.Context, listener contract.ChatListener, fn Invocation) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", errors.ErrListenerPanic, rec)
		}
	}()
	return fn(ctx, listener)
}
