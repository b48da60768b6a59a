// File: event/event.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package event

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/momentics/disposify/api"
	"github.com/momentics/disposify/disposable"
)

// Handler is a registered callback. Its pointer identity is what Remove
// matches on, since Go functions are not comparable.
type Handler[A, R any] struct {
	fn func(A) R
}

// NewHandler wraps fn for registration.
func NewHandler[A, R any](fn func(A) R) *Handler[A, R] {
	return &Handler[A, R]{fn: fn}
}

// Event is a multicast event with a result. The zero value is ready to use.
//
// Handlers run in registration order; Invoke returns the result of the last
// one. Add and Remove replace the handler slice, so a concurrent Invoke
// keeps iterating its own snapshot.
type Event[A, R any] struct {
	mu       sync.RWMutex
	handlers []*Handler[A, R]
}

// Add appends h. The same handler may be added more than once.
func (e *Event[A, R]) Add(h *Handler[A, R]) {
	if h == nil {
		return
	}
	e.mu.Lock()
	next := make([]*Handler[A, R], len(e.handlers)+1)
	copy(next, e.handlers)
	next[len(e.handlers)] = h
	e.handlers = next
	e.mu.Unlock()
}

// Remove drops the most recently added occurrence of h.
// Removing a handler that is not registered does nothing.
func (e *Event[A, R]) Remove(h *Handler[A, R]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.handlers) - 1; i >= 0; i-- {
		if e.handlers[i] != h {
			continue
		}
		next := make([]*Handler[A, R], 0, len(e.handlers)-1)
		next = append(next, e.handlers[:i]...)
		next = append(next, e.handlers[i+1:]...)
		e.handlers = next
		return
	}
}

// Invoke calls every handler with a. ok is false when no handler is
// registered, in which case res is the zero R.
func (e *Event[A, R]) Invoke(a A) (res R, ok bool) {
	e.mu.RLock()
	hs := e.handlers
	e.mu.RUnlock()
	for _, h := range hs {
		res = h.fn(a)
	}
	return res, len(hs) > 0
}

// Len returns the number of registered handlers.
func (e *Event[A, R]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}

// SubscribeIn adds fn and returns a handle that removes it again.
func (e *Event[A, R]) SubscribeIn(p *disposable.Pool, fn func(A) R) disposable.Handle {
	h := NewHandler(fn)
	e.Add(h)
	return disposable.CreateIn(p, e, h, (*Event[A, R]).Remove)
}

// Subscribe is SubscribeIn on the default pool.
func (e *Event[A, R]) Subscribe(fn func(A) R) disposable.Handle {
	return e.SubscribeIn(disposable.Default(), fn)
}

// AddAny implements Registrar for callers that only hold an untyped
// callback. fn must be a func(A) R.
func (e *Event[A, R]) AddAny(fn any) (any, error) {
	typed, ok := fn.(func(A) R)
	if !ok {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "callback has the wrong type").
			WithContext("want", reflect.TypeFor[func(A) R]().String()).
			WithContext("got", fmt.Sprintf("%T", fn))
	}
	h := NewHandler(typed)
	e.Add(h)
	return h, nil
}

// RemoveAny implements Registrar.
func (e *Event[A, R]) RemoveAny(handler any) {
	if h, ok := handler.(*Handler[A, R]); ok {
		e.Remove(h)
	}
}

// Registrar is the untyped registration surface of an event.
// AddAny returns the token RemoveAny later expects.
type Registrar interface {
	AddAny(fn any) (any, error)
	RemoveAny(handler any)
}

var _ Registrar = (*Event[int, int])(nil)
