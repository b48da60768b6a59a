// File: disposable/group.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disposable

import (
	"sync"

	"github.com/eapache/queue"
)

// Group tracks handles and disposes them together in the order they were
// added. It is safe for concurrent use and reusable after Dispose.
type Group struct {
	mu      sync.Mutex
	handles *queue.Queue
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{handles: queue.New()}
}

// Add appends h. Zero handles are ignored.
func (g *Group) Add(h Handle) {
	if h.IsZero() {
		return
	}
	g.mu.Lock()
	if g.handles == nil {
		g.handles = queue.New()
	}
	g.handles.Add(h)
	g.mu.Unlock()
}

// Len returns the number of tracked handles.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.handles == nil {
		return 0
	}
	return g.handles.Length()
}

// Dispose disposes every tracked handle, oldest first, and empties the
// group. Handles already disposed elsewhere are skipped as usual.
// Returns how many registrations this call released.
func (g *Group) Dispose() int {
	g.mu.Lock()
	pending := g.handles
	g.handles = queue.New()
	g.mu.Unlock()

	if pending == nil {
		return 0
	}
	released := 0
	for pending.Length() > 0 {
		if pending.Remove().(Handle).TryDispose() {
			released++
		}
	}
	return released
}
