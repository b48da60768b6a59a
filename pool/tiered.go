// File: pool/tiered.go
// Package pool implements an unbounded lock-free free-list for recyclable records.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"

	"golang.design/x/lockfree"

	"github.com/momentics/disposify/api"
	"github.com/momentics/disposify/core/concurrency"
)

// DefaultRingCapacity is the size of the bounded tier when none is given.
const DefaultRingCapacity = 1024

// Tiered is an unbounded, lock-free object pool.
//
// Released objects go to a bounded ring first; once the ring is full they
// spill onto an unbounded lock-free stack. Get drains the ring, then the
// spill stack, and only then allocates. Nothing is ever evicted: objects
// stay pooled for the process lifetime.
type Tiered[T any] struct {
	ring  *concurrency.LockFreeQueue[T]
	spill *lockfree.Stack
	newFn func() T

	allocs    atomic.Uint64
	ringHits  atomic.Uint64
	spillHits atomic.Uint64
	puts      atomic.Uint64
	spills    atomic.Uint64
}

// TieredStats reports counters of a Tiered pool.
type TieredStats struct {
	Allocs    uint64 // Get calls that allocated
	RingHits  uint64 // Get calls served by the ring
	SpillHits uint64 // Get calls served by the spill stack
	Puts      uint64 // all Put calls
	Spills    uint64 // Put calls that overflowed the ring
}

// NewTiered creates a pool whose ring holds ringCapacity objects
// (rounded up to a power of two). newFn must not return a shared value.
func NewTiered[T any](ringCapacity int, newFn func() T) *Tiered[T] {
	if ringCapacity <= 0 {
		ringCapacity = DefaultRingCapacity
	}
	return &Tiered[T]{
		ring:  concurrency.NewLockFreeQueue[T](ringCapacity),
		spill: lockfree.NewStack(),
		newFn: newFn,
	}
}

// Get pops a pooled object or allocates a fresh one. Never blocks.
func (p *Tiered[T]) Get() T {
	if v, ok := p.ring.Dequeue(); ok {
		p.ringHits.Add(1)
		return v
	}
	if v := p.spill.Pop(); v != nil {
		p.spillHits.Add(1)
		return v.(T)
	}
	p.allocs.Add(1)
	return p.newFn()
}

// Put makes obj available for reuse. Never blocks.
// A nil interface value cannot be told apart from an empty spill stack,
// so T should be a pointer or struct type.
func (p *Tiered[T]) Put(obj T) {
	p.puts.Add(1)
	if p.ring.Enqueue(obj) {
		return
	}
	p.spills.Add(1)
	p.spill.Push(obj)
}

// Idle returns the approximate number of pooled objects.
func (p *Tiered[T]) Idle() int64 {
	gets := p.ringHits.Load() + p.spillHits.Load()
	return int64(p.puts.Load()) - int64(gets)
}

// Stats returns a snapshot of pool counters.
func (p *Tiered[T]) Stats() TieredStats {
	return TieredStats{
		Allocs:    p.allocs.Load(),
		RingHits:  p.ringHits.Load(),
		SpillHits: p.spillHits.Load(),
		Puts:      p.puts.Load(),
		Spills:    p.spills.Load(),
	}
}

var _ api.ObjectPool[int] = (*Tiered[int])(nil)
