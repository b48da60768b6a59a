// File: disposable/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disposable

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/momentics/disposify/api"
	"github.com/momentics/disposify/pool"
)

// Pool hands out handles backed by recycled records.
// A Pool is safe for concurrent use and is never closed; records it owns
// are inert once released and live for the process lifetime.
type Pool struct {
	records *pool.Tiered[*record]
	log     *zap.Logger

	recycled atomic.Uint64
	retired  atomic.Uint64
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger used for allocation and retirement events.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// WithRingCapacity sets the bounded tier of the record free-list.
func WithRingCapacity(n int) Option {
	return func(p *Pool) {
		p.records = pool.NewTiered(n, p.newRecord)
	}
}

// NewPool creates an empty record pool.
func NewPool(opts ...Option) *Pool {
	p := &Pool{log: zap.NewNop()}
	p.records = pool.NewTiered(pool.DefaultRingCapacity, p.newRecord)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create records (owner, callback, unregister) and returns a handle that
// will call unregister.Release(owner, callback) exactly once when disposed.
// Create does not register anything; the caller subscribes first.
// A nil unregister makes disposal a pure bookkeeping operation.
func (p *Pool) Create(owner, callback any, unregister api.Releaser) Handle {
	if unregister == nil {
		unregister = nopReleaser{}
	}
	r := p.acquire()
	r.owner = owner
	r.callback = callback
	r.releaser = unregister
	return Handle{rec: r, version: r.version.Load()}
}

// CreateFunc is Create with a plain function as the unregister action.
func (p *Pool) CreateFunc(owner, callback any, unregister func(owner, callback any)) Handle {
	if unregister == nil {
		return p.Create(owner, callback, nil)
	}
	return p.Create(owner, callback, api.ReleaserFunc(unregister))
}

// Stats returns approximate pool counters.
func (p *Pool) Stats() api.PoolStats {
	ts := p.records.Stats()
	reused := ts.RingHits + ts.SpillHits
	recycled := p.recycled.Load()
	retired := p.retired.Load()
	return api.PoolStats{
		Allocated: ts.Allocs,
		Reused:    reused,
		Recycled:  recycled,
		Retired:   retired,
		Idle:      p.records.Idle(),
		InUse:     int64(ts.Allocs+reused) - int64(recycled+retired),
	}
}

func (p *Pool) newRecord() *record {
	r := &record{pool: p}
	if ce := p.log.Check(zap.DebugLevel, "disposable record allocated"); ce != nil {
		ce.Write(zap.Uint64("allocated", p.records.Stats().Allocs))
	}
	return r
}

func (p *Pool) acquire() *record {
	return p.records.Get()
}

func (p *Pool) recycle(r *record) {
	p.recycled.Add(1)
	p.records.Put(r)
}

func (p *Pool) retire(r *record) {
	p.retired.Add(1)
	if ce := p.log.Check(zap.DebugLevel, "disposable record retired"); ce != nil {
		ce.Write(zap.Uint64("version", r.version.Load()), zap.Uint64("retired", p.retired.Load()))
	}
}
