// File: disposable/record.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disposable

import (
	"sync/atomic"

	"github.com/momentics/disposify/api"
)

// record is the recyclable backing store of a Handle.
//
// owner, callback and releaser are written by Pool.Create while the record
// is exclusively held, and read by the single goroutine that wins the
// version CAS in release. version is the only field touched concurrently.
type record struct {
	version  atomic.Uint64
	owner    any
	callback any
	releaser api.Releaser
	pool     *Pool
}

// release runs the unregister action if v is still the live version.
// The CAS advances the version, so stale handles and losing racers fall
// through as no-ops. Reports whether this call performed the release.
func (r *record) release(v uint64, retire bool) bool {
	if !r.version.CompareAndSwap(v, v+1) {
		return false
	}

	owner, callback, releaser := r.owner, r.callback, r.releaser
	r.owner, r.callback, r.releaser = nil, nil, nil

	// A panicking releaser leaves the record out of circulation; its
	// version has already moved on so no handle can reach it again.
	releaser.Release(owner, callback)

	if retire {
		r.pool.retire(r)
	} else {
		r.pool.recycle(r)
	}
	return true
}

type nopReleaser struct{}

func (nopReleaser) Release(_, _ any) {}
