// File: disposable/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disposable

import "github.com/momentics/disposify/api"

// Handle is a copyable capability to release one registration.
//
// Handles compare equal iff they point at the same record and captured the
// same version, so they are safe map keys: a handle from an earlier
// incarnation of a recycled record never equals a newer one.
// The zero Handle is valid and every operation on it is a no-op.
type Handle struct {
	rec     *record
	version uint64
}

// Dispose runs the unregister action if no copy of h has done so yet.
// Safe to call repeatedly and from many goroutines at once.
func (h Handle) Dispose() {
	h.TryDispose()
}

// TryDispose is Dispose reporting whether this call released the registration.
func (h Handle) TryDispose() bool {
	if h.rec == nil {
		return false
	}
	return h.rec.release(h.version, false)
}

// Retire releases the registration like Dispose but removes the backing
// record from circulation for good instead of returning it to the pool.
// Reports whether this call released the registration.
func (h Handle) Retire() bool {
	if h.rec == nil {
		return false
	}
	return h.rec.release(h.version, true)
}

// Active reports whether the registration behind h has not been released.
func (h Handle) Active() bool {
	return h.rec != nil && h.rec.version.Load() == h.version
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.rec == nil
}

var _ api.Disposable = Handle{}
