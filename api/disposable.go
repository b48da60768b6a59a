// File: api/disposable.go
// Author: momentics <momentics@gmail.com>
//
// Scoped-release contracts shared by handles and their collaborators.

package api

// Disposable is a scoped resource whose release is idempotent.
// Dispose may be called any number of times; only the first call has effect.
type Disposable interface {
	Dispose()
}

// Releaser performs the actual removal of a registration.
// owner is nil for static registrations.
type Releaser interface {
	Release(owner, callback any)
}

// ReleaserFunc adapts an ordinary function to Releaser.
type ReleaserFunc func(owner, callback any)

// Release calls f(owner, callback).
func (f ReleaserFunc) Release(owner, callback any) {
	f(owner, callback)
}
