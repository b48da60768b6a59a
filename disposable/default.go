package disposable

import (
	"sync"

	"github.com/momentics/disposify/api"
)

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// Default returns the process-wide pool, creating it on first use.
// Components that can take a *Pool explicitly should do so instead.
func Default() *Pool {
	defaultOnce.Do(func() {
		defaultPool = NewPool()
	})
	return defaultPool
}

// Create registers unregister on the default pool with statically typed
// owner and callback. O may be a nil pointer for static registrations.
func Create[O, C any](owner O, callback C, unregister func(O, C)) Handle {
	return CreateIn(Default(), owner, callback, unregister)
}

// CreateIn is Create on an explicit pool.
func CreateIn[O, C any](p *Pool, owner O, callback C, unregister func(O, C)) Handle {
	var rel api.Releaser
	if unregister != nil {
		rel = typedReleaser[O, C](unregister)
	}
	return p.Create(owner, callback, rel)
}

// typedReleaser restores the static types erased by the record.
type typedReleaser[O, C any] func(O, C)

func (f typedReleaser[O, C]) Release(owner, callback any) {
	o, _ := owner.(O)
	c, _ := callback.(C)
	f(o, c)
}
