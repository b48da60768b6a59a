// Package disposable turns a registration into a handle that undoes it
// exactly once.
//
// The caller performs a registration (for example adding an event handler)
// and then calls Create with the owner, the callback and the action that
// removes it. The returned Handle is a small comparable value:
//
//	src.Add(h)
//	sub := p.Create(src, h, api.ReleaserFunc(func(o, c any) {
//	    o.(*Source).Remove(c.(*Handler))
//	}))
//	defer sub.Dispose()
//
// # Release protocol
//
// Each Handle captures the version of its backing record. Dispose performs
// a compare-and-swap of the record version from the captured value to the
// next one. Only the winner runs the unregister action; every other copy,
// every repeated call and every handle from an older incarnation of the
// record observes a version mismatch and returns without effect. The winner
// then returns the record to its Pool, or drops it for good on Retire.
//
// # Pooling
//
// Records are recycled through a lock-free free-list (package pool), so a
// steady subscribe/dispose churn does not allocate. The pool is unbounded
// and never shrinks. Default returns a lazily created process-wide pool;
// pass an explicit *Pool where isolation or separate metrics matter.
//
// Group collects handles for bulk disposal in registration order.
package disposable
