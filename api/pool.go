// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract pooling APIs for recyclable records.

package api

// ObjectPool provides generic pooling of Go objects allocated transiently.
type ObjectPool[T any] interface {
	// Get returns an available instance from pool, allocating on miss.
	Get() T

	// Put returns an instance for reuse.
	Put(obj T)
}

// PoolStats is a point-in-time view of a record pool.
// Counters are read independently, so derived values are approximate
// while the pool is under concurrent use.
type PoolStats struct {
	Allocated uint64 // records ever allocated
	Reused    uint64 // acquisitions served from the pool
	Recycled  uint64 // releases that returned the record to the pool
	Retired   uint64 // releases that dropped the record permanently
	Idle      int64  // records currently waiting in the pool
	InUse     int64  // records backing a live registration
}
