// Package pool
// Author: momentics <momentics@gmail.com>
//
// Lock-free object recycling for disposify.
// Tiered combines a bounded sequence-numbered ring (core/concurrency) with an
// unbounded lock-free spill stack, so Put never blocks and never drops.
// See tiered.go for implementation details.
package pool
