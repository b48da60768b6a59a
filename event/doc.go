// Package event
// Author: momentics <momentics@gmail.com>
//
// Multicast events whose subscriptions come back as disposable handles.
//
//	var Changed event.Event[int, int]
//
//	sub := Changed.Subscribe(func(v int) int { return v + 1 })
//	defer sub.Dispose()
//
// An Event embedded in a struct is an instance event; a package-level Event
// is a static one and subscribes with a nil owner of its own.
// Registrar exposes the untyped surface used by package dynamic.
package event
