// Package dynamic is the reflection fallback for subscribing to events by
// name when no typed accessor exists.
//
// Instance events are exported event.Event fields (or pointers to them) of
// the owner struct; the name-to-field table is built once per owner type.
// Static events are registered explicitly with RegisterStatic. Passing a
// callback that is not a function of the event's type fails with
// api.ErrInvalidArgument before anything is registered; an unknown name
// fails with api.ErrNotFound.
//
// Prefer event.Event.SubscribeIn: it is statically typed and avoids the
// reflection and allocation costs paid here.
package dynamic
