// File: dynamic/dynamic.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package dynamic

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/momentics/disposify/api"
	"github.com/momentics/disposify/disposable"
	"github.com/momentics/disposify/event"
)

var registrarType = reflect.TypeFor[event.Registrar]()

// capabilities maps an event name to the field path of a Registrar inside
// an owner struct. Built once per owner type.
type capabilities map[string]capability

type capability struct {
	index []int
	ptr   bool // field holds a pointer that already implements Registrar
}

var tables sync.Map // reflect.Type -> capabilities

func capabilitiesOf(t reflect.Type) capabilities {
	if c, ok := tables.Load(t); ok {
		return c.(capabilities)
	}
	caps := capabilities{}
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		switch {
		case f.Type.Kind() == reflect.Pointer && f.Type.Implements(registrarType):
			caps[f.Name] = capability{index: f.Index, ptr: true}
		case reflect.PointerTo(f.Type).Implements(registrarType):
			caps[f.Name] = capability{index: f.Index}
		}
	}
	actual, _ := tables.LoadOrStore(t, caps)
	return actual.(capabilities)
}

var (
	staticsMu sync.RWMutex
	statics   = map[reflect.Type]map[string]event.Registrar{}
)

// RegisterStatic makes a package-level event reachable by name through
// ForType[T]. Registering the same name twice for T fails.
func RegisterStatic[T any](name string, r event.Registrar) error {
	if r == nil || name == "" {
		return fmt.Errorf("register static event %q: %w", name, api.ErrInvalidArgument)
	}
	t := reflect.TypeFor[T]()
	staticsMu.Lock()
	defer staticsMu.Unlock()
	byName := statics[t]
	if byName == nil {
		byName = map[string]event.Registrar{}
		statics[t] = byName
	}
	if _, dup := byName[name]; dup {
		return fmt.Errorf("register static event %s.%s: %w", t, name, api.ErrAlreadyExists)
	}
	byName[name] = r
	return nil
}

// Disposifier subscribes to events looked up by name at run time.
// It is the slow path for owners without a generated accessor.
type Disposifier struct {
	pool   *disposable.Pool
	owner  any
	typ    reflect.Type
	lookup func(name string) (event.Registrar, bool)
}

// Option configures a Disposifier.
type Option func(*Disposifier)

// WithPool selects the record pool; the default pool is used otherwise.
func WithPool(p *disposable.Pool) Option {
	return func(d *Disposifier) {
		if p != nil {
			d.pool = p
		}
	}
}

// For resolves events declared as exported event.Event fields of the
// struct owner points to. owner must be a non-nil struct pointer.
func For(owner any, opts ...Option) (*Disposifier, error) {
	v := reflect.ValueOf(owner)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "owner must be a non-nil struct pointer").
			WithContext("owner", fmt.Sprintf("%T", owner))
	}
	elem := v.Elem()
	caps := capabilitiesOf(elem.Type())
	d := newDisposifier(owner, elem.Type(), func(name string) (event.Registrar, bool) {
		c, ok := caps[name]
		if !ok {
			return nil, false
		}
		f, err := elem.FieldByIndexErr(c.index)
		if err != nil {
			return nil, false
		}
		if c.ptr {
			if f.IsNil() {
				return nil, false
			}
			return f.Interface().(event.Registrar), true
		}
		return f.Addr().Interface().(event.Registrar), true
	}, opts)
	return d, nil
}

// ForType resolves static events registered for T with RegisterStatic.
// Subscriptions made through it carry no owner.
func ForType[T any](opts ...Option) *Disposifier {
	t := reflect.TypeFor[T]()
	return newDisposifier(nil, t, func(name string) (event.Registrar, bool) {
		staticsMu.RLock()
		defer staticsMu.RUnlock()
		r, ok := statics[t][name]
		return r, ok
	}, opts)
}

func newDisposifier(owner any, t reflect.Type, lookup func(string) (event.Registrar, bool), opts []Option) *Disposifier {
	d := &Disposifier{owner: owner, typ: t, lookup: lookup}
	for _, opt := range opts {
		opt(d)
	}
	if d.pool == nil {
		d.pool = disposable.Default()
	}
	return d
}

// Subscribe adds fn to the event called name and returns a handle that
// removes it. fn must be a function of the event's exact type.
func (d *Disposifier) Subscribe(name string, fn any) (disposable.Handle, error) {
	if fn == nil || reflect.TypeOf(fn).Kind() != reflect.Func {
		return disposable.Handle{}, api.NewError(api.ErrCodeInvalidArgument, "argument must be a function").
			WithContext("got", fmt.Sprintf("%T", fn))
	}
	r, ok := d.lookup(name)
	if !ok {
		return disposable.Handle{}, api.NewError(api.ErrCodeNotFound, "no such event").
			WithContext("type", d.typ.String()).
			WithContext("event", name)
	}
	token, err := r.AddAny(fn)
	if err != nil {
		return disposable.Handle{}, fmt.Errorf("subscribe %s.%s: %w", d.typ, name, err)
	}
	return d.pool.Create(d.owner, token, remover{r}), nil
}

// remover removes the handler token from the event it was added to.
type remover struct{ r event.Registrar }

func (rm remover) Release(_, token any) {
	rm.r.RemoveAny(token)
}
