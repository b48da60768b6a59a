package dynamic

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/disposify/api"
	"github.com/momentics/disposify/disposable"
	"github.com/momentics/disposify/event"
)

type base struct {
	Closed event.Event[string, bool]
}

type widget struct {
	base
	Changed  event.Event[int, int]
	Resized  *event.Event[int, int]
	Detached *event.Event[int, int]
	Label    string
	hidden   event.Event[int, int]
}

type clock struct{}

var tick event.Event[int, int]

func init() {
	if err := RegisterStatic[clock]("Tick", &tick); err != nil {
		panic(err)
	}
}

func TestFor_InstanceEventScenario(t *testing.T) {
	p := disposable.NewPool()
	w := &widget{}
	d, err := For(w, WithPool(p))
	require.NoError(t, err)

	a := 100
	sub, err := d.Subscribe("Changed", func(v int) int { return v + 1 })
	require.NoError(t, err)
	a, _ = w.Changed.Invoke(a)
	sub.Dispose()
	assert.Equal(t, 101, a)

	sub, err = d.Subscribe("Changed", func(v int) int { return v - 1 })
	require.NoError(t, err)
	a, _ = w.Changed.Invoke(a)
	sub.Dispose()
	sub.Dispose()
	assert.Equal(t, 100, a)

	a, _ = w.Changed.Invoke(a)
	assert.Equal(t, 0, a)
	assert.Equal(t, uint64(1), p.Stats().Allocated)
}

func TestFor_PointerAndPromotedEvents(t *testing.T) {
	w := &widget{Resized: &event.Event[int, int]{}}
	d, err := For(w)
	require.NoError(t, err)

	sub, err := d.Subscribe("Resized", func(v int) int { return v })
	require.NoError(t, err)
	assert.Equal(t, 1, w.Resized.Len())
	sub.Dispose()
	assert.Zero(t, w.Resized.Len())

	sub, err = d.Subscribe("Closed", func(string) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, 1, w.Closed.Len())
	sub.Dispose()
	assert.Zero(t, w.Closed.Len())

	_, err = d.Subscribe("Detached", func(v int) int { return v })
	assert.True(t, errors.Is(err, api.ErrNotFound), "nil event pointer is not subscribable")
}

func TestFor_Errors(t *testing.T) {
	_, err := For(nil)
	assert.True(t, errors.Is(err, api.ErrInvalidArgument))
	_, err = For(widget{})
	assert.True(t, errors.Is(err, api.ErrInvalidArgument))
	_, err = For((*widget)(nil))
	assert.True(t, errors.Is(err, api.ErrInvalidArgument))

	w := &widget{}
	d, err := For(w)
	require.NoError(t, err)

	for _, name := range []string{"Missing", "Label", "hidden"} {
		_, err = d.Subscribe(name, func(v int) int { return v })
		assert.True(t, errors.Is(err, api.ErrNotFound), name)
	}

	h, err := d.Subscribe("Changed", 42)
	assert.True(t, errors.Is(err, api.ErrInvalidArgument))
	assert.True(t, h.IsZero())

	_, err = d.Subscribe("Changed", nil)
	assert.True(t, errors.Is(err, api.ErrInvalidArgument))

	_, err = d.Subscribe("Changed", func(string) int { return 0 })
	assert.True(t, errors.Is(err, api.ErrInvalidArgument), "wrong function type")
	assert.Zero(t, w.Changed.Len())
}

func TestForType_StaticEvent(t *testing.T) {
	p := disposable.NewPool()
	d := ForType[clock](WithPool(p))

	a := 100
	sub, err := d.Subscribe("Tick", func(v int) int { return v + 1 })
	require.NoError(t, err)
	a, _ = tick.Invoke(a)
	sub.Dispose()
	assert.Equal(t, 101, a)

	_, ok := tick.Invoke(a)
	assert.False(t, ok)

	_, err = ForType[widget]().Subscribe("Tick", func(v int) int { return v })
	assert.True(t, errors.Is(err, api.ErrNotFound))
}

func TestRegisterStatic_Errors(t *testing.T) {
	var e event.Event[int, int]
	assert.True(t, errors.Is(RegisterStatic[clock]("Tick", &e), api.ErrAlreadyExists))
	assert.True(t, errors.Is(RegisterStatic[clock]("", &e), api.ErrInvalidArgument))
	assert.True(t, errors.Is(RegisterStatic[clock]("Other", nil), api.ErrInvalidArgument))
}

func TestCapabilities_BuiltOncePerType(t *testing.T) {
	typ := reflect.TypeFor[widget]()
	first := capabilitiesOf(typ)
	second := capabilitiesOf(typ)
	assert.Equal(t, reflect.ValueOf(first).Pointer(), reflect.ValueOf(second).Pointer())
	assert.Contains(t, first, "Changed")
	assert.Contains(t, first, "Resized")
	assert.Contains(t, first, "Closed")
	assert.NotContains(t, first, "Label")
	assert.NotContains(t, first, "hidden")
}
