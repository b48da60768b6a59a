package pool_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/disposify/pool"
)

type item struct{ id int }

func newCounter() (func() *item, *int) {
	n := 0
	return func() *item {
		n++
		return &item{id: n}
	}, &n
}

func TestTiered_AllocatesOnMissAndReuses(t *testing.T) {
	newFn, allocated := newCounter()
	p := pool.NewTiered(4, newFn)

	a := p.Get()
	require.Equal(t, 1, *allocated)

	p.Put(a)
	b := p.Get()
	assert.Same(t, a, b, "released object should be handed out again")
	assert.Equal(t, 1, *allocated)

	st := p.Stats()
	assert.Equal(t, uint64(1), st.Allocs)
	assert.Equal(t, uint64(1), st.RingHits)
	assert.Equal(t, uint64(1), st.Puts)
	assert.Equal(t, int64(0), p.Idle())
}

func TestTiered_SpillsWhenRingFull(t *testing.T) {
	newFn, _ := newCounter()
	p := pool.NewTiered(2, newFn)

	objs := make([]*item, 5)
	for i := range objs {
		objs[i] = p.Get()
	}
	for _, o := range objs {
		p.Put(o)
	}

	st := p.Stats()
	assert.Equal(t, uint64(3), st.Spills, "ring of 2 keeps two, rest spill")
	assert.Equal(t, int64(5), p.Idle())

	seen := map[*item]bool{}
	for range objs {
		seen[p.Get()] = true
	}
	assert.Len(t, seen, 5, "every pooled object comes back exactly once")
	assert.Equal(t, uint64(5), p.Stats().Allocs, "no new allocation while pooled objects remain")

	st = p.Stats()
	assert.Equal(t, uint64(2), st.RingHits)
	assert.Equal(t, uint64(3), st.SpillHits)
}

func TestTiered_DefaultCapacity(t *testing.T) {
	p := pool.NewTiered(0, func() *item { return new(item) })
	for i := 0; i < pool.DefaultRingCapacity; i++ {
		p.Put(new(item))
	}
	assert.Zero(t, p.Stats().Spills)
	p.Put(new(item))
	assert.Equal(t, uint64(1), p.Stats().Spills)
}

func TestTiered_ConcurrentChurnNeverDuplicates(t *testing.T) {
	p := pool.NewTiered(8, func() *item { return new(item) })

	const workers = 16
	const rounds = 2000

	var mu sync.Mutex
	owners := map[*item]int{}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				obj := p.Get()
				mu.Lock()
				if prev, held := owners[obj]; held {
					mu.Unlock()
					t.Errorf("object handed to worker %d while held by %d", id, prev)
					return
				}
				owners[obj] = id
				mu.Unlock()

				mu.Lock()
				delete(owners, obj)
				mu.Unlock()
				p.Put(obj)
			}
		}(w)
	}
	wg.Wait()

	st := p.Stats()
	assert.Equal(t, uint64(workers*rounds), st.Puts)
	assert.Equal(t, uint64(workers*rounds), st.Allocs+st.RingHits+st.SpillHits)
	assert.LessOrEqual(t, st.Allocs, uint64(workers*rounds))
}
