package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/momentics/disposify/control"
	"github.com/momentics/disposify/disposable"
)

func TestChurn_LeavesNothingInUse(t *testing.T) {
	p := disposable.NewPool(disposable.WithRingCapacity(16))
	cfg := control.ChurnConfig{Workers: 4, Iterations: 500, Handlers: 3}

	n := churn(context.Background(), p, cfg)

	assert.GreaterOrEqual(t, n, int64(4*500*3), "every worker sees at least its own handlers")
	st := p.Stats()
	assert.Equal(t, int64(0), st.InUse)
	assert.Equal(t, uint64(4*500*3), st.Recycled)
	assert.Less(t, st.Allocated, uint64(4*500*3), "records are reused across iterations")
}

func TestChurn_StopsOnCancel(t *testing.T) {
	p := disposable.NewPool()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := churn(ctx, p, control.ChurnConfig{Workers: 2, Iterations: 1 << 20, Handlers: 1})
	assert.Zero(t, n)
	assert.Equal(t, int64(0), p.Stats().InUse)
}

func TestRun_WithoutMetricsServer(t *testing.T) {
	cfg, err := control.LoadConfig("")
	require.NoError(t, err)
	cfg.Churn = control.ChurnConfig{Workers: 2, Iterations: 50, Handlers: 2}

	require.NoError(t, run(context.Background(), cfg, zaptest.NewLogger(t)))
}
