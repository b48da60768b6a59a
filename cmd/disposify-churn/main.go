// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// disposify-churn drives subscribe/dispose churn against a shared event and
// reports pool reuse. With metrics.addr set it keeps serving /metrics until
// interrupted.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/momentics/disposify/control"
	"github.com/momentics/disposify/disposable"
	"github.com/momentics/disposify/event"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	cfg, err := control.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	log, err := cfg.Log.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("churn failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *control.Config, log *zap.Logger) error {
	p := cfg.Pool.NewPool(log.Named("pool"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(control.NewPoolCollector(cfg.Metrics.Namespace, "churn", p.Stats))

	probes := control.NewDebugProbes()
	probes.RegisterPool("churn", p.Stats)
	probes.RegisterRuntimeProbes()

	var srv *http.Server
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", zap.Error(err))
			}
		}()
		log.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
	}

	start := time.Now()
	invocations := churn(ctx, p, cfg.Churn)
	st := p.Stats()
	log.Info("churn complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int64("invocations", invocations),
		zap.Uint64("allocated", st.Allocated),
		zap.Uint64("reused", st.Reused),
		zap.Uint64("recycled", st.Recycled),
		zap.Int64("in_use", st.InUse),
	)
	log.Debug("debug state", zap.Any("probes", probes.DumpState()))

	if st.InUse != 0 {
		return fmt.Errorf("%d records still in use after churn", st.InUse)
	}

	if srv != nil {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
	return nil
}

// churn subscribes cfg.Handlers callbacks per iteration, fires the event
// once and disposes the batch. Returns the number of handler invocations.
func churn(ctx context.Context, p *disposable.Pool, cfg control.ChurnConfig) int64 {
	var src event.Event[int, int]
	var wg sync.WaitGroup
	var total atomic.Int64
	bump := func(v int) int {
		total.Add(1)
		return v + 1
	}

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g := disposable.NewGroup()
			for i := 0; i < cfg.Iterations; i++ {
				if i%1024 == 0 && ctx.Err() != nil {
					break
				}
				for j := 0; j < cfg.Handlers; j++ {
					g.Add(src.SubscribeIn(p, bump))
				}
				src.Invoke(i)
				g.Dispose()
			}
		}()
	}
	wg.Wait()
	return total.Load()
}
