// Command tqueuedemo exercises a tqueue.Queue with a configurable
// number of concurrent producers and consumers, logging a summary and
// serving Prometheus metrics on a debug server (loopback by default,
// see TQUEUE_METRICS_ADDR). It is a
// demonstration harness, not part of the library's public API.
package main

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/agilira-labs/tqueue"
	"github.com/agilira-labs/tqueue/internal/config"
	"github.com/agilira-labs/tqueue/internal/debugserver"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	log.Println("tqueuedemo starting")
	log.Printf("capacity=%d producers=%d consumers=%d run_for=%s produce_rate=%.1f/s",
		cfg.Capacity, cfg.Producers, cfg.Consumers, cfg.RunFor, cfg.ProduceRate)

	reg := prometheus.NewRegistry()
	metrics := tqueue.NewMetrics(reg, cfg.MetricsNS)

	dbg := debugserver.Start(debugserver.Config{
		ListenAddr: cfg.MetricsAddr,
		Registerer: reg,
	})
	log.Printf("debug server listening on %s (metrics, healthz, pprof)", cfg.MetricsAddr)

	q, err := tqueue.Create[int64](cfg.Capacity, tqueue.Callbacks[int64, struct{}]{})
	if err != nil {
		log.Fatalf("tqueue.Create: %v", err)
	}
	q.WithMetrics(metrics)

	var limiter *rate.Limiter
	if cfg.ProduceRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.ProduceRate), 1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunFor)
	defer cancel()

	var pushed, popped, full, empty atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < cfg.Producers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			v := seed
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if limiter != nil {
					_ = limiter.Wait(ctx)
				}
				if err := q.Push(&v, nil); err != nil {
					full.Add(1)
					continue
				}
				pushed.Add(1)
				v += int64(cfg.Producers)
			}
		}(int64(i))
	}

	for i := 0; i < cfg.Consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out int64
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if err := q.Pop(&out, nil, nil, nil); err != nil {
					empty.Add(1)
					continue
				}
				popped.Add(1)
			}
		}()
	}

	wg.Wait()
	q.Close()

	log.Printf("done: pushed=%d popped=%d full=%d empty=%d final_len=%d",
		pushed.Load(), popped.Load(), full.Load(), empty.Load(), q.Len())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	if err := dbg.Shutdown(shutdownCtx); err != nil {
		log.Printf("debug server shutdown: %v", err)
	}
}
