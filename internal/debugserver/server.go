// Package debugserver exposes an HTTP mux serving Prometheus metrics,
// a health check, and pprof, the same shape as fight-club-go's
// internal/api.StartDebugServer. It listens on whatever address it is
// given; it does not check that the address is loopback.
package debugserver

import (
	"context"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config controls where the debug server listens.
type Config struct {
	// ListenAddr MUST stay loopback-only in any real deployment. Start
	// binds it as given; the demo binary defaults it to 127.0.0.1:6060
	// but takes any value from TQUEUE_METRICS_ADDR.
	ListenAddr string
	Registerer *prometheus.Registry
}

// Server wraps the running http.Server so the caller can shut it down.
type Server struct {
	http *http.Server
}

// Start builds the mux and begins serving in a background goroutine.
// Call Shutdown to stop it.
func Start(cfg Config) *Server {
	r := chi.NewRouter()

	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/debug/pprof", func(pr chi.Router) {
		pr.Get("/", pprof.Index)
		pr.Get("/cmdline", pprof.Cmdline)
		pr.Get("/profile", pprof.Profile)
		pr.Get("/symbol", pprof.Symbol)
		pr.Get("/trace", pprof.Trace)
		pr.Handle("/heap", pprof.Handler("heap"))
		pr.Handle("/goroutine", pprof.Handler("goroutine"))
		pr.Handle("/allocs", pprof.Handler("allocs"))
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		_ = srv.ListenAndServe()
	}()

	return &Server{http: srv}
}

// Shutdown gracefully stops the server within the given context.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
