// Package metrics exposes bot counters in the Prometheus text format.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/m3rciful/dobot/core/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dobot"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	reg      *prometheus.Registry
	flow     *prometheus.CounterVec
	handlers *prometheus.CounterVec
	apiCalls *prometheus.CounterVec
	apiTime  *prometheus.HistogramVec
}

// New registers the bot collectors plus the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		flow: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rename_events_total",
			Help:      "Rename conversation steps by stage and outcome.",
		}, []string{"stage", "outcome"}),
		handlers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handled_updates_total",
			Help:      "Telegram updates by handler and outcome.",
		}, []string{"handler", "outcome"}),
		apiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "do_api_requests_total",
			Help:      "DigitalOcean API calls by operation and result.",
		}, []string{"op", "result"}),
		apiTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "do_api_request_duration_seconds",
			Help:      "DigitalOcean API call latency.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"op"}),
	}
	m.reg.MustRegister(
		m.flow, m.handlers, m.apiCalls, m.apiTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RenameEvent counts one rename step, e.g. ("commit", "ok").
func (m *Metrics) RenameEvent(stage, outcome string) {
	if m == nil {
		return
	}
	m.flow.WithLabelValues(stage, outcome).Inc()
}

// HandlerDone counts one routed update.
func (m *Metrics) HandlerDone(handler, outcome string) {
	if m == nil {
		return
	}
	m.handlers.WithLabelValues(handler, outcome).Inc()
}

// APICall records one provider request; result is "ok" or an error code.
func (m *Metrics) APICall(op, result string, took time.Duration) {
	if m == nil {
		return
	}
	m.apiCalls.WithLabelValues(op, result).Inc()
	m.apiTime.WithLabelValues(op).Observe(took.Seconds())
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Server serves /metrics on its own listener.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Listen binds addr and starts serving m in the background.
func Listen(addr string, m *Metrics) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	s := &Server{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "metrics", "metrics.serve",
				slog.String("status", "fail"),
				slog.String("err", err.Error()),
			)
		}
	}()
	logger.Info(context.Background(), "metrics", "metrics.listen",
		slog.String("status", "ok"),
		slog.String("listen", ln.Addr().String()),
	)
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown stops the listener and waits for in-flight scrapes.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
