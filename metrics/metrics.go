// Package metrics exposes Prometheus-compatible metrics for the experiment
// server. It wraps the VictoriaMetrics metrics library with a small HTTP
// server that the BaseServer runs alongside the API listener.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Counters updated by the coordinator and notifier. All are process-wide;
// there is exactly one coordinator per process.
var (
	UsersRegistered     = metrics.NewCounter("experiment_users_registered_total")
	PredictionsStored   = metrics.NewCounter("experiment_predictions_stored_total")
	SessionsStarted     = metrics.NewCounter("experiment_sessions_started_total")
	SessionsStopped     = metrics.NewCounter("experiment_sessions_stopped_total")
	SecretsRejected     = metrics.NewCounter("experiment_secrets_rejected_total")
	NotificationsSent   = metrics.NewCounter("experiment_notifications_sent_total")
	NotificationsFailed = metrics.NewCounter("experiment_notifications_failed_total")
)

// MetricsServer serves the /metrics endpoint on its own listener so that
// scraping never contends with API traffic. A MetricsServer created with an
// empty address is inert: ListenAndServe and Shutdown are no-ops.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server for the given service name and listen address.
func New(name, addr string) (*MetricsServer, error) {
	if addr == "" {
		return &MetricsServer{}, nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "# %s\n", name)
		metrics.WritePrometheus(w, true)
	})

	return &MetricsServer{
		srv: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}, nil
}

func (s *MetricsServer) ListenAndServe() error {
	if s.srv == nil {
		return nil
	}
	return s.srv.ListenAndServe()
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
