// Package metrics exposes scan outcomes for Prometheus scraping.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/capsaicin/mockscan/internal/detection"
	"github.com/capsaicin/mockscan/internal/scanner"
)

var _ scanner.Observer = (*Recorder)(nil)

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Recorder counts scans on its own registry so nothing leaks into the
// process-wide default one.
type Recorder struct {
	registry *prometheus.Registry

	scansTotal     *prometheus.CounterVec
	findingsTotal  *prometheus.CounterVec
	failuresTotal  *prometheus.CounterVec
	simulatedSecs  *prometheus.HistogramVec
	discoveredURLs prometheus.Histogram
}

func NewRecorder() (*Recorder, error) {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.scansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mockscan_scans_total",
			Help: "Completed scans by cache outcome",
		},
		[]string{"cached"},
	)
	r.findingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mockscan_findings_total",
			Help: "Vulnerability names reported across all scans",
		},
		[]string{"severity"},
	)
	r.failuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mockscan_failures_total",
			Help: "Scans that returned an error",
		},
		[]string{"reason"},
	)
	r.simulatedSecs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mockscan_simulated_duration_seconds",
			Help:    "Simulated scan duration before time scaling",
			Buckets: []float64{55, 60, 65, 70, 75, 80, 85, 90},
		},
		[]string{"cached"},
	)
	r.discoveredURLs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mockscan_discovered_urls",
		Help:    "Discovered URLs per successful scan",
		Buckets: prometheus.LinearBuckets(5, 1, 7),
	})

	collectors := []prometheus.Collector{
		r.scansTotal,
		r.findingsTotal,
		r.failuresTotal,
		r.simulatedSecs,
		r.discoveredURLs,
	}
	for _, c := range collectors {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return r, nil
}

// ObserveScan implements scanner.Observer.
func (r *Recorder) ObserveScan(o scanner.Outcome) {
	if o.Err != nil {
		reason := "generation"
		if o.Cancelled() {
			reason = "cancelled"
		}
		r.failuresTotal.WithLabelValues(reason).Inc()
		return
	}

	cached := strconv.FormatBool(o.Cached)
	r.scansTotal.WithLabelValues(cached).Inc()
	r.simulatedSecs.WithLabelValues(cached).Observe(o.Simulated.Seconds())
	if o.Result != nil {
		for _, f := range o.Result.Vulnerabilities {
			for _, name := range f.Vulnerabilities {
				r.findingsTotal.WithLabelValues(string(detection.SeverityOf(name))).Inc()
			}
		}
		r.discoveredURLs.Observe(float64(len(o.Result.DiscoveredURLs)))
	}
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
