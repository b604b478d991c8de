// Package metrics records how long sky snapshots take to build and how
// nearest-object queries resolve.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Query outcomes used as the result label.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

// Collector owns a private registry so several collectors can coexist.
type Collector struct {
	registry      *prometheus.Registry
	buildDuration prometheus.Histogram
	queriesTotal  *prometheus.CounterVec
	bodies        prometheus.Gauge
}

// NewCollector creates a collector with all metrics registered.
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rigel_observed_sky_build_seconds",
				Help:    "Time spent building an observed sky snapshot",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10),
			},
		),
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rigel_closest_queries_total",
				Help: "Nearest-object queries by outcome",
			},
			[]string{"result"},
		),
		bodies: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "rigel_observed_bodies",
				Help: "Bodies projected in the latest snapshot",
			},
		),
	}

	m.registry.MustRegister(m.buildDuration)
	m.registry.MustRegister(m.queriesTotal)
	m.registry.MustRegister(m.bodies)

	return m
}

// Registry exposes the underlying registry.
func (m *Collector) Registry() *prometheus.Registry { return m.registry }

// RecordBuild records one snapshot build of the given size.
func (m *Collector) RecordBuild(duration time.Duration, bodies int) {
	m.buildDuration.Observe(duration.Seconds())
	m.bodies.Set(float64(bodies))
}

// RecordQuery records a nearest-object query.
func (m *Collector) RecordQuery(found bool) {
	result := ResultMiss
	if found {
		result = ResultHit
	}
	m.queriesTotal.WithLabelValues(result).Inc()
}

// BuildStats summarises the build histogram.
type BuildStats struct {
	Count uint64
	Mean  time.Duration
}

// Builds returns the number of recorded builds and their mean duration.
func (m *Collector) Builds() (BuildStats, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return BuildStats{}, err
	}
	for _, f := range families {
		if f.GetName() != "rigel_observed_sky_build_seconds" {
			continue
		}
		for _, metric := range f.GetMetric() {
			h := metric.GetHistogram()
			stats := BuildStats{Count: h.GetSampleCount()}
			if stats.Count > 0 {
				stats.Mean = time.Duration(h.GetSampleSum() / float64(stats.Count) * float64(time.Second))
			}
			return stats, nil
		}
	}
	return BuildStats{}, nil
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
