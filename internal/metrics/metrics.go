// Package metrics exposes Prometheus collectors for the alarm working set
// and the triage actions applied to it.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	domain "github.com/oshokin/alarm-desk/internal/domain/alarm"
	"github.com/oshokin/alarm-desk/internal/logger"
)

const (
	metricPrefix = "alarm_desk_"

	// ResultOK labels a triage action that was committed.
	ResultOK = "ok"
	// ResultRejected labels a triage action refused by validation.
	ResultRejected = "rejected"
	// ResultFailed labels a triage action that could not be persisted.
	ResultFailed = "failed"

	shutdownTimeout = 5 * time.Second
)

// Collector records the alarm desk metrics.
type Collector struct {
	registry *prometheus.Registry

	alarms  *prometheus.GaugeVec
	urgent  prometheus.Gauge
	actions *prometheus.CounterVec
	expired prometheus.Counter
}

// New creates collectors registered in a dedicated registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		alarms: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: metricPrefix + "alarms",
			Help: "Alarms in the working set by status",
		}, []string{"status"}),
		urgent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "urgent_active_alarms",
			Help: "Urgent alarms that are unacknowledged or acknowledged",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "actions_total",
			Help: "Triage actions by kind and result",
		}, []string{"action", "result"}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "mutes_expired_total",
			Help: "Mutes lifted because their timer elapsed",
		}),
	}

	c.registry.MustRegister(c.alarms, c.urgent, c.actions, c.expired)

	return c
}

// Registry returns the registry holding the collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveAlarms refreshes the gauges from the working set.
func (c *Collector) ObserveAlarms(alarms []*domain.Alarm) {
	if c == nil {
		return
	}

	counts := make(map[domain.Status]int, len(domain.Statuses()))
	urgent := 0

	for _, a := range alarms {
		counts[a.Status]++

		if a.Urgent && a.Status.Active() {
			urgent++
		}
	}

	for _, status := range domain.Statuses() {
		c.alarms.WithLabelValues(string(status)).Set(float64(counts[status]))
	}

	c.urgent.Set(float64(urgent))
}

// ObserveAction counts a triage action.
func (c *Collector) ObserveAction(action, result string) {
	if c == nil {
		return
	}

	c.actions.WithLabelValues(action, result).Inc()
}

// ObserveExpiredMutes counts mutes lifted by the sweeper.
func (c *Collector) ObserveExpiredMutes(n int) {
	if c == nil || n <= 0 {
		return
	}

	c.expired.Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve runs the /metrics listener until the context is cancelled.
func (c *Collector) Serve(ctx context.Context, address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("listen metrics on %s: %w", address, err)
	}

	//nolint:exhaustruct // Defaults are fine for the metrics endpoint.
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: shutdownTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint:errcheck // Best effort on exit.
	}()

	logger.InfoKV(ctx, "Metrics listening", "metrics_address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics: %w", err)
	}

	return nil
}
