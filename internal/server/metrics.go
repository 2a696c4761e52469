package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	registry    *prometheus.Registry
	hunger      prometheus.Gauge
	mealsLogged *prometheus.CounterVec
	lookups     *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

// newMetrics builds a private registry so several servers (tests) can
// coexist in one process.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		hunger: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nutripet",
			Subsystem: "pet",
			Name:      "hunger",
			Help:      "Hunger score of the pet at the last snapshot (0 starving, 100 full).",
		}),
		mealsLogged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutripet",
			Subsystem: "meals",
			Name:      "logged_total",
			Help:      "Meals logged through the dashboard, by source.",
		}, []string{"source"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutripet",
			Subsystem: "food",
			Name:      "lookups_total",
			Help:      "Food lookups by provider and outcome.",
		}, []string{"provider", "result"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nutripet",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Dashboard request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
	m.registry.MustRegister(
		m.hunger,
		m.mealsLogged,
		m.lookups,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
