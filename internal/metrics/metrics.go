// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package metrics records plan generation and narration counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
	OutcomeMalformed = "malformed"
)

// Metrics holds the server's collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	generations    *prometheus.CounterVec
	narrationBytes prometheus.Counter
	exports        prometheus.Counter
}

// New returns Metrics registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitcoach",
			Name:      "plan_generations_total",
			Help:      "Plan generation requests by outcome.",
		}, []string{"outcome"}),
		narrationBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fitcoach",
			Name:      "narration_bytes_total",
			Help:      "Audio bytes relayed to callers.",
		}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fitcoach",
			Name:      "plan_exports_total",
			Help:      "Plans exported to storage.",
		}),
	}
	reg.MustRegister(m.generations, m.narrationBytes, m.exports)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Generation counts a generate-plan request with the given outcome.
func (m *Metrics) Generation(outcome string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
}

// NarrationBytes adds n relayed audio bytes.
func (m *Metrics) NarrationBytes(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.narrationBytes.Add(float64(n))
}

// Export counts an exported plan.
func (m *Metrics) Export() {
	if m == nil {
		return
	}
	m.exports.Inc()
}
