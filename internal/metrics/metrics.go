// Package metrics exposes Prometheus collectors for agent activity.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors. A nil *Metrics records nothing.
type Metrics struct {
	tasks      *prometheus.CounterVec
	artifacts  *prometheus.CounterVec
	generation *prometheus.HistogramVec
}

// New registers the collectors with reg. Collectors already registered by a
// previous call are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	tasks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frontgen",
			Subsystem: "agent",
			Name:      "tasks_total",
			Help:      "Tasks and requests executed, by agent, operation and outcome.",
		},
		[]string{"agent", "operation", "outcome"},
	)
	artifacts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frontgen",
			Subsystem: "pipeline",
			Name:      "artifacts_total",
			Help:      "Artifacts produced, by framework and content tier.",
		},
		[]string{"framework", "tier"},
	)
	generation := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frontgen",
			Subsystem: "generation",
			Name:      "call_duration_seconds",
			Help:      "Generation backend latency, by outcome.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	var err error
	if tasks, err = register(reg, tasks); err != nil {
		return nil, err
	}
	if artifacts, err = register(reg, artifacts); err != nil {
		return nil, err
	}
	if generation, err = register(reg, generation); err != nil {
		return nil, err
	}
	return &Metrics{tasks: tasks, artifacts: artifacts, generation: generation}, nil
}

// MustNew is New that panics on registration conflicts.
func MustNew(reg prometheus.Registerer) *Metrics {
	m, err := New(reg)
	if err != nil {
		panic(err)
	}
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveTask counts one task outcome ("success" or an error kind).
func (m *Metrics) ObserveTask(agent, operation, outcome string) {
	if m == nil {
		return
	}
	m.tasks.WithLabelValues(agent, operation, outcome).Inc()
}

// ObserveArtifact counts one produced artifact.
func (m *Metrics) ObserveArtifact(framework, tier string) {
	if m == nil {
		return
	}
	m.artifacts.WithLabelValues(framework, tier).Inc()
}

// ObserveGeneration records one generation backend call.
func (m *Metrics) ObserveGeneration(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.generation.WithLabelValues(outcome).Observe(d.Seconds())
}
