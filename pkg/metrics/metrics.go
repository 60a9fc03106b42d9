/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/oracle"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/simulation"
)

const (
	namespace = "sand"

	policyLabel = "policy"
	statusLabel = "status"

	staticPolicy   = "static"
	temporalPolicy = "temporal"
)

// Recorder exposes benchmark and oracle activity as Prometheus metrics on a
// private registry. It is both a slot record sink and an oracle sink.
type Recorder struct {
	registry *prometheus.Registry

	slots         prometheus.Counter
	slotCost      *prometheus.HistogramVec
	podsPlaced    *prometheus.CounterVec
	podsDropped   *prometheus.CounterVec
	activations   *prometheus.CounterVec
	deactivations *prometheus.CounterVec
	activeNodes   *prometheus.GaugeVec

	oracleSolves    *prometheus.CounterVec
	oracleSolveTime prometheus.Histogram
}

var (
	_ simulation.RecordSink = &Recorder{}
	_ oracle.Sink           = &Recorder{}
)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		slots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slots_total",
			Help:      "Number of simulated slots.",
		}),
		slotCost: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "slot_cost",
			Help:      "Cost of a slot per placement policy.",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 16),
		}, []string{policyLabel}),
		podsPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pods_placed_total",
			Help:      "Number of pods placed per policy.",
		}, []string{policyLabel}),
		podsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pods_dropped_total",
			Help:      "Number of pods no node could host, per policy.",
		}, []string{policyLabel}),
		activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_activations_total",
			Help:      "Number of idle to active node transitions per policy.",
		}, []string{policyLabel}),
		deactivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_deactivations_total",
			Help:      "Number of active to idle node transitions per policy.",
		}, []string{policyLabel}),
		activeNodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_nodes",
			Help:      "Active nodes in the most recent slot per policy.",
		}, []string{policyLabel}),
		oracleSolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "solves_total",
			Help:      "Number of oracle solves per status.",
		}, []string{statusLabel}),
		oracleSolveTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "solve_duration_seconds",
			Help:      "Oracle solve time.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	r.registry.MustRegister(
		r.slots,
		r.slotCost,
		r.podsPlaced,
		r.podsDropped,
		r.activations,
		r.deactivations,
		r.activeNodes,
		r.oracleSolves,
		r.oracleSolveTime,
	)
	return r
}

// Registry returns the registry the metrics live on
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Record(rec simulation.SlotRecord) error {
	r.slots.Inc()
	r.observeTrack(staticPolicy, rec.Static)
	r.observeTrack(temporalPolicy, rec.Temporal)
	return nil
}

func (r *Recorder) observeTrack(policy string, t simulation.TrackResult) {
	r.slotCost.WithLabelValues(policy).Observe(t.Cost)
	r.podsPlaced.WithLabelValues(policy).Add(float64(t.Placed))
	r.podsDropped.WithLabelValues(policy).Add(float64(t.Dropped))
	r.activations.WithLabelValues(policy).Add(float64(t.Activated))
	r.deactivations.WithLabelValues(policy).Add(float64(t.Deactivated))
	r.activeNodes.WithLabelValues(policy).Set(float64(t.Active))
}

func (r *Recorder) RecordOracle(rec oracle.Record) error {
	r.oracleSolves.WithLabelValues(rec.Status.String()).Inc()
	r.oracleSolveTime.Observe(rec.SolveTime.Seconds())
	return nil
}

// WriteText writes every gathered metric family in the Prometheus text format
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
