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

// Package options holds the command line surface of the benchmark.
package options

import (
	"fmt"

	"github.com/spf13/pflag"
	"k8s.io/component-base/featuregate"
	logsapi "k8s.io/component-base/logs/api/v1"
	"k8s.io/utils/ptr"

	"github.com/camilla-m/facility-problem-sand/pkg/api/v1alpha1"
	"github.com/camilla-m/facility-problem-sand/pkg/tracing"
)

const (
	DefaultOutput       = "sand_benchmark.csv"
	DefaultOracleOutput = "oracle_results.csv"
)

// BenchmarkOptions has all the params needed to run the benchmark. Sweep
// flags override the matching fields of the config file when set.
type BenchmarkOptions struct {
	ConfigFile  string
	Output      string
	PlotFile    string
	MetricsFile string

	Ratios             []float64
	PodCounts          []int
	NodeCounts         []int
	Executions         int
	Slots              int
	Seed               int64
	SeedMode           string
	PodSize            int
	Rounding           string
	ColdStart          string
	ValidateInvariants bool

	Tracing tracing.Options

	Logging      *logsapi.LoggingConfiguration
	FeatureGates featuregate.MutableFeatureGate
}

// NewBenchmarkOptions returns options with the logging feature gates registered
func NewBenchmarkOptions() (*BenchmarkOptions, error) {
	fg := featuregate.NewFeatureGate()
	if err := logsapi.AddFeatureGates(fg); err != nil {
		return nil, err
	}
	return &BenchmarkOptions{
		Output:       DefaultOutput,
		Seed:         v1alpha1.DefaultSeed,
		SeedMode:     string(v1alpha1.SeedModeShared),
		PodSize:      v1alpha1.DefaultPodSize,
		Rounding:     v1alpha1.DefaultRounding,
		ColdStart:    v1alpha1.DefaultColdStart,
		Tracing:      DefaultTracingOptions(),
		Logging:      logsapi.NewLoggingConfiguration(),
		FeatureGates: fg,
	}, nil
}

// AddFlags adds flags for a specific BenchmarkOptions to the specified FlagSet
func (o *BenchmarkOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "File with the BenchmarkConfig to run. Empty runs the default sweep.")
	fs.StringVar(&o.Output, "output", o.Output, "Path of the per-slot CSV, or - for standard output.")
	fs.StringVar(&o.PlotFile, "plot", o.PlotFile, "Write an HTML chart of the mean slot cost to this path.")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "Write the final Prometheus metrics in text format to this path.")

	fs.Float64SliceVar(&o.Ratios, "ratios", o.Ratios, "Activation penalty ratios to sweep.")
	fs.IntSliceVar(&o.PodCounts, "pod-counts", o.PodCounts, "Baseline pod counts to sweep.")
	fs.IntSliceVar(&o.NodeCounts, "node-counts", o.NodeCounts, "Node roster sizes to sweep.")
	fs.IntVar(&o.Executions, "executions", o.Executions, "Independent executions per configuration.")
	fs.IntVar(&o.Slots, "slots", o.Slots, "Time slots per execution.")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "Seed of the pseudorandom stream.")
	fs.StringVar(&o.SeedMode, "seed-mode", o.SeedMode, "shared advances one generator over the sweep, perExecution derives one per execution.")
	fs.IntVar(&o.PodSize, "pod-size", o.PodSize, "Demand of every generated pod.")
	fs.StringVar(&o.Rounding, "rounding", o.Rounding, "How the scaled baseline becomes a pod count: round or truncate.")
	fs.StringVar(&o.ColdStart, "cold-start", o.ColdStart, "Temporal ranking before any history exists: static or activation.")
	fs.BoolVar(&o.ValidateInvariants, "validate-invariants", o.ValidateInvariants, "Check capacity and placement invariants after every slot.")
}

// AddPersistentFlags adds the flags every subcommand inherits: logging,
// feature gates and span export
func (o *BenchmarkOptions) AddPersistentFlags(fs *pflag.FlagSet) {
	logsapi.AddFlags(o.Logging, fs)
	o.FeatureGates.AddFlag(fs)
	AddTracingFlags(&o.Tracing, fs)
}

// AddTracingFlags binds the span export flags to opts
func AddTracingFlags(opts *tracing.Options, fs *pflag.FlagSet) {
	fs.StringVar(&opts.CollectorEndpoint, "otel-collector-endpoint", opts.CollectorEndpoint, "OTLP gRPC endpoint for spans. Empty disables tracing.")
	fs.StringVar(&opts.CACertFile, "otel-trace-ca-cert", opts.CACertFile, "CA certificate of the collector. Empty uses an insecure connection.")
	fs.StringVar(&opts.ServiceName, "otel-service-name", opts.ServiceName, "Service name attached to spans.")
	fs.Float64Var(&opts.SampleRate, "otel-sample-rate", opts.SampleRate, "Fraction of traces to sample.")
}

// DefaultTracingOptions returns span export settings with tracing disabled
func DefaultTracingOptions() tracing.Options {
	return tracing.Options{
		ServiceName: tracing.DefaultServiceName,
		SampleRate:  tracing.DefaultSampleRate,
	}
}

// Config loads the config file, applies the flags the user set, then
// defaults and validates the result
func (o *BenchmarkOptions) Config(fs *pflag.FlagSet) (*v1alpha1.BenchmarkConfig, error) {
	cfg, err := v1alpha1.LoadBenchmarkConfig(o.ConfigFile)
	if err != nil {
		return nil, err
	}
	o.applyTo(cfg, fs)
	if err := v1alpha1.Default(cfg); err != nil {
		return nil, err
	}
	if err := v1alpha1.ValidateBenchmarkConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid benchmark config: %w", err)
	}
	return cfg, nil
}

func (o *BenchmarkOptions) applyTo(cfg *v1alpha1.BenchmarkConfig, fs *pflag.FlagSet) {
	changed := fs.Changed
	if changed("ratios") {
		cfg.Ratios = o.Ratios
	}
	if changed("pod-counts") {
		cfg.PodCounts = o.PodCounts
	}
	if changed("node-counts") {
		cfg.NodeCounts = o.NodeCounts
	}
	if changed("executions") {
		cfg.Executions = o.Executions
	}
	if changed("slots") {
		cfg.Slots = o.Slots
	}
	if changed("seed") {
		cfg.Seed = ptr.To(o.Seed)
	}
	if changed("seed-mode") {
		cfg.SeedMode = v1alpha1.SeedMode(o.SeedMode)
	}
	if changed("pod-size") {
		cfg.PodSize = o.PodSize
	}
	if changed("rounding") {
		cfg.Rounding = o.Rounding
	}
	if changed("cold-start") {
		cfg.ColdStart = o.ColdStart
	}
	if changed("validate-invariants") {
		cfg.ValidateInvariants = o.ValidateInvariants
	}
}
