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

package options

import (
	"fmt"

	"github.com/spf13/pflag"
	"k8s.io/utils/ptr"

	"github.com/camilla-m/facility-problem-sand/pkg/api/v1alpha1"
	"github.com/camilla-m/facility-problem-sand/pkg/tracing"
)

// OracleOptions configures the exact validation run
type OracleOptions struct {
	ConfigFile  string
	Output      string
	MetricsFile string

	NodeCounts []int
	PodCounts  []int
	Slots      int
	Iterations int
	Tolerance  float64

	// Tracing is shared with the root command's persistent flags
	Tracing *tracing.Options
}

func NewOracleOptions() *OracleOptions {
	tr := DefaultTracingOptions()
	return &OracleOptions{
		Output:     DefaultOracleOutput,
		Slots:      v1alpha1.DefaultOracleSlots,
		Iterations: v1alpha1.DefaultOracleIterations,
		Tolerance:  v1alpha1.DefaultOptimalityTolerance,
		Tracing:    &tr,
	}
}

func (o *OracleOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "File with a BenchmarkConfig whose oracle section describes the grid.")
	fs.StringVar(&o.Output, "output", o.Output, "Path of the oracle CSV, or - for standard output.")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "Write the final Prometheus metrics in text format to this path.")
	fs.IntSliceVar(&o.NodeCounts, "node-counts", o.NodeCounts, "Node counts of the instance grid.")
	fs.IntSliceVar(&o.PodCounts, "pod-counts", o.PodCounts, "Pod counts of the instance grid.")
	fs.IntVar(&o.Slots, "slots", o.Slots, "Horizon of each instance.")
	fs.IntVar(&o.Iterations, "iterations", o.Iterations, "Instances per grid point.")
	fs.Float64Var(&o.Tolerance, "tolerance", o.Tolerance, "Accepted relative optimality gap.")
}

// Config returns the defaulted and validated oracle section with the flags
// the user set applied
func (o *OracleOptions) Config(fs *pflag.FlagSet) (*v1alpha1.OracleConfig, error) {
	cfg, err := v1alpha1.LoadBenchmarkConfig(o.ConfigFile)
	if err != nil {
		return nil, err
	}
	if cfg.Oracle == nil {
		cfg.Oracle = &v1alpha1.OracleConfig{}
	}
	oc := cfg.Oracle
	if fs.Changed("node-counts") {
		oc.NodeCounts = o.NodeCounts
	}
	if fs.Changed("pod-counts") {
		oc.PodCounts = o.PodCounts
	}
	if fs.Changed("slots") {
		oc.Slots = o.Slots
	}
	if fs.Changed("iterations") {
		oc.Iterations = o.Iterations
	}
	if fs.Changed("tolerance") {
		oc.Tolerance = ptr.To(o.Tolerance)
	}
	if err := v1alpha1.Default(cfg); err != nil {
		return nil, err
	}
	if err := v1alpha1.ValidateBenchmarkConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid oracle config: %w", err)
	}
	return cfg.Oracle, nil
}
