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

package app

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"github.com/camilla-m/facility-problem-sand/cmd/sand-benchmark/app/options"
	"github.com/camilla-m/facility-problem-sand/pkg/api/v1alpha1"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/oracle"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/results"
	"github.com/camilla-m/facility-problem-sand/pkg/metrics"
	"github.com/camilla-m/facility-problem-sand/pkg/tracing"
)

// oracleSinks fans oracle records out to the CSV and the metrics recorder
type oracleSinks []oracle.Sink

func (s oracleSinks) RecordOracle(r oracle.Record) error {
	for _, sink := range s {
		if err := sink.RecordOracle(r); err != nil {
			return err
		}
	}
	return nil
}

// NewOracleCommand creates the oracle subcommand. Span export follows the
// tracing options bound to the parent's persistent flags.
func NewOracleCommand(out io.Writer, tr *tracing.Options) *cobra.Command {
	o := options.NewOracleOptions()
	if tr != nil {
		o.Tracing = tr
	}
	cmd := &cobra.Command{
		Use:   "oracle",
		Short: "Solve small placement instances exactly",
		Long: `oracle generates a grid of small multi-slot placement instances and solves
each one exactly. Grid points with fewer pods than nodes are skipped.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.Config(cmd.Flags())
			if err != nil {
				return err
			}
			return RunOracle(cmd.Context(), o, cfg, out)
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// RunOracle solves the configured grid with the exhaustive solver
func RunOracle(ctx context.Context, o *options.OracleOptions, cfg *v1alpha1.OracleConfig, stdout io.Writer) error {
	logger := klog.FromContext(ctx)

	stopTracing, err := startTracing(ctx, *o.Tracing)
	if err != nil {
		return err
	}
	defer stopTracing()

	out, closeOut, err := openOutput(o.Output, stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	recorder := metrics.NewRecorder()
	solver := oracle.NewExhaustive(ptr.Deref(cfg.Tolerance, v1alpha1.DefaultOptimalityTolerance))

	logger.Info("Starting oracle comparison", "solver", solver.Name(), "nodeCounts", cfg.NodeCounts,
		"podCounts", cfg.PodCounts, "iterations", cfg.Iterations, "slots", cfg.Slots)
	if err := oracle.Compare(ctx, solver, oracle.GridFromConfig(cfg), oracleSinks{results.NewOracleWriter(out), recorder}); err != nil {
		return err
	}
	if err := writeMetrics(o.MetricsFile, recorder); err != nil {
		return err
	}
	logger.Info("Oracle comparison finished", "output", o.Output)
	return nil
}
