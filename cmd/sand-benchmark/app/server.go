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

// Package app implements the sand-benchmark command.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	logsapi "k8s.io/component-base/logs/api/v1"
	"k8s.io/klog/v2"

	"github.com/camilla-m/facility-problem-sand/cmd/sand-benchmark/app/options"
	"github.com/camilla-m/facility-problem-sand/pkg/api/v1alpha1"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/results"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/simulation"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/util"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/workload"
	"github.com/camilla-m/facility-problem-sand/pkg/metrics"
	"github.com/camilla-m/facility-problem-sand/pkg/tracing"
)

// NewBenchmarkCommand creates a *cobra.Command object with default parameters
func NewBenchmarkCommand(out io.Writer) *cobra.Command {
	o, err := options.NewBenchmarkOptions()
	if err != nil {
		klog.ErrorS(err, "unable to initialize benchmark options")
		return nil
	}

	cmd := &cobra.Command{
		Use:   "sand-benchmark",
		Short: "sand-benchmark compares static and temporal-aware pod placement",
		Long: `sand-benchmark simulates a cluster over discrete time slots and places a
fluctuating workload with two first-fit policies. The static policy ranks nodes
by opening cost; the temporal policy also charges the activation penalty of
nodes that were idle in the previous slot. Both costs are written per slot.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logsapi.ValidateAndApply(o.Logging, o.FeatureGates)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.Config(cmd.Flags())
			if err != nil {
				return err
			}
			return Run(cmd.Context(), o, cfg, out)
		},
		Args: cobra.NoArgs,
	}
	cmd.SetOut(out)
	o.AddFlags(cmd.Flags())
	o.AddPersistentFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewOracleCommand(out, &o.Tracing))
	cmd.AddCommand(NewVersionCommand())
	return cmd
}

// Run executes the sweep described by cfg and writes every requested output
func Run(ctx context.Context, o *options.BenchmarkOptions, cfg *v1alpha1.BenchmarkConfig, stdout io.Writer) error {
	logger := klog.FromContext(ctx)

	stopTracing, err := startTracing(ctx, o.Tracing)
	if err != nil {
		return err
	}
	defer stopTracing()

	out, closeOut, err := openOutput(o.Output, stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	csv := results.NewSlotWriter(out)
	if cfg.Rounding == string(workload.RoundTruncate) {
		csv.SetFloatFormat(results.FloatHistorical)
	}
	recorder := metrics.NewRecorder()
	sinks := simulation.MultiSink{csv, recorder}
	var curves *util.CostCurves
	if o.PlotFile != "" {
		curves = util.NewCostCurves()
		sinks = append(sinks, curves)
	}

	sweep, err := simulation.NewSweep(cfg, sinks)
	if err != nil {
		return err
	}
	logger.Info("Starting benchmark", "configurations", len(cfg.Ratios)*len(cfg.PodCounts)*len(cfg.NodeCounts),
		"executions", cfg.Executions, "slots", cfg.Slots, "seedMode", cfg.SeedMode)
	runErr := sweep.Run(ctx)
	if err := csv.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("writing %s: %w", o.Output, err)
	}
	if runErr != nil {
		return runErr
	}

	if curves != nil {
		if err := util.PlotCostCurves(curves, o.PlotFile); err != nil {
			return fmt.Errorf("plotting cost curves: %w", err)
		}
	}
	if err := writeMetrics(o.MetricsFile, recorder); err != nil {
		return err
	}
	logger.Info("Benchmark finished", "output", o.Output)
	return nil
}

// startTracing installs the global tracer provider. The returned func flushes
// pending spans and must run once the command is done.
func startTracing(ctx context.Context, opts tracing.Options) (func(), error) {
	_, shutdown, err := tracing.NewTracerProvider(ctx, opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			klog.FromContext(ctx).Error(err, "Failed to shut down tracer provider")
		}
	}, nil
}

// openOutput opens path for writing, "-" selects stdout
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() {
		if err := f.Close(); err != nil {
			klog.ErrorS(err, "Failed to close output", "path", path)
		}
	}, nil
}

func writeMetrics(path string, recorder *metrics.Recorder) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := recorder.WriteText(f); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
