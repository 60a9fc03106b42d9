package simulation

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/camilla-m/facility-problem-sand/pkg/api/v1alpha1"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/constraints"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/policy"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/workload"
)

const tracerName = "github.com/camilla-m/facility-problem-sand/simulation"

// Sweep runs every (ratio, pod count, node count) configuration of a
// benchmark config, executions and slots in order, and streams the records
// to a sink.
type Sweep struct {
	cfg  *v1alpha1.BenchmarkConfig
	sink RecordSink
	opts ExecutionOptions
}

// NewSweep validates the enumerated options of a defaulted config
func NewSweep(cfg *v1alpha1.BenchmarkConfig, sink RecordSink) (*Sweep, error) {
	rounding, err := workload.ParseRounding(cfg.Rounding)
	if err != nil {
		return nil, err
	}
	coldStart, err := policy.ParseColdStart(cfg.ColdStart)
	if err != nil {
		return nil, err
	}
	if cfg.Seed == nil {
		return nil, fmt.Errorf("seed is not set")
	}
	opts := ExecutionOptions{
		PodSize:   cfg.PodSize,
		Rounding:  rounding,
		ColdStart: coldStart,
	}
	if cfg.ValidateInvariants {
		opts.Check = constraints.CombineConstraints(
			constraints.CapacityConstraint(),
			constraints.UniquePlacementConstraint(),
		)
	}
	return &Sweep{cfg: cfg, sink: sink, opts: opts}, nil
}

// ExecutionSeed derives the generator seed of one execution. It depends only
// on the base seed and the execution's coordinates.
func ExecutionSeed(seed int64, ratio float64, podCount, nodeCount, execution int) uint64 {
	buf := make([]byte, 0, 40)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(seed))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(ratio))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(podCount))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(nodeCount))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(execution))
	return xxhash.Sum64(buf)
}

// Run executes the sweep. It stops at the first sink or invariant error and
// between slots when ctx is done.
func (s *Sweep) Run(ctx context.Context) error {
	logger := klog.FromContext(ctx)
	tracer := otel.Tracer(tracerName)

	var shared *rand.Rand
	if s.cfg.SeedMode != v1alpha1.SeedModePerExecution {
		shared = workload.NewRand(uint64(*s.cfg.Seed))
	}

	for _, ratio := range s.cfg.Ratios {
		for _, podCount := range s.cfg.PodCounts {
			for _, nodeCount := range s.cfg.NodeCounts {
				logger.Info("Running configuration", "ratio", ratio, "pods", podCount, "nodes", nodeCount)
				if err := s.runConfiguration(ctx, tracer, shared, ratio, podCount, nodeCount); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Sweep) runConfiguration(ctx context.Context, tracer trace.Tracer, shared *rand.Rand, ratio float64, podCount, nodeCount int) error {
	ctx, span := tracer.Start(ctx, "sand.Configuration", trace.WithAttributes(
		attribute.Float64("ratio", ratio),
		attribute.Int("pods", podCount),
		attribute.Int("nodes", nodeCount),
	))
	defer span.End()
	logger := klog.FromContext(ctx)

	for e := 1; e <= s.cfg.Executions; e++ {
		rng := shared
		if rng == nil {
			rng = workload.NewRand(ExecutionSeed(*s.cfg.Seed, ratio, podCount, nodeCount, e))
		}
		exec := NewExecution(ratio, podCount, nodeCount, e, s.opts)

		var staticTotal, temporalTotal float64
		for slot := 1; slot <= s.cfg.Slots; slot++ {
			if err := ctx.Err(); err != nil {
				span.RecordError(err)
				return err
			}
			rec, err := exec.RunSlot(exec.Generator.NextTarget(rng))
			if err != nil {
				span.RecordError(err)
				return fmt.Errorf("ratio %v, pods %d, nodes %d, execution %d: %w", ratio, podCount, nodeCount, e, err)
			}
			if rec.Static.Dropped > 0 || rec.Temporal.Dropped > 0 {
				logger.V(3).Info("Pods dropped", "execution", e, "slot", slot,
					"static", rec.Static.Dropped, "temporal", rec.Temporal.Dropped)
			}
			if err := s.sink.Record(rec); err != nil {
				span.RecordError(err)
				return fmt.Errorf("recording slot %d of execution %d: %w", slot, e, err)
			}
			staticTotal += rec.Static.Cost
			temporalTotal += rec.Temporal.Cost
		}
		logger.V(2).Info("Execution finished", "ratio", ratio, "pods", podCount, "nodes", nodeCount,
			"execution", e, "staticCost", staticTotal, "temporalCost", temporalTotal)
	}
	return nil
}
