package oracle

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"github.com/camilla-m/facility-problem-sand/pkg/api/v1alpha1"
)

const tracerName = "github.com/camilla-m/facility-problem-sand/oracle"

// Record is one solved grid point
type Record struct {
	Nodes     int
	Pods      int
	Iteration int
	Status    Status
	SolveTime time.Duration
	Cost      float64
	HasCost   bool
}

// Sink receives oracle records in grid order
type Sink interface {
	RecordOracle(Record) error
}

// Grid is the set of instances Compare solves
type Grid struct {
	NodeCounts []int
	PodCounts  []int
	Iterations int
	Options    InstanceOptions
}

// GridFromConfig builds the grid from a defaulted oracle config
func GridFromConfig(cfg *v1alpha1.OracleConfig) Grid {
	return Grid{
		NodeCounts: cfg.NodeCounts,
		PodCounts:  cfg.PodCounts,
		Iterations: cfg.Iterations,
		Options: InstanceOptions{
			Slots:               cfg.Slots,
			ActivationPenalty:   ptr.Deref(cfg.ActivationPenalty, v1alpha1.DefaultActivationPenalty),
			DeactivationPenalty: ptr.Deref(cfg.DeactivationPenalty, v1alpha1.DefaultDeactivationPenalty),
		},
	}
}

// Compare solves every instance of the grid and hands the results to sink.
// Grid points with fewer pods than nodes are skipped. Solver errors become
// StatusError records; only a cancelled context or a sink failure stops the
// run.
func Compare(ctx context.Context, solver Solver, grid Grid, sink Sink) error {
	logger := klog.FromContext(ctx).WithValues("solver", solver.Name())
	tracer := otel.Tracer(tracerName)

	for _, n := range grid.NodeCounts {
		for _, p := range grid.PodCounts {
			if p < n {
				continue
			}
			for it := 1; it <= grid.Iterations; it++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				rec, err := solveOne(ctx, tracer, solver, n, p, it, grid.Options)
				if err != nil {
					return err
				}
				logger.V(2).Info("Solved oracle instance", "nodes", n, "pods", p, "iteration", it,
					"status", rec.Status, "cost", rec.Cost, "solveTime", rec.SolveTime)
				if err := sink.RecordOracle(rec); err != nil {
					return fmt.Errorf("recording oracle result for N=%d P=%d iteration %d: %w", n, p, it, err)
				}
			}
		}
	}
	return nil
}

func solveOne(ctx context.Context, tracer trace.Tracer, solver Solver, n, p, it int, opts InstanceOptions) (Record, error) {
	ctx, span := tracer.Start(ctx, "oracle.Solve")
	defer span.End()
	span.SetAttributes(
		attribute.Int("nodes", n),
		attribute.Int("pods", p),
		attribute.Int("iteration", it),
	)

	inst := GenerateInstance(n, p, it, opts)
	res, err := solver.Solve(ctx, inst)
	if err != nil {
		if ctx.Err() != nil {
			return Record{}, ctx.Err()
		}
		klog.FromContext(ctx).Error(err, "Oracle solve failed", "nodes", n, "pods", p, "iteration", it)
		span.RecordError(err)
		res = Result{Status: StatusError}
	}
	span.SetAttributes(attribute.String("status", res.Status.String()))

	return Record{
		Nodes:     n,
		Pods:      p,
		Iteration: it,
		Status:    res.Status,
		SolveTime: res.SolveTime,
		Cost:      res.Cost,
		HasCost:   res.HasCost,
	}, nil
}
