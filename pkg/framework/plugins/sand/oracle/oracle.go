// Package oracle defines the contract of the exact optimizer used to validate
// the placement heuristics on small instances, plus a generator for the
// validation instances and an exhaustive solver for tiny ones.
//
// Oracle results never feed back into the simulation; they are only compared
// against it.
package oracle

import (
	"context"
	"fmt"
	"time"
)

// Status is the outcome of a solve
type Status int

const (
	StatusOther Status = iota
	StatusOptimalWithinTolerance
	StatusInfeasible
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimalWithinTolerance:
		return "OPTIMAL_1_GAP"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusError:
		return "ERROR"
	default:
		return "OTHER"
	}
}

// Instance is a multi-slot facility placement problem. Per-node slices have
// Nodes entries, per-pod slices have Pods entries. Pods keep their demand
// across all slots.
type Instance struct {
	Nodes int
	Pods  int
	Slots int

	Capacity []float64 // per node
	Alpha    []float64 // opening cost per active slot
	Beta     []float64 // allocation cost per hosted pod
	Gamma    []float64 // error penalisation factor

	Demand []float64 // per pod resource usage
	Errors []float64 // per pod error count

	ActivationPenalty   float64
	DeactivationPenalty float64
}

// Validate checks the dimensions of the instance
func (in *Instance) Validate() error {
	if in.Nodes <= 0 || in.Pods < 0 || in.Slots <= 0 {
		return fmt.Errorf("invalid dimensions: nodes=%d pods=%d slots=%d", in.Nodes, in.Pods, in.Slots)
	}
	for name, s := range map[string][]float64{"capacity": in.Capacity, "alpha": in.Alpha, "beta": in.Beta, "gamma": in.Gamma} {
		if len(s) != in.Nodes {
			return fmt.Errorf("%s has %d entries, want %d", name, len(s), in.Nodes)
		}
	}
	for name, s := range map[string][]float64{"demand": in.Demand, "errors": in.Errors} {
		if len(s) != in.Pods {
			return fmt.Errorf("%s has %d entries, want %d", name, len(s), in.Pods)
		}
	}
	return nil
}

// AllocationCost returns the cost of hosting pod j on node i for one slot
func (in *Instance) AllocationCost(i, j int) float64 {
	return in.Beta[i] + in.Gamma[i]*in.Errors[j]
}

// Result is what a solver reports
type Result struct {
	Status Status
	// Cost is the optimal objective. It is only meaningful when HasCost is set.
	Cost      float64
	HasCost   bool
	SolveTime time.Duration
}

// Solver finds the optimal cost of an instance
type Solver interface {
	Name() string
	Solve(ctx context.Context, in *Instance) (Result, error)
}
