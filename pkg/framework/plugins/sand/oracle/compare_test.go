package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/utils/ptr"

	"github.com/camilla-m/facility-problem-sand/pkg/api/v1alpha1"
)

type fakeSolver struct {
	err   error
	calls int
}

func (f *fakeSolver) Name() string { return "fake" }

func (f *fakeSolver) Solve(_ context.Context, in *Instance) (Result, error) {
	f.calls++
	if f.err != nil {
		return Result{}, f.err
	}
	return Result{Status: StatusOptimalWithinTolerance, Cost: float64(in.Nodes * in.Pods), HasCost: true}, nil
}

type recordingSink struct {
	records []Record
	err     error
}

func (s *recordingSink) RecordOracle(r Record) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, r)
	return nil
}

type point struct{ N, P, It int }

func points(records []Record) []point {
	out := make([]point, len(records))
	for i, r := range records {
		out[i] = point{r.Nodes, r.Pods, r.Iteration}
	}
	return out
}

func TestCompareSkipsFewerPodsThanNodes(t *testing.T) {
	grid := Grid{NodeCounts: []int{2, 3}, PodCounts: []int{1, 3}, Iterations: 2, Options: InstanceOptions{Slots: 2}}
	sink := &recordingSink{}

	if err := Compare(context.Background(), &fakeSolver{}, grid, sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []point{{2, 3, 1}, {2, 3, 2}, {3, 3, 1}, {3, 3, 2}}
	if diff := cmp.Diff(expected, points(sink.records)); diff != "" {
		t.Errorf("Grid mismatch (-want +got):\n%s", diff)
	}
	if sink.records[0].Cost != 6 || !sink.records[0].HasCost {
		t.Errorf("Unexpected first record %+v", sink.records[0])
	}
}

func TestCompareSolverErrorBecomesStatus(t *testing.T) {
	grid := Grid{NodeCounts: []int{2}, PodCounts: []int{2}, Iterations: 1, Options: InstanceOptions{Slots: 2}}
	sink := &recordingSink{}

	if err := Compare(context.Background(), &fakeSolver{err: errors.New("boom")}, grid, sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.records) != 1 || sink.records[0].Status != StatusError || sink.records[0].HasCost {
		t.Errorf("Expected a single ERROR record, got %+v", sink.records)
	}
}

func TestCompareStops(t *testing.T) {
	grid := Grid{NodeCounts: []int{2}, PodCounts: []int{2, 4}, Iterations: 3, Options: InstanceOptions{Slots: 2}}

	t.Run("SinkFailure", func(t *testing.T) {
		solver := &fakeSolver{}
		err := Compare(context.Background(), solver, grid, &recordingSink{err: errors.New("disk full")})
		if err == nil {
			t.Fatalf("Expected the sink error to surface")
		}
		if solver.calls != 1 {
			t.Errorf("Expected the run to stop after the first record, got %d solves", solver.calls)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		solver := &fakeSolver{}
		if err := Compare(ctx, solver, grid, &recordingSink{}); !errors.Is(err, context.Canceled) {
			t.Fatalf("Expected context.Canceled, got %v", err)
		}
		if solver.calls != 0 {
			t.Errorf("Expected no solves, got %d", solver.calls)
		}
	})
}

func TestGridFromConfig(t *testing.T) {
	cfg := &v1alpha1.OracleConfig{
		NodeCounts:        []int{2},
		PodCounts:         []int{3},
		Slots:             4,
		Iterations:        5,
		ActivationPenalty: ptr.To(7.0),
	}
	got := GridFromConfig(cfg)
	expected := Grid{
		NodeCounts: []int{2},
		PodCounts:  []int{3},
		Iterations: 5,
		Options:    InstanceOptions{Slots: 4, ActivationPenalty: 7, DeactivationPenalty: v1alpha1.DefaultDeactivationPenalty},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Grid mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusString(t *testing.T) {
	for s, want := range map[Status]string{
		StatusOptimalWithinTolerance: "OPTIMAL_1_GAP",
		StatusInfeasible:             "INFEASIBLE",
		StatusOther:                  "OTHER",
		StatusError:                  "ERROR",
	} {
		if s.String() != want {
			t.Errorf("Expected %q, got %q", want, s.String())
		}
	}
}
