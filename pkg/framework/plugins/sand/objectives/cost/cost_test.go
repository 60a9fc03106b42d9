package cost_test

import (
	"math"
	"testing"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/framework"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/objectives/cost"
)

func newState(t *testing.T, podsPerNode []int) *framework.ClusterState {
	t.Helper()
	params := make([]framework.NodeParams, len(podsPerNode))
	for i := range params {
		params[i] = framework.NodeParams{ID: i, Capacity: 100, Alpha: 20, Delta: 100, Theta: 10}
	}
	state := framework.NewClusterState(params)
	podID := 0
	for i, count := range podsPerNode {
		for j := 0; j < count; j++ {
			if err := state.Nodes[i].Assign(framework.Pod{ID: podID, Size: 5}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			podID++
		}
	}
	return state
}

func snapshot(ids ...int) framework.ActivitySnapshot {
	return framework.ActivitySnapshot{Active: sets.New(ids...), Slot: 1}
}

func TestNodeTransitionCosts(t *testing.T) {
	testCases := []struct {
		name       string
		pods       int
		wasActive  bool
		transition cost.Transition
		expected   float64
	}{
		{name: "StayedActive", pods: 4, wasActive: true, transition: cost.StayedActive, expected: 20 + 2.5*4},
		{name: "Activated", pods: 4, wasActive: false, transition: cost.Activated, expected: 20 + 100 + 2.5*4},
		{name: "Deactivated", pods: 0, wasActive: true, transition: cost.Deactivated, expected: 10},
		{name: "StayedIdle", pods: 0, wasActive: false, transition: cost.StayedIdle, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state := newState(t, []int{tc.pods})
			prev := snapshot()
			if tc.wasActive {
				prev = snapshot(0)
			}

			nc := cost.NodeContribution(state.Nodes[0], prev)
			if nc.Transition != tc.transition {
				t.Errorf("Expected transition %v, got %v", tc.transition, nc.Transition)
			}
			if math.Abs(nc.Cost-tc.expected) > 1e-9 {
				t.Errorf("Expected cost %.2f, got %.2f", tc.expected, nc.Cost)
			}
		})
	}
}

func TestSlotCostWithDetails(t *testing.T) {
	// node 0 stays active, node 1 activates, node 2 deactivates, node 3 idles
	state := newState(t, []int{2, 3, 0, 0})
	prev := snapshot(0, 2)

	b := cost.SlotCostWithDetails(state, prev)

	expected := (20 + 2.5*2) + (20 + 100 + 2.5*3) + 10.0
	if math.Abs(b.Total-expected) > 1e-9 {
		t.Errorf("Expected total %.2f, got %.2f", expected, b.Total)
	}
	if got := cost.SlotCost(state, prev); got != b.Total {
		t.Errorf("SlotCost %.2f disagrees with breakdown total %.2f", got, b.Total)
	}
	if b.Activated != 1 || b.Deactivated != 1 || b.Active != 2 {
		t.Errorf("Unexpected counts: activated=%d deactivated=%d active=%d", b.Activated, b.Deactivated, b.Active)
	}
	if len(b.Nodes) != 4 {
		t.Fatalf("Expected 4 node entries, got %d", len(b.Nodes))
	}
}

func TestSlotCostDoesNotMutate(t *testing.T) {
	state := newState(t, []int{1, 0})
	prev := snapshot(1)

	cost.SlotCost(state, prev)

	if !state.Nodes[0].IsActive() || state.Nodes[1].IsActive() {
		t.Errorf("SlotCost changed node activity")
	}
	if !prev.Has(1) || prev.Len() != 1 {
		t.Errorf("SlotCost changed the previous snapshot")
	}
}

func TestActivationChargedOnce(t *testing.T) {
	state := newState(t, []int{2})

	first := cost.SlotCost(state, snapshot())
	second := cost.SlotCost(state, snapshot(0))

	if first-second != 100 {
		t.Errorf("Expected delta charged only on activation, got difference %.2f", first-second)
	}
}
