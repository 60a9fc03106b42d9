package activity

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/framework"
)

// Snapshot returns the ids of the nodes that hold pods right now
func Snapshot(state *framework.ClusterState) sets.Set[int] {
	active := sets.New[int]()
	for _, n := range state.Nodes {
		if n.IsActive() {
			active.Insert(n.ID)
		}
	}
	return active
}

// Commit replaces the state's previous snapshot with the activity of the
// slot that just finished. The old set is never mutated, so holders of the
// previous snapshot keep seeing it unchanged.
func Commit(state *framework.ClusterState, slot int) framework.ActivitySnapshot {
	snap := framework.ActivitySnapshot{
		Active: Snapshot(state),
		Slot:   slot,
	}
	state.Previous = snap
	return snap
}

// Transitions counts nodes that became active and nodes that went idle
// between two snapshots
func Transitions(before, after sets.Set[int]) (activated, deactivated int) {
	return after.Difference(before).Len(), before.Difference(after).Len()
}
