package constraints

import (
	"fmt"

	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/framework"
)

// Constraint checks a cluster state and returns a descriptive error on violation
type Constraint func(state *framework.ClusterState) error

// CapacityConstraint checks that no node holds more than its capacity
func CapacityConstraint() Constraint {
	return func(state *framework.ClusterState) error {
		for _, node := range state.Nodes {
			used := 0
			for _, pod := range node.Pods() {
				used += pod.Size
			}
			if used > node.Capacity {
				return fmt.Errorf("node %d over capacity: used %d of %d", node.ID, used, node.Capacity)
			}
			if used != node.Used() {
				return fmt.Errorf("node %d usage out of sync: tracked %d, actual %d", node.ID, node.Used(), used)
			}
		}
		return nil
	}
}

// UniquePlacementConstraint checks that no pod id is placed on more than one node
func UniquePlacementConstraint() Constraint {
	return func(state *framework.ClusterState) error {
		seen := make(map[int]int)
		for _, node := range state.Nodes {
			for id := range node.Pods() {
				if other, ok := seen[id]; ok {
					return fmt.Errorf("pod %d placed on nodes %d and %d", id, other, node.ID)
				}
				seen[id] = node.ID
			}
		}
		return nil
	}
}

// CombineConstraints combines multiple constraints into one
func CombineConstraints(constraints ...Constraint) Constraint {
	return func(state *framework.ClusterState) error {
		for _, constraint := range constraints {
			if err := constraint(state); err != nil {
				return err
			}
		}
		return nil
	}
}
