// Package policy ranks the nodes of a cluster state and first-fit assigns the
// pods of a slot onto them.
//
// A Policy only supplies the ranking key. Sorting, pod ordering and the
// drop-if-unfit rule are shared, so two policies with equal keys always
// produce identical assignments.
package policy

import (
	"fmt"
	"sort"

	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/framework"
)

// Policy provides the scalar used to order nodes before first-fit
type Policy interface {
	Name() string
	Key(node framework.NodeParams, previous framework.ActivitySnapshot) float64
}

// KeyFunc adapts a plain function into a Policy
type KeyFunc struct {
	PolicyName string
	Fn         func(node framework.NodeParams, previous framework.ActivitySnapshot) float64
}

func (k KeyFunc) Name() string {
	return k.PolicyName
}

func (k KeyFunc) Key(node framework.NodeParams, previous framework.ActivitySnapshot) float64 {
	return k.Fn(node, previous)
}

// Outcome summarises a placement run
type Outcome struct {
	Placed  int
	Dropped int
}

// Rank stably sorts the state's nodes by ascending key. Nodes with equal keys
// keep the relative order they had after the previous slot's ranking.
func Rank(state *framework.ClusterState, p Policy) {
	keys := make(map[int]float64, len(state.Nodes))
	for _, n := range state.Nodes {
		keys[n.ID] = p.Key(n.NodeParams, state.Previous)
	}
	sort.SliceStable(state.Nodes, func(i, j int) bool {
		return keys[state.Nodes[i].ID] < keys[state.Nodes[j].ID]
	})
}

// FirstFit assigns each pod, in input order, to the first node in the
// current order with enough remaining capacity. Pods that fit nowhere are
// dropped without penalty. Pod ids must be unique; a repeated id panics.
func FirstFit(state *framework.ClusterState, pods []framework.Pod) Outcome {
	var out Outcome
	for _, pod := range pods {
		placed := false
		for _, node := range state.Nodes {
			if !node.CanFit(pod) {
				continue
			}
			if err := node.Assign(pod); err != nil {
				panic(fmt.Sprintf("first fit after CanFit: %v", err))
			}
			placed = true
			break
		}
		if placed {
			out.Placed++
		} else {
			out.Dropped++
		}
	}
	return out
}

// Place clears the state, ranks it with p and first-fit assigns pods
func Place(state *framework.ClusterState, pods []framework.Pod, p Policy) Outcome {
	state.Reset()
	Rank(state, p)
	return FirstFit(state, pods)
}
