package cost

import (
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/framework"
)

// PerPodCost is charged for every pod hosted by an active node
const PerPodCost = 2.5

// Transition classifies a node's activity change between two slots
type Transition int

const (
	StayedIdle Transition = iota
	StayedActive
	Activated
	Deactivated
)

func (t Transition) String() string {
	switch t {
	case StayedIdle:
		return "idle"
	case StayedActive:
		return "active"
	case Activated:
		return "activated"
	case Deactivated:
		return "deactivated"
	default:
		return "unknown"
	}
}

// NodeCost is the contribution of one node to a slot's cost
type NodeCost struct {
	NodeID     int
	Transition Transition
	Pods       int
	Cost       float64
}

// Breakdown details a slot's cost
type Breakdown struct {
	Total       float64
	Nodes       []NodeCost
	Activated   int
	Deactivated int
	Active      int
}

// ClassifyTransition returns the transition for a node given its current and
// previous activity
func ClassifyTransition(active, wasActive bool) Transition {
	switch {
	case active && wasActive:
		return StayedActive
	case active:
		return Activated
	case wasActive:
		return Deactivated
	default:
		return StayedIdle
	}
}

// NodeContribution returns the cost a single node adds to the slot
func NodeContribution(node *framework.Node, previous framework.ActivitySnapshot) NodeCost {
	nc := NodeCost{
		NodeID:     node.ID,
		Transition: ClassifyTransition(node.IsActive(), previous.Has(node.ID)),
		Pods:       node.PodCount(),
	}
	switch nc.Transition {
	case StayedActive:
		nc.Cost = node.Alpha + PerPodCost*float64(nc.Pods)
	case Activated:
		nc.Cost = node.Alpha + node.Delta + PerPodCost*float64(nc.Pods)
	case Deactivated:
		nc.Cost = node.Theta
	}
	return nc
}

// SlotCost returns the total cost of the state's current assignment against
// the given previous snapshot. It does not modify the state.
func SlotCost(state *framework.ClusterState, previous framework.ActivitySnapshot) float64 {
	total := 0.0
	for _, node := range state.Nodes {
		total += NodeContribution(node, previous).Cost
	}
	return total
}

// SlotCostWithDetails returns both the total and a per-node breakdown
func SlotCostWithDetails(state *framework.ClusterState, previous framework.ActivitySnapshot) Breakdown {
	b := Breakdown{Nodes: make([]NodeCost, 0, len(state.Nodes))}
	for _, node := range state.Nodes {
		nc := NodeContribution(node, previous)
		b.Total += nc.Cost
		b.Nodes = append(b.Nodes, nc)
		switch nc.Transition {
		case Activated:
			b.Activated++
			b.Active++
		case StayedActive:
			b.Active++
		case Deactivated:
			b.Deactivated++
		}
	}
	return b
}
