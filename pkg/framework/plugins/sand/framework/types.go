package framework

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Pod is a unit of demand for a single slot
type Pod struct {
	ID   int
	Size int
}

// NodeParams holds the immutable capacity and cost parameters of a node
type NodeParams struct {
	ID       int
	Capacity int
	Alpha    float64 // recurring cost while active
	Delta    float64 // activation penalty
	Theta    float64 // deactivation penalty
}

// Node is a NodeParams plus the assignment of the current slot
type Node struct {
	NodeParams

	pods map[int]Pod
	used int
}

// NewNode creates an empty node from its parameters
func NewNode(p NodeParams) *Node {
	return &Node{
		NodeParams: p,
		pods:       make(map[int]Pod),
	}
}

// Reset clears the assignment
func (n *Node) Reset() {
	clear(n.pods)
	n.used = 0
}

// Used returns the sum of assigned pod sizes
func (n *Node) Used() int {
	return n.used
}

// RemainingCapacity returns capacity minus the assigned pod sizes
func (n *Node) RemainingCapacity() int {
	return n.Capacity - n.used
}

// CanFit reports whether the pod fits in the remaining capacity
func (n *Node) CanFit(p Pod) bool {
	return n.RemainingCapacity() >= p.Size
}

// IsActive reports whether the node holds at least one pod
func (n *Node) IsActive() bool {
	return len(n.pods) > 0
}

// PodCount returns the number of assigned pods
func (n *Node) PodCount() int {
	return len(n.pods)
}

// Assign places the pod on the node
func (n *Node) Assign(p Pod) error {
	if _, ok := n.pods[p.ID]; ok {
		return fmt.Errorf("pod %d already assigned to node %d", p.ID, n.ID)
	}
	if !n.CanFit(p) {
		return fmt.Errorf("pod %d (size %d) does not fit node %d (remaining %d)", p.ID, p.Size, n.ID, n.RemainingCapacity())
	}
	n.pods[p.ID] = p
	n.used += p.Size
	return nil
}

// Pods returns a copy of the current assignment
func (n *Node) Pods() map[int]Pod {
	out := make(map[int]Pod, len(n.pods))
	for id, p := range n.pods {
		out[id] = p
	}
	return out
}

// ActivitySnapshot is the set of active node ids taken at the end of a slot
type ActivitySnapshot struct {
	Active sets.Set[int]
	// Slot is the 1-based slot the snapshot was taken after, 0 before the first slot
	Slot int
}

// HasHistory reports whether the snapshot was taken after a completed slot
func (s ActivitySnapshot) HasHistory() bool {
	return s.Slot > 0
}

// Has reports whether the node was active when the snapshot was taken
func (s ActivitySnapshot) Has(id int) bool {
	return s.Active.Has(id)
}

// Len returns the number of active nodes in the snapshot
func (s ActivitySnapshot) Len() int {
	return s.Active.Len()
}

// ClusterState is one policy track: an ordered roster plus the activity
// snapshot taken at the end of the previous slot.
type ClusterState struct {
	// Nodes keeps the order left by the last ranking. Ranking re-sorts it
	// in place every slot.
	Nodes    []*Node
	Previous ActivitySnapshot
}

// NewClusterState builds a track owning fresh nodes for every parameter set.
// Nothing is shared with other states built from the same params.
func NewClusterState(params []NodeParams) *ClusterState {
	nodes := make([]*Node, len(params))
	for i, p := range params {
		nodes[i] = NewNode(p)
	}
	return &ClusterState{
		Nodes:    nodes,
		Previous: ActivitySnapshot{Active: sets.New[int]()},
	}
}

// Reset clears the assignment of every node
func (s *ClusterState) Reset() {
	for _, n := range s.Nodes {
		n.Reset()
	}
}

// ActiveCount returns how many nodes currently hold pods
func (s *ClusterState) ActiveCount() int {
	count := 0
	for _, n := range s.Nodes {
		if n.IsActive() {
			count++
		}
	}
	return count
}

// NodeByID looks a node up by its stable id
func (s *ClusterState) NodeByID(id int) (*Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}
