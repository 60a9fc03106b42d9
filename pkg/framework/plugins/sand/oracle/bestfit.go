package oracle

import (
	"math"
)

// bestFitDecreasing places pods in the given order on the usable node with the
// lowest allocation cost, breaking ties by the least remaining capacity. It
// returns +Inf when a pod fits nowhere. The result bounds the optimal
// assignment from above.
func (in *Instance) bestFitDecreasing(nodes, order []int) float64 {
	left := make([]float64, in.Nodes)
	for _, i := range nodes {
		left[i] = in.Capacity[i]
	}

	total := 0.0
	for _, j := range order {
		chosen := -1
		for _, i := range nodes {
			if left[i] < in.Demand[j] {
				continue
			}
			if chosen < 0 {
				chosen = i
				continue
			}
			c, best := in.AllocationCost(i, j), in.AllocationCost(chosen, j)
			if c < best || (c == best && left[i] < left[chosen]) {
				chosen = i
			}
		}
		if chosen < 0 {
			return math.Inf(1)
		}
		left[chosen] -= in.Demand[j]
		total += in.AllocationCost(chosen, j)
	}
	return total
}
